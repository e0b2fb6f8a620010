package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"invoiceagent/internal/domain"
)

func TestExtensionOf(t *testing.T) {
	assert.Equal(t, "pdf", domain.ExtensionOf("Factura.PDF"))
	assert.Equal(t, "jpeg", domain.ExtensionOf("scan.final.jpeg"))
	assert.Equal(t, "", domain.ExtensionOf("noextension"))
}

func TestFormatForFilename(t *testing.T) {
	format, ok := domain.FormatForFilename("invoice.xml")
	assert.True(t, ok)
	assert.Equal(t, domain.SourceXML, format)

	format, ok = domain.FormatForFilename("photo.JPG")
	assert.True(t, ok)
	assert.Equal(t, domain.SourceImage, format)

	_, ok = domain.FormatForFilename("notes.docx")
	assert.False(t, ok)
}

func TestDefaultRuleSet(t *testing.T) {
	rules := domain.DefaultRuleSet()

	assert.Equal(t, []string{"food"}, rules.AllowedCategories)
	assert.Equal(t, 0.0, rules.MaxAmount)
	assert.Equal(t, "CRC", rules.Currency)
	assert.Empty(t, rules.OtherRestrictions)
}

func TestFallbackResult(t *testing.T) {
	result := domain.FallbackResult("factura.pdf", errors.New("model unreachable"))

	assert.Equal(t, "Unknown", result.SupplierName)
	assert.Equal(t, "N/A", result.InvoiceNumber)
	assert.Equal(t, "Unknown", result.Date)
	assert.Empty(t, result.Items)
	assert.Equal(t, 0.0, result.TotalAmount)
	assert.False(t, result.IsValid)
	assert.False(t, result.ExceedsLimit)
	assert.Equal(t, "factura.pdf", result.SourceFilename)
	assert.Equal(t, []string{"Processing error: model unreachable"}, result.Violations)
}
