package validate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceagent/internal/domain"
	"invoiceagent/internal/port"
	"invoiceagent/internal/validate"
)

type stubCompleter struct {
	out     string
	err     error
	lastReq port.CompletionRequest
}

func (s *stubCompleter) Complete(_ context.Context, req port.CompletionRequest) (string, error) {
	s.lastReq = req
	return s.out, s.err
}

func textDoc() *domain.ExtractedDocument {
	return &domain.ExtractedDocument{
		SourceFormat: domain.SourcePDF,
		Text:         "FACTURA 001\nFerreteria Central\nTotal: 12500 CRC",
		Filename:     "factura.pdf",
	}
}

func imageDoc() *domain.ExtractedDocument {
	return &domain.ExtractedDocument{
		SourceFormat:   domain.SourceImage,
		ImagePayload:   "aGVsbG8=",
		ImageMediaType: "image/png",
		Filename:       "receipt.png",
	}
}

func testRules() *domain.RuleSet {
	return &domain.RuleSet{
		AllowedCategories: []string{"food"},
		MaxAmount:         50000,
		Currency:          "CRC",
	}
}

const validReply = `{
	"supplier_name": "Ferreteria Central",
	"invoice_number": "001",
	"date": "2026-01-15",
	"items": [{"description": "Rice", "amount": 12500, "category": "food"}],
	"total_amount": 12500,
	"currency": "CRC",
	"is_valid": true,
	"violations": [],
	"non_compliant_items": [],
	"exceeds_limit": false
}`

func TestValidate_TextDocument(t *testing.T) {
	stub := &stubCompleter{out: validReply}
	v := validate.NewValidator(stub)

	result := v.Validate(context.Background(), textDoc(), testRules())

	require.NotNil(t, result)
	assert.Equal(t, "Ferreteria Central", result.SupplierName)
	assert.Equal(t, 12500.0, result.TotalAmount)
	assert.True(t, result.IsValid)
	assert.Equal(t, "factura.pdf", result.SourceFilename)

	// Text path sends the extracted text and forces a JSON reply
	assert.True(t, stub.lastReq.ForceJSON)
	assert.Nil(t, stub.lastReq.Image)
	assert.Contains(t, stub.lastReq.Prompt, "FACTURA 001")
	assert.Contains(t, stub.lastReq.Prompt, "food")
}

func TestValidate_ImageDocument(t *testing.T) {
	stub := &stubCompleter{out: validReply}
	v := validate.NewValidator(stub)

	result := v.Validate(context.Background(), imageDoc(), testRules())

	require.NotNil(t, result)
	assert.Equal(t, "receipt.png", result.SourceFilename)

	require.NotNil(t, stub.lastReq.Image)
	assert.Equal(t, "aGVsbG8=", stub.lastReq.Image.Data)
	assert.Equal(t, "image/png", stub.lastReq.Image.MediaType)
}

func TestValidate_CapabilityFailureYieldsFallback(t *testing.T) {
	stub := &stubCompleter{err: errors.New("provider down")}
	v := validate.NewValidator(stub)

	result := v.Validate(context.Background(), textDoc(), testRules())

	require.NotNil(t, result)
	assert.False(t, result.IsValid)
	assert.Equal(t, "Unknown", result.SupplierName)
	assert.Equal(t, 0.0, result.TotalAmount)
	assert.Equal(t, "factura.pdf", result.SourceFilename)
	require.Len(t, result.Violations, 1)
	assert.Contains(t, result.Violations[0], "Processing error")
	assert.Contains(t, result.Violations[0], "provider down")
}

func TestValidate_UndecodableReplyYieldsFallback(t *testing.T) {
	stub := &stubCompleter{out: "the invoice looks fine to me"}
	v := validate.NewValidator(stub)

	result := v.Validate(context.Background(), textDoc(), testRules())

	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.Violations)
	assert.False(t, result.ExceedsLimit)
}

func TestValidate_ReplyFailingSchemaYieldsFallback(t *testing.T) {
	// is_valid is a string, not a boolean
	stub := &stubCompleter{out: `{"total_amount": 100, "is_valid": "yes"}`}
	v := validate.NewValidator(stub)

	result := v.Validate(context.Background(), textDoc(), testRules())

	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.Violations)
}

func TestValidate_FencedReplyRecovered(t *testing.T) {
	stub := &stubCompleter{out: "Here you go:\n```json\n" + validReply + "\n```"}
	v := validate.NewValidator(stub)

	result := v.Validate(context.Background(), textDoc(), testRules())

	assert.True(t, result.IsValid)
	assert.Equal(t, "001", result.InvoiceNumber)
}

func TestValidate_NilSlicesNormalized(t *testing.T) {
	stub := &stubCompleter{out: `{"total_amount": 100, "is_valid": true}`}
	v := validate.NewValidator(stub)

	result := v.Validate(context.Background(), textDoc(), testRules())

	assert.NotNil(t, result.Items)
	assert.NotNil(t, result.Violations)
	assert.NotNil(t, result.NonCompliantItems)
}
