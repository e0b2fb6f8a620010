package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invoiceagent/internal/domain"
	"invoiceagent/internal/report"
)

func testRules() *domain.RuleSet {
	return &domain.RuleSet{
		AllowedCategories: []string{"food"},
		MaxAmount:         50000,
		Currency:          "CRC",
	}
}

func TestAggregate_PartitionsByValidity(t *testing.T) {
	results := []domain.InvoiceResult{
		{SourceFilename: "a.pdf", TotalAmount: 1000, IsValid: true},
		{SourceFilename: "b.pdf", TotalAmount: 2000, IsValid: false, Violations: []string{"over limit"}},
		{SourceFilename: "c.pdf", TotalAmount: 3000, IsValid: true},
	}

	r := report.Aggregate(results, testRules())

	assert.Equal(t, 3, r.TotalProcessed)
	assert.Equal(t, 2, r.ValidInvoices)
	assert.Equal(t, 1, r.InvalidInvoices)
	assert.Equal(t, 4000.0, r.TotalApprovedAmount)
	assert.Equal(t, 2000.0, r.TotalExcludedAmount)
	assert.Equal(t, "CRC", r.Currency)
	assert.Equal(t, 50000.0, r.MaxLimit)
}

func TestAggregate_AccuracyRoundedToTwoDecimals(t *testing.T) {
	results := []domain.InvoiceResult{
		{IsValid: true},
		{IsValid: true},
		{IsValid: false},
	}

	r := report.Aggregate(results, testRules())

	assert.Equal(t, 66.67, r.AccuracyPercentage)
}

func TestAggregate_EmptyBatch(t *testing.T) {
	r := report.Aggregate(nil, testRules())

	assert.Equal(t, 0, r.TotalProcessed)
	assert.Equal(t, 0.0, r.AccuracyPercentage)
	assert.Equal(t, 0.0, r.TotalApprovedAmount)
	assert.Empty(t, r.Violations)
	assert.Empty(t, r.DetailedResults)
}

func TestAggregate_ViolationsFlattenedInOrderWithDuplicates(t *testing.T) {
	results := []domain.InvoiceResult{
		{IsValid: false, Violations: []string{"alcohol not allowed", "over limit"}},
		{IsValid: true},
		{IsValid: false, Violations: []string{"alcohol not allowed"}},
	}

	r := report.Aggregate(results, testRules())

	assert.Equal(t, []string{"alcohol not allowed", "over limit", "alcohol not allowed"}, r.Violations)
}

func TestAggregate_DetailedResultsPreserveInputOrder(t *testing.T) {
	results := []domain.InvoiceResult{
		{SourceFilename: "third.pdf"},
		{SourceFilename: "first.pdf"},
		{SourceFilename: "second.pdf"},
	}

	r := report.Aggregate(results, testRules())

	assert.Len(t, r.DetailedResults, 3)
	assert.Equal(t, "third.pdf", r.DetailedResults[0].SourceFilename)
	assert.Equal(t, "first.pdf", r.DetailedResults[1].SourceFilename)
	assert.Equal(t, "second.pdf", r.DetailedResults[2].SourceFilename)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	results := []domain.InvoiceResult{
		{SourceFilename: "a.pdf", IsValid: true},
	}

	r := report.Aggregate(results, testRules())
	r.DetailedResults[0].SourceFilename = "changed.pdf"

	assert.Equal(t, "a.pdf", results[0].SourceFilename)
}
