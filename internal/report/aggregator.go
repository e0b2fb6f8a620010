// Package report aggregates per-invoice validation results into batch
// statistics.
package report

import (
	"math"

	"invoiceagent/internal/domain"
)

// Aggregate combines every InvoiceResult of a batch with the batch RuleSet
// into a ReportData. Pure: no I/O, no external calls, results are partitioned
// strictly by their own is_valid flag and never re-validated.
func Aggregate(results []domain.InvoiceResult, rules *domain.RuleSet) *domain.ReportData {
	totalProcessed := len(results)

	validCount := 0
	var approved, excluded float64
	violations := []string{}

	for _, r := range results {
		if r.IsValid {
			validCount++
			approved += r.TotalAmount
		} else {
			excluded += r.TotalAmount
		}
		violations = append(violations, r.Violations...)
	}

	detailed := make([]domain.InvoiceResult, len(results))
	copy(detailed, results)

	return &domain.ReportData{
		TotalProcessed:      totalProcessed,
		ValidInvoices:       validCount,
		InvalidInvoices:     totalProcessed - validCount,
		AccuracyPercentage:  accuracy(validCount, totalProcessed),
		TotalApprovedAmount: approved,
		TotalExcludedAmount: excluded,
		Currency:            rules.Currency,
		MaxLimit:            rules.MaxAmount,
		Violations:          violations,
		DetailedResults:     detailed,
	}
}

// accuracy is the valid share as a percentage rounded to two decimals, and
// 0.0 for an empty batch.
func accuracy(valid, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(100*float64(valid)/float64(total)*100) / 100
}
