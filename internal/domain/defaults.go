package domain

import "fmt"

// DefaultRuleSet returns the conservative fallback policy used when rule
// interpretation fails: food only, zero spending limit, CRC.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		AllowedCategories: []string{"food"},
		MaxAmount:         0,
		Currency:          "CRC",
		OtherRestrictions: []string{},
	}
}

// FallbackResult returns the safe default InvoiceResult recorded when a file
// cannot be validated. The failure reason is carried in Violations so it stays
// visible in the report.
func FallbackResult(filename string, err error) *InvoiceResult {
	return &InvoiceResult{
		SupplierName:      "Unknown",
		InvoiceNumber:     "N/A",
		Date:              "Unknown",
		Items:             []LineItem{},
		TotalAmount:       0,
		Currency:          "Unknown",
		IsValid:           false,
		Violations:        []string{fmt.Sprintf("Processing error: %v", err)},
		NonCompliantItems: []LineItem{},
		ExceedsLimit:      false,
		SourceFilename:    filename,
	}
}
