package domain

import "time"

// RuleSet is the structured spending policy derived from free-text
// limitations. It is built once per batch and read-only afterwards.
type RuleSet struct {
	AllowedCategories []string `json:"allowed_categories"`
	MaxAmount         float64  `json:"max_amount"`
	Currency          string   `json:"currency"`
	OtherRestrictions []string `json:"other_restrictions"`
}

// ExtractedDocument is the normalized per-file extraction output. Exactly one
// of Text or ImagePayload is populated, determined by SourceFormat.
type ExtractedDocument struct {
	SourceFormat   SourceFormat `json:"source_format"`
	Text           string       `json:"text,omitempty"`
	ImagePayload   string       `json:"image_payload,omitempty"` // base64-encoded raw bytes
	ImageMediaType string       `json:"image_media_type,omitempty"`
	Filename       string       `json:"filename"`
}

// LineItem is a single item line inside an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// InvoiceResult is the structured outcome of validating one invoice against a
// RuleSet. It is produced by the document-understanding capability and is not
// re-derived locally; the pipeline only attaches SourceFilename.
type InvoiceResult struct {
	SupplierName      string     `json:"supplier_name"`
	InvoiceNumber     string     `json:"invoice_number"`
	Date              string     `json:"date"`
	Items             []LineItem `json:"items"`
	TotalAmount       float64    `json:"total_amount"`
	Currency          string     `json:"currency"`
	IsValid           bool       `json:"is_valid"`
	Violations        []string   `json:"violations"`
	NonCompliantItems []LineItem `json:"non_compliant_items"`
	ExceedsLimit      bool       `json:"exceeds_limit"`
	SourceFilename    string     `json:"filename"`
}

// ReportData aggregates every InvoiceResult of a batch into summary
// statistics. It is derived entirely from the result list plus the RuleSet and
// never mutated after construction.
type ReportData struct {
	TotalProcessed      int             `json:"total_processed"`
	ValidInvoices       int             `json:"valid_invoices"`
	InvalidInvoices     int             `json:"invalid_invoices"`
	AccuracyPercentage  float64         `json:"accuracy_percentage"`
	TotalApprovedAmount float64         `json:"total_approved_amount"`
	TotalExcludedAmount float64         `json:"total_excluded_amount"`
	Currency            string          `json:"currency"`
	MaxLimit            float64         `json:"max_limit"`
	Violations          []string        `json:"violations"`
	DetailedResults     []InvoiceResult `json:"detailed_results"`
}

// StoredReport is a generated report together with its creation timestamp,
// held by the report store for later display and export.
type StoredReport struct {
	Report      *ReportData `json:"report"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// BatchFile is one uploaded invoice handed to the batch entry point: the
// original filename plus the path the upload was persisted to.
type BatchFile struct {
	Filename string
	Path     string
}
