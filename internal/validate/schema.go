package validate

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// resultJSONSchema shape-checks a decoded reply before it is trusted as an
// InvoiceResult. Kept permissive about extra keys; models decorate freely.
const resultJSONSchema = `{
	"type": "object",
	"required": ["total_amount", "is_valid"],
	"properties": {
		"supplier_name": {"type": "string"},
		"invoice_number": {"type": "string"},
		"date": {"type": "string"},
		"items": {"type": "array"},
		"total_amount": {"type": "number"},
		"currency": {"type": "string"},
		"is_valid": {"type": "boolean"},
		"violations": {
			"type": "array",
			"items": {"type": "string"}
		},
		"non_compliant_items": {"type": "array"},
		"exceeds_limit": {"type": "boolean"}
	}
}`

var compiledResultSchema = jsonschema.MustCompileString("invoice_result.json", resultJSONSchema)

// checkResultShape validates a decoded JSON value against the InvoiceResult
// schema.
func checkResultShape(v interface{}) error {
	return compiledResultSchema.Validate(v)
}
