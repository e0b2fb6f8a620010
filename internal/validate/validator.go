// Package validate drives per-invoice validation through the
// document-understanding capability and shields the pipeline from its
// failures.
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"invoiceagent/internal/domain"
	"invoiceagent/internal/llm"
	"invoiceagent/internal/port"
)

// Validator produces one InvoiceResult per extracted document. Rule
// enforcement itself is the capability's job; the validator only reconciles
// its answer into a well-formed result.
type Validator struct {
	completer port.Completer
}

// NewValidator creates a Validator backed by the given completer.
func NewValidator(completer port.Completer) *Validator {
	return &Validator{completer: completer}
}

// Validate checks one extracted document against the rules. It never fails:
// every error is converted into the safe default result carrying the failure
// reason in its violations.
func (v *Validator) Validate(ctx context.Context, doc *domain.ExtractedDocument, rules *domain.RuleSet) *domain.InvoiceResult {
	req := buildRequest(doc, rules)

	raw, err := v.completer.Complete(ctx, req)
	if err != nil {
		log.Printf("validate.Validator: capability call failed for %s: %v", doc.Filename, err)
		return domain.FallbackResult(doc.Filename, err)
	}

	result, err := decodeResult(raw)
	if err != nil {
		log.Printf("validate.Validator: undecodable reply for %s: %v", doc.Filename, err)
		return domain.FallbackResult(doc.Filename, err)
	}

	result.SourceFilename = doc.Filename
	logInconsistencies(result, rules)
	return result
}

func buildRequest(doc *domain.ExtractedDocument, rules *domain.RuleSet) port.CompletionRequest {
	if doc.SourceFormat == domain.SourceImage {
		return port.CompletionRequest{
			System: systemInstruction,
			Prompt: buildImagePrompt(rules),
			Image: &port.ImageAttachment{
				Data:      doc.ImagePayload,
				MediaType: doc.ImageMediaType,
			},
		}
	}
	return port.CompletionRequest{
		System:    systemInstruction,
		Prompt:    buildTextPrompt(doc.Text, rules),
		ForceJSON: true,
	}
}

// decodeResult recovers the structured result from the raw reply and
// shape-checks it before trusting it.
func decodeResult(raw string) (*domain.InvoiceResult, error) {
	var msg json.RawMessage
	if err := llm.DecodeObject(raw, &msg); err != nil {
		return nil, err
	}

	var shape interface{}
	if err := json.Unmarshal(msg, &shape); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableResponse, err)
	}
	if err := checkResultShape(shape); err != nil {
		return nil, fmt.Errorf("reply does not match result schema: %w", err)
	}

	var result domain.InvoiceResult
	if err := json.Unmarshal(msg, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableResponse, err)
	}

	if result.Items == nil {
		result.Items = []domain.LineItem{}
	}
	if result.Violations == nil {
		result.Violations = []string{}
	}
	if result.NonCompliantItems == nil {
		result.NonCompliantItems = []domain.LineItem{}
	}
	return &result, nil
}

// logInconsistencies surfaces results that contradict themselves. The
// capability's judgment is trusted as-is; these are observability breadcrumbs,
// never corrections.
func logInconsistencies(result *domain.InvoiceResult, rules *domain.RuleSet) {
	if result.IsValid && len(result.Violations) > 0 {
		log.Printf("validate.Validator: %s marked valid but carries %d violation(s)",
			result.SourceFilename, len(result.Violations))
	}
	if result.ExceedsLimit && rules.MaxAmount > 0 && result.TotalAmount <= rules.MaxAmount {
		log.Printf("validate.Validator: %s flagged exceeds_limit at %g against limit %g",
			result.SourceFilename, result.TotalAmount, rules.MaxAmount)
	}
}
