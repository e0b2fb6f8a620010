// Package policy turns free-text spending limitations into a structured
// RuleSet via the document-understanding capability.
package policy

import (
	"context"
	"fmt"
	"log"

	"invoiceagent/internal/domain"
	"invoiceagent/internal/llm"
	"invoiceagent/internal/port"
)

const systemInstruction = "You are a helpful assistant that parses invoice validation rules. Always respond with valid JSON."

// Interpreter extracts a RuleSet from user-written limitation text.
type Interpreter struct {
	completer port.Completer
}

// NewInterpreter creates an Interpreter backed by the given completer.
func NewInterpreter(completer port.Completer) *Interpreter {
	return &Interpreter{completer: completer}
}

// Interpret parses the limitation text into a RuleSet. It never fails: any
// capability or decoding error degrades to the conservative default rules.
func (i *Interpreter) Interpret(ctx context.Context, limitations string) *domain.RuleSet {
	raw, err := i.completer.Complete(ctx, port.CompletionRequest{
		System:    systemInstruction,
		Prompt:    buildRulesPrompt(limitations),
		ForceJSON: true,
	})
	if err != nil {
		log.Printf("policy.Interpreter: capability call failed, using default rules: %v", err)
		return domain.DefaultRuleSet()
	}

	var rules domain.RuleSet
	if err := llm.DecodeObject(raw, &rules); err != nil {
		log.Printf("policy.Interpreter: undecodable reply, using default rules: %v", err)
		return domain.DefaultRuleSet()
	}

	if rules.Currency == "" {
		rules.Currency = domain.DefaultRuleSet().Currency
	}
	return &rules
}

func buildRulesPrompt(limitations string) string {
	return fmt.Sprintf(`Parse the following invoice validation rules and extract:
1. Allowed categories (e.g., food items only)
2. Maximum amount limit
3. Currency (CRC, USD, etc.)
4. Any other restrictions

Rules: %s

Respond in JSON format with keys: allowed_categories, max_amount, currency, other_restrictions`, limitations)
}
