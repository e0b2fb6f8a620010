package validate

import (
	"fmt"
	"strings"

	"invoiceagent/internal/domain"
)

const systemInstruction = "You are an expert invoice analyzer. Always respond with valid JSON."

const resultSchema = `{
    "supplier_name": string,
    "invoice_number": string,
    "items": [list of items with description, amount, category],
    "total_amount": number,
    "currency": string,
    "date": string,
    "is_valid": boolean,
    "violations": [list of rule violations],
    "non_compliant_items": [items that don't match allowed categories],
    "exceeds_limit": boolean
}`

func ruleContext(rules *domain.RuleSet) string {
	return fmt.Sprintf(`Then validate against these rules:
- Allowed categories: [%s]
- Maximum amount: %g %s`,
		strings.Join(rules.AllowedCategories, ", "), rules.MaxAmount, rules.Currency)
}

// buildTextPrompt asks for extraction plus rule validation over invoice text
// (PDF or XML rendering).
func buildTextPrompt(text string, rules *domain.RuleSet) string {
	return fmt.Sprintf(`Analyze the following invoice and extract:
1. Supplier/vendor name
2. Invoice number
3. Invoice date
4. All line items with descriptions and amounts
5. Total amount
6. Currency

%s

Invoice content:
%s

Respond in JSON format with:
%s`, ruleContext(rules), text, resultSchema)
}

// buildImagePrompt is the vision variant; the image travels alongside as an
// attachment.
func buildImagePrompt(rules *domain.RuleSet) string {
	return fmt.Sprintf(`Analyze this invoice image and extract:
1. Supplier/vendor name
2. Invoice number
3. Invoice date
4. All line items with descriptions and amounts
5. Total amount
6. Currency

%s

Respond in JSON format with:
%s`, ruleContext(rules), resultSchema)
}
