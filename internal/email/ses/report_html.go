package ses

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"invoiceagent/internal/domain"
)

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"inc":   func(i int) int { return i + 1 },
	"issues": func(v []string) string {
		if len(v) == 0 {
			return "None"
		}
		return strings.Join(v, ", ")
	},
}).Parse(`<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; }
  .summary { background-color: #f4f4f4; padding: 15px; margin: 20px 0; border-radius: 5px; }
  .metric { display: inline-block; margin: 10px 20px; }
  .metric-label { font-weight: bold; color: #666; }
  .metric-value { font-size: 24px; color: #4CAF50; }
  .violations { background-color: #ffebee; padding: 15px; margin: 10px 0; border-left: 4px solid #f44336; }
  .success { color: #4CAF50; }
  .error { color: #f44336; }
  table { width: 100%; border-collapse: collapse; margin: 20px 0; }
  th { background-color: #4CAF50; color: white; padding: 10px; text-align: left; }
  td { padding: 10px; border-bottom: 1px solid #ddd; }
</style>
</head>
<body>
  <div class="header">
    <h1>Invoice Processing Report</h1>
    <p>Generated on {{.GeneratedAt}}</p>
  </div>

  <div class="summary">
    <h2>Summary</h2>
    <div class="metric">
      <div class="metric-label">Total Processed</div>
      <div class="metric-value">{{.Report.TotalProcessed}}</div>
    </div>
    <div class="metric">
      <div class="metric-label">Valid Invoices</div>
      <div class="metric-value success">{{.Report.ValidInvoices}}</div>
    </div>
    <div class="metric">
      <div class="metric-label">Invalid Invoices</div>
      <div class="metric-value error">{{.Report.InvalidInvoices}}</div>
    </div>
    <div class="metric">
      <div class="metric-label">Accuracy</div>
      <div class="metric-value">{{.Report.AccuracyPercentage}}%</div>
    </div>
  </div>

  <div class="summary">
    <h3>Financial Summary</h3>
    <p><strong>Approved Amount:</strong> {{.Report.Currency}} {{money .Report.TotalApprovedAmount}}</p>
    <p><strong>Excluded Amount:</strong> {{.Report.Currency}} {{money .Report.TotalExcludedAmount}}</p>
    <p><strong>Maximum Limit:</strong> {{.Report.Currency}} {{money .Report.MaxLimit}}</p>
  </div>

{{if .Report.Violations}}
  <div class="violations">
    <h3>Violations Found</h3>
    <ul>
{{range .Report.Violations}}      <li>{{.}}</li>
{{end}}    </ul>
  </div>
{{end}}

  <h3>Detailed Results</h3>
  <table>
    <thead>
      <tr>
        <th>#</th><th>File</th><th>Total Amount</th><th>Currency</th><th>Date</th><th>Status</th><th>Issues</th>
      </tr>
    </thead>
    <tbody>
{{range $i, $r := .Report.DetailedResults}}      <tr>
        <td>{{inc $i}}</td>
        <td>{{$r.SourceFilename}}</td>
        <td>{{money $r.TotalAmount}}</td>
        <td>{{$r.Currency}}</td>
        <td>{{$r.Date}}</td>
        {{if $r.IsValid}}<td class="success">&#10003; Valid</td>{{else}}<td class="error">&#10007; Invalid</td>{{end}}
        <td>{{issues $r.Violations}}</td>
      </tr>
{{end}}    </tbody>
  </table>
</body>
</html>`))

// buildReportHTML renders the report email body.
func buildReportHTML(report *domain.ReportData) (string, error) {
	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, struct {
		Report      *domain.ReportData
		GeneratedAt string
	}{
		Report:      report,
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildReportText is the plain-text alternative part.
func buildReportText(report *domain.ReportData) string {
	var sb strings.Builder
	sb.WriteString("Invoice Processing Report\n\n")
	fmt.Fprintf(&sb, "Total processed: %d\n", report.TotalProcessed)
	fmt.Fprintf(&sb, "Valid invoices: %d\n", report.ValidInvoices)
	fmt.Fprintf(&sb, "Invalid invoices: %d\n", report.InvalidInvoices)
	fmt.Fprintf(&sb, "Accuracy: %.2f%%\n", report.AccuracyPercentage)
	fmt.Fprintf(&sb, "Approved amount: %s %.2f\n", report.Currency, report.TotalApprovedAmount)
	fmt.Fprintf(&sb, "Excluded amount: %s %.2f\n", report.Currency, report.TotalExcludedAmount)
	fmt.Fprintf(&sb, "Maximum limit: %s %.2f\n", report.Currency, report.MaxLimit)
	if len(report.Violations) > 0 {
		sb.WriteString("\nViolations:\n")
		for _, v := range report.Violations {
			fmt.Fprintf(&sb, "- %s\n", v)
		}
	}
	return sb.String()
}
