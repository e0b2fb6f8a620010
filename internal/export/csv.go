// Package export renders a compliance report as downloadable CSV or XLSX.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"invoiceagent/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row for per-invoice detail rows.
var columns = []string{
	"#",
	"Filename",
	"Supplier",
	"Invoice Number",
	"Date",
	"Total Amount",
	"Currency",
	"Status",
	"Exceeds Limit",
	"Violations",
}

// CSVWriter wraps csv.Writer for exporting a report's detailed results.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the detail header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteReport converts every detailed result to a CSV row and writes them in
// report order.
func (w *CSVWriter) WriteReport(report *domain.ReportData) error {
	for i := range report.DetailedResults {
		row := resultToRow(i+1, &report.DetailedResults[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func resultToRow(idx int, r *domain.InvoiceResult) []string {
	return []string{
		strconv.Itoa(idx),
		r.SourceFilename,
		r.SupplierName,
		r.InvoiceNumber,
		r.Date,
		formatMoney(r.TotalAmount),
		r.Currency,
		formatStatus(r.IsValid),
		formatBool(r.ExceedsLimit),
		strings.Join(r.Violations, "; "),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatStatus(valid bool) string {
	if valid {
		return "Valid"
	}
	return "Invalid"
}
