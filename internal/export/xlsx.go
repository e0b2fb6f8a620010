package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"invoiceagent/internal/domain"
)

// WriteXLSX renders the report as a two-sheet workbook: batch summary plus
// per-invoice details, in report order.
func WriteXLSX(w io.Writer, report *domain.ReportData, generatedAt string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeSummarySheet(f, report, generatedAt); err != nil {
		return err
	}
	if err := writeDetailsSheet(f, report); err != nil {
		return err
	}

	// Drop excelize's default sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, report *domain.ReportData, generatedAt string) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Invoice Processing Report", ""},
		{"Generated", generatedAt},
		{"", ""},
		{"Total Processed", report.TotalProcessed},
		{"Valid Invoices", report.ValidInvoices},
		{"Invalid Invoices", report.InvalidInvoices},
		{"Accuracy %", report.AccuracyPercentage},
		{"Approved Amount", report.TotalApprovedAmount},
		{"Excluded Amount", report.TotalExcludedAmount},
		{"Currency", report.Currency},
		{"Maximum Limit", report.MaxLimit},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	violRow := len(rows) + 2
	viol := []interface{}{"Violations", len(report.Violations)}
	cell, err := excelize.CoordinatesToCellName(1, violRow)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &viol); err != nil {
		return err
	}
	for i, v := range report.Violations {
		cell, err := excelize.CoordinatesToCellName(2, violRow+1+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeDetailsSheet(f *excelize.File, report *domain.ReportData) error {
	const sheet = "Details"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i := range report.DetailedResults {
		r := &report.DetailedResults[i]
		row := resultToRow(i+1, r)
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		// Numeric columns stay numeric in the workbook.
		cells[0] = i + 1
		cells[5] = r.TotalAmount
		addr := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return err
		}
	}
	return nil
}
