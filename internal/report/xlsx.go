package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"

	"brfiscal/internal/domain"
	"brfiscal/internal/numfmt"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// XLSXOptions controls workbook rendering.
type XLSXOptions struct {
	// Locale formats the numbers on the summary sheet.
	Locale language.Tag
}

// WriteXLSX renders a workbook with a results sheet and a summary sheet.
func WriteXLSX(w io.Writer, result *domain.BatchResult, opts XLSXOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(resultsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i := range result.Results {
		row := resultToRow(i+1, &result.Results[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(resultsSheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(resultsSheet, "D", "E", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(resultsSheet, "H", "H", 48); err != nil {
		return err
	}

	if err := writeSummary(f, result.Summary, opts.Locale, bold); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, s domain.BatchSummary, tag language.Tag, bold int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Status", string(s.Status)},
		{"Total", s.Total},
		{"Valid", s.Valid},
		{"Invalid", s.Invalid},
		{"Valid %", ValidShare(s, tag)},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	return f.SetColStyle(summarySheet, "A", bold)
}

// ValidShare renders the percentage of valid rows with two decimals in the
// given locale, e.g. "66,67" for pt-BR.
func ValidShare(s domain.BatchSummary, tag language.Tag) string {
	pct := decimal.New(0, -2)
	if s.Total > 0 {
		pct = decimal.NewFromInt(int64(s.Valid)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(s.Total))).
			Round(2)
	}
	return numfmt.FormatDecimal(pct, false, tag)
}
