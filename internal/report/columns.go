package report

import (
	"strconv"

	"brfiscal/internal/domain"
)

// columns defines the result header row shared by the CSV and XLSX reports.
var columns = []string{
	"Row",
	"Kind",
	"UF",
	"Value",
	"Formatted",
	"Valid",
	"Error Code",
	"Message",
}

// Columns returns a copy of the report header row.
func Columns() []string {
	return append([]string(nil), columns...)
}

// resultToRow converts one result to a report row. row is 1-based.
func resultToRow(row int, r *domain.IdentifierResult) []string {
	return []string{
		strconv.Itoa(row),
		string(r.Kind),
		r.UF,
		r.Value,
		r.Formatted,
		formatBool(r.Valid),
		r.ErrorCode,
		r.Message,
	}
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
