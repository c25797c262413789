package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"brfiscal/internal/domain"
)

// ReadOptions supplies values for columns a batch file leaves out.
type ReadOptions struct {
	DefaultKind domain.IdentifierKind
	DefaultUF   string
	MaxRows     int
}

// header aliases, matched case-insensitively.
var headerAliases = map[string]string{
	"kind":   "kind",
	"tipo":   "kind",
	"value":  "value",
	"valor":  "value",
	"uf":     "uf",
	"state":  "uf",
	"strict": "strict",
}

// FormatFromFilename picks the report format from a file extension.
func FormatFromFilename(name string) (domain.ReportFormat, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return domain.ReportFormatCSV, nil
	case ".xlsx":
		return domain.ReportFormatXLSX, nil
	default:
		return "", fmt.Errorf("%q: %w", name, domain.ErrUnsupportedFileType)
	}
}

// ReadBatch reads identifier rows from a CSV or XLSX file. The first row is a
// header naming the kind, value, uf and strict columns; only value is
// required when opts.DefaultKind is set. Blank rows are skipped.
func ReadBatch(r io.Reader, format domain.ReportFormat, opts ReadOptions) ([]domain.IdentifierInput, error) {
	var rows [][]string
	var err error
	switch format {
	case domain.ReportFormatCSV:
		rows, err = readCSV(r)
	case domain.ReportFormatXLSX:
		rows, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("batch format %q: %w", format, domain.ErrUnsupportedFileType)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("batch file is empty: %w", domain.ErrInvalidInput)
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, string(BOM))))
		if col, ok := headerAliases[name]; ok {
			if _, dup := idx[col]; !dup {
				idx[col] = i
			}
		}
	}
	if _, ok := idx["value"]; !ok {
		return nil, fmt.Errorf("batch header has no value column: %w", domain.ErrInvalidInput)
	}
	if _, ok := idx["kind"]; !ok && opts.DefaultKind == "" {
		return nil, fmt.Errorf("batch header has no kind column and no default kind: %w", domain.ErrInvalidInput)
	}

	inputs := make([]domain.IdentifierInput, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		if opts.MaxRows > 0 && len(inputs) == opts.MaxRows {
			return nil, fmt.Errorf("more than %d rows: %w", opts.MaxRows, domain.ErrBatchTooLarge)
		}
		in := domain.IdentifierInput{
			Kind:  domain.IdentifierKind(strings.ToLower(cell(row, idx, "kind"))),
			Value: cell(row, idx, "value"),
			UF:    strings.ToUpper(cell(row, idx, "uf")),
		}
		if in.Kind == "" {
			in.Kind = opts.DefaultKind
		}
		if in.UF == "" {
			in.UF = opts.DefaultUF
		}
		if s := cell(row, idx, "strict"); s != "" {
			strict, err := parseBool(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: strict %q: %w", n+2, s, domain.ErrInvalidInput)
			}
			in.Strict = strict
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading batch: %w", err)
	}
	data = bytes.TrimPrefix(data, BOM)
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if sniffSemicolon(data) {
		cr.Comma = ';'
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %v: %w", err, domain.ErrInvalidInput)
	}
	return rows, nil
}

// sniffSemicolon reports whether the header line is semicolon separated, as
// spreadsheets in pt-BR locales export it.
func sniffSemicolon(data []byte) bool {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	return bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(","))
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %v: %w", err, domain.ErrInvalidInput)
	}
	defer f.Close()
	return firstSheetRows(f)
}

type sheetSource interface {
	GetSheetList() []string
	GetRows(sheet string, opts ...excelize.Options) ([][]string, error)
}

func firstSheetRows(src sheetSource) ([][]string, error) {
	sheets := src.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %w", domain.ErrInvalidInput)
	}
	rows, err := src.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %v: %w", sheets[0], err, domain.ErrInvalidInput)
	}
	return rows, nil
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "sim", "s", "yes", "y":
		return true, nil
	case "nao", "não", "n", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}
