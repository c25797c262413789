package report

import (
	"fmt"
	"io"

	"golang.org/x/text/language"

	"brfiscal/internal/domain"
)

// Render writes a batch result in the given format. CSV output starts with a
// UTF-8 BOM.
func Render(w io.Writer, format domain.ReportFormat, result *domain.BatchResult, locale language.Tag) error {
	switch format {
	case domain.ReportFormatCSV:
		if _, err := w.Write(BOM); err != nil {
			return err
		}
		cw := NewWriter(w)
		if err := cw.WriteHeader(); err != nil {
			return err
		}
		if err := cw.WriteResults(result.Results); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	case domain.ReportFormatXLSX:
		return WriteXLSX(w, result, XLSXOptions{Locale: locale})
	default:
		return fmt.Errorf("report format %q: %w", format, domain.ErrUnsupportedFileType)
	}
}
