package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"brfiscal/internal/domain"
)

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a batch name for use in Content-Disposition and
// object keys. Replaces non-alphanumeric chars (except - _) with _, collapses
// consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "batch"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{csv|xlsx}. The
// extension of name, if any, is dropped first.
func BuildFilename(name string, format domain.ReportFormat, now time.Time) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), format)
}

// ContentType returns the MIME type of a report format.
func ContentType(format domain.ReportFormat) string {
	if format == domain.ReportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
