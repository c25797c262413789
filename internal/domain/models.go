package domain

import "time"

// IdentifierInput is a single value to check. UF is only used by state-scoped
// kinds (IE). Strict disables mask stripping for the kinds that support it.
type IdentifierInput struct {
	Kind   IdentifierKind `json:"kind"`
	Value  string         `json:"value"`
	UF     string         `json:"uf,omitempty"`
	Strict bool           `json:"strict,omitempty"`
}

// IdentifierResult is the outcome of checking one IdentifierInput.
type IdentifierResult struct {
	Kind      IdentifierKind `json:"kind"`
	Value     string         `json:"value"`
	UF        string         `json:"uf,omitempty"`
	Valid     bool           `json:"valid"`
	Formatted string         `json:"formatted,omitempty"`
	ErrorCode string         `json:"error_code,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// BatchSummary aggregates a list of IdentifierResults.
type BatchSummary struct {
	Total   int              `json:"total"`
	Valid   int              `json:"valid"`
	Invalid int              `json:"invalid"`
	Status  ValidationStatus `json:"status"`
}

// BatchResult holds per-row results in input order plus a summary.
type BatchResult struct {
	Results []IdentifierResult `json:"results"`
	Summary BatchSummary       `json:"summary"`
}

// Summarize computes the summary of a result set.
func Summarize(results []IdentifierResult) BatchSummary {
	s := BatchSummary{Total: len(results), Status: ValidationStatusValid}
	for i := range results {
		if results[i].Valid {
			s.Valid++
		} else {
			s.Invalid++
		}
	}
	if s.Invalid > 0 {
		s.Status = ValidationStatusInvalid
	}
	return s
}

// ReportArtifact describes a rendered batch report.
type ReportArtifact struct {
	Filename    string       `json:"filename"`
	Format      ReportFormat `json:"format"`
	ContentType string       `json:"content_type"`
	Size        int64        `json:"size"`
	Location    string       `json:"location,omitempty"`
	URL         string       `json:"url,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
