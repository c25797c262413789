package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"brfiscal/internal/domain"
	"brfiscal/internal/metrics"
	"brfiscal/internal/validator"
	"brfiscal/internal/validator/document"
)

// RuleInfo describes one registered document rule.
type RuleInfo struct {
	Key      string                    `json:"key"`
	Name     string                    `json:"name"`
	Type     domain.ValidationRuleType `json:"type"`
	Severity domain.ValidationSeverity `json:"severity"`
}

// DocumentService runs the rule engine on fiscal documents.
type DocumentService interface {
	Validate(ctx context.Context, doc *document.Document, rules []string) (*validator.Report, error)
	Rules(ctx context.Context) []RuleInfo
}

type documentService struct {
	engine  *validator.Engine
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(engine *validator.Engine, m *metrics.Metrics, log zerolog.Logger) DocumentService {
	return &documentService{
		engine:  engine,
		metrics: m,
		log:     log.With().Str("component", "service.DocumentService").Logger(),
	}
}

func (s *documentService) Validate(ctx context.Context, doc *document.Document, rules []string) (*validator.Report, error) {
	start := time.Now()
	report, err := s.engine.Validate(ctx, doc, rules...)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDocument(string(report.ValidationStatus), start)
	if report.ValidationStatus == domain.ValidationStatusInvalid {
		s.log.Info().
			Str("access_key", doc.AccessKey).
			Int("errors", report.Summary.Errors).
			Msg("document failed validation")
	}
	return report, nil
}

func (s *documentService) Rules(_ context.Context) []RuleInfo {
	rules := s.engine.Rules()
	out := make([]RuleInfo, 0, len(rules))
	for _, r := range rules {
		out = append(out, RuleInfo{Key: r.RuleKey(), Name: r.RuleName(), Type: r.RuleType(), Severity: r.Severity()})
	}
	return out
}
