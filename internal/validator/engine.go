package validator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"brfiscal/internal/domain"
	"brfiscal/internal/validator/document"
)

// Engine runs registered rules against a document and aggregates the outcome.
type Engine struct {
	registry *Registry
	log      zerolog.Logger
	now      func() time.Time
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry, log zerolog.Logger) *Engine {
	return &Engine{
		registry: registry,
		log:      log.With().Str("component", "validator.Engine").Logger(),
		now:      time.Now,
	}
}

// Rules lists the registered validators in rule-key order.
func (e *Engine) Rules() []Validator {
	return e.registry.All()
}

// Validate runs the rules named by keys, or every registered rule when keys
// is empty. Unknown keys fail with domain.ErrInvalidInput.
func (e *Engine) Validate(ctx context.Context, doc *document.Document, keys ...string) (*Report, error) {
	rules, err := e.selectRules(keys)
	if err != nil {
		return nil, err
	}

	var results []ValidationResultItem
	hasError := false
	hasWarning := false

	for _, v := range rules {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("validating document: %w", err)
		}
		for _, vr := range v.Validate(ctx, doc) {
			results = append(results, ValidationResultItem{
				RuleKey:       v.RuleKey(),
				RuleName:      v.RuleName(),
				RuleType:      v.RuleType(),
				Severity:      v.Severity(),
				Passed:        vr.Passed,
				FieldPath:     vr.FieldPath,
				ExpectedValue: vr.ExpectedValue,
				ActualValue:   vr.ActualValue,
				Message:       vr.Message,
			})
			if !vr.Passed {
				if v.Severity() == domain.ValidationSeverityError {
					hasError = true
				} else {
					hasWarning = true
				}
			}
		}
	}

	var status domain.ValidationStatus
	switch {
	case hasError:
		status = domain.ValidationStatusInvalid
	case hasWarning:
		status = domain.ValidationStatusWarning
	default:
		status = domain.ValidationStatusValid
	}

	report := &Report{
		ValidationStatus: status,
		Summary:          summarize(results),
		Results:          results,
		FieldStatuses:    ComputeFieldStatuses(results),
		ValidatedAt:      e.now().UTC(),
	}
	if report.Results == nil {
		report.Results = []ValidationResultItem{}
	}

	e.log.Debug().
		Str("access_key", doc.AccessKey).
		Str("status", string(status)).
		Int("rules", len(rules)).
		Int("results", len(results)).
		Msg("document validated")
	return report, nil
}

func (e *Engine) selectRules(keys []string) ([]Validator, error) {
	if len(keys) == 0 {
		return e.registry.All(), nil
	}
	rules := make([]Validator, 0, len(keys))
	for _, k := range keys {
		v := e.registry.Get(k)
		if v == nil {
			return nil, fmt.Errorf("unknown rule %q: %w", k, domain.ErrInvalidInput)
		}
		rules = append(rules, v)
	}
	return rules, nil
}

func summarize(results []ValidationResultItem) ValidationSummary {
	s := ValidationSummary{Total: len(results)}
	for i := range results {
		switch {
		case results[i].Passed:
			s.Passed++
		case results[i].Severity == domain.ValidationSeverityError:
			s.Errors++
		default:
			s.Warnings++
		}
	}
	return s
}

// Report is the outcome of validating one document.
type Report struct {
	ValidationStatus domain.ValidationStatus `json:"validation_status"`
	Summary          ValidationSummary       `json:"summary"`
	Results          []ValidationResultItem  `json:"results"`
	FieldStatuses    map[string]*FieldStatus `json:"field_statuses"`
	ValidatedAt      time.Time               `json:"validated_at"`
}

// ValidationSummary holds aggregate counts of validation results.
type ValidationSummary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// ValidationResultItem is a single validation result in the API response.
type ValidationResultItem struct {
	RuleKey       string                    `json:"rule_key"`
	RuleName      string                    `json:"rule_name"`
	RuleType      domain.ValidationRuleType `json:"rule_type"`
	Severity      domain.ValidationSeverity `json:"severity"`
	Passed        bool                      `json:"passed"`
	FieldPath     string                    `json:"field_path"`
	ExpectedValue string                    `json:"expected_value"`
	ActualValue   string                    `json:"actual_value"`
	Message       string                    `json:"message"`
}
