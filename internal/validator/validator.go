package validator

import (
	"context"

	"brfiscal/internal/domain"
	"brfiscal/internal/validator/document"
)

// Validator is the interface for a single built-in validation rule.
type Validator interface {
	Validate(ctx context.Context, data *document.Document) []document.ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}
