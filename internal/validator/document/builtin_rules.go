package document

import (
	"context"

	"brfiscal/internal/domain"
)

// BuiltinValidator wraps a validator function and its metadata for the registry.
type BuiltinValidator struct {
	key      string
	name     string
	ruleType domain.ValidationRuleType
	sev      domain.ValidationSeverity
	fn       func(context.Context, *Document) []ValidationResult
}

func (b *BuiltinValidator) Validate(ctx context.Context, data *Document) []ValidationResult {
	return b.fn(ctx, data)
}
func (b *BuiltinValidator) RuleKey() string                     { return b.key }
func (b *BuiltinValidator) RuleName() string                    { return b.name }
func (b *BuiltinValidator) RuleType() domain.ValidationRuleType { return b.ruleType }
func (b *BuiltinValidator) Severity() domain.ValidationSeverity { return b.sev }

type rule interface {
	Validate(context.Context, *Document) []ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}

func wrap[R rule](rules []R) []*BuiltinValidator {
	out := make([]*BuiltinValidator, 0, len(rules))
	for _, v := range rules {
		out = append(out, &BuiltinValidator{
			key: v.RuleKey(), name: v.RuleName(),
			ruleType: v.RuleType(), sev: v.Severity(),
			fn: v.Validate,
		})
	}
	return out
}

// AllBuiltinValidators returns every built-in document rule.
func AllBuiltinValidators() []*BuiltinValidator {
	var all []*BuiltinValidator
	all = append(all, wrap(RequiredFieldValidators())...)
	all = append(all, wrap(FormatValidators())...)
	all = append(all, wrap(CrossFieldValidators())...)
	all = append(all, wrap(MathValidators())...)
	return all
}
