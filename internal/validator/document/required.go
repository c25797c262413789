package document

import (
	"context"
	"fmt"
	"strings"

	"brfiscal/internal/domain"
)

// requiredFieldValidator checks that a field is not blank.
type requiredFieldValidator struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	severity  domain.ValidationSeverity
	extract   func(*Document) string
}

func (v *requiredFieldValidator) RuleKey() string  { return v.ruleKey }
func (v *requiredFieldValidator) RuleName() string { return v.ruleName }
func (v *requiredFieldValidator) RuleType() domain.ValidationRuleType {
	return domain.ValidationRuleRequired
}
func (v *requiredFieldValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *requiredFieldValidator) Validate(_ context.Context, data *Document) []ValidationResult {
	val := strings.TrimSpace(v.extract(data))
	return []ValidationResult{{
		Passed:        val != "",
		FieldPath:     v.fieldPath,
		ExpectedValue: "non-empty value",
		ActualValue:   val,
		Message:       fieldMessage(val != "", v.ruleName, v.fieldPath),
	}}
}

func fieldMessage(passed bool, ruleName, fieldPath string) string {
	if passed {
		return fmt.Sprintf("%s: %s is present", ruleName, fieldPath)
	}
	return fmt.Sprintf("%s: %s is missing or empty", ruleName, fieldPath)
}

// RequiredFieldValidators returns all required field validators.
func RequiredFieldValidators() []*requiredFieldValidator {
	return []*requiredFieldValidator{
		{
			ruleKey: "req.access_key", ruleName: "Required: Access Key",
			fieldPath: "access_key", severity: domain.ValidationSeverityError,
			extract: func(d *Document) string { return d.AccessKey },
		},
		{
			ruleKey: "req.issuer.name", ruleName: "Required: Issuer Name",
			fieldPath: "issuer.name", severity: domain.ValidationSeverityWarning,
			extract: func(d *Document) string { return d.Issuer.Name },
		},
		{
			ruleKey: "req.issuer.cnpj_cpf", ruleName: "Required: Issuer CNPJ/CPF",
			fieldPath: "issuer.cnpj_cpf", severity: domain.ValidationSeverityError,
			extract: func(d *Document) string { return d.Issuer.CNPJCPF },
		},
		{
			ruleKey: "req.issuer.uf", ruleName: "Required: Issuer UF",
			fieldPath: "issuer.address.uf", severity: domain.ValidationSeverityError,
			extract: func(d *Document) string { return d.Issuer.Address.UF },
		},
		{
			ruleKey: "req.issuer.ie", ruleName: "Required: Issuer IE",
			fieldPath: "issuer.ie", severity: domain.ValidationSeverityWarning,
			extract: func(d *Document) string { return d.Issuer.IE },
		},
	}
}
