package document

import (
	"context"
	"fmt"
	"strings"

	"brfiscal/internal/digits"
	"brfiscal/internal/domain"
	"brfiscal/internal/edoc"
	"brfiscal/internal/fiscal"
	"brfiscal/internal/uf"
)

// crossFieldValidator checks consistency between related fields.
type crossFieldValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*Document) []ValidationResult
}

func (v *crossFieldValidator) RuleKey() string  { return v.ruleKey }
func (v *crossFieldValidator) RuleName() string { return v.ruleName }
func (v *crossFieldValidator) RuleType() domain.ValidationRuleType {
	return domain.ValidationRuleCrossField
}
func (v *crossFieldValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *crossFieldValidator) Validate(_ context.Context, data *Document) []ValidationResult {
	return v.validate(data)
}

func skipResult(fieldPath, ruleName, reason string) ValidationResult {
	return ValidationResult{
		Passed: true, FieldPath: fieldPath,
		Message: fmt.Sprintf("%s: %s, skipping", ruleName, reason),
	}
}

func matchResult(passed bool, fieldPath, expected, actual, ruleName string) ValidationResult {
	msg := fmt.Sprintf("%s: %s is consistent", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s mismatch (expected %s, got %s)", ruleName, fieldPath, expected, actual)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: actual, Message: msg,
	}
}

// parsedKey returns the decoded key, or nil when it is absent or malformed;
// fmt.access_key reports those cases.
func parsedKey(d *Document) *edoc.Key {
	if strings.TrimSpace(d.AccessKey) == "" {
		return nil
	}
	k, err := edoc.Parse(d.AccessKey)
	if err != nil {
		return nil
	}
	return k
}

// keyIssuer renders a party CNPJ/CPF the way the key's issuer slot holds it.
func keyIssuer(k *edoc.Key, cnpjCPF string) string {
	if k.IssuerIsCPF() {
		return "000" + digits.OnlyDigits(cnpjCPF)
	}
	return digits.PadLeft(fiscal.CleanCNPJ(cnpjCPF), 14, '0')
}

func municipalityMatchesUF(fieldPath, ruleName string, a Address) ValidationResult {
	code := digits.OnlyDigits(a.MunicipalityCode)
	if code == "" || a.UF == "" {
		return skipResult(fieldPath, ruleName, "municipality code or UF missing")
	}
	if _, exception := fiscal.MunicipalityException(code); exception {
		return skipResult(fieldPath, ruleName, "special municipality code")
	}
	state, err := uf.BySigla(a.UF)
	if err != nil || len(code) < 2 {
		return skipResult(fieldPath, ruleName, "UF or municipality code not resolvable")
	}
	expected := fmt.Sprintf("%02d", state.IBGE)
	return matchResult(code[:2] == expected, fieldPath, expected+"xxxxx", code, ruleName)
}

// CrossFieldValidators returns all cross-field validators.
func CrossFieldValidators() []*crossFieldValidator {
	return []*crossFieldValidator{
		{
			ruleKey: "xf.key.issuer", ruleName: "Cross-field: Key Issuer",
			severity: domain.ValidationSeverityError,
			validate: func(d *Document) []ValidationResult {
				const name = "Cross-field: Key Issuer"
				k := parsedKey(d)
				if k == nil || d.Issuer.CNPJCPF == "" {
					return []ValidationResult{skipResult("access_key", name, "access key or issuer CNPJ/CPF missing")}
				}
				expected := keyIssuer(k, d.Issuer.CNPJCPF)
				return []ValidationResult{matchResult(k.IssuerID() == expected, "access_key", expected, k.IssuerID(), name)}
			},
		},
		{
			ruleKey: "xf.key.uf", ruleName: "Cross-field: Key UF",
			severity: domain.ValidationSeverityError,
			validate: func(d *Document) []ValidationResult {
				const name = "Cross-field: Key UF"
				k := parsedKey(d)
				if k == nil || d.Issuer.Address.UF == "" {
					return []ValidationResult{skipResult("access_key", name, "access key or issuer UF missing")}
				}
				state, err := uf.BySigla(d.Issuer.Address.UF)
				if err != nil {
					return []ValidationResult{skipResult("access_key", name, "issuer UF unknown")}
				}
				expected := fmt.Sprintf("%02d", state.IBGE)
				actual := fmt.Sprintf("%02d", k.UFCode())
				return []ValidationResult{matchResult(expected == actual, "access_key", expected, actual, name)}
			},
		},
		{
			ruleKey: "xf.key.document", ruleName: "Cross-field: Key Model/Series/Number",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *Document) []ValidationResult {
				const name = "Cross-field: Key Model/Series/Number"
				k := parsedKey(d)
				if k == nil {
					return []ValidationResult{skipResult("access_key", name, "access key missing")}
				}
				var results []ValidationResult
				pairs := []struct {
					path, doc, key string
				}{
					{"model", d.Model, k.Model()},
					{"series", d.Series, k.Series()},
					{"number", d.Number, k.Number()},
				}
				for _, p := range pairs {
					if strings.TrimSpace(p.doc) == "" {
						continue
					}
					got := digits.PadLeft(digits.OnlyDigits(p.doc), len(p.key), '0')
					results = append(results, matchResult(got == p.key, p.path, p.key, got, name))
				}
				if len(results) == 0 {
					return []ValidationResult{skipResult("access_key", name, "model, series and number missing")}
				}
				return results
			},
		},
		{
			ruleKey: "xf.issuer.municipality_uf", ruleName: "Cross-field: Issuer Municipality UF",
			severity: domain.ValidationSeverityError,
			validate: func(d *Document) []ValidationResult {
				return []ValidationResult{municipalityMatchesUF("issuer.address.municipality_code", "Cross-field: Issuer Municipality UF", d.Issuer.Address)}
			},
		},
		{
			ruleKey: "xf.recipient.municipality_uf", ruleName: "Cross-field: Recipient Municipality UF",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *Document) []ValidationResult {
				return []ValidationResult{municipalityMatchesUF("recipient.address.municipality_code", "Cross-field: Recipient Municipality UF", d.Recipient.Address)}
			},
		},
	}
}
