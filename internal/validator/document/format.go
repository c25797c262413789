package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brfiscal/internal/domain"
	"brfiscal/internal/edoc"
	"brfiscal/internal/fiscal"
	"brfiscal/internal/fiscal/ie"
	"brfiscal/internal/gs1"
	"brfiscal/internal/uf"
)

// formatValidator runs an identifier check against one field.
type formatValidator struct {
	ruleKey  string
	ruleName string
	ruleType domain.ValidationRuleType
	severity domain.ValidationSeverity
	validate func(*Document) []ValidationResult
}

func (v *formatValidator) RuleKey() string                     { return v.ruleKey }
func (v *formatValidator) RuleName() string                    { return v.ruleName }
func (v *formatValidator) RuleType() domain.ValidationRuleType { return v.ruleType }
func (v *formatValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *formatValidator) Validate(_ context.Context, data *Document) []ValidationResult {
	return v.validate(data)
}

// identifierCheck turns a Check* error into a result. Empty values pass; the
// required-field rules report them.
func identifierCheck(fieldPath, value, expected, ruleName string, check func(string) error) ValidationResult {
	if strings.TrimSpace(value) == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: expected, ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping check", ruleName),
		}
	}
	err := check(value)
	msg := fmt.Sprintf("%s: %s is valid", ruleName, fieldPath)
	if err != nil {
		msg = fmt.Sprintf("%s: %s %s", ruleName, fieldPath, describe(err))
	}
	return ValidationResult{
		Passed: err == nil, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: value, Message: msg,
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrLengthMismatch):
		return "has the wrong number of digits"
	case errors.Is(err, domain.ErrChecksumMismatch):
		return "has an invalid check digit"
	case errors.Is(err, domain.ErrUnknownState):
		return "refers to an unknown state"
	case errors.Is(err, domain.ErrUnknownDocumentModel):
		return "has an unknown document model"
	case errors.Is(err, domain.ErrInvalidIssuerID):
		return "carries an invalid issuer CNPJ/CPF"
	case errors.Is(err, domain.ErrInvalidEmissionDate):
		return "has an invalid emission date"
	case errors.Is(err, domain.ErrMalformedKey):
		return "is not a 44-digit access key"
	default:
		return "is malformed"
	}
}

func checkUF(value string) error {
	if !uf.IsSigla(value) {
		return fmt.Errorf("UF %q: %w", value, domain.ErrUnknownState)
	}
	return nil
}

func checkAccessKey(value string) error {
	_, err := edoc.ParseAndValidate(value)
	return err
}

// checkIE skips exempt parties and needs the party's state.
func checkIE(state string) func(string) error {
	return func(value string) error {
		if strings.EqualFold(strings.TrimSpace(value), ExemptIE) {
			return nil
		}
		return ie.Check(state, value)
	}
}

func checkGTIN(value string) error {
	if strings.EqualFold(strings.TrimSpace(value), NoGTINText) {
		return nil
	}
	return gs1.CheckGTIN(value)
}

type partyField struct {
	name  string
	party func(*Document) *Party
}

var parties = []partyField{
	{"issuer", func(d *Document) *Party { return &d.Issuer }},
	{"recipient", func(d *Document) *Party { return &d.Recipient }},
}

func partyTitle(name string) string {
	return strings.ToUpper(name[:1]) + name[1:]
}

// FormatValidators returns the identifier rules for both parties, the access
// key and the item barcodes.
func FormatValidators() []*formatValidator {
	var out []*formatValidator
	for _, p := range parties {
		title := partyTitle(p.name)
		idSeverity := domain.ValidationSeverityError
		if p.name == "recipient" {
			idSeverity = domain.ValidationSeverityWarning
		}
		out = append(out,
			&formatValidator{
				ruleKey: "fmt." + p.name + ".cnpj_cpf", ruleName: "Format: " + title + " CNPJ/CPF",
				ruleType: domain.ValidationRuleChecksum, severity: domain.ValidationSeverityError,
				validate: func(d *Document) []ValidationResult {
					return []ValidationResult{identifierCheck(p.name+".cnpj_cpf", p.party(d).CNPJCPF,
						"CNPJ (14) or CPF (11) with valid check digits", "Format: "+title+" CNPJ/CPF", fiscal.CheckCNPJOrCPF)}
				},
			},
			&formatValidator{
				ruleKey: "fmt." + p.name + ".ie", ruleName: "Format: " + title + " IE",
				ruleType: domain.ValidationRuleChecksum, severity: idSeverity,
				validate: func(d *Document) []ValidationResult {
					party := p.party(d)
					return []ValidationResult{identifierCheck(p.name+".ie", party.IE,
						"state registration valid for "+strings.ToUpper(party.Address.UF), "Format: "+title+" IE", checkIE(party.Address.UF))}
				},
			},
			&formatValidator{
				ruleKey: "fmt." + p.name + ".uf", ruleName: "Format: " + title + " UF",
				ruleType: domain.ValidationRuleFormat, severity: domain.ValidationSeverityError,
				validate: func(d *Document) []ValidationResult {
					return []ValidationResult{identifierCheck(p.name+".address.uf", p.party(d).Address.UF,
						"state abbreviation", "Format: "+title+" UF", checkUF)}
				},
			},
			&formatValidator{
				ruleKey: "fmt." + p.name + ".cep", ruleName: "Format: " + title + " CEP",
				ruleType: domain.ValidationRuleFormat, severity: domain.ValidationSeverityWarning,
				validate: func(d *Document) []ValidationResult {
					return []ValidationResult{identifierCheck(p.name+".address.cep", p.party(d).Address.CEP,
						"8-digit CEP", "Format: "+title+" CEP", fiscal.CheckCEP)}
				},
			},
			&formatValidator{
				ruleKey: "fmt." + p.name + ".municipality", ruleName: "Format: " + title + " Municipality Code",
				ruleType: domain.ValidationRuleChecksum, severity: idSeverity,
				validate: func(d *Document) []ValidationResult {
					return []ValidationResult{identifierCheck(p.name+".address.municipality_code", p.party(d).Address.MunicipalityCode,
						"7-digit IBGE municipality code", "Format: "+title+" Municipality Code", fiscal.CheckMunicipality)}
				},
			},
		)
	}

	return append(out,
		&formatValidator{
			ruleKey: "fmt.recipient.suframa", ruleName: "Format: Recipient SUFRAMA",
			ruleType: domain.ValidationRuleChecksum, severity: domain.ValidationSeverityWarning,
			validate: func(d *Document) []ValidationResult {
				return []ValidationResult{identifierCheck("recipient.suframa", d.Recipient.SUFRAMA,
					"9-digit SUFRAMA registration", "Format: Recipient SUFRAMA", fiscal.CheckSUFRAMA)}
			},
		},
		&formatValidator{
			ruleKey: "fmt.access_key", ruleName: "Format: Access Key",
			ruleType: domain.ValidationRuleChecksum, severity: domain.ValidationSeverityError,
			validate: func(d *Document) []ValidationResult {
				return []ValidationResult{identifierCheck("access_key", d.AccessKey,
					"44-digit access key", "Format: Access Key", checkAccessKey)}
			},
		},
		&formatValidator{
			ruleKey: "fmt.items.gtin", ruleName: "Format: Item GTIN",
			ruleType: domain.ValidationRuleChecksum, severity: domain.ValidationSeverityWarning,
			validate: func(d *Document) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.Items))
				for i := range d.Items {
					fp := fmt.Sprintf("items[%d].gtin", i)
					results = append(results, identifierCheck(fp, d.Items[i].GTIN, "GTIN-8/12/13/14", "Format: Item GTIN", checkGTIN))
				}
				return results
			},
		},
	)
}
