package document

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"brfiscal/internal/domain"
	"brfiscal/internal/numfmt"
)

// mathTolerance absorbs per-line rounding to centavos.
var mathTolerance = decimal.RequireFromString("0.01")

// mathValidator checks arithmetic relationships between fields.
type mathValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*Document) []ValidationResult
}

func (v *mathValidator) RuleKey() string                     { return v.ruleKey }
func (v *mathValidator) RuleName() string                    { return v.ruleName }
func (v *mathValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleMath }
func (v *mathValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *mathValidator) Validate(_ context.Context, data *Document) []ValidationResult {
	return v.validate(data)
}

func approxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(mathTolerance)
}

func mathResult(passed bool, fieldPath string, expected, actual decimal.Decimal, ruleName string) ValidationResult {
	exp, act := expected.StringFixed(2), actual.StringFixed(2)
	msg := fmt.Sprintf("%s: %s calculation matches", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s calculation mismatch (expected %s, got %s)", ruleName, fieldPath, exp, act)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: exp, ActualValue: act, Message: msg,
	}
}

func itemsTotal(d *Document) decimal.Decimal {
	sum := decimal.Zero
	for i := range d.Items {
		sum = sum.Add(d.Items[i].Total)
	}
	return sum
}

// MathValidators returns all arithmetic validators.
func MathValidators() []*mathValidator {
	return []*mathValidator{
		{
			ruleKey: "math.items.total", ruleName: "Math: Item Total",
			severity: domain.ValidationSeverityError,
			validate: func(d *Document) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.Items))
				for i := range d.Items {
					item := &d.Items[i]
					fp := fmt.Sprintf("items[%d].total", i)
					expected := item.Quantity.Mul(item.UnitPrice)
					results = append(results, mathResult(approxEqual(item.Total, expected), fp, expected, item.Total, "Math: Item Total"))
				}
				return results
			},
		},
		{
			ruleKey: "math.totals.products", ruleName: "Math: Products Total",
			severity: domain.ValidationSeverityError,
			validate: func(d *Document) []ValidationResult {
				expected := itemsTotal(d)
				return []ValidationResult{mathResult(approxEqual(d.Totals.Products, expected), "totals.products", expected, d.Totals.Products, "Math: Products Total")}
			},
		},
		{
			ruleKey: "math.totals.total", ruleName: "Math: Document Total",
			severity: domain.ValidationSeverityError,
			validate: func(d *Document) []ValidationResult {
				expected := d.Totals.Products.Add(d.Totals.Freight)
				return []ValidationResult{mathResult(approxEqual(d.Totals.Total, expected), "totals.total", expected, d.Totals.Total, "Math: Document Total")}
			},
		},
		{
			ruleKey: "math.items.freight", ruleName: "Math: Item Freight Apportionment",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *Document) []ValidationResult {
				if d.Totals.Freight.IsZero() {
					return []ValidationResult{{
						Passed: true, FieldPath: "totals.freight",
						Message: "Math: Item Freight Apportionment: no freight, skipping",
					}}
				}
				results := make([]ValidationResult, 0, len(d.Items))
				for i := range d.Items {
					item := &d.Items[i]
					fp := fmt.Sprintf("items[%d].freight", i)
					expected := numfmt.PriceRatio(d.Totals.Freight, item.Total, d.Totals.Products)
					results = append(results, mathResult(approxEqual(item.Freight, expected), fp, expected, item.Freight, "Math: Item Freight Apportionment"))
				}
				return results
			},
		},
		{
			ruleKey: "math.totals.decimal_places", ruleName: "Math: Monetary Decimal Places",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *Document) []ValidationResult {
				fields := []struct {
					path  string
					value decimal.Decimal
				}{
					{"totals.products", d.Totals.Products},
					{"totals.freight", d.Totals.Freight},
					{"totals.total", d.Totals.Total},
				}
				results := make([]ValidationResult, 0, len(fields))
				for _, f := range fields {
					err := numfmt.CheckDecimalPlaces(f.value, 0, 2)
					msg := fmt.Sprintf("Math: Monetary Decimal Places: %s has at most 2 decimal places", f.path)
					if err != nil {
						msg = fmt.Sprintf("Math: Monetary Decimal Places: %s has more than 2 decimal places", f.path)
					}
					results = append(results, ValidationResult{
						Passed: err == nil, FieldPath: f.path,
						ExpectedValue: "0-2 decimal places", ActualValue: f.value.String(), Message: msg,
					})
				}
				return results
			},
		},
	}
}
