package validator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brfiscal/internal/domain"
	"brfiscal/internal/validator"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestComputeFieldStatuses(t *testing.T) {
	results := []validator.ValidationResultItem{
		{FieldPath: "issuer.ie", Severity: domain.ValidationSeverityError, Passed: true},
		{FieldPath: "issuer.cnpj_cpf", Severity: domain.ValidationSeverityWarning, Passed: false, Message: "w1"},
		{FieldPath: "issuer.cnpj_cpf", Severity: domain.ValidationSeverityError, Passed: false, Message: "e1"},
		{FieldPath: "issuer.cnpj_cpf", Severity: domain.ValidationSeverityWarning, Passed: false, Message: "w2"},
		{FieldPath: "recipient.cep", Severity: domain.ValidationSeverityWarning, Passed: false, Message: "w3"},
	}

	got := validator.ComputeFieldStatuses(results)
	require.Len(t, got, 3)

	assert.Equal(t, domain.FieldStatusValid, got["issuer.ie"].Status)
	assert.Empty(t, got["issuer.ie"].Messages)

	assert.Equal(t, domain.FieldStatusInvalid, got["issuer.cnpj_cpf"].Status)
	assert.Equal(t, []string{"w1", "e1", "w2"}, got["issuer.cnpj_cpf"].Messages)

	assert.Equal(t, domain.FieldStatusUnsure, got["recipient.cep"].Status)
}

func TestComputeFieldStatuses_Empty(t *testing.T) {
	assert.Empty(t, validator.ComputeFieldStatuses(nil))
}
