package service_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brfiscal/internal/domain"
	"brfiscal/internal/service"
	"brfiscal/internal/validator"
	"brfiscal/internal/validator/document/documenttest"
)

func TestDocumentService_Validate(t *testing.T) {
	m := newMetrics()
	engine := validator.NewEngine(validator.NewDefaultRegistry(), zerolog.Nop())
	svc := service.NewDocumentService(engine, m, zerolog.Nop())

	report, err := svc.Validate(context.Background(), documenttest.Valid(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationStatusValid, report.ValidationStatus)

	doc := documenttest.Valid()
	doc.Issuer.CNPJCPF = "20.695.448/0001-85"
	report, err = svc.Validate(context.Background(), doc, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationStatusInvalid, report.ValidationStatus)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentValidations.WithLabelValues("valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentValidations.WithLabelValues("invalid")))
}

func TestDocumentService_Validate_UnknownRule(t *testing.T) {
	engine := validator.NewEngine(validator.NewDefaultRegistry(), zerolog.Nop())
	svc := service.NewDocumentService(engine, newMetrics(), zerolog.Nop())

	_, err := svc.Validate(context.Background(), documenttest.Valid(), []string{"nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentService_Rules(t *testing.T) {
	engine := validator.NewEngine(validator.NewDefaultRegistry(), zerolog.Nop())
	svc := service.NewDocumentService(engine, newMetrics(), zerolog.Nop())

	rules := svc.Rules(context.Background())
	require.NotEmpty(t, rules)
	keys := make([]string, 0, len(rules))
	for _, r := range rules {
		keys = append(keys, r.Key)
	}
	assert.Contains(t, keys, "xf.key.issuer")
	assert.Contains(t, keys, "math.items.freight")
	assert.IsIncreasing(t, keys)
}
