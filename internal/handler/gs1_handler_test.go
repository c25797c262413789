package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brfiscal/internal/gs1"
	"brfiscal/internal/handler"
)

func TestGS1Handler_Generate(t *testing.T) {
	h := handler.NewGS1Handler()
	c, w := jsonContext(t, http.MethodGet, "/api/v1/gs1/generate?length=18&n=3", nil)
	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	codes := data["codes"].([]interface{})
	require.Len(t, codes, 3)
	for _, code := range codes {
		assert.True(t, gs1.ValidateSSCC(code.(string)), code)
	}
}

func TestGS1Handler_Generate_Defaults(t *testing.T) {
	h := handler.NewGS1Handler()
	c, w := jsonContext(t, http.MethodGet, "/api/v1/gs1/generate", nil)
	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	codes := decode(t, w).Data.(map[string]interface{})["codes"].([]interface{})
	require.Len(t, codes, 1)
	assert.Len(t, codes[0], 13)
	assert.True(t, gs1.ValidateGTIN(codes[0].(string)))
}

func TestGS1Handler_Generate_Invalid(t *testing.T) {
	tests := []struct {
		query string
		code  string
	}{
		{"length=x", "VALIDATION_ERROR"},
		{"n=500", "VALIDATION_ERROR"},
		{"length=10", "INVALID_INPUT"},
		{"n=0", "INVALID_INPUT"},
	}
	h := handler.NewGS1Handler()
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, w := jsonContext(t, http.MethodGet, "/api/v1/gs1/generate?"+tt.query, nil)
			h.Generate(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode(t, w).Error.Code)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	h := handler.NewHealthHandler(nil)

	c, w := jsonContext(t, http.MethodGet, "/healthz", nil)
	h.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = jsonContext(t, http.MethodGet, "/readyz", nil)
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
