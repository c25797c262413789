package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brfiscal/internal/config"
	"brfiscal/internal/handler"
	"brfiscal/internal/metrics"
	"brfiscal/internal/router"
	"brfiscal/internal/service"
	"brfiscal/internal/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := handler.RegisterFiscalValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newEngine(t *testing.T, metricsEnabled bool) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Report:  config.ReportConfig{MaxUploadSizeMB: 1, MaxRows: 100, DefaultFormat: "csv", Locale: "pt-BR"},
		Metrics: config.MetricsConfig{Enabled: metricsEnabled, Path: "/metrics"},
	}
	log := zerolog.Nop()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	now := func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

	engine := validator.NewEngine(validator.NewDefaultRegistry(), log)
	identifierSvc := service.NewIdentifierService(m, log, now)
	h := router.Handlers{
		Health:     handler.NewHealthHandler(engine),
		Identifier: handler.NewIdentifierHandler(identifierSvc),
		UF:         handler.NewUFHandler(),
		Key:        handler.NewKeyHandler(service.NewKeyService(m, log)),
		Document:   handler.NewDocumentHandler(service.NewDocumentService(engine, m, log)),
		Batch: handler.NewBatchHandler(
			service.NewBatchService(identifierSvc, nil, cfg.S3, cfg.Report, m, log),
			cfg.Report.MaxUploadSizeMB,
		),
		GS1: handler.NewGS1Handler(),
	}
	return router.Setup(cfg, log, m, reg, h)
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthRoutes(t *testing.T) {
	r := newEngine(t, false)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/readyz", nil).Code)
}

func TestIdentifierRoundTrip(t *testing.T) {
	r := newEngine(t, false)

	w := do(t, r, http.MethodPost, "/api/v1/identifiers/validate", gin.H{"kind": "cnpj", "value": "20.695.448/0001-84"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, "20.695.448/0001-84", data["formatted"])
}

func TestKeyParts(t *testing.T) {
	r := newEngine(t, false)

	w := do(t, r, http.MethodGet, "/api/v1/keys/35210320695448000184550010000035891981839923/parts?n=4", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	parts := resp.Data.(map[string]interface{})["parts"].([]interface{})
	assert.Equal(t, []interface{}{"35210320695", "44800018455", "00100000358", "91981839923"}, parts)
}

func TestUnknownRoute(t *testing.T) {
	r := newEngine(t, false)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/v1/nope", nil).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newEngine(t, true)

	do(t, r, http.MethodPost, "/api/v1/identifiers/validate", gin.H{"kind": "cep", "value": "01310-100"})
	w := do(t, r, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `brfiscal_identifier_checks_total{kind="cep",result="valid"} 1`)
	assert.Contains(t, w.Body.String(), `brfiscal_http_requests_total{method="POST",route="/api/v1/identifiers/validate",status="200"} 1`)
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	r := newEngine(t, false)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/metrics", nil).Code)
}
