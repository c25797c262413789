package service_test

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"brfiscal/internal/metrics"
	"brfiscal/internal/service"
)

const nfeKey = "35210320695448000184550010000035891981839923"

var fixedNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func newIdentifierService() service.IdentifierService {
	return service.NewIdentifierService(newMetrics(), zerolog.Nop(), func() time.Time { return fixedNow })
}
