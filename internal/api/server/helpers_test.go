package server

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nghiaugust/ballot-processing-system/internal/metrics"
)

type unhealthy struct{}

func (unhealthy) Healthy(context.Context) bool { return false }

func counterValue(t *testing.T, route, code string) float64 {
	t.Helper()
	return testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(route, code))
}
