package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequestCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIMetrics(reg)

	m.ObserveRequest("/medicos", "GET", 200, 0.05)
	m.ObserveRequest("/medicos", "GET", 200, 0.07)
	m.ObserveRequest("/consultas", "DELETE", 0, 1.2)

	families, err := reg.Gather()
	require.NoError(t, err)

	var total *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "clinicapp_api_requests_total" {
			total = f
		}
	}
	require.NotNil(t, total)

	counts := map[string]float64{}
	for _, metric := range total.GetMetric() {
		var resource, status string
		for _, l := range metric.GetLabel() {
			switch l.GetName() {
			case "resource":
				resource = l.GetValue()
			case "status":
				status = l.GetValue()
			}
		}
		counts[resource+"|"+status] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, 2.0, counts["/medicos|200"])
	assert.Equal(t, 1.0, counts["/consultas|transport_error"])
}

func TestObserveRequestNilSafe(t *testing.T) {
	var m *APIMetrics
	m.ObserveRequest("/pacientes", "POST", 201, 0.1)
}
