// Package metrics publishes dispatch and workspace mutation counters in
// the Prometheus exposition format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/domain/actions"
)

const namespace = "remotedeck"

// Store mutation results.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var _ ports.MetricsRecorder = (*Recorder)(nil)

// Recorder implements ports.MetricsRecorder on a private registry, so
// several recorders can coexist in one process (tests, embedded use).
type Recorder struct {
	registry      *prometheus.Registry
	dispatchSteps *prometheus.CounterVec
	mutations     *prometheus.CounterVec
}

// NewRecorder creates a recorder. When withRuntime is set the Go runtime
// and process collectors are registered too.
func NewRecorder(withRuntime bool) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		dispatchSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_steps_total",
			Help:      "Dispatched action steps by action type and result.",
		}, []string{"action", "result"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Workspace store mutations by operation and result.",
		}, []string{"op", "result"}),
	}
	r.registry.MustRegister(r.dispatchSteps, r.mutations)
	if withRuntime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

// DispatchStep implements ports.MetricsRecorder.
func (r *Recorder) DispatchStep(action actions.Type, result string) {
	r.dispatchSteps.WithLabelValues(string(action), result).Inc()
}

// StoreMutation implements ports.MetricsRecorder.
func (r *Recorder) StoreMutation(op string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	r.mutations.WithLabelValues(op, result).Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry for scraping.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
