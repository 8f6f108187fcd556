package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.With(val...).Inc()
}

// With returns the child counter for the label values.
func (c *Counter) With(val ...string) prometheus.Counter {
	return c.vec.WithLabelValues(val...)
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Mutations counts editor mutations by operation and outcome.
type Mutations struct {
	Registry *prometheus.Registry
	Counter  *Counter
}

func NewMutations() *Mutations {
	reg := prometheus.NewRegistry()
	return &Mutations{
		Registry: reg,
		Counter:  NewCounterWithRegistry(reg, "navtree_mutations_total", "Menu mutations by operation and outcome.", "op", "outcome"),
	}
}

// Record increments op/outcome. A nil receiver discards.
func (m *Mutations) Record(op, outcome string) {
	if m == nil || m.Counter == nil {
		return
	}
	m.Counter.Increment(op, outcome)
}

func (m *Mutations) Handler() http.Handler {
	return GetHandlerForRegistry(m.Registry)
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
