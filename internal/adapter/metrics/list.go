package metrics

import "github.com/prometheus/client_golang/prometheus"

// ListMetrics holds Prometheus metrics for the list state engine.
type ListMetrics struct {
	Operations    *prometheus.CounterVec
	OrderLength   prometheus.Gauge
	SelectionSize prometheus.Gauge
	Revision      prometheus.Gauge
}

// NewListMetrics creates and registers list metrics on the given registry.
func NewListMetrics(reg prometheus.Registerer) *ListMetrics {
	m := &ListMetrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "list",
			Name:      "operations_total",
			Help:      "Total number of list operations, by operation and result.",
		}, []string{"op", "result"}),
		OrderLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "list",
			Name:      "order_length",
			Help:      "Number of ids in the current order.",
		}),
		SelectionSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "list",
			Name:      "selection_size",
			Help:      "Number of ids currently selected.",
		}),
		Revision: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "list",
			Name:      "revision",
			Help:      "Current revision of the shared list state.",
		}),
	}

	reg.MustRegister(m.Operations, m.OrderLength, m.SelectionSize, m.Revision)
	return m
}
