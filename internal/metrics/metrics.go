package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mei"

// Metrics groups the collectors the service reports. Each instance owns its
// registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	DasPayments       *prometheus.CounterVec
	DocumentUploads   prometheus.Counter
	OrphanedDocuments prometheus.Counter
	OverdueMarked     prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DasPayments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "das_payments_total",
			Help:      "DAS records written by resulting status.",
		}, []string{"status"}),
		DocumentUploads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_uploads_total",
			Help:      "Documents stored in the document store.",
		}),
		OrphanedDocuments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphaned_documents_total",
			Help:      "Documents uploaded whose transaction insert failed afterwards.",
		}),
		OverdueMarked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overdue_marked_total",
			Help:      "Pending DAS records flipped to overdue by the scheduler.",
		}),
	}
	m.Registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.DasPayments,
		m.DocumentUploads,
		m.OrphanedDocuments,
		m.OverdueMarked,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
