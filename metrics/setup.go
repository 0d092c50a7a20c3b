package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the HTTP server
// responsible for exposing application metrics on /metrics.
type Metrics struct {
	// Server is the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric
	// name collisions.
	Registry *prometheus.Registry

	ingestedTotal   prometheus.Counter
	chatsTotal      prometheus.Counter
	errorsTotal     *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics initializes and returns a new Metrics instance.
// It sets up a dedicated Prometheus registry, registers the domain metrics
// and (optionally) the default runtime collectors, wraps everything with a
// constant `service` label, and creates an HTTP server exposing /metrics.
//
// Example:
//
//	cfg := metrics.Config{Address: ":9090", ServiceName: "rag-api"}
//	m := metrics.NewMetrics(cfg)
//	// metrics available at http://localhost:9090/metrics once started
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this service automatically include the label
	// service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.ingestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rag_api_ingested_total",
		Help: "Total number of documents accepted by the ingest endpoints",
	})
	m.chatsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rag_api_chats_total",
		Help: "Total number of successfully answered chat requests",
	})
	m.errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rag_api_errors_total",
		Help: "Total number of failed requests per endpoint",
	}, []string{"endpoint"})
	m.stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rag_api_stage_duration_seconds",
		Help:    "Duration of chat pipeline stages in seconds",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"stage"})
	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rag_api_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	wrappedRegistry.MustRegister(
		m.ingestedTotal,
		m.chatsTotal,
		m.errorsTotal,
		m.stageDuration,
		m.requestDuration,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	return m
}
