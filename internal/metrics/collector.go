package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector instruments the REST and WebSocket clients. All methods are
// safe to call on a nil *Collector.
type Collector struct {
	registry *prometheus.Registry

	apiRequests   *prometheus.CounterVec
	apiDuration   *prometheus.HistogramVec
	wsMessages    *prometheus.CounterVec
	wsUnhandled   *prometheus.CounterVec
	wsConnected   prometheus.Gauge
	wsReconnects  prometheus.Counter
	journalWrites *prometheus.CounterVec
}

// NewCollector creates a collector on its own registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memecoin_api_requests_total",
				Help: "Total number of REST API requests by outcome",
			},
			[]string{"method", "endpoint", "status"},
		),
		apiDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "memecoin_api_request_duration_seconds",
				Help:    "REST API request duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "endpoint"},
		),
		wsMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memecoin_ws_messages_total",
				Help: "Total number of WebSocket messages dispatched by type",
			},
			[]string{"type"},
		),
		wsUnhandled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memecoin_ws_unhandled_total",
				Help: "Total number of WebSocket frames dropped",
			},
			[]string{"reason"},
		),
		wsConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "memecoin_ws_connected",
				Help: "1 while the WebSocket connection is open",
			},
		),
		wsReconnects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "memecoin_ws_reconnects_total",
				Help: "Total number of WebSocket reconnect attempts",
			},
		),
		journalWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memecoin_journal_writes_total",
				Help: "Total number of rows written to the local journal",
			},
			[]string{"table"},
		),
	}

	c.registry.MustRegister(
		c.apiRequests,
		c.apiDuration,
		c.wsMessages,
		c.wsUnhandled,
		c.wsConnected,
		c.wsReconnects,
		c.journalWrites,
	)
	return c
}

// ObserveRequest records a REST round trip. status 0 means transport failure.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.apiRequests.WithLabelValues(method, route, label).Inc()
	c.apiDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) MessageReceived(msgType string) {
	if c == nil {
		return
	}
	c.wsMessages.WithLabelValues(msgType).Inc()
}

// MessageDropped counts frames that were not dispatched: "parse" or "no_handler"
func (c *Collector) MessageDropped(reason string) {
	if c == nil {
		return
	}
	c.wsUnhandled.WithLabelValues(reason).Inc()
}

func (c *Collector) SetConnected(connected bool) {
	if c == nil {
		return
	}
	if connected {
		c.wsConnected.Set(1)
	} else {
		c.wsConnected.Set(0)
	}
}

func (c *Collector) Reconnecting() {
	if c == nil {
		return
	}
	c.wsReconnects.Inc()
}

func (c *Collector) JournalWrites(table string, rows int) {
	if c == nil || rows <= 0 {
		return
	}
	c.journalWrites.WithLabelValues(table).Add(float64(rows))
}

// Registry exposes the underlying registry, mainly for tests. It is nil
// for a nil collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the collected metrics in the Prometheus text format. A nil
// collector answers 404.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
