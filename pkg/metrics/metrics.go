// Package metrics cung cấp Prometheus metrics collector cho API.
// Collector được inject qua container thay vì dùng global state
// để lifecycle và test isolation rõ ràng.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector thu thập HTTP request metrics.
type Collector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	uploadsTotal    prometheus.Counter
	uploadBytes     prometheus.Counter
}

// NewCollector tạo Collector mới với registry riêng.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsroom_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "newsroom_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "newsroom_http_in_flight_requests",
			Help: "Number of HTTP requests currently being served",
		}),
		uploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsroom_media_uploads_total",
			Help: "Total media uploads accepted",
		}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsroom_media_upload_bytes_total",
			Help: "Total bytes of accepted media uploads",
		}),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.inFlight,
		c.uploadsTotal,
		c.uploadBytes,
	)

	return c
}

// RecordRequest ghi nhận một request đã hoàn thành.
func (c *Collector) RecordRequest(method, path string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RequestStarted / RequestFinished track in-flight requests.
func (c *Collector) RequestStarted()  { c.inFlight.Inc() }
func (c *Collector) RequestFinished() { c.inFlight.Dec() }

// RecordUpload ghi nhận một upload thành công.
func (c *Collector) RecordUpload(sizeBytes int64) {
	c.uploadsTotal.Inc()
	c.uploadBytes.Add(float64(sizeBytes))
}

// Handler trả về http.Handler cho endpoint /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
