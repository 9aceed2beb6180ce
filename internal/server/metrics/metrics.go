// Package metrics собирает и публикует Prometheus метрики сервера.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector Prometheus метрики HTTP слоя и доменных операций
type Collector struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	registrations prometheus.Counter
	tokens        *prometheus.CounterVec
	uploads       prometheus.Counter
	uploadBytes   prometheus.Counter
	events        prometheus.Counter
}

// NewCollector создает Collector и регистрирует метрики в reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wanderlust_http_requests_total",
			Help: "HTTP requests by route pattern and status code",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wanderlust_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wanderlust_accounts_registered_total",
			Help: "Registered accounts",
		}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wanderlust_tokens_issued_total",
			Help: "Access tokens issued by client id",
		}, []string{"client_id"}),
		uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wanderlust_file_uploads_total",
			Help: "Created or overwritten files with content",
		}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wanderlust_file_upload_bytes_total",
			Help: "Bytes of uploaded file content",
		}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wanderlust_calendar_events_created_total",
			Help: "Calendar events created",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.latency,
		c.registrations,
		c.tokens,
		c.uploads,
		c.uploadBytes,
		c.events,
	)

	return c
}

// ObserveRequest учитывает завершенный HTTP запрос
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRegistration учитывает новый аккаунт
func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

// RecordTokenIssued учитывает выданный токен
func (c *Collector) RecordTokenIssued(clientID string) {
	c.tokens.WithLabelValues(clientID).Inc()
}

// RecordUpload учитывает загрузку содержимого файла
func (c *Collector) RecordUpload(bytes int) {
	c.uploads.Inc()
	c.uploadBytes.Add(float64(bytes))
}

// RecordEventCreated учитывает созданное событие календаря
func (c *Collector) RecordEventCreated() {
	c.events.Inc()
}

// Handler возвращает HTTP handler для Prometheus scrape
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
