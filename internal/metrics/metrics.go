// Package metrics 미니앱 서버의 Prometheus 지표를 정의합니다.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/remote"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "miniapp"

// Metrics 지표 수집기 묶음입니다. 전역 레지스트리 대신 자체 레지스트리를 사용합니다.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	remoteCalls    *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec

	pages    *prometheus.CounterVec
	payments *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms ~ 2.5s
		}, []string{"method", "route"}),

		remoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "calls_total",
			Help:      "Total number of calls to the remote account/payment service.",
		}, []string{"endpoint", "outcome"}),

		remoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "call_duration_seconds",
			Help:      "Duration of calls to the remote account/payment service.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"endpoint"}),

		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_total",
			Help:      "Total number of bootstrap passes by resulting status indicator.",
		}, []string{"status"}),

		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Total number of payment attempts by outcome.",
		}, []string{"method", "outcome"}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.remoteCalls,
		m.remoteDuration,
		m.pages,
		m.payments,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	return m
}

// Handler 수집된 지표를 노출하는 HTTP 핸들러입니다.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest route는 실제 경로가 아니라 라우트 패턴(예: /api/v1/payments/:method)이어야 합니다.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveRemoteCall remote.Observer 구현입니다.
func (m *Metrics) ObserveRemoteCall(endpoint remote.Endpoint, outcome string, d time.Duration) {
	m.remoteCalls.WithLabelValues(string(endpoint), outcome).Inc()
	m.remoteDuration.WithLabelValues(string(endpoint)).Observe(d.Seconds())
}

// ObservePayment payment.Observer 구현입니다.
func (m *Metrics) ObservePayment(methodID, outcome string) {
	m.payments.WithLabelValues(methodID, outcome).Inc()
}

func (m *Metrics) ObservePage(status string) {
	m.pages.WithLabelValues(status).Inc()
}
