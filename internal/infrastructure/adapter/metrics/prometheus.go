package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wallet_funding"

// Prometheus records payment and HTTP metrics on its own registry
type Prometheus struct {
	registry *prometheus.Registry

	paymentsStarted *prometheus.CounterVec
	callbacks       *prometheus.CounterVec
	credits         *prometheus.CounterVec
	creditedAmount  *prometheus.CounterVec
	gatewayCalls    *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewPrometheus creates the collectors and registers them together with the Go and process collectors
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		paymentsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_started_total",
			Help:      "Payment start attempts by gateway and outcome",
		}, []string{"gateway", "outcome"}),
		callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callbacks_total",
			Help:      "Gateway callbacks by gateway and outcome",
		}, []string{"gateway", "outcome"}),
		credits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_credits_total",
			Help:      "Wallet credits applied by source",
		}, []string{"source"}),
		creditedAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_credited_amount_total",
			Help:      "Sum of credited amounts in minor units by source",
		}, []string{"source"}),
		gatewayCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_call_duration_seconds",
			Help:      "Latency of payment provider calls",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"gateway", "operation", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.paymentsStarted,
		p.callbacks,
		p.credits,
		p.creditedAmount,
		p.gatewayCalls,
		p.httpRequests,
		p.httpDuration,
	)
	return p
}

// Registry exposes the registry so other components can add collectors
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the exposition format for this registry
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func (p *Prometheus) ObservePaymentStarted(gateway, outcome string) {
	p.paymentsStarted.WithLabelValues(gateway, outcome).Inc()
}

func (p *Prometheus) ObserveCallback(gateway, outcome string) {
	p.callbacks.WithLabelValues(gateway, outcome).Inc()
}

func (p *Prometheus) ObserveCredit(source string, amount float64) {
	p.credits.WithLabelValues(source).Inc()
	p.creditedAmount.WithLabelValues(source).Add(amount)
}

func (p *Prometheus) ObserveGatewayCall(gateway, operation string, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.gatewayCalls.WithLabelValues(gateway, operation, result).Observe(took.Seconds())
}

// ObserveHTTPRequest records one served request
func (p *Prometheus) ObserveHTTPRequest(route, method, status string, took time.Duration) {
	p.httpRequests.WithLabelValues(route, method, status).Inc()
	p.httpDuration.WithLabelValues(route, method).Observe(took.Seconds())
}
