package metrics

import (
	"context"
	"net/http"

	"streetbite/internal/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "streetbite"

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	AuthEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Registrations and login attempts, by outcome.",
	}, []string{"kind"})

	StandsOpenNow = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stands_open_now",
		Help:      "Active stands whose opening hours include the current time.",
	})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		AuthEventsTotal,
		StandsOpenNow,
	)
}

// CountAuthEvents increments AuthEventsTotal for every event on bus
func CountAuthEvents(bus *events.Bus[events.AuthEvent]) (unsubscribe func()) {
	return bus.Subscribe(func(_ context.Context, e events.AuthEvent) {
		AuthEventsTotal.WithLabelValues(string(e.Kind)).Inc()
	})
}

func NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux}
}
