// Package metrics exposes Prometheus instrumentation for the hotel API:
// HTTP request metrics recorded by an echo middleware and business
// counters for bookings, payments and revenue.
//
// Wire it up once in the router:
//
//	e.Use(m.Middleware())
//	e.GET("/metrics", echo.WrapHandler(m.Handler()))
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "hotel"

// Metrics owns a registry and every collector registered on it.  A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	inFlight        prometheus.Gauge

	bookings      *prometheus.CounterVec
	payments      prometheus.Counter
	revenue       prometheus.Counter
	confirmations prometheus.Counter
	rateUpdates   prometheus.Counter
	cacheLookups  *prometheus.CounterVec
	rateLimited   prometheus.Counter
}

// New builds a Metrics with its own registry, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking workflow commits by outcome.",
		}, []string{"outcome"}),
		payments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Payments recorded.",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Sum of recorded payment amounts.",
		}),
		confirmations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_confirmed_total",
			Help:      "Staff confirmations.",
		}),
		rateUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_updates_total",
			Help:      "Room rate updates.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Response cache lookups by result.",
		}, []string{"result"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration, m.requestTotal, m.inFlight,
		m.bookings, m.payments, m.revenue, m.confirmations, m.rateUpdates,
		m.cacheLookups, m.rateLimited,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Middleware records duration, count and in-flight requests labelled by
// the matched route pattern rather than the raw path.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if m == nil {
			return next
		}
		return func(c echo.Context) error {
			start := time.Now()
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method
			m.requestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
			m.requestTotal.WithLabelValues(method, route, status).Inc()
			return nil
		}
	}
}

// BookingCommitted counts a committed booking and its payment.
func (m *Metrics) BookingCommitted(amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues("committed").Inc()
	m.PaymentRecorded(amount)
}

// BookingFailed counts a booking that rolled back.
func (m *Metrics) BookingFailed() {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues("failed").Inc()
}

// PaymentRecorded counts a payment and adds its amount to revenue.
func (m *Metrics) PaymentRecorded(amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.payments.Inc()
	m.revenue.Add(amount.InexactFloat64())
}

// ReservationConfirmed counts a staff confirmation.
func (m *Metrics) ReservationConfirmed() {
	if m == nil {
		return
	}
	m.confirmations.Inc()
}

// RateUpdated counts an admin rate change.
func (m *Metrics) RateUpdated() {
	if m == nil {
		return
	}
	m.rateUpdates.Inc()
}

// CacheLookup counts a response cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// RateLimited counts a rejected request.
func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
