// Package metrics exposes Prometheus instrumentation for the Vault server.
//
// A nil *Metrics is valid and records nothing, so services and tests can run
// without a registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vault"

// Authorization gate outcomes.
const (
	GateAllowed       = "allowed"
	GateMissingHeader = "missing_header"
	GateInvalidToken  = "invalid_token"
)

// Sign-in outcomes.
const (
	SignInSuccess            = "success"
	SignInMissingCredentials = "missing_credentials"
	SignInUnknownUser        = "unknown_user"
	SignInWrongPassword      = "wrong_password"
	SignInError              = "error"
)

// Category reconciliation operations.
const (
	ReconcileCreate = "create"
	ReconcileUpdate = "update"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AuthGateDecisions       *prometheus.CounterVec
	SignInAttempts          *prometheus.CounterVec
	CategoryReconciliations *prometheus.CounterVec
}

// New creates all metrics and registers them, plus the Go runtime and
// process collectors, on registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AuthGateDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_gate_decisions_total",
				Help:      "Bearer token checks on protected routes, by outcome",
			},
			[]string{"outcome"},
		),
		SignInAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sign_in_attempts_total",
				Help:      "Sign-in attempts, by outcome",
			},
			[]string{"outcome"},
		),
		CategoryReconciliations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "category_reconciliations_total",
				Help:      "Game category reconciliations, by operation and result",
			},
			[]string{"operation", "result"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthGateDecisions,
		m.SignInAttempts,
		m.CategoryReconciliations,
	)

	return m
}

// GateDecision counts one authorization gate outcome.
func (m *Metrics) GateDecision(outcome string) {
	if m == nil {
		return
	}
	m.AuthGateDecisions.WithLabelValues(outcome).Inc()
}

// SignIn counts one sign-in attempt.
func (m *Metrics) SignIn(outcome string) {
	if m == nil {
		return
	}
	m.SignInAttempts.WithLabelValues(outcome).Inc()
}

// Reconciliation counts one category reconciliation.
func (m *Metrics) Reconciliation(operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CategoryReconciliations.WithLabelValues(operation, result).Inc()
}

// Middleware instruments HTTP requests. The route label is chi's route
// pattern, so /v1/games/{id} is one series regardless of id.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
