// Package telemetry instruments the route compiler with Prometheus
// metrics and OpenTelemetry traces. The dev server exposes the metrics
// on /metrics; traces go to whatever tracer provider the host process
// has installed.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "arbor"

// Config configures compiler telemetry.
type Config struct {
	// Namespace is the metrics namespace (default: "arbor").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for compile duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures compiler telemetry.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Telemetry holds the compiler's metric instruments and tracer.
type Telemetry struct {
	compilesTotal   *prometheus.CounterVec
	compileDuration prometheus.Histogram
	routesCompiled  prometheus.Gauge
	tracer          trace.Tracer
}

// New registers the compiler instruments and returns a Telemetry.
func New(opts ...Option) *Telemetry {
	cfg := &Config{
		Namespace: "arbor",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Telemetry{
		compilesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "compiles_total",
			Help:        "Total number of route compilations by result.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"result"}),
		compileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Name:        "compile_duration_seconds",
			Help:        "Duration of full route compilations.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}),
		routesCompiled: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Name:        "routes_compiled",
			Help:        "Number of routes in the last successful manifest.",
			ConstLabels: cfg.ConstLabels,
		}),
		tracer: otel.Tracer(tracerName),
	}
}

// StartCompile opens a span for a full compilation and returns a
// finish function that records the outcome and duration.
func (t *Telemetry) StartCompile(ctx context.Context, root string) (context.Context, func(routeCount int, err error)) {
	start := time.Now()
	ctx, span := t.tracer.Start(ctx, "arbor.compile",
		trace.WithAttributes(attribute.String("arbor.routes_dir", root)))

	return ctx, func(routeCount int, err error) {
		elapsed := time.Since(start)
		t.compileDuration.Observe(elapsed.Seconds())

		if err != nil {
			t.compilesTotal.WithLabelValues("error").Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			t.compilesTotal.WithLabelValues("ok").Inc()
			t.routesCompiled.Set(float64(routeCount))
			span.SetAttributes(attribute.Int("arbor.route_count", routeCount))
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

// StartPhase opens a child span for one compilation phase (scan,
// config, manifest).
func (t *Telemetry) StartPhase(ctx context.Context, phase string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "arbor.compile."+phase)
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
