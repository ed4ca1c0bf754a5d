package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/feather-dev/feather/pkg/feather"
)

// Default tracer name for feather roots.
const defaultTracerName = "github.com/feather-dev/feather"

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "feather").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render and commit durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// TracerName names the tracer taken from the global provider.
	TracerName string

	// Tracer overrides the global tracer provider when set.
	Tracer trace.Tracer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
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

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Config) {
		c.Tracer = tracer
	}
}

func defaultConfig() Config {
	return Config{
		Namespace:  "feather",
		Buckets:    prometheus.DefBuckets,
		Registry:   prometheus.DefaultRegisterer,
		TracerName: defaultTracerName,
	}
}

// Collector records runtime and server measurements. It is safe for
// concurrent use.
type Collector struct {
	renders        prometheus.Counter
	renderDuration prometheus.Histogram
	mutations      prometheus.Counter
	instances      prometheus.Gauge
	disposed       prometheus.Counter
	commits        prometheus.Counter
	commitDuration prometheus.Histogram
	effects        prometheus.Counter
	cleanups       prometheus.Counter
	errors         *prometheus.CounterVec
	viewers        prometheus.Gauge
	framesSent     prometheus.Counter
	wsErrors       *prometheus.CounterVec

	tracer trace.Tracer
}

var _ feather.Observer = (*Collector)(nil)

// New creates a Collector and registers its metrics. Registering twice on
// the same registry panics, as with promauto.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Tracer == nil {
		config.Tracer = otel.Tracer(config.TracerName)
	}

	factory := promauto.With(config.Registry)
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	histogram := func(name, help string) prometheus.Histogram {
		return factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		})
	}

	return &Collector{
		renders:        counter("renders_total", "Total number of render passes"),
		renderDuration: histogram("render_duration_seconds", "Render pass duration in seconds"),
		mutations:      counter("mutations_total", "Total number of live tree mutations applied by renders"),
		instances:      gauge("instances", "Component instances alive after the last render"),
		disposed:       counter("instances_disposed_total", "Total number of component instances discarded"),
		commits:        counter("commits_total", "Total number of effect commits"),
		commitDuration: histogram("commit_duration_seconds", "Effect commit duration in seconds"),
		effects:        counter("effects_total", "Total number of effects run"),
		cleanups:       counter("cleanups_total", "Total number of effect cleanups run"),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of runtime errors by code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),
		viewers:    gauge("viewers", "Number of connected stream viewers"),
		framesSent: counter("frames_sent_total", "Total number of frames written to viewers"),
		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
		tracer: config.Tracer,
	}
}

// ObserveRender implements feather.Observer.
func (c *Collector) ObserveRender(info feather.RenderInfo) {
	c.renders.Inc()
	c.renderDuration.Observe(info.Duration.Seconds())
	c.mutations.Add(float64(info.Mutations))
	c.instances.Set(float64(info.Instances))
	c.disposed.Add(float64(info.Disposed))

	c.span("feather.render", info.Start, info.Duration, codes.Unset,
		attribute.Int("feather.pass", info.Pass),
		attribute.Int("feather.mutations", info.Mutations),
		attribute.Int("feather.instances", info.Instances),
		attribute.Int("feather.disposed", info.Disposed),
	)
}

// ObserveCommit implements feather.Observer.
func (c *Collector) ObserveCommit(info feather.CommitInfo) {
	c.commits.Inc()
	c.commitDuration.Observe(info.Duration.Seconds())
	c.effects.Add(float64(info.Effects))
	c.cleanups.Add(float64(info.Cleanups))

	status := codes.Ok
	if info.Panics > 0 {
		status = codes.Error
	}
	c.span("feather.commit", info.Start, info.Duration, status,
		attribute.Int("feather.effects", info.Effects),
		attribute.Int("feather.cleanups", info.Cleanups),
		attribute.Int("feather.panics", info.Panics),
	)
}

// ObserveError implements feather.Observer.
func (c *Collector) ObserveError(code string) {
	c.errors.WithLabelValues(code).Inc()
}

// ViewerConnected records a stream viewer joining.
func (c *Collector) ViewerConnected() { c.viewers.Inc() }

// ViewerDisconnected records a stream viewer leaving.
func (c *Collector) ViewerDisconnected() { c.viewers.Dec() }

// FrameSent records one frame written to a viewer.
func (c *Collector) FrameSent() { c.framesSent.Inc() }

// WebSocketError records a stream failure of the given type.
func (c *Collector) WebSocketError(kind string) {
	c.wsErrors.WithLabelValues(kind).Inc()
}

// span records a finished interval. The runtime reports after the fact, so
// both ends are set from the measurement rather than the wall clock.
func (c *Collector) span(name string, start time.Time, d time.Duration, status codes.Code, attrs ...attribute.KeyValue) {
	_, span := c.tracer.Start(context.Background(), name,
		trace.WithTimestamp(start),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	switch status {
	case codes.Error:
		span.SetStatus(codes.Error, "effect panicked")
	case codes.Ok:
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(start.Add(d)))
}
