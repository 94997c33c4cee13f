// Package metrics records component lifecycle and binding activity in Prometheus.
//
// Metrics collected:
//   - uishka_instances: Gauge of live instances by kind
//   - uishka_constructions_total: Counter of constructions by kind
//   - uishka_destructions_total: Counter of destructions by kind and reason
//   - uishka_liveness_passes_total: Counter of liveness passes by kind
//   - uishka_liveness_pass_duration_seconds: Histogram of liveness pass duration
//   - uishka_property_writes_total: Counter of DOM writes made by reactive properties
//   - uishka_property_writes_suppressed_total: Counter of no-op writes skipped
//   - uishka_binding_warnings_total: Counter of locators that matched nothing
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.New(metrics.WithRegistry(reg))
//	env := component.NewEnv(doc, component.WithMetrics(rec))
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the Prometheus recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "uishka").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for liveness pass duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus recorder.
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

// defaultConfig returns the default metrics configuration.
func defaultConfig() Config {
	return Config{
		Namespace: "uishka",
		// Passes scan in-memory maps; microsecond buckets.
		Buckets:  prometheus.ExponentialBuckets(0.00001, 4, 8),
		Registry: prometheus.DefaultRegisterer,
	}
}

// Reasons an instance is destroyed.
const (
	ReasonExplicit = "explicit"
	ReasonLiveness = "liveness"
)

// Recorder holds the Prometheus collectors. A nil *Recorder records nothing.
type Recorder struct {
	instances        *prometheus.GaugeVec
	constructions    *prometheus.CounterVec
	destructions     *prometheus.CounterVec
	livenessPasses   *prometheus.CounterVec
	livenessDuration *prometheus.HistogramVec
	propertyWrites   *prometheus.CounterVec
	suppressedWrites *prometheus.CounterVec
	bindingWarnings  *prometheus.CounterVec
}

// New creates and registers the collectors.
func New(opts ...Option) *Recorder {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Recorder{
		instances: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "instances",
			Help:        "Number of live component instances",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		constructions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "constructions_total",
			Help:        "Total number of component instances constructed",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		destructions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "destructions_total",
			Help:        "Total number of component instances destroyed",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "reason"}),

		livenessPasses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "liveness_passes_total",
			Help:        "Total number of liveness passes over a kind's registry",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		livenessDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "liveness_pass_duration_seconds",
			Help:        "Liveness pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		propertyWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "property_writes_total",
			Help:        "Total number of DOM writes made by reactive properties",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		suppressedWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "property_writes_suppressed_total",
			Help:        "Total number of reactive property writes skipped because the value was unchanged",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		bindingWarnings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "binding_warnings_total",
			Help:        "Total number of reactive property locators that resolved to no element",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
	}
}

// InstanceConstructed records a new live instance.
func (r *Recorder) InstanceConstructed(kind string) {
	if r == nil {
		return
	}
	r.constructions.WithLabelValues(kind).Inc()
	r.instances.WithLabelValues(kind).Inc()
}

// InstanceDestroyed records a teardown. reason is ReasonExplicit or ReasonLiveness.
func (r *Recorder) InstanceDestroyed(kind, reason string) {
	if r == nil {
		return
	}
	r.destructions.WithLabelValues(kind, reason).Inc()
	r.instances.WithLabelValues(kind).Dec()
}

// LivenessPass records one completed pass.
func (r *Recorder) LivenessPass(kind string, d time.Duration) {
	if r == nil {
		return
	}
	r.livenessPasses.WithLabelValues(kind).Inc()
	r.livenessDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// PropertyWrite records a DOM write by a reactive property.
func (r *Recorder) PropertyWrite(kind string) {
	if r == nil {
		return
	}
	r.propertyWrites.WithLabelValues(kind).Inc()
}

// PropertyWriteSuppressed records a skipped no-op write.
func (r *Recorder) PropertyWriteSuppressed(kind string) {
	if r == nil {
		return
	}
	r.suppressedWrites.WithLabelValues(kind).Inc()
}

// BindingWarning records a locator that matched nothing.
func (r *Recorder) BindingWarning(kind string) {
	if r == nil {
		return
	}
	r.bindingWarnings.WithLabelValues(kind).Inc()
}
