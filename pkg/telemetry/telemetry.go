// Package telemetry wraps OpenTelemetry spans around component lifecycle work.
//
// The tracer comes from the global OpenTelemetry tracer provider unless one
// is supplied. Configure the provider in main() before creating an Env:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//
//	env := component.NewEnv(doc, component.WithTracer(telemetry.New()))
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Default tracer name for uishka.
const defaultTracerName = "uishka"

// Span attribute keys.
const (
	AttrKind      = "uishka.kind"
	AttrRemoved   = "uishka.removed_nodes"
	AttrDestroyed = "uishka.destroyed"
	AttrLive      = "uishka.live"
)

// Config configures the tracer.
type Config struct {
	// TracerName is the name of the tracer (default: "uishka").
	TracerName string

	// Provider overrides the global tracer provider.
	Provider trace.TracerProvider
}

// Option configures the tracer.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.Provider = tp
	}
}

// Tracer starts spans for construction and liveness passes.
// A nil *Tracer starts no spans.
type Tracer struct {
	tracer trace.Tracer
}

// New resolves a tracer from the configured provider.
func New(opts ...Option) *Tracer {
	config := Config{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerName == "" {
		config.TracerName = defaultTracerName
	}

	var tracer trace.Tracer
	if config.Provider != nil {
		tracer = config.Provider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}
	return &Tracer{tracer: tracer}
}

// StartConstruct starts a span for constructing an instance of kind.
func (t *Tracer) StartConstruct(ctx context.Context, kind string) (context.Context, trace.Span) {
	return t.start(ctx, "uishka.construct "+kind,
		attribute.String(AttrKind, kind),
	)
}

// StartLivenessPass starts a span for a liveness pass triggered by removed nodes.
func (t *Tracer) StartLivenessPass(ctx context.Context, kind string, removed int) (context.Context, trace.Span) {
	return t.start(ctx, "uishka.liveness "+kind,
		attribute.String(AttrKind, kind),
		attribute.Int(AttrRemoved, removed),
	)
}

func (t *Tracer) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if t == nil || t.tracer == nil {
		return ctx, noop.Span{}
	}
	return t.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
