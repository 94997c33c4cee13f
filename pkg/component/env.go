package component

import (
	"log/slog"
	"time"

	"github.com/vango-dev/uishka/internal/errors"
	"github.com/vango-dev/uishka/pkg/dom"
	"github.com/vango-dev/uishka/pkg/metrics"
	"github.com/vango-dev/uishka/pkg/telemetry"
)

// AbstractKind is the name of the kind every Env defines and that cannot be
// constructed.
const AbstractKind = "Base"

// Env owns the component kinds of one document.
type Env struct {
	doc       *dom.Document
	logger    *slog.Logger
	metrics   *metrics.Recorder
	tracer    *telemetry.Tracer
	listeners []func(Event)

	kinds    map[string]kindHandle
	order    []kindHandle
	abstract kindHandle
	closed   bool
}

// kindHandle is the type-erased view of a Kind the Env keeps.
type kindHandle interface {
	Name() string
	Abstract() bool
	Len() int
	instances() []*Base
	close()
}

// Option configures an Env.
type Option func(*Env)

// WithLogger sets the logger used for binding warnings and liveness passes.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Env) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records lifecycle metrics with rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(e *Env) {
		e.metrics = rec
	}
}

// WithTracer traces construction and liveness passes with t.
func WithTracer(t *telemetry.Tracer) Option {
	return func(e *Env) {
		e.tracer = t
	}
}

// WithListener registers fn to receive lifecycle events.
func WithListener(fn func(Event)) Option {
	return func(e *Env) {
		e.listeners = append(e.listeners, fn)
	}
}

// NewEnv creates an environment for doc with the abstract Base kind defined.
func NewEnv(doc *dom.Document, opts ...Option) *Env {
	e := &Env{
		doc:    doc,
		logger: slog.Default(),
		kinds:  make(map[string]kindHandle),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.abstract = newKind[*Base](e, AbstractKind, true)
	e.add(e.abstract)
	return e
}

// Define creates a concrete kind named name and starts its liveness monitor.
func Define[T Component](env *Env, name string) (*Kind[T], error) {
	if _, ok := env.kinds[name]; ok {
		return nil, errors.New("E008").WithKind(name)
	}
	k := newKind[T](env, name, false)
	if !env.closed {
		k.observe()
	}
	env.add(k)
	return k, nil
}

func (e *Env) add(k kindHandle) {
	e.kinds[k.Name()] = k
	e.order = append(e.order, k)
}

// Abstract returns the Base kind. Constructing on it fails with E001.
func (e *Env) Abstract() *Kind[*Base] {
	return e.abstract.(*Kind[*Base])
}

// Document returns the document the environment manages.
func (e *Env) Document() *dom.Document {
	return e.doc
}

// Logger returns the environment's logger.
func (e *Env) Logger() *slog.Logger {
	return e.logger
}

// Kinds returns the kind names in definition order, Base first.
func (e *Env) Kinds() []string {
	names := make([]string, 0, len(e.order))
	for _, k := range e.order {
		names = append(names, k.Name())
	}
	return names
}

// InstanceInfo is a snapshot of one live instance.
type InstanceInfo struct {
	Kind       string    `json:"kind"`
	Element    string    `json:"element"`
	Connected  bool      `json:"connected"`
	Hidden     bool      `json:"hidden"`
	Disabled   bool      `json:"disabled"`
	Frozen     bool      `json:"frozen"`
	Properties []Binding `json:"properties"`
}

// Instances returns a snapshot of every live instance, grouped by kind in
// definition order and by registration order within a kind.
func (e *Env) Instances() []InstanceInfo {
	var out []InstanceInfo
	for _, k := range e.order {
		for _, b := range k.instances() {
			out = append(out, InstanceInfo{
				Kind:       b.kind,
				Element:    dom.Describe(b.node),
				Connected:  e.doc.IsConnected(b.node),
				Hidden:     b.Hidden(),
				Disabled:   b.Disabled(),
				Frozen:     b.frozen,
				Properties: b.Bindings(),
			})
		}
	}
	return out
}

// Close stops every kind's liveness monitor. Instances stay registered.
func (e *Env) Close() {
	if e.closed {
		return
	}
	e.closed = true
	for _, k := range e.order {
		k.close()
	}
}

func (e *Env) emit(ev Event) {
	if len(e.listeners) == 0 {
		return
	}
	if ev.Element == "" {
		ev.Element = dom.Describe(ev.Node)
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	for _, fn := range e.listeners {
		fn(ev)
	}
}
