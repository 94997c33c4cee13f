package component

import (
	"context"

	"golang.org/x/net/html"

	"github.com/vango-dev/uishka/internal/errors"
	"github.com/vango-dev/uishka/pkg/dom"
	"github.com/vango-dev/uishka/pkg/telemetry"
)

// Kind is a named category of component with its own registry and
// liveness monitor.
type Kind[T Component] struct {
	env      *Env
	name     string
	abstract bool
	registry *Registry[T]
	monitor  *Monitor
	observer *dom.MutationObserver
}

func newKind[T Component](env *Env, name string, abstract bool) *Kind[T] {
	k := &Kind[T]{
		env:      env,
		name:     name,
		abstract: abstract,
		registry: NewRegistry[T](env.doc),
	}
	k.monitor = newMonitor(env, name, k.registry.Len, k.instances)
	return k
}

// observe feeds child-list removals under the body to the monitor.
func (k *Kind[T]) observe() {
	k.observer = k.env.doc.Observe(k.env.doc.Body(), dom.MutationObserverInit{
		ChildList: true,
		Subtree:   true,
	}, func(records []dom.MutationRecord) {
		var removed []*html.Node
		for _, rec := range records {
			removed = append(removed, rec.RemovedNodes...)
		}
		k.monitor.NotifyPossibleRemoval(context.Background(), removed)
	})
}

func (k *Kind[T]) close() {
	if k.observer != nil {
		k.observer.Disconnect()
		k.observer = nil
	}
}

// Name returns the kind name.
func (k *Kind[T]) Name() string {
	return k.name
}

// Abstract reports whether the kind can be constructed.
func (k *Kind[T]) Abstract() bool {
	return k.abstract
}

// Registry returns the kind's node registry.
func (k *Kind[T]) Registry() *Registry[T] {
	return k.registry
}

// Monitor returns the kind's liveness monitor.
func (k *Kind[T]) Monitor() *Monitor {
	return k.monitor
}

// Get returns the live instance bound to node.
func (k *Kind[T]) Get(node *html.Node) (T, bool) {
	return k.registry.Lookup(node)
}

// GetBySelector returns the instance bound to the first element matching selector.
func (k *Kind[T]) GetBySelector(selector string) (T, bool, error) {
	return k.registry.LookupBySelector(selector)
}

// GetAllBySelector returns the instances bound to elements matching selector,
// in document order.
func (k *Kind[T]) GetAllBySelector(selector string) ([]T, error) {
	return k.registry.LookupAllBySelector(selector)
}

// All returns every live instance in construction order.
func (k *Kind[T]) All() []T {
	return k.registry.All()
}

// Len returns the number of live instances.
func (k *Kind[T]) Len() int {
	return k.registry.Len()
}

// NotifyPossibleRemoval runs a liveness pass for this kind. See Monitor.
func (k *Kind[T]) NotifyPossibleRemoval(ctx context.Context, removed []*html.Node) int {
	return k.monitor.NotifyPossibleRemoval(ctx, removed)
}

// unregisterOwn removes the entry for node only while it still belongs to b.
func (k *Kind[T]) unregisterOwn(node *html.Node, b *Base) bool {
	cur, ok := k.registry.Lookup(node)
	if !ok || cur.Instance() != b {
		return false
	}
	return k.registry.Unregister(node)
}

func (k *Kind[T]) instances() []*Base {
	all := k.registry.All()
	out := make([]*Base, 0, len(all))
	for _, inst := range all {
		out = append(out, inst.Instance())
	}
	return out
}

// Construct creates an instance of kind k over node. build receives the new
// Base and returns the widget embedding it; bindings declared inside build
// are in place before the instance becomes visible through lookups.
//
// Construct fails with E001 on the abstract kind, E003 for a nil node,
// E002 when node already has a live instance of this kind and E010 when
// build destroys the instance.
func Construct[T Component](k *Kind[T], node *html.Node, build func(*Base) T) (T, error) {
	var zero T
	if k.abstract {
		return zero, errors.New("E001").WithKind(k.name)
	}
	if node == nil {
		return zero, errors.New("E003").WithKind(k.name)
	}
	if _, ok := k.registry.Lookup(node); ok {
		return zero, errors.New("E002").WithKind(k.name).WithSubject(dom.Describe(node))
	}

	_, span := k.env.tracer.StartConstruct(context.Background(), k.name)
	b := newBase(k.env, k.name, node)
	inst := build(b)
	if b.destroyed {
		err := errors.New("E010").WithKind(k.name).WithSubject(dom.Describe(node))
		telemetry.End(span, err)
		return zero, err
	}
	if err := k.registry.Register(node, inst); err != nil {
		telemetry.End(span, err)
		return zero, err
	}
	b.release = func() bool {
		return k.unregisterOwn(node, b)
	}
	telemetry.End(span, nil)

	k.env.metrics.InstanceConstructed(k.name)
	k.env.emit(Event{
		Type: EventConstruct,
		Kind: k.name,
		Node: node,
	})
	return inst, nil
}
