package component

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/uishka/internal/errors"
	"github.com/vango-dev/uishka/pkg/dom"
	"github.com/vango-dev/uishka/pkg/metrics"
)

// Component is implemented by every instance type. Embedding *Base provides it.
type Component interface {
	Instance() *Base
}

// Base is the state shared by every component instance: the owning node,
// the reactive bindings and the lifecycle.
type Base struct {
	env  *Env
	doc  *dom.Document
	kind string
	node *html.Node

	bindings map[string]*binding
	fields   map[string]any
	frozen   bool

	destroyed bool
	release   func() bool
	onDestroy []func()
}

func newBase(env *Env, kind string, node *html.Node) *Base {
	return &Base{
		env:      env,
		doc:      env.doc,
		kind:     kind,
		node:     node,
		bindings: make(map[string]*binding),
		fields:   make(map[string]any),
	}
}

// Instance returns b.
func (b *Base) Instance() *Base {
	return b
}

// Node returns the element the instance is bound to.
func (b *Base) Node() *html.Node {
	return b.node
}

// Kind returns the name of the instance's kind.
func (b *Base) Kind() string {
	return b.kind
}

// Document returns the document the instance lives in.
func (b *Base) Document() *dom.Document {
	return b.doc
}

// Destroyed reports whether the instance has been torn down.
func (b *Base) Destroyed() bool {
	return b.destroyed
}

// Show clears the inline display style.
func (b *Base) Show() {
	b.doc.SetStyleProperty(b.node, "display", "")
}

// Hide sets display: none.
func (b *Base) Hide() {
	b.doc.SetStyleProperty(b.node, "display", "none")
}

// Enable removes the disabled attribute.
func (b *Base) Enable() {
	b.doc.RemoveAttribute(b.node, "disabled")
}

// Disable sets the disabled attribute.
func (b *Base) Disable() {
	b.doc.SetAttribute(b.node, "disabled", "")
}

// Disabled reports whether the node carries the disabled attribute.
func (b *Base) Disabled() bool {
	return dom.HasAttribute(b.node, "disabled")
}

// Hidden reports whether the node is hidden with an inline display: none.
func (b *Base) Hidden() bool {
	return dom.StyleProperty(b.node, "display") == "none"
}

// OnDestroy registers fn to run when the instance is destroyed.
// Widgets use it to remove event listeners.
func (b *Base) OnDestroy(fn func()) {
	b.onDestroy = append(b.onDestroy, fn)
}

// Destroy removes the instance from its kind's registry. Calling it again
// does nothing. Bindings stay attached to the node but nothing drives them.
func (b *Base) Destroy() {
	b.destroy(metrics.ReasonExplicit)
}

func (b *Base) destroy(reason string) {
	if b.destroyed {
		return
	}
	b.destroyed = true
	registered := b.release != nil
	if registered {
		b.release()
	}
	for i := len(b.onDestroy) - 1; i >= 0; i-- {
		b.onDestroy[i]()
	}
	b.onDestroy = nil

	// Destroyed inside its build function: never constructed, nothing to report.
	if !registered {
		return
	}
	b.env.metrics.InstanceDestroyed(b.kind, reason)
	b.env.emit(Event{
		Type:   EventDestroy,
		Kind:   b.kind,
		Node:   b.node,
		Reason: reason,
	})
}

// Freeze seals the field bag: SetField can update existing keys but no
// longer add new ones. Reactive properties are unaffected.
func (b *Base) Freeze() {
	b.frozen = true
}

// Frozen reports whether Freeze has been called.
func (b *Base) Frozen() bool {
	return b.frozen
}

// Field returns an ordinary, non-reactive field.
func (b *Base) Field(key string) (any, bool) {
	v, ok := b.fields[key]
	return v, ok
}

// SetField stores an ordinary field. Adding a key to a frozen instance fails.
func (b *Base) SetField(key string, value any) error {
	if _, ok := b.fields[key]; !ok && b.frozen {
		return errors.New("E007").WithKind(b.kind).WithSubject(key)
	}
	b.fields[key] = value
	return nil
}
