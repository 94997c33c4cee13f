package component

import (
	"slices"

	"golang.org/x/net/html"

	"github.com/vango-dev/uishka/internal/errors"
)

// Querier resolves document-wide selectors. *dom.Document implements it.
type Querier interface {
	QuerySelector(selector string) (*html.Node, error)
	QuerySelectorAll(selector string) ([]*html.Node, error)
}

// Registry maps nodes to the live instances of one kind.
// At most one instance is registered per node.
type Registry[T any] struct {
	q       Querier
	entries map[*html.Node]T
	order   []*html.Node
}

// NewRegistry creates an empty registry resolving selectors through q.
func NewRegistry[T any](q Querier) *Registry[T] {
	return &Registry[T]{
		q:       q,
		entries: make(map[*html.Node]T),
	}
}

// Register associates node with instance.
func (r *Registry[T]) Register(node *html.Node, instance T) error {
	if node == nil {
		return errors.New("E003")
	}
	if _, ok := r.entries[node]; ok {
		return errors.New("E002")
	}
	r.entries[node] = instance
	r.order = append(r.order, node)
	return nil
}

// Lookup returns the instance registered for node.
func (r *Registry[T]) Lookup(node *html.Node) (T, bool) {
	inst, ok := r.entries[node]
	return inst, ok
}

// LookupBySelector resolves the first document match of selector and looks it up.
// The error is non-nil only for an invalid selector.
func (r *Registry[T]) LookupBySelector(selector string) (T, bool, error) {
	var zero T
	node, err := r.q.QuerySelector(selector)
	if err != nil {
		return zero, false, err
	}
	if node == nil {
		return zero, false, nil
	}
	inst, ok := r.entries[node]
	return inst, ok, nil
}

// LookupAllBySelector returns the instances registered for the matches of
// selector, in document order.
func (r *Registry[T]) LookupAllBySelector(selector string) ([]T, error) {
	nodes, err := r.q.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	var out []T
	for _, n := range nodes {
		if inst, ok := r.entries[n]; ok {
			out = append(out, inst)
		}
	}
	return out, nil
}

// All returns every registered instance in registration order.
func (r *Registry[T]) All() []T {
	out := make([]T, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.entries[n])
	}
	return out
}

// Nodes returns the registered nodes in registration order.
func (r *Registry[T]) Nodes() []*html.Node {
	return slices.Clone(r.order)
}

// Unregister removes the entry for node and reports whether one existed.
func (r *Registry[T]) Unregister(node *html.Node) bool {
	if _, ok := r.entries[node]; !ok {
		return false
	}
	delete(r.entries, node)
	if i := slices.Index(r.order, node); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true
}

// Len returns the number of registered instances.
func (r *Registry[T]) Len() int {
	return len(r.entries)
}
