// Package component binds Go values to DOM elements.
//
// A Kind is a named category of widget (Button, Card) defined on an Env.
// Each kind owns a Registry mapping nodes to live instances, and a liveness
// monitor that destroys instances whose node has left the document.
//
// Widgets embed *Base, which carries the node, the reactive property
// bindings and the lifecycle operations:
//
//	type Badge struct {
//	    *component.Base
//	}
//
//	kind, _ := component.Define[*Badge](env, "Badge")
//	badge, err := component.Construct(kind, node, func(b *component.Base) *Badge {
//	    b.Bind("label", ".badge__label", component.Text)
//	    return &Badge{Base: b}
//	})
//
//	badge.Set("label", "New")   // one DOM write
//	badge.Set("label", "New")   // suppressed
//
// All operations run on a single goroutine. Hosts with other goroutines
// route work through pkg/loop.
package component
