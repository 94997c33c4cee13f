package dom

import (
	"time"

	"golang.org/x/net/html"
)

// Event is dispatched to listeners on a node and, when Bubbles is set, its ancestors.
type Event struct {
	Type          string
	Detail        any
	Bubbles       bool
	Timestamp     time.Time
	Target        *html.Node
	CurrentTarget *html.Node

	stopped bool
}

// NewEvent creates an event stamped with the current time.
func NewEvent(typ string, bubbles bool, detail any) *Event {
	return &Event{
		Type:      typ,
		Detail:    detail,
		Bubbles:   bubbles,
		Timestamp: time.Now(),
	}
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles a dispatched event.
type Listener func(*Event)

type listener struct {
	fn Listener
}

// AddEventListener registers fn for events of typ on n and returns a function removing it.
func (d *Document) AddEventListener(n *html.Node, typ string, fn Listener) func() {
	byType := d.listeners[n]
	if byType == nil {
		byType = make(map[string][]*listener)
		d.listeners[n] = byType
	}
	l := &listener{fn: fn}
	byType[typ] = append(byType[typ], l)

	return func() {
		list := d.listeners[n][typ]
		for i, x := range list {
			if x == l {
				d.listeners[n][typ] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(d.listeners[n][typ]) == 0 {
			delete(d.listeners[n], typ)
		}
		if len(d.listeners[n]) == 0 {
			delete(d.listeners, n)
		}
	}
}

// Dispatch delivers e to target and, if it bubbles, to each ancestor in turn.
// It reports whether any listener ran.
func (d *Document) Dispatch(target *html.Node, e *Event) bool {
	e.Target = target
	handled := false
	for cur := target; cur != nil; cur = cur.Parent {
		list := d.listeners[cur][e.Type]
		if len(list) > 0 {
			e.CurrentTarget = cur
			for _, l := range append([]*listener(nil), list...) {
				l.fn(e)
				handled = true
			}
		}
		if !e.Bubbles || e.stopped {
			break
		}
	}
	e.CurrentTarget = nil
	return handled
}

// Click dispatches a bubbling click event on n.
func (d *Document) Click(n *html.Node) bool {
	return d.Dispatch(n, NewEvent("click", true, nil))
}
