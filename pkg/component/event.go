package component

import (
	"time"

	"golang.org/x/net/html"
)

// EventType identifies a lifecycle event.
type EventType string

const (
	EventConstruct   EventType = "construct"
	EventDestroy     EventType = "destroy"
	EventBindWarning EventType = "bind-warning"
)

// Event reports a lifecycle change to the listeners registered with WithListener.
type Event struct {
	Type     EventType  `json:"type"`
	Kind     string     `json:"kind"`
	Node     *html.Node `json:"-"`
	Element  string     `json:"element"`
	Property string     `json:"property,omitempty"`
	Reason   string     `json:"reason,omitempty"`
	Err      string     `json:"error,omitempty"`
	Time     time.Time  `json:"time"`
}
