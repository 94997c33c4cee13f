package dom

import (
	"slices"

	"golang.org/x/net/html"
)

// MutationType identifies what a MutationRecord describes.
type MutationType uint8

const (
	ChildList MutationType = iota
	Attributes
	CharacterData
)

// String returns the string representation of the MutationType.
func (t MutationType) String() string {
	switch t {
	case ChildList:
		return "childList"
	case Attributes:
		return "attributes"
	case CharacterData:
		return "characterData"
	default:
		return "unknown"
	}
}

// MutationRecord describes a single write.
type MutationRecord struct {
	Type          MutationType
	Target        *html.Node
	AddedNodes    []*html.Node
	RemovedNodes  []*html.Node
	AttributeName string
	OldValue      string
}

// MutationObserverInit selects which records an observer receives.
type MutationObserverInit struct {
	ChildList     bool
	Attributes    bool
	CharacterData bool
	// Subtree extends observation from the target to all of its descendants.
	Subtree bool
}

// MutationObserver collects records for one target until the next Flush.
type MutationObserver struct {
	doc       *Document
	target    *html.Node
	opts      MutationObserverInit
	callback  func([]MutationRecord)
	pending   []MutationRecord
	connected bool
}

// maxFlushRounds bounds Flush when callbacks keep producing records.
const maxFlushRounds = 64

// Observe registers callback for mutations under target.
func (d *Document) Observe(target *html.Node, opts MutationObserverInit, callback func([]MutationRecord)) *MutationObserver {
	o := &MutationObserver{
		doc:       d,
		target:    target,
		opts:      opts,
		callback:  callback,
		connected: true,
	}
	d.observers = append(d.observers, o)
	return o
}

// Disconnect stops observation and drops pending records.
func (o *MutationObserver) Disconnect() {
	if !o.connected {
		return
	}
	o.connected = false
	o.pending = nil
	o.doc.observers = slices.DeleteFunc(o.doc.observers, func(x *MutationObserver) bool {
		return x == o
	})
}

// TakeRecords returns and clears the pending records without invoking the callback.
func (o *MutationObserver) TakeRecords() []MutationRecord {
	recs := o.pending
	o.pending = nil
	return recs
}

// Flush delivers pending records, one batch per observer, and repeats while
// callbacks produce new records. It returns the number of batches delivered.
func (d *Document) Flush() int {
	delivered := 0
	for round := 0; round < maxFlushRounds; round++ {
		progressed := false
		for _, o := range slices.Clone(d.observers) {
			if !o.connected {
				continue
			}
			recs := o.TakeRecords()
			if len(recs) == 0 {
				continue
			}
			progressed = true
			delivered++
			o.callback(recs)
		}
		if !progressed {
			break
		}
	}
	return delivered
}

// Pending reports whether any observer has undelivered records.
func (d *Document) Pending() bool {
	for _, o := range d.observers {
		if len(o.pending) > 0 {
			return true
		}
	}
	return false
}

func (d *Document) record(rec MutationRecord) {
	d.mutations++
	for _, o := range d.observers {
		if o.wants(rec) {
			o.pending = append(o.pending, rec)
		}
	}
}

func (o *MutationObserver) wants(rec MutationRecord) bool {
	switch rec.Type {
	case ChildList:
		if !o.opts.ChildList {
			return false
		}
	case Attributes:
		if !o.opts.Attributes {
			return false
		}
	case CharacterData:
		if !o.opts.CharacterData {
			return false
		}
	}
	if rec.Target == o.target {
		return true
	}
	return o.opts.Subtree && isAncestor(o.target, rec.Target)
}
