package component

import (
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/uishka/internal/errors"
	"github.com/vango-dev/uishka/pkg/dom"
)

type accessKind uint8

const (
	accessText accessKind = iota
	accessMarkup
	accessAttribute
)

// AccessMode says how a bound location is read and written.
type AccessMode struct {
	kind accessKind
	attr string
}

var (
	// Text reads the concatenated descendant text and writes a single text node.
	Text = AccessMode{kind: accessText}

	// Markup reads the serialized children and replaces them with parsed markup.
	// Values are not sanitized.
	Markup = AccessMode{kind: accessMarkup}
)

// Attr reads and writes the named attribute. A missing attribute reads as "".
func Attr(name string) AccessMode {
	return AccessMode{kind: accessAttribute, attr: strings.ToLower(name)}
}

// ParseAccessMode parses "text", "markup" or "attribute:<name>".
// "textContent", "innerHTML" and bare attribute names are accepted too,
// and "" means text.
func ParseAccessMode(s string) (AccessMode, error) {
	switch s {
	case "", "text", "textContent":
		return Text, nil
	case "markup", "innerHTML":
		return Markup, nil
	}
	name := s
	if rest, ok := strings.CutPrefix(s, "attribute:"); ok {
		name = rest
	}
	if name == "" || strings.ContainsAny(name, " \t\n\"'<>/=") {
		return AccessMode{}, errors.New("E009").WithSubject(s)
	}
	return Attr(name), nil
}

// String returns the canonical spelling accepted by ParseAccessMode.
func (m AccessMode) String() string {
	switch m.kind {
	case accessMarkup:
		return "markup"
	case accessAttribute:
		return "attribute:" + m.attr
	default:
		return "text"
	}
}

func (m AccessMode) read(n *html.Node) string {
	switch m.kind {
	case accessMarkup:
		return dom.InnerHTML(n)
	case accessAttribute:
		v, _ := dom.Attribute(n, m.attr)
		return v
	default:
		return dom.TextContent(n)
	}
}

func (m AccessMode) write(doc *dom.Document, n *html.Node, value string) error {
	switch m.kind {
	case accessMarkup:
		return doc.SetInnerHTML(n, value)
	case accessAttribute:
		doc.SetAttribute(n, m.attr, value)
		return nil
	default:
		doc.SetTextContent(n, value)
		return nil
	}
}

// Locators naming the instance's own node.
const (
	LocatorSelf = "self"
	LocatorThis = "this"
)

// binding is one installed reactive property.
type binding struct {
	locator string
	target  *html.Node
	mode    AccessMode
	mirror  string
}

// resolve finds the bind target for locator within the instance's subtree.
func (b *Base) resolve(locator string) (*html.Node, error) {
	switch locator {
	case "", LocatorSelf, LocatorThis:
		return b.node, nil
	}
	return dom.QueryWithin(b.node, locator)
}

// Bind installs the reactive property name. The locator is resolved once,
// now; if it matches nothing the property is not installed, a warning is
// logged and Bind returns false. Binding an existing name replaces it.
func (b *Base) Bind(name, locator string, mode AccessMode) bool {
	target, err := b.resolve(locator)
	if err == nil && target == nil {
		err = errors.New("E004").WithKind(b.kind).WithSubject(locator)
	}
	if err != nil {
		b.bindWarning(name, locator, err)
		return false
	}

	b.bindings[name] = &binding{
		locator: locator,
		target:  target,
		mode:    mode,
		mirror:  mode.read(target),
	}
	return true
}

func (b *Base) bindWarning(name, locator string, err error) {
	code := "E004"
	if ue, ok := err.(*errors.UishkaError); ok {
		code = ue.Code
	}
	b.env.logger.Warn("reactive property not bound",
		slog.String("code", code),
		slog.String("kind", b.kind),
		slog.String("property", name),
		slog.String("locator", locator),
		slog.String("element", dom.Describe(b.node)),
		slog.String("error", err.Error()),
	)
	b.env.metrics.BindingWarning(b.kind)
	b.env.emit(Event{
		Type:     EventBindWarning,
		Kind:     b.kind,
		Node:     b.node,
		Property: name,
		Err:      err.Error(),
	})
}

// Has reports whether name is a bound reactive property.
func (b *Base) Has(name string) bool {
	_, ok := b.bindings[name]
	return ok
}

// Get returns the mirrored value of name.
func (b *Base) Get(name string) (string, bool) {
	p, ok := b.bindings[name]
	if !ok {
		return "", false
	}
	return p.mirror, true
}

// Set writes value to the property's bound location. A value equal to the
// mirror is not written.
func (b *Base) Set(name, value string) error {
	p, ok := b.bindings[name]
	if !ok {
		return errors.New("E006").WithKind(b.kind).WithSubject(name)
	}
	if p.mirror == value {
		b.env.metrics.PropertyWriteSuppressed(b.kind)
		return nil
	}
	if err := p.mode.write(b.doc, p.target, value); err != nil {
		return err
	}
	p.mirror = value
	b.env.metrics.PropertyWrite(b.kind)
	return nil
}

// Properties returns the bound property names, sorted.
func (b *Base) Properties() []string {
	names := make([]string, 0, len(b.bindings))
	for name := range b.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Binding describes an installed property.
type Binding struct {
	Name    string `json:"name"`
	Locator string `json:"locator"`
	Mode    string `json:"mode"`
	Value   string `json:"value"`
}

// Bindings returns a description of every bound property, sorted by name.
func (b *Base) Bindings() []Binding {
	out := make([]Binding, 0, len(b.bindings))
	for _, name := range b.Properties() {
		p := b.bindings[name]
		out = append(out, Binding{
			Name:    name,
			Locator: p.locator,
			Mode:    p.mode.String(),
			Value:   p.mirror,
		})
	}
	return out
}
