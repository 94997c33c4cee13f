package uitest

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/uishka/internal/config"
	"github.com/vango-dev/uishka/pkg/component"
	"github.com/vango-dev/uishka/pkg/dom"
	"github.com/vango-dev/uishka/pkg/widgets"
)

// Builder allows fluent construction of test harnesses.
type Builder struct {
	t      testing.TB
	markup string
	cfg    *config.Config
	opts   []component.Option
	mount  bool
}

// New creates a harness builder for markup. A fragment without <html> is
// placed in the body.
//
// Example:
//
//	h := uitest.New(t, `<div class="uishka-card">...</div>`).Build()
func New(t testing.TB, markup string) *Builder {
	return &Builder{
		t:      t,
		markup: markup,
		cfg:    config.New(),
		mount:  true,
	}
}

// WithConfig sets the widget configuration.
//
// Example:
//
//	cfg := config.New()
//	cfg.Button.LoadingLabel = "Wait"
//	h := uitest.New(t, page).WithConfig(cfg).Build()
func (b *Builder) WithConfig(cfg *config.Config) *Builder {
	b.cfg = cfg
	return b
}

// WithOption adds an Env option.
func (b *Builder) WithOption(opt component.Option) *Builder {
	b.opts = append(b.opts, opt)
	return b
}

// WithoutMount skips Library.Mount.
func (b *Builder) WithoutMount() *Builder {
	b.mount = false
	return b
}

// Build parses the page, registers the widgets and mounts them.
// The environment is closed when the test ends.
func (b *Builder) Build() *Harness {
	b.t.Helper()

	doc, err := dom.ParseString(b.markup)
	if err != nil {
		b.t.Fatalf("uitest: parse page: %v", err)
	}

	h := &Harness{t: b.t, Doc: doc, logs: &bytes.Buffer{}}
	logger := slog.New(slog.NewTextHandler(h.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts := append([]component.Option{
		component.WithLogger(logger),
		component.WithListener(func(ev component.Event) { h.Events = append(h.Events, ev) }),
	}, b.opts...)

	h.Env = component.NewEnv(doc, opts...)
	b.t.Cleanup(h.Env.Close)

	h.Lib, err = widgets.Register(h.Env, b.cfg)
	if err != nil {
		b.t.Fatalf("uitest: register widgets: %v", err)
	}
	if b.mount {
		if h.Mounted, err = h.Lib.Mount(); err != nil {
			b.t.Fatalf("uitest: mount: %v", err)
		}
	}
	return h
}

// Harness is a parsed page with the widget library registered.
type Harness struct {
	t       testing.TB
	logs    *bytes.Buffer
	Doc     *dom.Document
	Env     *component.Env
	Lib     *widgets.Library
	Mounted widgets.MountResult

	// Events holds every lifecycle event in order.
	Events []component.Event
}

// Node returns the first element matching selector, failing the test if none does.
func (h *Harness) Node(selector string) *html.Node {
	h.t.Helper()
	n, err := h.Doc.QuerySelector(selector)
	if err != nil {
		h.t.Fatalf("uitest: %v", err)
	}
	if n == nil {
		h.t.Fatalf("uitest: no element matches %q", selector)
	}
	return n
}

// Button returns the Button bound to the element matching selector.
func (h *Harness) Button(selector string) *widgets.Button {
	h.t.Helper()
	btn, ok := h.Lib.Buttons().Get(h.Node(selector))
	if !ok {
		h.t.Fatalf("uitest: no Button bound to %q", selector)
	}
	return btn
}

// Card returns the Card bound to the element matching selector.
func (h *Harness) Card(selector string) *widgets.Card {
	h.t.Helper()
	card, ok := h.Lib.Cards().Get(h.Node(selector))
	if !ok {
		h.t.Fatalf("uitest: no Card bound to %q", selector)
	}
	return card
}

// Click dispatches a click on the element matching selector and runs the checkpoint.
func (h *Harness) Click(selector string) {
	h.t.Helper()
	h.Doc.Click(h.Node(selector))
	h.Doc.Flush()
}

// Remove detaches every element matching selector and runs the checkpoint.
// It returns the number of elements removed.
func (h *Harness) Remove(selector string) int {
	h.t.Helper()
	nodes, err := h.Doc.QuerySelectorAll(selector)
	if err != nil {
		h.t.Fatalf("uitest: %v", err)
	}
	for _, n := range nodes {
		h.Doc.Remove(n)
	}
	h.Doc.Flush()
	return len(nodes)
}

// Logs returns everything logged so far.
func (h *Harness) Logs() string {
	return h.logs.String()
}

// Render returns the current document as HTML.
func (h *Harness) Render() string {
	var b strings.Builder
	if err := h.Doc.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// ExpectText asserts the text content of n.
//
// Example:
//
//	uitest.ExpectText(t, h.Node(".uishka-card__title"), "World")
func ExpectText(t testing.TB, n *html.Node, expected string) {
	t.Helper()
	if got := dom.TextContent(n); got != expected {
		t.Errorf("expected %s text %q, got %q", dom.Describe(n), expected, got)
	}
}

// ExpectAttribute asserts that n carries attr with value.
//
// Example:
//
//	uitest.ExpectAttribute(t, h.Node("#pay"), "disabled", "")
func ExpectAttribute(t testing.TB, n *html.Node, attr, value string) {
	t.Helper()
	got, ok := dom.Attribute(n, attr)
	if !ok {
		t.Errorf("expected %s to have attribute %s", dom.Describe(n), attr)
		return
	}
	if got != value {
		t.Errorf("expected %s %s=%q, got %q", dom.Describe(n), attr, value, got)
	}
}

// ExpectNoAttribute asserts that n does not carry attr.
func ExpectNoAttribute(t testing.TB, n *html.Node, attr string) {
	t.Helper()
	if dom.HasAttribute(n, attr) {
		t.Errorf("expected %s to have no attribute %s", dom.Describe(n), attr)
	}
}

// ExpectContains asserts that the rendered document contains expected.
func ExpectContains(t testing.TB, h *Harness, expected string) {
	t.Helper()
	out := h.Render()
	if !strings.Contains(out, expected) {
		t.Errorf("expected document to contain %q, got:\n%s", expected, truncate(out, 500))
	}
}

// ExpectNotContains asserts that the rendered document does not contain unexpected.
func ExpectNotContains(t testing.TB, h *Harness, unexpected string) {
	t.Helper()
	out := h.Render()
	if strings.Contains(out, unexpected) {
		t.Errorf("expected document to NOT contain %q, got:\n%s", unexpected, truncate(out, 500))
	}
}

// ExpectLog asserts that something logged so far contains expected.
//
// Example:
//
//	uitest.ExpectLog(t, h, "code=E004")
func ExpectLog(t testing.TB, h *Harness, expected string) {
	t.Helper()
	if logs := h.Logs(); !strings.Contains(logs, expected) {
		t.Errorf("expected log to contain %q, got:\n%s", expected, truncate(logs, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
