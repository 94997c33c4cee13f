package component

import (
	"bytes"
	"log/slog"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/uishka/pkg/dom"
)

const page = `<!DOCTYPE html>
<html><body>
  <div id="main">
    <div class="card" id="c1">
      <h3 class="card__title">Hello</h3>
      <p class="card__body">Some <b>bold</b> text</p>
      <img class="card__img" src="a.png" data-role="cover">
    </div>
    <div class="card" id="c2">
      <h3 class="card__title">Second</h3>
    </div>
  </div>
  <button class="btn" id="buy">Buy</button>
</body></html>`

// widget is the simplest concrete component.
type widget struct {
	*Base
}

func newWidget(b *Base) *widget {
	return &widget{Base: b}
}

type fixture struct {
	doc    *dom.Document
	env    *Env
	kind   *Kind[*widget]
	logs   *bytes.Buffer
	events []Event
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	f := &fixture{doc: doc, logs: &bytes.Buffer{}}
	logger := slog.New(slog.NewTextHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]Option{
		WithLogger(logger),
		WithListener(func(ev Event) { f.events = append(f.events, ev) }),
	}, opts...)
	f.env = NewEnv(doc, opts...)
	f.kind, err = Define[*widget](f.env, "Widget")
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	t.Cleanup(f.env.Close)
	return f
}

func (f *fixture) node(t *testing.T, sel string) *html.Node {
	t.Helper()
	n, err := f.doc.QuerySelector(sel)
	if err != nil || n == nil {
		t.Fatalf("QuerySelector(%q) = %v, %v", sel, n, err)
	}
	return n
}

func (f *fixture) construct(t *testing.T, sel string, setup ...func(*Base)) *widget {
	t.Helper()
	w, err := Construct(f.kind, f.node(t, sel), func(b *Base) *widget {
		for _, fn := range setup {
			fn(b)
		}
		return newWidget(b)
	})
	if err != nil {
		t.Fatalf("Construct(%q): %v", sel, err)
	}
	return w
}

func (f *fixture) eventTypes() []EventType {
	out := make([]EventType, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Type)
	}
	return out
}
