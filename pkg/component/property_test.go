package component

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/uishka/internal/errors"
	"github.com/vango-dev/uishka/pkg/dom"
)

func TestBind_TextRoundTrip(t *testing.T) {
	f := newFixture(t)
	w := f.construct(t, "#c1", func(b *Base) {
		if !b.Bind("title", ".card__title", Text) {
			t.Fatal("Bind(title) failed")
		}
	})

	if got, ok := w.Get("title"); !ok || got != "Hello" {
		t.Fatalf("Get(title) = %q, %v; want Hello", got, ok)
	}
	if err := w.Set("title", "World"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := w.Get("title"); got != "World" {
		t.Errorf("Get after Set = %q, want World", got)
	}
	title := f.node(t, "#c1 .card__title")
	if got := dom.TextContent(title); got != "World" {
		t.Errorf("DOM text = %q, want World", got)
	}
	if got := dom.TextContent(f.node(t, "#c1 .card__body")); got != "Some bold text" {
		t.Errorf("sibling changed: %q", got)
	}
}

func TestSet_SuppressesEqualWrites(t *testing.T) {
	f := newFixture(t)
	w := f.construct(t, "#buy", func(b *Base) {
		b.Bind("text", "", Text)
	})

	before := f.doc.MutationCount()
	if err := w.Set("text", "Buy"); err != nil {
		t.Fatal(err)
	}
	if got := f.doc.MutationCount() - before; got != 0 {
		t.Errorf("same value produced %d writes, want 0", got)
	}

	if err := w.Set("text", "Sold"); err != nil {
		t.Fatal(err)
	}
	if got := f.doc.MutationCount() - before; got != 1 {
		t.Errorf("new value produced %d writes, want 1", got)
	}
}

func TestBind_MissingLocator(t *testing.T) {
	f := newFixture(t)
	w := f.construct(t, "#c2", func(b *Base) {
		if b.Bind("body", ".card__body", Markup) {
			t.Error("Bind should fail for a locator matching nothing")
		}
	})

	if w.Has("body") {
		t.Error("property should be absent")
	}
	if _, ok := w.Get("body"); ok {
		t.Error("Get should report an undeclared property")
	}
	if err := w.Set("body", "x"); !stderrors.Is(err, errors.New("E006")) {
		t.Errorf("Set error = %v, want E006", err)
	}

	logs := f.logs.String()
	for _, want := range []string{"level=WARN", "code=E004", "property=body", "locator=.card__body"} {
		if !strings.Contains(logs, want) {
			t.Errorf("diagnostic missing %q in %s", want, logs)
		}
	}

	if diff := cmp.Diff([]EventType{EventBindWarning, EventConstruct}, f.eventTypes()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if f.events[0].Property != "body" || f.events[0].Element != "div#c2.card" {
		t.Errorf("bind-warning event = %+v", f.events[0])
	}
}

func TestBind_InvalidSelector(t *testing.T) {
	f := newFixture(t)
	w := f.construct(t, "#c1")

	if w.Bind("bad", "[[", Text) {
		t.Error("Bind should fail for an invalid selector")
	}
	if !strings.Contains(f.logs.String(), "code=E005") {
		t.Errorf("diagnostic should carry E005: %s", f.logs.String())
	}
}

func TestBind_Modes(t *testing.T) {
	f := newFixture(t)
	w := f.construct(t, "#c1", func(b *Base) {
		b.Bind("src", ".card__img", Attr("src"))
		b.Bind("role", ".card__img", Attr("data-role"))
		b.Bind("alt", ".card__img", Attr("alt"))
		b.Bind("body", ".card__body", Markup)
		b.Bind("heading", "xpath:.//h3", Text)
		b.Bind("id", "self", Attr("id"))
		b.Bind("own", "this", Attr("class"))
	})

	tests := []struct {
		name string
		want string
	}{
		{"src", "a.png"},
		{"role", "cover"},
		{"alt", ""},
		{"body", "Some <b>bold</b> text"},
		{"heading", "Hello"},
		{"id", "c1"},
		{"own", "card"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := w.Get(tt.name)
			if !ok || got != tt.want {
				t.Errorf("Get(%q) = %q, %v; want %q", tt.name, got, ok, tt.want)
			}
		})
	}

	img := f.node(t, "#c1 .card__img")
	if err := w.Set("src", "b.png"); err != nil {
		t.Fatal(err)
	}
	if v, _ := dom.Attribute(img, "src"); v != "b.png" {
		t.Errorf("src attribute = %q, want b.png", v)
	}

	body := f.node(t, "#c1 .card__body")
	if err := w.Set("body", "<i>new</i> body"); err != nil {
		t.Fatal(err)
	}
	if got := dom.InnerHTML(body); got != "<i>new</i> body" {
		t.Errorf("markup = %q", got)
	}
	if got := dom.TextContent(body); got != "new body" {
		t.Errorf("text = %q", got)
	}

	if diff := cmp.Diff([]string{"alt", "body", "heading", "id", "own", "role", "src"}, w.Properties()); diff != "" {
		t.Errorf("Properties mismatch (-want +got):\n%s", diff)
	}
}

func TestBind_RebindReplaces(t *testing.T) {
	f := newFixture(t)
	w := f.construct(t, "#c1", func(b *Base) {
		b.Bind("label", ".card__title", Text)
	})

	if !w.Bind("label", ".card__img", Attr("src")) {
		t.Fatal("rebind failed")
	}
	if got, _ := w.Get("label"); got != "a.png" {
		t.Errorf("Get after rebind = %q, want a.png", got)
	}

	// A failed rebind keeps the previous binding.
	if w.Bind("label", ".missing", Text) {
		t.Fatal("rebind to a missing locator should fail")
	}
	if got, ok := w.Get("label"); !ok || got != "a.png" {
		t.Errorf("Get after failed rebind = %q, %v; want a.png", got, ok)
	}

	if diff := cmp.Diff([]Binding{{Name: "label", Locator: ".card__img", Mode: "attribute:src", Value: "a.png"}}, w.Bindings()); diff != "" {
		t.Errorf("Bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestBind_AfterConstruction(t *testing.T) {
	f := newFixture(t)
	w := f.construct(t, "#c2")
	if !w.Bind("title", ".card__title", Text) {
		t.Fatal("late Bind failed")
	}
	if got, _ := w.Get("title"); got != "Second" {
		t.Errorf("Get = %q, want Second", got)
	}
}

func TestSet_EmptyText(t *testing.T) {
	f := newFixture(t)
	w := f.construct(t, "#buy", func(b *Base) {
		b.Bind("text", "", Text)
	})
	if err := w.Set("text", ""); err != nil {
		t.Fatal(err)
	}
	if n := f.node(t, "#buy"); n.FirstChild != nil {
		t.Error("empty text should leave no children")
	}
	if got, _ := w.Get("text"); got != "" {
		t.Errorf("Get = %q, want empty", got)
	}
}

func TestParseAccessMode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "text", false},
		{"text", "text", false},
		{"textContent", "text", false},
		{"markup", "markup", false},
		{"innerHTML", "markup", false},
		{"attribute:href", "attribute:href", false},
		{"attribute:Data-ID", "attribute:data-id", false},
		{"src", "attribute:src", false},
		{"data-role", "attribute:data-role", false},
		{"attribute:", "", true},
		{"bad name", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAccessMode(tt.in)
			if tt.wantErr {
				if !stderrors.Is(err, errors.New("E009")) {
					t.Errorf("error = %v, want E009", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseAccessMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
