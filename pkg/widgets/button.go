package widgets

import (
	"time"

	"golang.org/x/net/html"

	"github.com/vango-dev/uishka/pkg/component"
	"github.com/vango-dev/uishka/pkg/dom"
)

// ButtonClickEvent is dispatched, bubbling, when an enabled Button is clicked.
const ButtonClickEvent = "ui-button-click"

// ButtonClick is the Detail of a ButtonClickEvent.
type ButtonClick struct {
	Timestamp time.Time
	Component *Button
}

// Button is a clickable element whose text is the reactive property "text".
type Button struct {
	*component.Base

	loadingLabel string
	savedText    string
	clicks       int
	initialized  bool
	loading      bool
}

// NewButton binds a Button to node.
func (l *Library) NewButton(node *html.Node) (*Button, error) {
	return component.Construct(l.buttons, node, func(b *component.Base) *Button {
		b.Bind("text", component.LocatorSelf, component.Text)
		text, _ := b.Get("text")
		return &Button{
			Base:         b,
			loadingLabel: l.cfg.Button.LoadingLabel,
			savedText:    text,
		}
	})
}

// Init attaches the click handler. Calling it again does nothing.
func (b *Button) Init() {
	if b.initialized {
		return
	}
	b.initialized = true
	remove := b.Document().AddEventListener(b.Node(), "click", b.handleClick)
	b.OnDestroy(remove)
}

func (b *Button) handleClick(*dom.Event) {
	if b.Disabled() {
		return
	}
	b.clicks++
	b.Document().Dispatch(b.Node(), dom.NewEvent(ButtonClickEvent, true, ButtonClick{
		Timestamp: time.Now(),
		Component: b,
	}))
}

// ClickCount returns the number of clicks handled while enabled.
func (b *Button) ClickCount() int {
	return b.clicks
}

// Text returns the button text.
func (b *Button) Text() string {
	text, _ := b.Get("text")
	return text
}

// SetText replaces the button text.
func (b *Button) SetText(text string) error {
	return b.Set("text", text)
}

// Loading remembers the current text, shows the loading label and disables
// the button. It does nothing while the button is already loading, so Reset
// restores the text from before the first call.
func (b *Button) Loading() error {
	if b.loading {
		return nil
	}
	b.savedText = b.Text()
	if err := b.Set("text", b.loadingLabel); err != nil {
		return err
	}
	b.loading = true
	b.Disable()
	return nil
}

// IsLoading reports whether Loading is in effect.
func (b *Button) IsLoading() bool {
	return b.loading
}

// Reset restores the text saved by Loading and enables the button.
func (b *Button) Reset() error {
	if err := b.Set("text", b.savedText); err != nil {
		return err
	}
	b.loading = false
	b.Enable()
	return nil
}
