package widgets

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/uishka/pkg/component"
)

// Card is a container with a reactive "title" (text of the title element)
// and "body" (markup of the body element). A card without one of those
// elements simply lacks the property.
type Card struct {
	*component.Base
}

// NewCard binds a Card to node.
func (l *Library) NewCard(node *html.Node) (*Card, error) {
	title := "." + l.cfg.CardClass() + "__title"
	body := "." + l.cfg.CardClass() + "__body"
	return component.Construct(l.cards, node, func(b *component.Base) *Card {
		b.Bind("title", title, component.Text)
		b.Bind("body", body, component.Markup)
		return &Card{Base: b}
	})
}

// Title returns the card title.
func (c *Card) Title() string {
	title, _ := c.Get("title")
	return title
}

// SetTitle replaces the card title.
func (c *Card) SetTitle(title string) error {
	return c.Set("title", title)
}

// Body returns the card body markup.
func (c *Card) Body() string {
	body, _ := c.Get("body")
	return body
}

// SetBody replaces the card body with markup. The markup is not sanitized.
func (c *Card) SetBody(markup string) error {
	return c.Set("body", markup)
}
