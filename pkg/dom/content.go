package dom

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	return htmlquery.InnerText(n)
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	return htmlquery.OutputHTML(n, false)
}

// Attribute returns the value of the named attribute and whether it is present.
func Attribute(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	name = strings.ToLower(name)
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// HasAttribute reports whether the named attribute is present on n.
func HasAttribute(n *html.Node, name string) bool {
	_, ok := Attribute(n, name)
	return ok
}

// SetTextContent replaces the children of n with a single text node
// (no node at all for ""). On a text node it replaces the character data.
func (d *Document) SetTextContent(n *html.Node, text string) {
	if n.Type == html.TextNode || n.Type == html.CommentNode {
		old := n.Data
		n.Data = text
		d.record(MutationRecord{Type: CharacterData, Target: n, OldValue: old})
		return
	}

	removed := detachChildren(n)
	var added []*html.Node
	if text != "" {
		t := &html.Node{Type: html.TextNode, Data: text}
		n.AppendChild(t)
		added = []*html.Node{t}
	}
	d.record(MutationRecord{Type: ChildList, Target: n, AddedNodes: added, RemovedNodes: removed})
}

// SetInnerHTML replaces the children of n with the parsed markup.
// The markup is not sanitized.
func (d *Document) SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := parseFragment(markup, n)
	if err != nil {
		return err
	}
	removed := detachChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	d.record(MutationRecord{Type: ChildList, Target: n, AddedNodes: nodes, RemovedNodes: removed})
	return nil
}

// SetAttribute sets the named attribute on n.
func (d *Document) SetAttribute(n *html.Node, name, value string) {
	name = strings.ToLower(name)
	old, had := "", false
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			old, had = n.Attr[i].Val, true
			n.Attr[i].Val = value
			break
		}
	}
	if !had {
		n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
	}
	d.record(MutationRecord{Type: Attributes, Target: n, AttributeName: name, OldValue: old})
}

// RemoveAttribute removes the named attribute from n. Removing an absent
// attribute is not a mutation.
func (d *Document) RemoveAttribute(n *html.Node, name string) {
	name = strings.ToLower(name)
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			old := n.Attr[i].Val
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			d.record(MutationRecord{Type: Attributes, Target: n, AttributeName: name, OldValue: old})
			return
		}
	}
}

// AppendChild moves child under parent as its last child.
func (d *Document) AppendChild(parent, child *html.Node) {
	if child.Parent != nil {
		d.RemoveChild(child.Parent, child)
	}
	parent.AppendChild(child)
	d.record(MutationRecord{Type: ChildList, Target: parent, AddedNodes: []*html.Node{child}})
}

// RemoveChild detaches child from parent. It is a no-op when child is not a child of parent.
func (d *Document) RemoveChild(parent, child *html.Node) {
	if child.Parent != parent {
		return
	}
	parent.RemoveChild(child)
	d.record(MutationRecord{Type: ChildList, Target: parent, RemovedNodes: []*html.Node{child}})
}

// Remove detaches n from its parent, if any.
func (d *Document) Remove(n *html.Node) {
	if n.Parent != nil {
		d.RemoveChild(n.Parent, n)
	}
}

func detachChildren(n *html.Node) []*html.Node {
	var removed []*html.Node
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		removed = append(removed, c)
		c = next
	}
	return removed
}

// Describe returns a short CSS-like label for n, such as `button#buy.uishka-btn`.
func Describe(n *html.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case html.ElementNode:
	case html.TextNode:
		return "#text"
	case html.DocumentNode:
		return "#document"
	default:
		return "#node"
	}
	var b strings.Builder
	b.WriteString(n.Data)
	if id, ok := Attribute(n, "id"); ok && id != "" {
		b.WriteByte('#')
		b.WriteString(id)
	}
	if class, ok := Attribute(n, "class"); ok {
		for _, c := range strings.Fields(class) {
			b.WriteByte('.')
			b.WriteString(c)
		}
	}
	return b.String()
}
