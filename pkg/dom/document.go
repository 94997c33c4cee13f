package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document plus its observers and event listeners.
type Document struct {
	root      *html.Node
	observers []*MutationObserver
	listeners map[*html.Node]map[string][]*listener
	mutations int
}

// NewDocument wraps an existing tree. root should be an html.DocumentNode.
func NewDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]*listener),
	}
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(root), nil
}

// ParseString parses a full HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the <body> element, or the root when the tree has none.
func (d *Document) Body() *html.Node {
	if body := findElement(d.root, atom.Body); body != nil {
		return body
	}
	return d.root
}

// Render serializes the whole document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// IsConnected reports whether n is attached to this document's tree.
func (d *Document) IsConnected(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == d.root {
			return true
		}
	}
	return false
}

// MutationCount returns the number of writes performed through the document.
func (d *Document) MutationCount() int {
	return d.mutations
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// ParseFragment parses markup in a <body> context and returns the detached top-level nodes.
func (d *Document) ParseFragment(markup string) ([]*html.Node, error) {
	return parseFragment(markup, d.CreateElement("body"))
}

func parseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func isAncestor(ancestor, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}
