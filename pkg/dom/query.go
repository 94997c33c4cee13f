package dom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/vango-dev/uishka/internal/errors"
)

// XPathPrefix marks a selector as an XPath expression instead of CSS.
const XPathPrefix = "xpath:"

// Selector is a compiled CSS selector group or XPath expression.
// Matches are always descendants of the scope node, in document order.
type Selector struct {
	source string
	css    cascadia.SelectorGroup
	xpath  *xpath.Expr
}

// Compile parses a selector. Selectors starting with "xpath:" are XPath, anything else is CSS.
func Compile(selector string) (*Selector, error) {
	if expr, ok := strings.CutPrefix(selector, XPathPrefix); ok {
		compiled, err := xpath.Compile(expr)
		if err != nil {
			return nil, errors.New("E005").WithSubject(selector).Wrap(err)
		}
		return &Selector{source: selector, xpath: compiled}, nil
	}

	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, errors.New("E005").WithSubject(selector).Wrap(err)
	}
	return &Selector{source: selector, css: group}, nil
}

// String returns the selector source.
func (s *Selector) String() string {
	return s.source
}

// First returns the first matching descendant of scope, or nil.
func (s *Selector) First(scope *html.Node) *html.Node {
	if s.xpath == nil {
		return cascadia.Query(scope, s.css)
	}
	for _, n := range htmlquery.QuerySelectorAll(scope, s.xpath) {
		if isDescendantElement(scope, n) {
			return n
		}
	}
	return nil
}

// All returns every matching descendant of scope.
func (s *Selector) All(scope *html.Node) []*html.Node {
	if s.xpath == nil {
		return cascadia.QueryAll(scope, s.css)
	}
	var out []*html.Node
	for _, n := range htmlquery.QuerySelectorAll(scope, s.xpath) {
		if isDescendantElement(scope, n) {
			out = append(out, n)
		}
	}
	return out
}

// isDescendantElement filters XPath results: absolute paths such as //div
// are evaluated from the document root, not from scope.
func isDescendantElement(scope, n *html.Node) bool {
	return n != scope && n.Type == html.ElementNode && isAncestor(scope, n)
}

// QuerySelector returns the first element in the document matching selector.
func (d *Document) QuerySelector(selector string) (*html.Node, error) {
	return QueryWithin(d.root, selector)
}

// QuerySelectorAll returns every element in the document matching selector.
func (d *Document) QuerySelectorAll(selector string) ([]*html.Node, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	return sel.All(d.root), nil
}

// QueryWithin returns the first descendant of scope matching selector.
func QueryWithin(scope *html.Node, selector string) (*html.Node, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	return sel.First(scope), nil
}
