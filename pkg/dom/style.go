package dom

import (
	"strings"

	"golang.org/x/net/html"
)

type declaration struct {
	property string
	value    string
}

// StyleProperty returns the inline value of a CSS property, or "".
func StyleProperty(n *html.Node, property string) string {
	style, _ := Attribute(n, "style")
	property = strings.ToLower(strings.TrimSpace(property))
	for _, decl := range parseStyle(style) {
		if decl.property == property {
			return decl.value
		}
	}
	return ""
}

// SetStyleProperty sets an inline CSS property. An empty value removes it,
// and the style attribute is dropped once no declarations remain.
func (d *Document) SetStyleProperty(n *html.Node, property, value string) {
	style, had := Attribute(n, "style")
	property = strings.ToLower(strings.TrimSpace(property))
	value = strings.TrimSpace(value)

	decls := parseStyle(style)
	out := decls[:0]
	replaced := false
	for _, decl := range decls {
		if decl.property != property {
			out = append(out, decl)
			continue
		}
		if value != "" && !replaced {
			out = append(out, declaration{property: property, value: value})
			replaced = true
		}
	}
	if value != "" && !replaced {
		out = append(out, declaration{property: property, value: value})
	}

	if len(out) == 0 {
		if had {
			d.RemoveAttribute(n, "style")
		}
		return
	}
	d.SetAttribute(n, "style", formatStyle(out))
}

func parseStyle(style string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{property: prop, value: val})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, decl := range decls {
		parts[i] = decl.property + ": " + decl.value + ";"
	}
	return strings.Join(parts, " ")
}
