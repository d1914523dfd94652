package formjson

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultClass is the marker class identifying the form to serialize.
const DefaultClass = "form"

// Document is a parsed HTML page.
type Document struct {
	root   *html.Node
	quirks bool
}

// Parse parses an HTML page from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("form: failed to parse document: %w", err)
	}
	return NewDocument(root), nil
}

// ParseString is a convenience function that parses an HTML page held in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// NewDocument wraps an already parsed tree.
func NewDocument(root *html.Node) *Document {
	return &Document{root: root, quirks: quirksMode(root)}
}

// quirksMode reports whether a page renders in quirks mode: it has no
// doctype, or its doctype does not name html. Legacy public identifiers are
// not classified.
func quirksMode(root *html.Node) bool {
	if root == nil {
		return false
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			public, _ := attr(c, "public")
			return c.Data != "html" || strings.EqualFold(public, "html")
		}
	}
	return true
}

// Root returns the document node. Changes made to the tree are observed by
// every later lookup.
func (d *Document) Root() *html.Node {
	return d.root
}

// FirstByClass returns the first element in document order whose class list
// contains class. Pages in quirks mode match class names ASCII
// case-insensitively. It returns [ErrFormNotFound] when there is no such element
// and [ErrNotForm] when the element is not a form.
func (d *Document) FirstByClass(class string) (*FormElement, error) {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && hasClass(n, class, d.quirks) {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: class %q", ErrFormNotFound, class)
	}
	if found.DataAtom != atom.Form {
		return nil, fmt.Errorf("%w: class %q is on <%s>", ErrNotForm, class, found.Data)
	}
	return &FormElement{doc: d, node: found}, nil
}

// walk visits n and its descendants in tree order until fn returns false.
// It reports whether the walk ran to completion.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attr(n, key)
	return ok
}

func hasClass(n *html.Node, class string, fold bool) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.FieldsFunc(v, isASCIISpace) {
		if c == class || fold && asciiEqualFold(c, class) {
			return true
		}
	}
	return false
}

func asciiEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if asciiLower(a[i]) != asciiLower(b[i]) {
			return false
		}
	}
	return true
}

func asciiLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// textContent concatenates the text nodes beneath n.
func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// collapseSpace strips leading and trailing ASCII whitespace and collapses
// inner runs to a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isASCIISpace), " ")
}
