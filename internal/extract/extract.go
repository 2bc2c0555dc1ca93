package extract

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document wraps a parsed HTML tree and answers structural queries against it.
type Document struct {
	root *html.Node
}

// Parse builds a Document from raw HTML. The HTML5 parser recovers from
// malformed markup, so an error here means the reader itself failed.
func Parse(input []byte) (*Document, error) {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	return &Document{root: node}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// First returns the first element in document order matching sel, or nil.
func (d *Document) First(sel cascadia.Matcher) *html.Node {
	return cascadia.Query(d.root, sel)
}

// All returns every element matching sel in document order.
func (d *Document) All(sel cascadia.Matcher) []*html.Node {
	return cascadia.QueryAll(d.root, sel)
}

// Nth returns the element at index i among matches of sel, or nil when
// fewer matches exist.
func (d *Document) Nth(sel cascadia.Matcher, i int) *html.Node {
	if i < 0 {
		return nil
	}
	n := 0
	var res *html.Node
	walk(d.root, func(cur *html.Node) bool {
		if cur.Type != html.ElementNode || !sel.Match(cur) {
			return true
		}
		if n == i {
			res = cur
			return false
		}
		n++
		return true
	})
	return res
}

// Has reports whether any element matches sel.
func (d *Document) Has(sel cascadia.Matcher) bool {
	return d.First(sel) != nil
}

// walk visits n and its descendants depth-first in document order until
// visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// Text concatenates the text nodes below n verbatim. Whitespace is not
// normalized so that preformatted blocks survive intact.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	collectText(&b, n)
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript":
			return
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

// Attr returns the value of attribute key on n and whether it was present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}
