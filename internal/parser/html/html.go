// Package html flattens rich-text fragments, as pasted from web editors into
// line-item descriptions, to plain text.
package html

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parser turns HTML fragments into plain text
type Parser struct {
	// Tags whose boundaries become word breaks
	breakTags map[atom.Atom]bool
	// Tags a rich-text editor emits; anything else means the text is plain
	richTags map[atom.Atom]bool
	// Attributes allowed on rich-text tags
	richAttrs map[string]bool
}

// NewParser creates a new fragment parser
func NewParser() *Parser {
	return &Parser{
		breakTags: map[atom.Atom]bool{
			atom.Br: true, atom.P: true, atom.Div: true, atom.Li: true,
			atom.Ul: true, atom.Ol: true,
		},
		richTags: map[atom.Atom]bool{
			atom.P: true, atom.Br: true, atom.Div: true, atom.Li: true,
			atom.Ul: true, atom.Ol: true, atom.B: true, atom.I: true,
			atom.U: true, atom.Strong: true, atom.Em: true, atom.Span: true,
			atom.Script: true, atom.Style: true,
		},
		richAttrs: map[string]bool{
			"class": true, "style": true, "dir": true, "lang": true,
		},
	}
}

// IsRichText reports whether s contains at least one tag and every tag in it
// is a known rich-text tag carrying only presentational attributes. Text such
// as "a<b e c>d" or "cod. <A12>" is plain.
func (p *Parser) IsRichText(s string) bool {
	if !strings.Contains(s, "<") {
		return false
	}
	z := html.NewTokenizer(strings.NewReader(s))
	found := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return found && z.Err() == io.EOF
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if !p.richTags[atom.Lookup(name)] {
				return false
			}
			for hasAttr {
				var key []byte
				key, _, hasAttr = z.TagAttr()
				if !p.richAttrs[string(key)] {
					return false
				}
			}
			found = true
		case html.DoctypeToken:
			return false
		}
	}
}

// PlainText parses s as a body fragment and returns its text content.
// Script and style contents are dropped.
func (p *Parser) PlainText(s string) (string, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), context)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range nodes {
		p.walk(&b, n)
	}
	return b.String(), nil
}

// walk appends the text of n and its descendants in document order
func (p *Parser) walk(b *strings.Builder, n *html.Node) {
	if n == nil {
		return
	}

	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return
		}
	}

	brk := n.Type == html.ElementNode && p.breakTags[n.DataAtom]
	if brk {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(b, c)
	}
	if brk {
		b.WriteByte(' ')
	}
}
