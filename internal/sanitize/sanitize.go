/*
Package sanitize recovers plain text from upstream fields that may carry embedded markup.
*/
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Text parses s as an HTML fragment and returns its text content. Text from
// separate nodes is joined with a space, whitespace runs collapse to one space
// and the result is trimmed. Character references are decoded.
func Text(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), context)
	if err != nil {
		return collapse(s)
	}

	var parts []string
	for _, n := range nodes {
		parts = extractText(n, parts)
	}
	return collapse(strings.Join(parts, " "))
}

func extractText(n *html.Node, parts []string) []string {
	switch n.Type {
	case html.TextNode:
		return append(parts, n.Data)
	case html.ElementNode:
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return parts
		}
	case html.CommentNode:
		return parts
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = extractText(c, parts)
	}
	return parts
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
