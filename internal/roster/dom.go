package roster

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// textNodes returns the data of every text node under sel, in document order.
func textNodes(sel *goquery.Selection) []string {
	var out []string
	for _, n := range sel.Nodes {
		out = collectText(n, out)
	}
	return out
}

func collectText(n *html.Node, out []string) []string {
	if n.Type == html.TextNode {
		return append(out, n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = collectText(c, out)
	}
	return out
}

// strippedStrings returns the trimmed, non-blank text nodes under sel.
func strippedStrings(sel *goquery.Selection) []string {
	var out []string
	for _, s := range textNodes(sel) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// nodeText returns a text node's data, or the concatenated text of an
// element node.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	return strings.Join(collectText(n, nil), "")
}

// firstChildText returns the text of the first child node of the first
// element in sel.
func firstChildText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return nodeText(sel.Get(0).FirstChild)
}

// nextSiblingText returns the text of the node, element or not, that
// directly follows the first element in sel.
func nextSiblingText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return nodeText(sel.Get(0).NextSibling)
}
