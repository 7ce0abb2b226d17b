// Package webpage fetches article pages and extracts their main textual
// content.
package webpage

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

const (
	// minSelectorContent is the minimum text length a structural selector
	// must yield before the whole-page fallback kicks in.
	minSelectorContent = 200
	maxContentChars    = 2000
)

type selector struct {
	tag     string
	class   string
	attrKey string
	attrVal string
}

// contentSelectors mirror the markup conventions of common sports sites,
// tried in order.
var contentSelectors = []selector{
	{tag: "article"},
	{class: "article-content"},
	{class: "entry-content"},
	{class: "post-content"},
	{class: "content"},
	{class: "story-body"},
	{tag: "main"},
	{attrKey: "data-testid", attrVal: "article-body"},
}

// ExtractMainContent parses the page and returns its main text: the first
// structural selector yielding enough content wins, otherwise the whole-page
// text. Output is whitespace-normalized and capped with a truncation marker.
func ExtractMainContent(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	content := ""
	for _, sel := range contentSelectors {
		node := findFirst(doc, sel)
		if node == nil {
			continue
		}
		text := normalizeWhitespace(collectText(node))
		if len(text) >= minSelectorContent {
			content = text
			break
		}
	}

	if content == "" {
		content = normalizeWhitespace(collectText(doc))
	}

	runes := []rune(content)
	if len(runes) > maxContentChars {
		content = string(runes[:maxContentChars]) + "..."
	}
	return content, nil
}

func findFirst(n *html.Node, sel selector) *html.Node {
	if n.Type == html.ElementNode && matches(n, sel) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, sel); found != nil {
			return found
		}
	}
	return nil
}

func matches(n *html.Node, sel selector) bool {
	if sel.tag != "" {
		return n.Data == sel.tag
	}
	if sel.class != "" {
		return hasClass(n, sel.class)
	}
	if sel.attrKey != "" {
		for _, attr := range n.Attr {
			if attr.Key == sel.attrKey && attr.Val == sel.attrVal {
				return true
			}
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// collectText gathers visible text, skipping script and style subtrees.
func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			switch node.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteByte(' ')
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
