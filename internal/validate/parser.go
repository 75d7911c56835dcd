package validate

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/osintbo/rastro/internal/model"
)

// ParsePage fills in the parsed fields of a fetched page: title, meta
// description, and visible body text.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
//
// Parsing never fails: html.Parse recovers from arbitrary input, so a
// garbage body just yields empty fields.
func ParsePage(page *model.PageContent) {
	if page.Empty() {
		return
	}

	doc, err := html.Parse(strings.NewReader(page.Body))
	if err != nil {
		// html.Parse only fails on reader errors; strings.Reader has none.
		return
	}

	var text strings.Builder
	walk(doc, page, &text)
	page.Text = text.String()
}

// walk traverses the DOM collecting the title, the description meta tag,
// and all visible text. Script and style subtrees are skipped so their
// contents do not pollute the visible text.
func walk(node *html.Node, page *model.PageContent, text *strings.Builder) {
	switch node.Type {
	case html.ElementNode:
		switch node.Data {
		case "script", "style", "noscript":
			return
		case "title":
			if node.FirstChild != nil && node.FirstChild.Type == html.TextNode {
				page.Title = strings.TrimSpace(node.FirstChild.Data)
			}
		case "meta":
			if name, content, ok := metaAttrs(node); ok && strings.EqualFold(name, "description") {
				page.Description = strings.TrimSpace(content)
			}
		}
	case html.TextNode:
		if trimmed := strings.TrimSpace(node.Data); trimmed != "" {
			if text.Len() > 0 {
				text.WriteByte(' ')
			}
			text.WriteString(trimmed)
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child, page, text)
	}
}

// metaAttrs returns the name and content attributes of a meta element.
func metaAttrs(node *html.Node) (name, content string, ok bool) {
	for _, attr := range node.Attr {
		switch strings.ToLower(attr.Key) {
		case "name":
			name = attr.Val
		case "content":
			content = attr.Val
		}
	}
	return name, content, name != ""
}
