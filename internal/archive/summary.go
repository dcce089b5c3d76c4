// Package archive derives page metadata from archived HTML snapshots.
package archive

import (
	"strings"
	"unicode"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// summaryMaxRunes caps derived descriptions. Long enough for a card preview,
// short enough to keep page rows small.
const summaryMaxRunes = 200

// Summarize derives a short plain-text description from archived HTML.
// The HTML is converted to markdown first, which strips tags, scripts and
// styles while keeping the visible text in reading order. Returns "" when
// nothing usable remains.
func Summarize(htmlContent string) string {
	md, err := htmltomarkdown.ConvertString(htmlContent)
	if err != nil {
		return ""
	}

	// Flatten the markdown to one line of plain text.
	var b strings.Builder
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimLeft(line, "#>*-| \t")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(line)
		if b.Len() > summaryMaxRunes*4 {
			break
		}
	}

	return truncate(b.String(), summaryMaxRunes)
}

// Title extracts the document title from archived HTML, "" when absent.
func Title(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(title), " ")
}

// truncate cuts s to at most max runes, on a word boundary when possible,
// appending an ellipsis when something was dropped.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	cut := max
	for cut > max/2 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut <= max/2 {
		cut = max
	}

	return strings.TrimSpace(string(runes[:cut])) + "…"
}
