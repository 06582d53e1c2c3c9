// Package htmltext converts loosely-tagged filing HTML into plain text that
// the pattern batteries can run over. Filers emit wildly inconsistent
// markup, so stripping is lenient: anything that fails to parse as HTML is
// returned as-is.
package htmltext

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var multiSpace = regexp.MustCompile(`[ \t]+`)
var multiNewline = regexp.MustCompile(`\n{3,}`)

// Strip removes HTML markup, returning block-level text separated by
// newlines. Non-HTML input passes through unchanged apart from whitespace
// normalization.
func Strip(content string) string {
	if !strings.Contains(content, "<") {
		return Collapse(content)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return Collapse(content)
	}
	doc.Find("script, style").Remove()

	// Preserve block boundaries so line-oriented patterns keep working.
	doc.Find("p, div, tr, br, li, h1, h2, h3, h4, table").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	text := doc.Text()
	return Collapse(text)
}

// Collapse normalizes runs of spaces and blank lines without destroying the
// line structure patterns rely on.
func Collapse(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = multiSpace.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
