// Package format classifies arbitrary fetched content and parses it into a
// generic structured form. Detection is a heuristic over structural
// prefixes; callers must tolerate misclassification, so every structured
// branch falls back to the plain-text number-extraction path when parsing
// fails.
package format

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
)

// Format is the detected content class.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// Detect classifies content by structural prefix: JSON by a leading brace or
// bracket, XML by a leading angle bracket, CSV by a comma in the first line
// of a multi-line body, text otherwise.
func Detect(content string) Format {
	c := strings.TrimSpace(content)
	switch {
	case strings.HasPrefix(c, "{") || strings.HasPrefix(c, "["):
		return FormatJSON
	case strings.HasPrefix(c, "<?xml") || strings.HasPrefix(c, "<"):
		return FormatXML
	case strings.Contains(firstLine(c), ",") && strings.Contains(c, "\n"):
		return FormatCSV
	default:
		return FormatText
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// FeedItem is one entry of an XML/RSS document.
type FeedItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Summary   string `json:"summary"`
}

// Number is a financial figure pulled out of free text.
type Number struct {
	Value string `json:"value"`
	Type  string `json:"type"` // "currency", "percentage", "amount"
}

// Parsed is the result of parsing generic content. Exactly one of the
// branch fields is populated according to Detected.
type Parsed struct {
	Detected Format              `json:"format"`
	Tree     Value               `json:"-"`                 // json branch
	Items    []FeedItem          `json:"items,omitempty"`   // xml branch
	Headers  []string            `json:"headers,omitempty"` // csv branch
	Rows     []map[string]string `json:"rows,omitempty"`
	Numbers  []Number            `json:"numbers,omitempty"` // text branch
}

// Parse detects the content format and parses the matching branch. A
// structured branch that fails to parse degrades to the text branch rather
// than returning an error.
func Parse(content string) Parsed {
	switch Detect(content) {
	case FormatJSON:
		if tree, ok := parseJSON(content); ok {
			return Parsed{Detected: FormatJSON, Tree: tree}
		}
	case FormatXML:
		if items, ok := parseFeed(content); ok {
			return Parsed{Detected: FormatXML, Items: items}
		}
	case FormatCSV:
		if headers, rows, ok := parseCSV(content); ok {
			return Parsed{Detected: FormatCSV, Headers: headers, Rows: rows}
		}
	}
	return Parsed{Detected: FormatText, Numbers: ExtractNumbers(content)}
}

func parseJSON(content string) (Value, bool) {
	var raw any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return Value{}, false
	}
	return FromJSON(raw), true
}

const maxFeedSummary = 500

func parseFeed(content string) ([]FeedItem, bool) {
	feed, err := gofeed.NewParser().ParseString(content)
	if err != nil || feed == nil {
		return nil, false
	}
	items := make([]FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		summary := it.Description
		if len(summary) > maxFeedSummary {
			summary = summary[:maxFeedSummary]
		}
		items = append(items, FeedItem{
			Title:     it.Title,
			Link:      it.Link,
			Published: it.Published,
			Summary:   summary,
		})
	}
	return items, true
}

func parseCSV(content string) (headers []string, rows []map[string]string, ok bool) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 2 {
		return nil, nil, false
	}
	headers = splitCSVLine(lines[0])
	for _, line := range lines[1:] {
		values := splitCSVLine(line)
		if len(values) != len(headers) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			row[h] = values[i]
		}
		rows = append(rows, row)
	}
	return headers, rows, true
}

func splitCSVLine(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(p), `"`)
	}
	return parts
}

var numberPatterns = []struct {
	re  *regexp.Regexp
	typ string
}{
	{regexp.MustCompile(`\$[\d,]+\.?\d*\s*(?:million|billion|M|B)?`), "currency"},
	{regexp.MustCompile(`[\d,]+\.?\d*\s*%`), "percentage"},
	{regexp.MustCompile(`[\d,]+\.?\d*\s*(?:million|billion|M|B)\b`), "amount"},
}

// ExtractNumbers pulls currency amounts, percentages and magnitudes from
// free text. This is the fallback path for content that resists structured
// parsing.
func ExtractNumbers(text string) []Number {
	var out []Number
	for _, p := range numberPatterns {
		for _, m := range p.re.FindAllString(text, -1) {
			out = append(out, Number{Value: strings.TrimSpace(m), Type: p.typ})
		}
	}
	return out
}
