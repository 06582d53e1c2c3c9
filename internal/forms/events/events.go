// Package events parses current-report filings (8-K). The document is a
// sequence of numbered item sections; each recognized section becomes one
// material event with a headline, tone, and materiality grade.
package events

import (
	"errors"
	"regexp"
	"strings"

	"github.com/quantfold/filingscan/internal/extract/confidence"
	"github.com/quantfold/filingscan/internal/extract/htmltext"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/internal/signals"
	"github.com/quantfold/filingscan/pkg/models"
	"github.com/quantfold/filingscan/pkg/textutil"
)

// itemTitles is the current-report item taxonomy. Sections with codes
// outside this map are ignored.
var itemTitles = map[string]string{
	"1.01": "Entry into Material Definitive Agreement",
	"1.02": "Termination of Material Definitive Agreement",
	"1.03": "Bankruptcy or Receivership",
	"2.01": "Completion of Acquisition or Disposition of Assets",
	"2.02": "Results of Operations and Financial Condition",
	"2.03": "Creation of Direct Financial Obligation",
	"2.04": "Triggering Events That Accelerate Obligation",
	"2.05": "Costs Associated with Exit or Disposal",
	"2.06": "Material Impairments",
	"3.01": "Notice of Delisting",
	"3.02": "Unregistered Sales of Equity Securities",
	"3.03": "Material Modification of Rights",
	"4.01": "Changes in Registrant's Certifying Accountant",
	"4.02": "Non-Reliance on Previously Issued Financial Statements",
	"5.01": "Changes in Control of Registrant",
	"5.02": "Departure/Election of Directors or Officers",
	"5.03": "Amendments to Articles of Incorporation or Bylaws",
	"5.07": "Submission of Matters to Vote of Security Holders",
	"7.01": "Regulation FD Disclosure",
	"8.01": "Other Events",
	"9.01": "Financial Statements and Exhibits",
}

var (
	itemHeader = regexp.MustCompile(`(?i)Item\s+(\d+\.\d+)`)

	dollarAmount = regexp.MustCompile(`\$[\d,]+(?:\.\d+)?(?:\s*(?:million|billion|M|B))?`)
	percentage   = regexp.MustCompile(`\d+(?:\.\d+)?%`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
		regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	}
)

// Parser parses current reports into material-event records.
type Parser struct {
	scorer confidence.Scorer
	caps   forms.Caps
}

// NewParser returns a parser using the given confidence policy and excerpt
// caps.
func NewParser(scorer confidence.Scorer, caps forms.Caps) *Parser {
	return &Parser{scorer: scorer, caps: caps}
}

type section struct {
	code string
	text string
}

// splitSections cuts the document at item headers. Sections stay in document
// order; a repeated code replaces the earlier text but keeps its slot.
func splitSections(text string) []section {
	matches := itemHeader.FindAllStringSubmatchIndex(text, -1)
	var out []section
	index := map[string]int{}
	for i, m := range matches {
		code := text[m[2]:m[3]]
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		// Sections flatten to one line; the line structure matters for
		// locating headers, not for reading a section body.
		body := textutil.CollapseSpace(text[start:end])
		if at, seen := index[code]; seen {
			out[at].text = body
			continue
		}
		index[code] = len(out)
		out = append(out, section{code: code, text: body})
	}
	return out
}

// Parse extracts the material events from a current report.
func (p *Parser) Parse(content string, id models.FilingIdentity) (*models.MaterialEventRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, forms.Fail(models.FormMaterialEvent, id, errors.New("empty document"))
	}
	text := htmltext.Strip(content)

	var events []models.MaterialEvent
	var sentiments []models.Sentiment
	hasHighImpact := false

	for _, sec := range splitSections(text) {
		title, known := itemTitles[sec.code]
		if !known {
			continue
		}
		// The exhibits section lists attachments, not events.
		if sec.code == "9.01" {
			continue
		}

		sentiment := signals.EventSentiment(sec.text)
		materiality := signals.EventMateriality(sec.code, sec.text)
		if materiality == models.MaterialityHigh {
			hasHighImpact = true
		}
		sentiments = append(sentiments, sentiment)

		events = append(events, models.MaterialEvent{
			ItemCode:    sec.code,
			ItemType:    title,
			Headline:    headline(sec.code, title, sec.text),
			Summary:     textutil.Ellipsize(sec.text, p.caps.SummaryChars),
			Sentiment:   sentiment,
			Materiality: materiality,
			Confidence:  p.scorer.Score(true),
			Entities:    extractEntities(sec.text),
			Dates:       extractDates(sec.text),
		})
	}

	impact := models.ImpactLow
	switch {
	case hasHighImpact:
		impact = models.ImpactHigh
	case len(events) > 0:
		impact = models.ImpactMedium
	}

	return &models.MaterialEventRecord{
		Identity:         id,
		Events:           events,
		OverallSentiment: signals.OverallSentiment(sentiments),
		MarketImpact:     impact,
		Confidence:       p.scorer.Score(len(events) > 0),
	}, nil
}

// headline picks a short label for the event from its code and wording.
func headline(code, title, text string) string {
	lower := strings.ToLower(text)
	switch code {
	case "2.01":
		if strings.Contains(lower, "acqui") {
			return "Acquisition Completed"
		}
		if strings.Contains(lower, "dispos") || strings.Contains(lower, "sold") {
			return "Asset Disposition"
		}
		return "M&A Activity"
	case "2.02":
		return "Earnings/Financial Results Announced"
	case "5.02":
		if strings.Contains(lower, "appoint") {
			return "New Executive Appointed"
		}
		if strings.Contains(lower, "resign") || strings.Contains(lower, "depart") {
			return "Executive Departure"
		}
		return "Management Change"
	case "1.01":
		return "Material Agreement Signed"
	case "1.02":
		return "Material Agreement Terminated"
	case "2.06":
		return "Material Impairment Recorded"
	case "7.01":
		return "Regulation FD Disclosure"
	case "8.01":
		return "Other Material Event"
	}
	return title
}

// extractEntities pulls the leading dollar amounts and percentages from a
// section. These are hints for a reader, not a full entity scan.
func extractEntities(text string) []string {
	var out []string
	amounts := dollarAmount.FindAllString(text, 5)
	out = append(out, amounts...)
	percents := percentage.FindAllString(text, 3)
	out = append(out, percents...)
	return out
}

func extractDates(text string) []string {
	var out []string
	for _, pat := range datePatterns {
		out = append(out, pat.FindAllString(text, -1)...)
	}
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}
