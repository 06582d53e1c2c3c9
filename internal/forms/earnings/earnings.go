// Package earnings extracts structured data from earnings-call transcripts:
// quantitative guidance, participants, management tone, and key quotes. The
// extraction is entirely pattern-driven so the same transcript always yields
// the same record.
package earnings

import (
	"errors"
	"regexp"
	"strings"

	"github.com/quantfold/filingscan/internal/extract/confidence"
	"github.com/quantfold/filingscan/internal/extract/fields"
	"github.com/quantfold/filingscan/internal/extract/htmltext"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/internal/signals"
	"github.com/quantfold/filingscan/pkg/models"
)

const (
	maxKeyQuotes    = 5
	minQuoteChars   = 40
	periodLookback  = 120
	maxParticipants = 25
)

var (
	// Speaker headers look like "TIM COOK, CEO:", "OPERATOR:", or
	// "ANALYST (Morgan Stanley):".
	speakerHeader = regexp.MustCompile(`(?m)^([A-Z][A-Z.'\- ]{1,40}?)(?:\s*\(([^)\n]+)\))?(?:,\s*([^:\n]{1,60}))?:\s`)

	moneyRangeGuidance   = regexp.MustCompile(`(?i)expect(?:s|ed)?\s+([a-zA-Z][a-zA-Z ]{1,30}?)\s+to be between\s+\$([\d,.]+)\s+(?:and|to)\s+\$?([\d,.]+)\s*(billion|million)?`)
	percentRangeGuidance = regexp.MustCompile(`(?i)expect(?:s|ed)?\s+([a-zA-Z][a-zA-Z ]{1,30}?)\s+to be between\s+([\d.]+)%\s+(?:and|to)\s+([\d.]+)%`)
	moneyPointGuidance   = regexp.MustCompile(`(?i)expect(?:s|ed)?\s+([a-zA-Z][a-zA-Z ]{1,30}?)\s+of\s+(?:approximately\s+)?\$([\d,.]+)\s*(billion|million)?`)

	sentencePattern = regexp.MustCompile(`[^.!?\n]+[.!?]`)
	wsRun           = regexp.MustCompile(`\s+`)
)

// quoteWords select sentences worth surfacing verbatim.
var quoteWords = []string{"record", "confident", "pleased", "optimistic", "momentum", "raising"}

// Parser extracts earnings-call records from transcripts.
type Parser struct {
	scorer confidence.Scorer
}

// NewParser returns a parser using the given confidence policy.
func NewParser(scorer confidence.Scorer) *Parser {
	return &Parser{scorer: scorer}
}

// Parse extracts guidance, participants, tone, and key quotes from a call
// transcript.
func (p *Parser) Parse(content string, id models.FilingIdentity, fiscalQuarter, fiscalYear int) (*models.EarningsCallRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, forms.Fail(models.FormEarningsCall, id, errors.New("empty transcript"))
	}
	text := htmltext.Strip(content)

	guidance := extractGuidance(text)
	participants := extractParticipants(text)

	confidentPhrases, hedgingPhrases := signals.TonePhrases(text)
	score := 0.5
	if n := len(confidentPhrases) + len(hedgingPhrases); n > 0 {
		score = float64(len(confidentPhrases)) / float64(n)
	}
	phrases := append(confidentPhrases, hedgingPhrases...)
	if len(phrases) > maxKeyQuotes {
		phrases = phrases[:maxKeyQuotes]
	}

	return &models.EarningsCallRecord{
		Identity:      id,
		FiscalQuarter: fiscalQuarter,
		FiscalYear:    fiscalYear,
		Guidance:      guidance,
		Participants:  participants,
		Tone: models.ToneAssessment{
			Overall:          signals.CallTone(text),
			ConfidenceScore:  score,
			HedgingFrequency: signals.HedgingRate(text),
			KeyPhrases:       phrases,
		},
		KeyQuotes:  extractKeyQuotes(text),
		Confidence: p.scorer.Score(len(guidance) > 0, len(participants) > 0),
	}, nil
}

func extractGuidance(text string) []models.GuidanceItem {
	var items []models.GuidanceItem

	for _, m := range moneyRangeGuidance.FindAllStringSubmatchIndex(text, -1) {
		low, okLow := fields.ParseNumber(group(text, m, 2))
		high, okHigh := fields.ParseNumber(group(text, m, 3))
		if !okLow || !okHigh {
			continue
		}
		items = append(items, models.GuidanceItem{
			Metric:   classifyMetric(group(text, m, 1)),
			Period:   inferPeriod(text, m[0]),
			Low:      low,
			High:     high,
			HasRange: true,
			Unit:     moneyUnit(group(text, m, 4)),
			Verbatim: verbatim(text, m),
		})
	}

	for _, m := range percentRangeGuidance.FindAllStringSubmatchIndex(text, -1) {
		low, okLow := fields.ParseNumber(group(text, m, 2))
		high, okHigh := fields.ParseNumber(group(text, m, 3))
		if !okLow || !okHigh {
			continue
		}
		items = append(items, models.GuidanceItem{
			Metric:   classifyMetric(group(text, m, 1)),
			Period:   inferPeriod(text, m[0]),
			Low:      low,
			High:     high,
			HasRange: true,
			Unit:     "percent",
			Verbatim: verbatim(text, m),
		})
	}

	for _, m := range moneyPointGuidance.FindAllStringSubmatchIndex(text, -1) {
		point, ok := fields.ParseNumber(group(text, m, 2))
		if !ok {
			continue
		}
		metric := classifyMetric(group(text, m, 1))
		if hasMetric(items, metric) {
			continue
		}
		items = append(items, models.GuidanceItem{
			Metric:   metric,
			Period:   inferPeriod(text, m[0]),
			Point:    point,
			Unit:     moneyUnit(group(text, m, 3)),
			Verbatim: verbatim(text, m),
		})
	}

	return items
}

func group(text string, m []int, g int) string {
	lo, hi := m[2*g], m[2*g+1]
	if lo < 0 {
		return ""
	}
	return text[lo:hi]
}

func verbatim(text string, m []int) string {
	return wsRun.ReplaceAllString(text[m[0]:m[1]], " ")
}

func classifyMetric(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.Contains(lower, "revenue"), strings.Contains(lower, "sales"):
		return "revenue"
	case strings.Contains(lower, "gross margin"):
		return "gross_margin"
	case strings.Contains(lower, "operating margin"):
		return "operating_margin"
	case strings.Contains(lower, "operating income"):
		return "operating_income"
	case strings.Contains(lower, "eps"), strings.Contains(lower, "earnings per share"):
		return "eps"
	case strings.Contains(lower, "capex"), strings.Contains(lower, "capital expenditure"):
		return "capex"
	case strings.Contains(lower, "free cash flow"):
		return "free_cash_flow"
	default:
		return "other"
	}
}

// inferPeriod reads the text just before a guidance match: an explicit
// quarter reference means next-quarter guidance, anything else is taken as
// full-year.
func inferPeriod(text string, at int) string {
	start := at - periodLookback
	if start < 0 {
		start = 0
	}
	if strings.Contains(strings.ToLower(text[start:at]), "quarter") {
		return "next_quarter"
	}
	return "full_year"
}

func moneyUnit(unit string) string {
	switch strings.ToLower(unit) {
	case "billion":
		return "billions"
	case "million":
		return "millions"
	default:
		return "millions"
	}
}

func hasMetric(items []models.GuidanceItem, metric string) bool {
	for _, it := range items {
		if it.Metric == metric {
			return true
		}
	}
	return false
}

func extractParticipants(text string) []models.Participant {
	var out []models.Participant
	seen := map[string]bool{}
	for _, m := range speakerHeader.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		firm := strings.TrimSpace(m[2])
		title := strings.TrimSpace(m[3])
		if seen[name] {
			continue
		}
		seen[name] = true

		p := models.Participant{Name: name, Role: classifyRole(name, title, firm), Title: title}
		if firm != "" {
			p.Title = firm
		}
		out = append(out, p)
		if len(out) == maxParticipants {
			break
		}
	}
	return out
}

func classifyRole(name, title, firm string) string {
	upperName := strings.ToUpper(name)
	lowerTitle := strings.ToLower(title)
	switch {
	case upperName == "OPERATOR":
		return "operator"
	case firm != "" || strings.Contains(upperName, "ANALYST"):
		return "analyst"
	case strings.Contains(lowerTitle, "ceo"), strings.Contains(lowerTitle, "chief executive"):
		return "ceo"
	case strings.Contains(lowerTitle, "cfo"), strings.Contains(lowerTitle, "chief financial"):
		return "cfo"
	default:
		return "executive"
	}
}

func extractKeyQuotes(text string) []string {
	var quotes []string
	for _, sentence := range sentencePattern.FindAllString(text, -1) {
		s := strings.TrimSpace(wsRun.ReplaceAllString(sentence, " "))
		if len(s) < minQuoteChars {
			continue
		}
		lower := strings.ToLower(s)
		for _, w := range quoteWords {
			if strings.Contains(lower, w) {
				quotes = append(quotes, s)
				break
			}
		}
		if len(quotes) == maxKeyQuotes {
			break
		}
	}
	return quotes
}
