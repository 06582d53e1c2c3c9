// Package signals implements the deterministic classifiers that map
// extracted quantities and keyword counts to the closed signal enums in
// pkg/models. Every classifier returns a declared enum value for every
// input; indeterminate cases resolve to the neutral/unknown default.
package signals

import (
	"strings"

	"github.com/quantfold/filingscan/pkg/models"
	"github.com/quantfold/filingscan/pkg/textutil"
)

// Ownership classifies what a beneficial-ownership filing implies about the
// filer's position. A filing with no amendment marker and no prior percent
// is a new position; stakes of 10% or more are flagged as major.
func Ownership(percentOfClass float64, isAmendment, hasPrevious bool, changePercent float64) models.OwnershipSignal {
	if !isAmendment && !hasPrevious {
		if percentOfClass >= 10 {
			return models.SignalMajorNewPosition
		}
		return models.SignalNewPosition
	}
	if hasPrevious {
		switch {
		case changePercent > 2:
			return models.SignalSignificantAccumulation
		case changePercent > 0:
			return models.SignalAccumulating
		case changePercent < -2:
			return models.SignalSignificantReduction
		case changePercent < 0:
			return models.SignalReducing
		}
	}
	return models.SignalMaintaining
}

// capExChangeThresholdPct separates a deliberate investment shift from
// period-to-period noise.
const capExChangeThresholdPct = 20.0

// CapExTrend classifies the capital-expenditure trend versus the prior
// period. Without prior data there is no trend to read.
func CapExTrend(changePct float64, hasPrior bool) models.CapExSignal {
	if !hasPrior {
		return models.CapExUnknown
	}
	switch {
	case changePct > capExChangeThresholdPct:
		return models.CapExInvesting
	case changePct < -capExChangeThresholdPct:
		return models.CapExCutting
	default:
		return models.CapExMaintaining
	}
}

var positiveEventWords = []string{
	"growth", "increase", "profit", "successful", "exceeded",
	"record", "strong", "improved", "expansion", "acquired",
}

var negativeEventWords = []string{
	"loss", "decline", "decrease", "terminated", "resigned",
	"impairment", "restructuring", "layoff", "breach", "default",
}

// sentimentMargin is how far one keyword count must exceed the other before
// the text is read as anything but neutral.
const sentimentMargin = 2

// EventSentiment reads the tone of a material-event section from its
// keyword balance.
func EventSentiment(text string) models.Sentiment {
	lower := strings.ToLower(text)
	pos := countPresent(lower, positiveEventWords)
	neg := countPresent(lower, negativeEventWords)
	switch {
	case pos > neg+sentimentMargin:
		return models.SentimentPositive
	case neg > pos+sentimentMargin:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// OverallSentiment aggregates per-event sentiments into a document-level
// reading, with the same margin rule as the per-event classifier.
func OverallSentiment(sentiments []models.Sentiment) models.Sentiment {
	var pos, neg int
	for _, s := range sentiments {
		switch s {
		case models.SentimentPositive:
			pos++
		case models.SentimentNegative:
			neg++
		}
	}
	switch {
	case pos > neg+sentimentMargin:
		return models.SentimentPositive
	case neg > pos+sentimentMargin:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// HighImpactItems are the material-event item codes that reliably move
// prices regardless of wording.
var HighImpactItems = map[string]bool{
	"1.01": true, // material agreement
	"2.01": true, // acquisition or disposition completed
	"2.02": true, // results of operations
	"2.06": true, // material impairment
	"4.02": true, // non-reliance on prior financials
	"5.01": true, // change in control
	"5.02": true, // officer or director change
}

// EventMateriality grades a material event. Item codes in the high-impact
// set are always high; otherwise magnitude words in the text decide.
func EventMateriality(itemCode, text string) models.Materiality {
	if HighImpactItems[itemCode] {
		return models.MaterialityHigh
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "billion") {
		return models.MaterialityHigh
	}
	if strings.Contains(lower, "million") {
		return models.MaterialityMedium
	}
	return models.MaterialityLow
}

var hawkishWords = []string{"inflation", "vigilant", "restrictive", "higher for longer", "tightening"}

var dovishWords = []string{"progress", "easing", "cut", "normalizing", "balanced", "accommodative"}

// FedTone reads central-bank language as hawkish or dovish from its keyword
// balance, with the same margin rule as event sentiment.
func FedTone(text string) models.PolicySentiment {
	lower := strings.ToLower(text)
	hawkish := countPresent(lower, hawkishWords)
	dovish := countPresent(lower, dovishWords)
	switch {
	case hawkish > dovish+sentimentMargin:
		return models.PolicyHawkish
	case dovish > hawkish+sentimentMargin:
		return models.PolicyDovish
	default:
		return models.PolicyNeutral
	}
}

var confidentWords = []string{
	"confident", "record", "strong", "momentum", "optimistic",
	"pleased", "robust", "exceeded", "raising",
}

var hedgingWords = []string{
	"could", "might", "uncertain", "challenging", "headwind",
	"cautious", "difficult", "pressure", "risk",
}

// CallTone reads management tone from a transcript: confident language
// against hedging language, margin rule as elsewhere.
func CallTone(text string) models.Tone {
	lower := strings.ToLower(text)
	conf := countPresent(lower, confidentWords)
	hedge := countPresent(lower, hedgingWords)
	switch {
	case conf > hedge+sentimentMargin:
		return models.ToneConfident
	case hedge > conf+sentimentMargin:
		return models.ToneCautious
	default:
		return models.ToneNeutral
	}
}

// TonePhrases lists the confident and hedging vocabulary present in the
// text. The same dictionaries drive CallTone.
func TonePhrases(text string) (confident, hedging []string) {
	lower := strings.ToLower(text)
	for _, w := range confidentWords {
		if strings.Contains(lower, w) {
			confident = append(confident, w)
		}
	}
	for _, w := range hedgingWords {
		if strings.Contains(lower, w) {
			hedging = append(hedging, w)
		}
	}
	return confident, hedging
}

// HedgingRate is hedging-word occurrences per thousand words of text.
func HedgingRate(text string) float64 {
	words := textutil.WordCount(text)
	if words == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	occurrences := 0
	for _, w := range hedgingWords {
		occurrences += strings.Count(lower, w)
	}
	return float64(occurrences) / float64(words) * 1000
}

// countPresent counts how many of the words occur at least once. Repeats of
// one word do not accumulate, so a single drumbeat term cannot dominate.
func countPresent(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}
