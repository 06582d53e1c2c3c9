package models

// Classifier outputs are closed enumerations. Every classifier returns one of
// its declared values for every input; "unknown"/"neutral"/"maintaining" are
// the indeterminate defaults, never an empty string.

// OwnershipSignal describes what a beneficial-ownership filing implies about
// the filer's position in the subject company.
type OwnershipSignal string

const (
	SignalMajorNewPosition        OwnershipSignal = "major_new_position"
	SignalNewPosition             OwnershipSignal = "new_position"
	SignalSignificantAccumulation OwnershipSignal = "significant_accumulation"
	SignalAccumulating            OwnershipSignal = "accumulating"
	SignalSignificantReduction    OwnershipSignal = "significant_reduction"
	SignalReducing                OwnershipSignal = "reducing"
	SignalMaintaining             OwnershipSignal = "maintaining"
)

// CapExSignal describes the capital-expenditure trend versus the prior period.
type CapExSignal string

const (
	CapExInvesting   CapExSignal = "investing"
	CapExMaintaining CapExSignal = "maintaining"
	CapExCutting     CapExSignal = "cutting"
	CapExUnknown     CapExSignal = "unknown"
)

// Sentiment is the three-way tone of an extracted event or passage.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Materiality grades how market-moving a material event is likely to be.
type Materiality string

const (
	MaterialityHigh   Materiality = "high"
	MaterialityMedium Materiality = "medium"
	MaterialityLow    Materiality = "low"
)

// MarketImpact is the document-level aggregate of per-event materiality.
type MarketImpact string

const (
	ImpactHigh   MarketImpact = "high"
	ImpactMedium MarketImpact = "medium"
	ImpactLow    MarketImpact = "low"
)

// PolicySentiment is the hawkish/dovish reading of central-bank language.
type PolicySentiment string

const (
	PolicyHawkish PolicySentiment = "hawkish"
	PolicyDovish  PolicySentiment = "dovish"
	PolicyNeutral PolicySentiment = "neutral"
)

// Tone is the management-tone reading of an earnings call.
type Tone string

const (
	ToneConfident Tone = "confident"
	ToneCautious  Tone = "cautious"
	ToneNeutral   Tone = "neutral"
)
