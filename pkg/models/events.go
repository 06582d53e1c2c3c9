package models

// MaterialEvent is a single item section extracted from an 8-K.
type MaterialEvent struct {
	ItemCode    string      `json:"item_code"` // e.g. "2.02"
	ItemType    string      `json:"item_type"` // taxonomy label
	Headline    string      `json:"headline"`
	Summary     string      `json:"summary"`
	Sentiment   Sentiment   `json:"sentiment"`
	Materiality Materiality `json:"materiality"`
	Confidence  float64     `json:"confidence"`
	Entities    []string    `json:"entities,omitempty"` // dollar amounts, percentages
	Dates       []string    `json:"dates,omitempty"`
}

// MaterialEventRecord is the typed result of parsing an 8-K. Overall
// sentiment is the margin-of-2 majority across events; market impact is high
// if any event is high-materiality, medium if any events exist, else low.
type MaterialEventRecord struct {
	Identity         FilingIdentity  `json:"identity"`
	Events           []MaterialEvent `json:"events"`
	OverallSentiment Sentiment       `json:"overall_sentiment"`
	MarketImpact     MarketImpact    `json:"market_impact"`
	Confidence       float64         `json:"confidence"`
}
