package models

// GuidanceItem is one piece of quantitative forward guidance lifted from an
// earnings call. A range fills Low/High; a single number fills Point.
type GuidanceItem struct {
	Metric   string  `json:"metric"` // "revenue", "eps", "capex", "gross_margin", ...
	Period   string  `json:"period"` // "next_quarter", "full_year"
	Low      float64 `json:"low,omitempty"`
	High     float64 `json:"high,omitempty"`
	Point    float64 `json:"point,omitempty"`
	HasRange bool    `json:"has_range"`
	Unit     string  `json:"unit"` // "millions", "billions", "percent"
	Verbatim string  `json:"verbatim,omitempty"`
}

// Participant is a speaker detected in the transcript.
type Participant struct {
	Name  string `json:"name"`
	Role  string `json:"role"` // "ceo", "cfo", "executive", "analyst", "operator"
	Title string `json:"title,omitempty"`
}

// ToneAssessment summarizes management tone across the call.
type ToneAssessment struct {
	Overall          Tone     `json:"overall"`
	ConfidenceScore  float64  `json:"confidence_score"`  // 0 to 1
	HedgingFrequency float64  `json:"hedging_frequency"` // hedges per 1000 words
	KeyPhrases       []string `json:"key_phrases,omitempty"`
}

// EarningsCallRecord is the typed result of extracting an earnings-call
// transcript.
type EarningsCallRecord struct {
	Identity      FilingIdentity `json:"identity"`
	FiscalQuarter int            `json:"fiscal_quarter"`
	FiscalYear    int            `json:"fiscal_year"`

	Guidance     []GuidanceItem `json:"guidance,omitempty"`
	Participants []Participant  `json:"participants,omitempty"`
	Tone         ToneAssessment `json:"tone"`
	KeyQuotes    []string       `json:"key_quotes,omitempty"`

	Confidence float64 `json:"confidence"`
}
