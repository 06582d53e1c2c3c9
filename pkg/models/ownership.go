package models

// FilerClass is the coarse classification of a beneficial-ownership filer.
type FilerClass string

const (
	FilerInstitutional FilerClass = "institutional"
	FilerQualified     FilerClass = "qualified"
	FilerPassive       FilerClass = "passive"
	FilerUnknown       FilerClass = "unknown"
)

// OwnershipDisclosureRecord is the typed result of parsing a Schedule 13D or
// 13G. A 13D signals possible activist intent; a 13G is the passive variant.
type OwnershipDisclosureRecord struct {
	Identity  FilingIdentity `json:"identity"`
	FormType  FormType       `json:"form_type"` // FormOwnershipActive or FormOwnershipPassive
	CUSIP     string         `json:"cusip"`
	EventDate string         `json:"event_date,omitempty"`

	FilerName  string     `json:"filer_name"`
	FilerClass FilerClass `json:"filer_class"`
	FilerType  string     `json:"filer_type,omitempty"` // decoded reporting-person code
	ShareClass string     `json:"share_class"`

	SharesOwned            int64   `json:"shares_owned"`
	PercentOfClass         float64 `json:"percent_of_class"` // 0 to 100
	SoleVotingPower        int64   `json:"sole_voting_power"`
	SharedVotingPower      int64   `json:"shared_voting_power"`
	SoleDispositivePower   int64   `json:"sole_dispositive_power"`
	SharedDispositivePower int64   `json:"shared_dispositive_power"`

	IsActivist  bool   `json:"is_activist"`
	IsAmendment bool   `json:"is_amendment"`
	Purpose     string `json:"purpose,omitempty"` // 13D item 4, truncated

	PreviousPercent    float64 `json:"previous_percent,omitempty"`
	HasPreviousPercent bool    `json:"has_previous_percent"`
	ChangePercent      float64 `json:"change_percent,omitempty"` // signed

	Signal     OwnershipSignal `json:"signal"`
	Confidence float64         `json:"confidence"`
}

// ActivistAssessment is the keyword-driven activist risk scan run over a
// 13D's stated purpose.
type ActivistAssessment struct {
	IsActivistFiling bool     `json:"is_activist_filing"`
	RiskScore        int      `json:"risk_score"` // 0 to 100
	Signals          []string `json:"signals"`
	Recommendation   string   `json:"recommendation"`
}
