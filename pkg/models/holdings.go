package models

import (
	"sort"

	"github.com/quantfold/filingscan/pkg/textutil"
)

// Holding is a single position in an institutional-holdings report. The
// CUSIP is the join key when comparing the same security across report
// periods.
type Holding struct {
	IssuerName           string `json:"issuer"`
	TitleOfClass         string `json:"class"`
	CUSIP                string `json:"cusip"`
	ValueThousands       int64  `json:"value_thousands"`
	SharesOrPrincipal    int64  `json:"shares"`
	SharesType           string `json:"type"`       // "SH" or "PRN"
	InvestmentDiscretion string `json:"discretion"` // "SOLE", "SHARED", "DFND", "OTR"
	VotingSole           int64  `json:"voting_sole"`
	VotingShared         int64  `json:"voting_shared"`
	VotingNone           int64  `json:"voting_none"`
	PutCall              string `json:"put_call,omitempty"` // "PUT", "CALL" or empty
}

// Value is the position value in dollars.
func (h Holding) Value() int64 { return h.ValueThousands * 1000 }

// IsOption reports whether the position is a put or call rather than the
// underlying security.
func (h Holding) IsOption() bool { return h.PutCall != "" }

// HoldingRecord is the typed result of parsing a 13F information table.
type HoldingRecord struct {
	Identity       FilingIdentity `json:"identity"`
	FilerName      string         `json:"filer_name"`
	FilerCIK       string         `json:"filer_cik"`
	ReportDate     string         `json:"report_date"` // quarter end, YYYY-MM-DD
	Holdings       []Holding      `json:"holdings"`
	TotalValue     int64          `json:"total_value"` // dollars, derived at construction
	TotalPositions int            `json:"total_positions"`
	Confidence     float64        `json:"confidence"`
}

// TopHoldings returns the n largest positions by dollar value.
func (r HoldingRecord) TopHoldings(n int) []Holding {
	top := make([]Holding, len(r.Holdings))
	copy(top, r.Holdings)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Value() > top[j].Value() })
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// FindHolding locates a position by exact CUSIP or case-insensitive issuer
// substring. Returns nil when no position matches.
func (r HoldingRecord) FindHolding(cusip, issuer string) *Holding {
	for i := range r.Holdings {
		h := &r.Holdings[i]
		if cusip != "" && h.CUSIP == cusip {
			return h
		}
		if issuer != "" && textutil.ContainsFold(h.IssuerName, issuer) {
			return h
		}
	}
	return nil
}

// PositionChange describes one security whose share count moved between two
// report periods, or a position opened or closed outright.
type PositionChange struct {
	IssuerName   string  `json:"issuer"`
	CUSIP        string  `json:"cusip"`
	SharesBefore int64   `json:"shares_before,omitempty"`
	SharesAfter  int64   `json:"shares_after,omitempty"`
	ShareChange  int64   `json:"share_change"`
	PctChange    float64 `json:"pct_change"`
	Value        int64   `json:"value,omitempty"` // dollars, new/closed entries only
}

// PortfolioChange aggregates value and position-count deltas across the full
// holdings set, uncapped.
type PortfolioChange struct {
	ValueBefore     int64 `json:"value_before"`
	ValueAfter      int64 `json:"value_after"`
	ValueChange     int64 `json:"value_change"`
	PositionsBefore int   `json:"positions_before"`
	PositionsAfter  int   `json:"positions_after"`
}

// HoldingsDelta is the output of comparing two holdings snapshots of the
// same filer. The four category lists are capped for reporting; the
// portfolio aggregates are not.
type HoldingsDelta struct {
	Filer              string           `json:"filer"`
	CurrentQuarter     string           `json:"current_quarter"`
	PreviousQuarter    string           `json:"previous_quarter"`
	Portfolio          PortfolioChange  `json:"portfolio_change"`
	NewPositions       []PositionChange `json:"new_positions"`
	ClosedPositions    []PositionChange `json:"closed_positions"`
	IncreasedPositions []PositionChange `json:"increased_positions"`
	DecreasedPositions []PositionChange `json:"decreased_positions"`
}
