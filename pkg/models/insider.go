package models

// InsiderInfo describes the reporting owner on a Form 3, 4 or 5.
type InsiderInfo struct {
	Name              string `json:"name"`
	CIK               string `json:"cik"`
	IsDirector        bool   `json:"is_director"`
	IsOfficer         bool   `json:"is_officer"`
	IsTenPercentOwner bool   `json:"is_ten_percent_owner"`
	IsOther           bool   `json:"is_other"`
	OfficerTitle      string `json:"officer_title,omitempty"`
}

// Role renders the boolean role flags as a readable label.
func (i InsiderInfo) Role() string {
	var roles []string
	if i.IsDirector {
		roles = append(roles, "Director")
	}
	if i.IsOfficer {
		if i.OfficerTitle != "" {
			roles = append(roles, "Officer ("+i.OfficerTitle+")")
		} else {
			roles = append(roles, "Officer")
		}
	}
	if i.IsTenPercentOwner {
		roles = append(roles, "10% Owner")
	}
	if i.IsOther {
		roles = append(roles, "Other")
	}
	if len(roles) == 0 {
		return "Unknown"
	}
	out := roles[0]
	for _, r := range roles[1:] {
		out += ", " + r
	}
	return out
}

// InsiderTransaction is a single reported trade. Share counts are always
// non-negative; direction comes from the code and acquired/disposed flag.
type InsiderTransaction struct {
	SecurityTitle    string  `json:"security"`
	Date             string  `json:"date"` // YYYY-MM-DD
	Code             string  `json:"code"` // one-letter SEC transaction code
	Shares           float64 `json:"shares"`
	PricePerShare    float64 `json:"price,omitempty"`
	HasPrice         bool    `json:"has_price"`
	AcquiredDisposed string  `json:"acquired_disposed"` // "A" or "D"
	SharesOwnedAfter float64 `json:"shares_owned_after"`
	DirectIndirect   string  `json:"ownership"` // "D" or "I"
	Derivative       bool    `json:"derivative,omitempty"`
}

var transactionCodeLabels = map[string]string{
	"P": "Purchase",
	"S": "Sale",
	"A": "Award",
	"D": "Return to Issuer",
	"F": "Tax Withholding",
	"I": "Discretionary",
	"M": "Option Exercise",
	"C": "Conversion",
	"E": "Expiration",
	"G": "Gift",
	"L": "Small Acquisition",
	"W": "Will/Inheritance",
	"Z": "Trust",
	"J": "Other",
	"K": "Swap",
	"U": "Merger",
}

// TypeLabel returns the human-readable meaning of the transaction code.
func (t InsiderTransaction) TypeLabel() string {
	if label, ok := transactionCodeLabels[t.Code]; ok {
		return label
	}
	return t.Code
}

// IsBuy reports whether the transaction adds to the insider's position.
func (t InsiderTransaction) IsBuy() bool {
	return t.Code == "P" || t.AcquiredDisposed == "A"
}

// IsSell reports whether the transaction reduces the insider's position.
func (t InsiderTransaction) IsSell() bool {
	return t.Code == "S" || (t.AcquiredDisposed == "D" && t.Code != "P")
}

// TotalValue is shares × price, or 0 when no price was reported.
func (t InsiderTransaction) TotalValue() float64 {
	if !t.HasPrice {
		return 0
	}
	return t.Shares * t.PricePerShare
}

// InsiderTransactionSummary holds the aggregates derived at construction
// time from the transaction list.
type InsiderTransactionSummary struct {
	TotalBoughtShares float64 `json:"total_bought_shares"`
	TotalSoldShares   float64 `json:"total_sold_shares"`
	TotalBoughtValue  float64 `json:"total_bought_value"`
	TotalSoldValue    float64 `json:"total_sold_value"`
	NetShares         float64 `json:"net_shares"`
}

// InsiderTransactionRecord is the typed result of parsing a Form 4.
type InsiderTransactionRecord struct {
	Identity     FilingIdentity            `json:"identity"`
	Insider      InsiderInfo               `json:"insider"`
	Transactions []InsiderTransaction      `json:"transactions"`
	Footnotes    map[string]string         `json:"footnotes,omitempty"`
	Summary      InsiderTransactionSummary `json:"summary"`
	Confidence   float64                   `json:"confidence"`
}

// SecurityHolding is one line of an initial (Form 3) ownership statement.
type SecurityHolding struct {
	SecurityTitle       string  `json:"security"`
	Shares              float64 `json:"shares"`
	OwnershipNature     string  `json:"ownership"` // "Direct" or "Indirect"
	IndirectExplanation string  `json:"indirect_explanation,omitempty"`
}

// InitialOwnershipRecord is the typed result of parsing a Form 3.
type InitialOwnershipRecord struct {
	Identity          FilingIdentity    `json:"identity"`
	Insider           InsiderInfo       `json:"insider"`
	Roles             []string          `json:"roles"`
	Address           string            `json:"address,omitempty"`
	DateBecameInsider string            `json:"date_became_insider,omitempty"`
	Holdings          []SecurityHolding `json:"holdings"`
	TotalShares       float64           `json:"total_shares"`
	HasDerivatives    bool              `json:"has_derivatives"`
	Confidence        float64           `json:"confidence"`
}

// AnnualOwnershipRecord is the typed result of parsing a Form 5, the annual
// statement that sweeps up late Form 4 reports, exempt small acquisitions
// and gifts.
type AnnualOwnershipRecord struct {
	Identity       FilingIdentity       `json:"identity"`
	Insider        InsiderInfo          `json:"insider"`
	FiscalYear     string               `json:"fiscal_year"`
	Transactions   []InsiderTransaction `json:"transactions"`
	TotalAcquired  float64              `json:"total_acquired"`
	TotalDisposed  float64              `json:"total_disposed"`
	NetChange      float64              `json:"net_change"`
	YearEndShares  float64              `json:"year_end_shares"`
	HasLateReports bool                 `json:"has_late_reports"`
	HasGifts       bool                 `json:"has_gifts"`
	Confidence     float64              `json:"confidence"`
}
