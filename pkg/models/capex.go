package models

// CapExItem is one classified capital-expenditure line.
type CapExItem struct {
	Category    string  `json:"category"` // "maintenance", "growth"
	Description string  `json:"description"`
	Amount      float64 `json:"amount"` // millions
	IsEstimate  bool    `json:"is_estimate"`
}

// CapExRecord is the typed result of extracting capital-expenditure data
// from a filing or transcript. All monetary amounts are in millions; derived
// fields (free cash flow, ratios, change) are computed once at construction.
type CapExRecord struct {
	Identity FilingIdentity `json:"identity"`
	Period   string         `json:"period"` // e.g. "FY 2024"

	TotalCapEx       float64 `json:"total_capex"`
	MaintenanceCapEx float64 `json:"maintenance_capex,omitempty"`
	GrowthCapEx      float64 `json:"growth_capex,omitempty"`

	OperatingCashFlow float64 `json:"operating_cash_flow,omitempty"`
	HasOCF            bool    `json:"has_ocf"`
	FreeCashFlow      float64 `json:"free_cash_flow,omitempty"` // OCF minus total CapEx
	CapExToOCF        float64 `json:"capex_to_ocf_ratio,omitempty"`

	GuidanceLow    float64 `json:"capex_guidance_low,omitempty"`
	GuidanceHigh   float64 `json:"capex_guidance_high,omitempty"`
	GuidancePeriod string  `json:"guidance_period,omitempty"`

	PriorPeriodCapEx float64 `json:"prior_period_capex,omitempty"`
	HasPriorCapEx    bool    `json:"has_prior_capex"`
	CapExChangePct   float64 `json:"capex_change_pct,omitempty"`

	Items []CapExItem `json:"capex_items,omitempty"`

	CapExIntensity float64     `json:"capex_intensity,omitempty"` // total CapEx / revenue
	Signal         CapExSignal `json:"signal"`

	Confidence float64 `json:"confidence"`
	SourceText string  `json:"source_text,omitempty"` // excerpt only
}
