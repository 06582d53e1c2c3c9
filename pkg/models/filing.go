// Package models defines the core record types produced by the extraction
// pipeline. Records are value objects: each is built once by a single parser
// invocation and never mutated afterward.
package models

// FormType identifies the kind of regulatory document a record came from.
type FormType string

const (
	FormInsiderInitial     FormType = "3"
	FormInsiderTransaction FormType = "4"
	FormInsiderAnnual      FormType = "5"
	FormHoldings           FormType = "13F"
	FormOwnershipActive    FormType = "13D"
	FormOwnershipPassive   FormType = "13G"
	FormMaterialEvent      FormType = "8-K"
	FormCapEx              FormType = "CAPEX"
	FormEarningsCall       FormType = "EARNINGS"
)

// FilingIdentity identifies the source document of a record. It is supplied
// by the fetch layer alongside the raw content and attached verbatim to every
// record the parsers produce.
type FilingIdentity struct {
	Ticker          string `json:"ticker"`
	CompanyName     string `json:"company_name"`
	CIK             string `json:"cik"`
	FiledDate       string `json:"filed_date"` // YYYY-MM-DD
	AccessionNumber string `json:"accession_number"`
}
