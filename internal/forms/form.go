// Package forms hosts the per-form filing parsers. Each parser is a pure
// function from (raw content, filing identity) to a typed record; the only
// error any of them returns is a *ParseFailure for a document that violates
// the structural contract of its form type.
package forms

import (
	"fmt"
	"regexp"

	"github.com/quantfold/filingscan/pkg/models"
)

var formNames = map[models.FormType]string{
	models.FormInsiderInitial:     "Initial Statement of Beneficial Ownership",
	models.FormInsiderTransaction: "Statement of Changes in Beneficial Ownership",
	models.FormInsiderAnnual:      "Annual Statement of Beneficial Ownership",
	models.FormHoldings:           "Institutional Holdings Report",
	models.FormOwnershipActive:    "Beneficial Ownership Report (Active)",
	models.FormOwnershipPassive:   "Beneficial Ownership Report (Passive)",
	models.FormMaterialEvent:      "Current Report of Material Events",
	models.FormCapEx:              "Capital Expenditure Disclosure",
	models.FormEarningsCall:       "Earnings Call Transcript",
}

// Name returns the descriptive title for a form type, or the raw type string
// when the type is not registered.
func Name(ft models.FormType) string {
	if n, ok := formNames[ft]; ok {
		return n
	}
	return string(ft)
}

// Caps bounds the free-text excerpts parsers carry on their records.
type Caps struct {
	SummaryChars int // per-event summary excerpt
	PurposeChars int // stated-purpose excerpt
}

// DefaultCaps returns the shipped excerpt caps.
func DefaultCaps() Caps {
	return Caps{SummaryChars: 500, PurposeChars: 500}
}

// ParseFailure reports a document that could not be parsed structurally.
// Field-level extraction misses never produce one; they resolve to typed
// defaults and lower the record's confidence instead.
type ParseFailure struct {
	Form            models.FormType
	Ticker          string
	AccessionNumber string
	Err             error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse form %s filing %s (%s): %v", e.Form, e.AccessionNumber, e.Ticker, e.Err)
}

func (e *ParseFailure) Unwrap() error { return e.Err }

// Fail wraps err in a ParseFailure carrying enough identity to let the
// caller log, skip or refetch the document.
func Fail(form models.FormType, id models.FilingIdentity, err error) error {
	return &ParseFailure{
		Form:            form,
		Ticker:          id.Ticker,
		AccessionNumber: id.AccessionNumber,
		Err:             err,
	}
}

// Filer-supplied XML is inconsistently namespaced, so prefixes are stripped
// before decoding rather than declared in struct tags.
var (
	xmlnsAttr   = regexp.MustCompile(`xmlns[^"]*"[^"]*"`)
	openPrefix  = regexp.MustCompile(`<([a-zA-Z]+):`)
	closePrefix = regexp.MustCompile(`</([a-zA-Z]+):`)
)

// StripNamespaces removes namespace declarations and element prefixes from
// an XML document.
func StripNamespaces(s string) string {
	s = xmlnsAttr.ReplaceAllString(s, "")
	s = openPrefix.ReplaceAllString(s, "<")
	s = closePrefix.ReplaceAllString(s, "</")
	return s
}
