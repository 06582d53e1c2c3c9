// Package holdings parses institutional-holdings information tables and
// compares snapshots of the same filer across report periods.
package holdings

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/quantfold/filingscan/internal/extract/confidence"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/pkg/models"
)

// informationTable is the XML root of the holdings document. The cover page
// is a separate document; filer identity arrives via the filing metadata.
type informationTable struct {
	XMLName xml.Name    `xml:"informationTable"`
	Entries []infoTable `xml:"infoTable"`
}

type infoTable struct {
	NameOfIssuer         string          `xml:"nameOfIssuer"`
	TitleOfClass         string          `xml:"titleOfClass"`
	CUSIP                string          `xml:"cusip"`
	Value                string          `xml:"value"`
	ShrsOrPrnAmt         sharesOrPrn     `xml:"shrsOrPrnAmt"`
	InvestmentDiscretion string          `xml:"investmentDiscretion"`
	VotingAuthority      votingAuthority `xml:"votingAuthority"`
	PutCall              string          `xml:"putCall"`
}

type sharesOrPrn struct {
	Amount string `xml:"sshPrnamt"`
	Type   string `xml:"sshPrnamtType"`
}

type votingAuthority struct {
	Sole   string `xml:"Sole"`
	Shared string `xml:"Shared"`
	None   string `xml:"None"`
}

// Parser parses holdings information tables.
type Parser struct {
	scorer confidence.Scorer
}

// NewParser returns a parser using the given confidence policy.
func NewParser(scorer confidence.Scorer) *Parser {
	return &Parser{scorer: scorer}
}

// Parse decodes an information-table document into a holdings record. The
// filer name and CIK come from the identity metadata since the table itself
// carries neither.
func (p *Parser) Parse(content string, id models.FilingIdentity) (*models.HoldingRecord, error) {
	var table informationTable
	if err := xml.Unmarshal([]byte(forms.StripNamespaces(content)), &table); err != nil {
		return nil, forms.Fail(models.FormHoldings, id, fmt.Errorf("decode information table: %w", err))
	}

	filer := id.CompanyName
	if filer == "" {
		filer = "Unknown Filer"
	}

	holdings := make([]models.Holding, 0, len(table.Entries))
	var total int64
	for _, e := range table.Entries {
		h := convertHolding(e)
		holdings = append(holdings, h)
		total += h.Value()
	}

	return &models.HoldingRecord{
		Identity:       id,
		FilerName:      filer,
		FilerCIK:       id.CIK,
		ReportDate:     id.FiledDate,
		Holdings:       holdings,
		TotalValue:     total,
		TotalPositions: len(holdings),
		Confidence:     p.scorer.Score(len(holdings) > 0),
	}, nil
}

func convertHolding(e infoTable) models.Holding {
	discretion := strings.TrimSpace(e.InvestmentDiscretion)
	if discretion == "" {
		discretion = "SOLE"
	}
	sharesType := strings.TrimSpace(e.ShrsOrPrnAmt.Type)
	if sharesType == "" {
		sharesType = "SH"
	}
	putCall := strings.TrimSpace(e.PutCall)
	if putCall != "PUT" && putCall != "CALL" {
		putCall = ""
	}

	return models.Holding{
		IssuerName:           strings.TrimSpace(e.NameOfIssuer),
		TitleOfClass:         strings.TrimSpace(e.TitleOfClass),
		CUSIP:                strings.TrimSpace(e.CUSIP),
		ValueThousands:       parseCount(e.Value),
		SharesOrPrincipal:    parseCount(e.ShrsOrPrnAmt.Amount),
		SharesType:           sharesType,
		InvestmentDiscretion: discretion,
		VotingSole:           parseCount(e.VotingAuthority.Sole),
		VotingShared:         parseCount(e.VotingAuthority.Shared),
		VotingNone:           parseCount(e.VotingAuthority.None),
		PutCall:              putCall,
	}
}

// parseCount is tolerant of blanks and thousands separators; a malformed
// count resolves to zero rather than failing the document.
func parseCount(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
