// Package insider parses the beneficial-ownership forms company insiders
// file: the XML statement of changes (Form 4 equivalent), the narrative
// initial statement (Form 3 equivalent) and the annual reconciliation
// (Form 5 equivalent).
package insider

import (
	"github.com/quantfold/filingscan/internal/extract/confidence"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/pkg/models"
)

// Parser holds the scoring policy shared by the three insider form parsers.
type Parser struct {
	scorer confidence.Scorer
}

// NewParser returns a parser using the given confidence policy.
func NewParser(scorer confidence.Scorer) *Parser {
	return &Parser{scorer: scorer}
}

// ParseTransactions parses a change-of-ownership XML document into a
// transaction record. Blank identity fields are filled from the issuer
// block; populated ones are kept as supplied.
func (p *Parser) ParseTransactions(content string, id models.FilingIdentity) (*models.InsiderTransactionRecord, error) {
	doc, err := decodeDocument(content)
	if err != nil {
		return nil, forms.Fail(models.FormInsiderTransaction, id, err)
	}
	fillIdentity(&id, doc)

	var txns []models.InsiderTransaction
	if doc.NonDerivative != nil {
		for _, t := range doc.NonDerivative.Transactions {
			txns = append(txns, convertTransaction(t, false))
		}
	}
	if doc.Derivative != nil {
		for _, t := range doc.Derivative.Transactions {
			txns = append(txns, convertTransaction(t, true))
		}
	}

	var footnotes map[string]string
	for _, fn := range doc.Footnotes {
		if fn.ID == "" {
			continue
		}
		if footnotes == nil {
			footnotes = make(map[string]string)
		}
		footnotes[fn.ID] = fn.Text
	}

	return &models.InsiderTransactionRecord{
		Identity:     id,
		Insider:      reportingInsider(doc),
		Transactions: txns,
		Footnotes:    footnotes,
		Summary:      summarize(txns),
		Confidence:   p.scorer.Score(len(txns) > 0),
	}, nil
}

func convertTransaction(t xmlTransaction, derivative bool) models.InsiderTransaction {
	security := t.SecurityTitle
	if security == "" {
		if derivative {
			security = "Option"
		} else {
			security = "Common Stock"
		}
	}
	ownership := t.Ownership.DirectOrIndirect
	if ownership == "" {
		ownership = "D"
	}

	shares, _ := t.Amounts.Shares.Float64()
	price, hasPrice := t.Amounts.PricePerShare.Float64()
	ownedAfter, _ := t.PostTransaction.SharesOwnedFollowing.Float64()

	return models.InsiderTransaction{
		SecurityTitle:    security,
		Date:             t.TransactionDate,
		Code:             t.Coding.Code,
		Shares:           shares,
		PricePerShare:    price,
		HasPrice:         hasPrice,
		AcquiredDisposed: t.Amounts.AcquiredDisposed,
		SharesOwnedAfter: ownedAfter,
		DirectIndirect:   ownership,
		Derivative:       derivative,
	}
}

func summarize(txns []models.InsiderTransaction) models.InsiderTransactionSummary {
	var s models.InsiderTransactionSummary
	for _, t := range txns {
		switch {
		case t.IsBuy():
			s.TotalBoughtShares += t.Shares
			s.TotalBoughtValue += t.TotalValue()
		case t.IsSell():
			s.TotalSoldShares += t.Shares
			s.TotalSoldValue += t.TotalValue()
		}
	}
	s.NetShares = s.TotalBoughtShares - s.TotalSoldShares
	return s
}

func reportingInsider(doc *ownershipDocument) models.InsiderInfo {
	info := models.InsiderInfo{Name: "Unknown"}
	if len(doc.Owners) == 0 {
		return info
	}
	owner := doc.Owners[0]
	if owner.ID.Name != "" {
		info.Name = owner.ID.Name
	}
	info.CIK = owner.ID.CIK
	info.IsDirector = bool(owner.Relationship.IsDirector)
	info.IsOfficer = bool(owner.Relationship.IsOfficer)
	info.IsTenPercentOwner = bool(owner.Relationship.IsTenPercentOwner)
	info.IsOther = bool(owner.Relationship.IsOther)
	info.OfficerTitle = owner.Relationship.OfficerTitle
	return info
}

func fillIdentity(id *models.FilingIdentity, doc *ownershipDocument) {
	if id.Ticker == "" {
		id.Ticker = doc.Issuer.TradingSymbol
	}
	if id.CompanyName == "" {
		id.CompanyName = doc.Issuer.Name
	}
	if id.CIK == "" {
		id.CIK = doc.Issuer.CIK
	}
}
