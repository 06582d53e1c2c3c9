package insider

import (
	"errors"
	"reflect"
	"testing"

	"github.com/quantfold/filingscan/internal/extract/confidence"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/pkg/models"
)

const sampleTransactionXML = `<?xml version="1.0"?>
<ns1:ownershipDocument xmlns:ns1="http://www.sec.gov/edgar/ownership">
  <ns1:issuer>
    <ns1:issuerCik>0000320193</ns1:issuerCik>
    <ns1:issuerName>Apple Inc</ns1:issuerName>
    <ns1:issuerTradingSymbol>AAPL</ns1:issuerTradingSymbol>
  </ns1:issuer>
  <ns1:reportingOwner>
    <ns1:reportingOwnerId>
      <ns1:rptOwnerCik>0001214156</ns1:rptOwnerCik>
      <ns1:rptOwnerName>Cook Timothy D</ns1:rptOwnerName>
    </ns1:reportingOwnerId>
    <ns1:reportingOwnerRelationship>
      <ns1:isDirector>1</ns1:isDirector>
      <ns1:isOfficer>true</ns1:isOfficer>
      <ns1:isTenPercentOwner>0</ns1:isTenPercentOwner>
      <ns1:officerTitle>Chief Executive Officer</ns1:officerTitle>
    </ns1:reportingOwnerRelationship>
  </ns1:reportingOwner>
  <ns1:nonDerivativeTable>
    <ns1:nonDerivativeTransaction>
      <ns1:securityTitle><ns1:value>Common Stock</ns1:value></ns1:securityTitle>
      <ns1:transactionDate><ns1:value>2024-01-15</ns1:value></ns1:transactionDate>
      <ns1:transactionCoding>
        <ns1:transactionCode>S</ns1:transactionCode>
      </ns1:transactionCoding>
      <ns1:transactionAmounts>
        <ns1:transactionShares><ns1:value>50000</ns1:value></ns1:transactionShares>
        <ns1:transactionPricePerShare><ns1:value>185.50</ns1:value></ns1:transactionPricePerShare>
        <ns1:transactionAcquiredDisposedCode><ns1:value>D</ns1:value></ns1:transactionAcquiredDisposedCode>
      </ns1:transactionAmounts>
      <ns1:postTransactionAmounts>
        <ns1:sharesOwnedFollowingTransaction><ns1:value>3500000</ns1:value></ns1:sharesOwnedFollowingTransaction>
      </ns1:postTransactionAmounts>
      <ns1:ownershipNature>
        <ns1:directOrIndirectOwnership><ns1:value>D</ns1:value></ns1:directOrIndirectOwnership>
      </ns1:ownershipNature>
    </ns1:nonDerivativeTransaction>
  </ns1:nonDerivativeTable>
  <ns1:footnotes>
    <ns1:footnote id="F1">Shares sold pursuant to a trading plan.</ns1:footnote>
  </ns1:footnotes>
</ns1:ownershipDocument>`

func TestParseTransactions(t *testing.T) {
	p := NewParser(confidence.NewScorer())

	rec, err := p.ParseTransactions(sampleTransactionXML, models.FilingIdentity{
		FiledDate:       "2024-01-16",
		AccessionNumber: "0000320193-24-000001",
	})
	if err != nil {
		t.Fatal(err)
	}

	if rec.Identity.Ticker != "AAPL" || rec.Identity.CompanyName != "Apple Inc" {
		t.Errorf("identity not filled from issuer: %+v", rec.Identity)
	}
	if rec.Insider.Name != "Cook Timothy D" || !rec.Insider.IsOfficer || !rec.Insider.IsDirector {
		t.Errorf("insider = %+v", rec.Insider)
	}
	if rec.Insider.Role() != "Director, Officer (Chief Executive Officer)" {
		t.Errorf("role = %q", rec.Insider.Role())
	}

	if len(rec.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(rec.Transactions))
	}
	txn := rec.Transactions[0]
	if txn.Code != "S" || txn.Shares != 50000 || !txn.HasPrice || txn.PricePerShare != 185.50 {
		t.Errorf("transaction = %+v", txn)
	}
	if !txn.IsSell() || txn.IsBuy() {
		t.Error("sale classified wrong")
	}
	if txn.SharesOwnedAfter != 3500000 {
		t.Errorf("shares owned after = %v", txn.SharesOwnedAfter)
	}

	if rec.Summary.TotalSoldShares != 50000 || rec.Summary.TotalSoldValue != 50000*185.50 {
		t.Errorf("summary = %+v", rec.Summary)
	}
	if rec.Summary.NetShares != -50000 {
		t.Errorf("net shares = %v", rec.Summary.NetShares)
	}
	if rec.Footnotes["F1"] == "" {
		t.Error("footnote F1 missing")
	}
	if rec.Confidence != confidence.DefaultBase {
		t.Errorf("confidence = %v", rec.Confidence)
	}
}

func TestParseTransactionsMalformed(t *testing.T) {
	p := NewParser(confidence.NewScorer())

	_, err := p.ParseTransactions("<ownershipDocument><unclosed>", models.FilingIdentity{
		Ticker:          "AAPL",
		AccessionNumber: "0000320193-24-000002",
	})
	if err == nil {
		t.Fatal("expected parse failure")
	}
	var pf *forms.ParseFailure
	if !errors.As(err, &pf) {
		t.Fatalf("error type %T", err)
	}
	if pf.Form != models.FormInsiderTransaction || pf.AccessionNumber != "0000320193-24-000002" {
		t.Errorf("failure = %+v", pf)
	}
}

func TestParseTransactionsRepeatable(t *testing.T) {
	p := NewParser(confidence.NewScorer())
	id := models.FilingIdentity{FiledDate: "2024-01-16"}

	first, err := p.ParseTransactions(sampleTransactionXML, id)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.ParseTransactions(sampleTransactionXML, id)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("records differ:\n%+v\n%+v", first, second)
	}
}

const sampleInitialText = `
FORM 3
INITIAL STATEMENT OF BENEFICIAL OWNERSHIP OF SECURITIES

Tesla, Inc.
(Name of Issuer)

Name of Reporting Person: Jane Smith

Address: 123 Tech Drive, Austin, TX 78701

Relationship of Reporting Person to Issuer:
Director
Officer (Chief Financial Officer)

Date of Event Requiring Statement: January 15, 2025

Table I - Non-Derivative Securities Beneficially Owned

Common Stock: 50,000 shares

Nature of Ownership: Direct
`

func TestParseInitial(t *testing.T) {
	p := NewParser(confidence.NewScorer())

	rec, err := p.ParseInitial(sampleInitialText, models.FilingIdentity{
		Ticker:    "TSLA",
		FiledDate: "2025-01-17",
	})
	if err != nil {
		t.Fatal(err)
	}

	if rec.Insider.Name != "Jane Smith" {
		t.Errorf("insider name = %q", rec.Insider.Name)
	}
	wantRoles := map[string]bool{"Director": true, "CHIEF FINANCIAL OFFICER": true}
	for _, r := range rec.Roles {
		if !wantRoles[r] {
			t.Errorf("unexpected role %q in %v", r, rec.Roles)
		}
	}
	if len(rec.Roles) != 2 {
		t.Errorf("roles = %v", rec.Roles)
	}
	if rec.DateBecameInsider != "January 15, 2025" {
		t.Errorf("date became insider = %q", rec.DateBecameInsider)
	}

	if len(rec.Holdings) != 1 {
		t.Fatalf("holdings = %+v", rec.Holdings)
	}
	h := rec.Holdings[0]
	if h.SecurityTitle != "Common Stock" || h.Shares != 50000 || h.OwnershipNature != "Direct" {
		t.Errorf("holding = %+v", h)
	}
	if rec.TotalShares != 50000 {
		t.Errorf("total shares = %v", rec.TotalShares)
	}
	if rec.HasDerivatives {
		t.Error("no derivatives in sample")
	}
	if rec.Confidence != confidence.DefaultBase {
		t.Errorf("confidence = %v", rec.Confidence)
	}
}

func TestParseInitialEmptyText(t *testing.T) {
	p := NewParser(confidence.NewScorer())

	rec, err := p.ParseInitial("nothing useful here", models.FilingIdentity{FiledDate: "2025-01-17"})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Insider.Name != "Unknown Insider" {
		t.Errorf("name default = %q", rec.Insider.Name)
	}
	if len(rec.Roles) != 1 || rec.Roles[0] != "Other" {
		t.Errorf("roles default = %v", rec.Roles)
	}
	if rec.DateBecameInsider != "2025-01-17" {
		t.Errorf("date default = %q", rec.DateBecameInsider)
	}
	if rec.Confidence != confidence.DefaultFallback {
		t.Errorf("confidence = %v", rec.Confidence)
	}
}

func TestParseInitialEmptyDocument(t *testing.T) {
	p := NewParser(confidence.NewScorer())

	_, err := p.ParseInitial("   ", models.FilingIdentity{Ticker: "TSLA"})
	var pf *forms.ParseFailure
	if !errors.As(err, &pf) {
		t.Fatalf("err = %v, want ParseFailure", err)
	}
	if pf.Form != models.FormInsiderInitial {
		t.Errorf("failure form = %s", pf.Form)
	}
}

const sampleAnnualText = `
FORM 5
ANNUAL STATEMENT OF BENEFICIAL OWNERSHIP

Fiscal Year: 2024

Tesla, Inc.
(Name of Issuer)

Name of Reporting Person: John Executive

Relationship: Director, Officer

Table I - Transactions During Fiscal Year
(Transactions that should have been reported earlier)

01/15/2024  P  5,000  $245.50
03/22/2024  G  2,000
06/10/2024  S  1,000  $180.25

This statement includes transactions that were late.

Year-End Total: 125,000 shares
`

func TestParseAnnual(t *testing.T) {
	p := NewParser(confidence.NewScorer())

	rec, err := p.ParseAnnual(sampleAnnualText, models.FilingIdentity{
		Ticker:    "TSLA",
		FiledDate: "2025-02-14",
	})
	if err != nil {
		t.Fatal(err)
	}

	if rec.FiscalYear != "2024" {
		t.Errorf("fiscal year = %q", rec.FiscalYear)
	}
	if rec.Insider.Name != "John Executive" {
		t.Errorf("insider name = %q", rec.Insider.Name)
	}

	if len(rec.Transactions) != 3 {
		t.Fatalf("transactions = %+v", rec.Transactions)
	}
	first := rec.Transactions[0]
	if first.Date != "2024-01-15" || first.Code != "P" || first.Shares != 5000 || first.PricePerShare != 245.50 {
		t.Errorf("first transaction = %+v", first)
	}
	gift := rec.Transactions[1]
	if gift.Code != "G" || gift.HasPrice {
		t.Errorf("gift transaction = %+v", gift)
	}

	if rec.TotalAcquired != 7000 || rec.TotalDisposed != 1000 || rec.NetChange != 6000 {
		t.Errorf("totals = acquired %v disposed %v net %v", rec.TotalAcquired, rec.TotalDisposed, rec.NetChange)
	}
	if rec.YearEndShares != 125000 {
		t.Errorf("year-end shares = %v", rec.YearEndShares)
	}
	if !rec.HasLateReports || !rec.HasGifts {
		t.Errorf("flags: late %v gifts %v", rec.HasLateReports, rec.HasGifts)
	}
}

func TestParseAnnualDefaultFiscalYear(t *testing.T) {
	p := NewParser(confidence.NewScorer())

	rec, err := p.ParseAnnual("no structured data", models.FilingIdentity{FiledDate: "2025-02-14"})
	if err != nil {
		t.Fatal(err)
	}
	if rec.FiscalYear != "2024" {
		t.Errorf("fiscal year default = %q", rec.FiscalYear)
	}
	if rec.Confidence != confidence.DefaultFallback {
		t.Errorf("confidence = %v", rec.Confidence)
	}
}

func TestParseAnnualEmptyDocument(t *testing.T) {
	p := NewParser(confidence.NewScorer())

	_, err := p.ParseAnnual("", models.FilingIdentity{Ticker: "TSLA"})
	var pf *forms.ParseFailure
	if !errors.As(err, &pf) {
		t.Fatalf("err = %v, want ParseFailure", err)
	}
	if pf.Form != models.FormInsiderAnnual {
		t.Errorf("failure form = %s", pf.Form)
	}
}
