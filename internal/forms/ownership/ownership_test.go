package ownership

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/quantfold/filingscan/internal/extract/confidence"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/pkg/models"
)

const activeSample = `SCHEDULE 13D

Name of Issuer: Target Industries Inc.
Title of Class of Securities: Common Stock
CUSIP Number: 876543210
Date of Event Which Requires Filing of this Statement: 06/15/2025

Name of Reporting Person: Activist Capital Partners LP
Type of Reporting Person: IA

Sole Voting Power: 15,000,000
Shared Voting Power: 0
Sole Dispositive Power: 15,000,000
Shared Dispositive Power: 0

Aggregate Amount Beneficially Owned by Each Reporting Person: 15,000,000
Percent of Class Represented by Amount in Row (11): 8.5%

Item 4. Purpose of Transaction
The Reporting Persons acquired the securities for investment purposes and
intend to engage with the issuer's board of directors regarding strategic
alternatives to enhance shareholder value.
Item 5`

func TestParseActive(t *testing.T) {
	p := NewParser(confidence.NewScorer(), forms.DefaultCaps())
	id := models.FilingIdentity{Ticker: "TGT", FiledDate: "2025-06-17", AccessionNumber: "0000000000-25-000001"}

	rec, err := p.Parse(activeSample, models.FormOwnershipActive, id, Prior{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if rec.FilerName != "Activist Capital Partners LP" {
		t.Errorf("FilerName = %q", rec.FilerName)
	}
	if rec.FilerClass != models.FilerInstitutional {
		t.Errorf("FilerClass = %s", rec.FilerClass)
	}
	if rec.FilerType != "Investment Adviser" {
		t.Errorf("FilerType = %q", rec.FilerType)
	}
	if rec.CUSIP != "876543210" {
		t.Errorf("CUSIP = %q", rec.CUSIP)
	}
	if rec.EventDate != "06/15/2025" {
		t.Errorf("EventDate = %q", rec.EventDate)
	}
	if rec.SharesOwned != 15000000 {
		t.Errorf("SharesOwned = %d", rec.SharesOwned)
	}
	if rec.PercentOfClass != 8.5 {
		t.Errorf("PercentOfClass = %v", rec.PercentOfClass)
	}
	if rec.SoleVotingPower != 15000000 || rec.SharedVotingPower != 0 {
		t.Errorf("voting powers = %d/%d", rec.SoleVotingPower, rec.SharedVotingPower)
	}
	if !rec.IsActivist || rec.IsAmendment {
		t.Errorf("IsActivist = %v, IsAmendment = %v", rec.IsActivist, rec.IsAmendment)
	}
	if !strings.Contains(rec.Purpose, "board of directors") {
		t.Errorf("Purpose = %q", rec.Purpose)
	}
	if rec.Signal != models.SignalNewPosition {
		t.Errorf("Signal = %s", rec.Signal)
	}
	if rec.Confidence != 0.85 {
		t.Errorf("Confidence = %v", rec.Confidence)
	}
}

const passiveSample = `<html><body>
<p>SCHEDULE 13G (Amendment No. 1)</p>
<p>Name of Issuer: Megacap Technologies Inc.</p>
<p>Title of Class of Securities: Common Stock</p>
<p>CUSIP No. 921946406</p>
<p>Name of Reporting Person: Vanguard Group Inc</p>
<p>Type of Reporting Person: IV</p>
<p>Sole Voting Power: 0</p>
<p>Shared Voting Power: 1,234,567</p>
<p>Sole Dispositive Power: 75,432,981</p>
<p>Shared Dispositive Power: 3,000,000</p>
<p>Aggregate Amount Beneficially Owned by Each Reporting Person: 78,432,981</p>
<p>Percent of Class: 7.2%</p>
</body></html>`

func TestParsePassiveAmendment(t *testing.T) {
	p := NewParser(confidence.NewScorer(), forms.DefaultCaps())
	id := models.FilingIdentity{Ticker: "MGC", FiledDate: "2025-02-13"}

	rec, err := p.Parse(passiveSample, models.FormOwnershipPassive, id, Prior{Percent: 6.8, Known: true})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if rec.FilerName != "Vanguard Group Inc" {
		t.Errorf("FilerName = %q", rec.FilerName)
	}
	if rec.FilerClass != models.FilerInstitutional {
		t.Errorf("FilerClass = %s", rec.FilerClass)
	}
	if rec.FilerType != "Investment Company" {
		t.Errorf("FilerType = %q", rec.FilerType)
	}
	if rec.SharesOwned != 78432981 {
		t.Errorf("SharesOwned = %d", rec.SharesOwned)
	}
	if rec.SharedVotingPower != 1234567 || rec.SoleDispositivePower != 75432981 || rec.SharedDispositivePower != 3000000 {
		t.Errorf("powers = %d/%d/%d", rec.SharedVotingPower, rec.SoleDispositivePower, rec.SharedDispositivePower)
	}
	if rec.IsActivist {
		t.Error("passive schedule marked activist")
	}
	if !rec.IsAmendment {
		t.Error("amendment not detected")
	}
	if rec.Purpose != "" {
		t.Errorf("Purpose on passive filing = %q", rec.Purpose)
	}
	// No event date in the document, so the filed date stands in.
	if rec.EventDate != "2025-02-13" {
		t.Errorf("EventDate = %q", rec.EventDate)
	}
	if math.Abs(rec.ChangePercent-0.4) > 1e-9 {
		t.Errorf("ChangePercent = %v", rec.ChangePercent)
	}
	if rec.Signal != models.SignalAccumulating {
		t.Errorf("Signal = %s", rec.Signal)
	}
}

func TestParsePurposeCapConfigured(t *testing.T) {
	p := NewParser(confidence.NewScorer(), forms.Caps{SummaryChars: 120, PurposeChars: 120})
	rec, err := p.Parse(activeSample, models.FormOwnershipActive, models.FilingIdentity{FiledDate: "2025-06-17"}, Prior{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.Purpose == "" || len(rec.Purpose) > 120 {
		t.Errorf("Purpose len = %d, want 1..120", len(rec.Purpose))
	}
}

func TestParseRepeatable(t *testing.T) {
	p := NewParser(confidence.NewScorer(), forms.DefaultCaps())
	id := models.FilingIdentity{Ticker: "TGT", FiledDate: "2025-06-17"}

	first, err := p.Parse(activeSample, models.FormOwnershipActive, id, Prior{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := p.Parse(activeSample, models.FormOwnershipActive, id, Prior{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("records differ:\n%+v\n%+v", first, second)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	p := NewParser(confidence.NewScorer(), forms.DefaultCaps())
	_, err := p.Parse("   ", models.FormOwnershipActive, models.FilingIdentity{Ticker: "X"}, Prior{})
	var pf *forms.ParseFailure
	if !errors.As(err, &pf) {
		t.Fatalf("err = %v, want ParseFailure", err)
	}
}

func TestParsePercentSanity(t *testing.T) {
	p := NewParser(confidence.NewScorer(), forms.DefaultCaps())
	text := "Name of Reporting Person: Example Trust\nAggregate Amount Beneficially Owned by Each Reporting Person: 12,500\nPercent of Class: 250%"

	rec, err := p.Parse(text, models.FormOwnershipPassive, models.FilingIdentity{FiledDate: "2025-01-02"}, Prior{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.PercentOfClass != 0 {
		t.Errorf("out-of-range percent kept: %v", rec.PercentOfClass)
	}
	if rec.FilerClass != models.FilerQualified {
		t.Errorf("FilerClass = %s", rec.FilerClass)
	}
}

func TestAssess(t *testing.T) {
	p := NewParser(confidence.NewScorer(), forms.DefaultCaps())
	rec, err := p.Parse(activeSample, models.FormOwnershipActive, models.FilingIdentity{FiledDate: "2025-06-17"}, Prior{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	a := Assess(rec)
	if !a.IsActivistFiling {
		t.Error("not flagged as activist filing")
	}
	// Active schedule (30) + significant stake (10) + board (15) + strategic (15).
	if a.RiskScore != 70 {
		t.Errorf("RiskScore = %d", a.RiskScore)
	}
	if len(a.Signals) != 4 {
		t.Errorf("Signals = %v", a.Signals)
	}
	if a.Recommendation != "High activist risk - monitor closely" {
		t.Errorf("Recommendation = %q", a.Recommendation)
	}
}

func TestAssessPassive(t *testing.T) {
	rec := &models.OwnershipDisclosureRecord{PercentOfClass: 3.0}
	a := Assess(rec)
	if a.RiskScore != 0 {
		t.Errorf("RiskScore = %d", a.RiskScore)
	}
	if a.Recommendation != "Low activist risk - likely passive" {
		t.Errorf("Recommendation = %q", a.Recommendation)
	}
}
