// Package capex extracts capital-expenditure figures from annual and
// quarterly report text and from earnings transcripts. Amounts are
// normalized to millions; derived ratios are computed once at record
// construction.
package capex

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/quantfold/filingscan/internal/extract/confidence"
	"github.com/quantfold/filingscan/internal/extract/fields"
	"github.com/quantfold/filingscan/internal/extract/htmltext"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/internal/signals"
	"github.com/quantfold/filingscan/pkg/models"
	"github.com/quantfold/filingscan/pkg/textutil"
)

// maxSourceChars caps the source excerpt carried on the record.
const maxSourceChars = 500

var (
	capexRules = fields.MoneySet{
		{Pattern: regexp.MustCompile(`(?i)capital expenditures?\s+(?:of\s+)?\$?([\d,]+(?:\.\d+)?)\s*(million|billion|M|B)?`), UnitGroup: 2},
		{Pattern: regexp.MustCompile(`(?i)capex\s+(?:of\s+)?\$?([\d,]+(?:\.\d+)?)\s*(million|billion|M|B)?`), UnitGroup: 2},
		{Pattern: regexp.MustCompile(`(?i)property[^\n]+equipment[^\n]+purchases?\s+\$?([\d,]+(?:\.\d+)?)\s*(million|billion|M|B)?`), UnitGroup: 2},
	}
	ocfRules = fields.MoneySet{
		{Pattern: regexp.MustCompile(`(?i)(?:cash (?:provided by|from)|net cash from)\s+operat\w+\s+activit\w+\s+(?:was\s+)?\$?([\d,]+(?:\.\d+)?)\s*(million|billion|M|B)?`), UnitGroup: 2},
		{Pattern: regexp.MustCompile(`(?i)operating cash flow\s+(?:of\s+)?\$?([\d,]+(?:\.\d+)?)\s*(million|billion|M|B)?`), UnitGroup: 2},
	}
	guidanceRules = fields.RangeSet{
		{Pattern: regexp.MustCompile(`(?i)(?:expect|anticipate|project|plan)[^\n]+?cap(?:ital\s+)?ex(?:penditures)?[^\n]+?\$([\d,]+(?:\.\d+)?)\s*(?:to|-)\s*\$([\d,]+(?:\.\d+)?)\s*(million|billion|M|B)?`), LowGroup: 1, HighGroup: 2, UnitGroup: 3},
		{Pattern: regexp.MustCompile(`(?i)cap(?:ital\s+)?ex(?:penditures)?\s+guidance[^\n]+?\$([\d,]+(?:\.\d+)?)\s*(?:to|-)\s*\$([\d,]+(?:\.\d+)?)\s*(million|billion|M|B)?`), LowGroup: 1, HighGroup: 2, UnitGroup: 3},
	}
	maintenanceRules = fields.MoneySet{
		{Pattern: regexp.MustCompile(`(?i)maintenance\s+cap(?:ital\s+)?ex\w*\s+(?:was\s+)?(?:of\s+)?(?:approximately\s+)?\$?([\d,]+(?:\.\d+)?)\s*(million|billion|M|B)?`), UnitGroup: 2},
	}
	growthRules = fields.MoneySet{
		{Pattern: regexp.MustCompile(`(?i)growth\s+cap(?:ital\s+)?ex\w*\s+(?:was\s+)?(?:of\s+)?(?:approximately\s+)?\$?([\d,]+(?:\.\d+)?)\s*(million|billion|M|B)?`), UnitGroup: 2},
	}
)

// Basis carries caller-supplied comparison figures, in millions. The source
// document never states its own prior-period total or revenue in a reliably
// extractable form, so both come from the fetch layer.
type Basis struct {
	PriorCapEx    float64
	HasPriorCapEx bool
	Revenue       float64
	HasRevenue    bool
}

// Parser extracts capital-expenditure records.
type Parser struct {
	scorer confidence.Scorer
}

// NewParser returns a parser using the given confidence policy.
func NewParser(scorer confidence.Scorer) *Parser {
	return &Parser{scorer: scorer}
}

// Parse extracts a capital-expenditure record from filing or transcript
// text. period labels the reporting period, e.g. "FY 2024".
func (p *Parser) Parse(content string, id models.FilingIdentity, period string, basis Basis) (*models.CapExRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, forms.Fail(models.FormCapEx, id, errors.New("empty document"))
	}
	text := htmltext.Strip(content)

	total, totalOK := capexRules.FirstMillions(text)
	ocf, ocfOK := ocfRules.FirstMillions(text)
	guidanceLow, guidanceHigh, guidanceOK := guidanceRules.FirstMillions(text)
	maintenance, maintenanceOK := maintenanceRules.FirstMillions(text)
	growth, growthOK := growthRules.FirstMillions(text)

	rec := &models.CapExRecord{
		Identity:   id,
		Period:     period,
		TotalCapEx: total,
		Confidence: p.scorer.Score(totalOK),
		SourceText: excerpt(text),
	}

	if maintenanceOK {
		rec.MaintenanceCapEx = maintenance
		rec.Items = append(rec.Items, models.CapExItem{
			Category:    "maintenance",
			Description: "Maintenance CapEx",
			Amount:      maintenance,
		})
	}
	if growthOK {
		rec.GrowthCapEx = growth
		rec.Items = append(rec.Items, models.CapExItem{
			Category:    "growth",
			Description: "Growth CapEx",
			Amount:      growth,
		})
	}

	if ocfOK {
		rec.OperatingCashFlow = ocf
		rec.HasOCF = true
		if totalOK && ocf > 0 {
			rec.FreeCashFlow = ocf - total
			rec.CapExToOCF = total / ocf
		}
	}

	if guidanceOK {
		rec.GuidanceLow = guidanceLow
		rec.GuidanceHigh = guidanceHigh
		rec.GuidancePeriod = guidancePeriod(id.FiledDate)
	}

	hasTrend := basis.HasPriorCapEx && basis.PriorCapEx != 0 && totalOK
	if hasTrend {
		rec.PriorPeriodCapEx = basis.PriorCapEx
		rec.HasPriorCapEx = true
		rec.CapExChangePct = (total - basis.PriorCapEx) / basis.PriorCapEx * 100
	}
	rec.Signal = signals.CapExTrend(rec.CapExChangePct, hasTrend)

	if basis.HasRevenue && basis.Revenue > 0 && totalOK {
		rec.CapExIntensity = total / basis.Revenue
	}

	return rec, nil
}

// guidancePeriod labels guidance as the fiscal year after the filing date.
func guidancePeriod(filedDate string) string {
	if len(filedDate) < 4 {
		return ""
	}
	year, err := strconv.Atoi(filedDate[:4])
	if err != nil {
		return ""
	}
	return fmt.Sprintf("FY %d", year+1)
}

func excerpt(text string) string {
	return textutil.Ellipsize(text, maxSourceChars)
}
