package insider

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/quantfold/filingscan/internal/extract/fields"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/pkg/models"
)

var (
	annualTxnPattern = regexp.MustCompile(`(?m)(\d{1,2}/\d{1,2}/\d{4})\s+([PSGAMCFJ])\s+(\d[\d,]*)(?:[ \t]+\$?(\d[\d.]*))?`)
	giftPattern      = regexp.MustCompile(`(?i)gift[:\s]*(\d[\d,]*)\s*shares?`)

	fiscalYearRules = fields.RuleSet{
		{Pattern: regexp.MustCompile(`(?i)fiscal year[:\s]*(\d{4})`)},
	}
	yearEndShareRules = fields.NumberSet{
		{Pattern: regexp.MustCompile(`(?i)total[:\s]*(\d[\d,]*)\s*shares?`)},
	}
)

// Codes that add to the insider's position. Everything else is treated as a
// disposition.
var acquisitionCodes = map[string]bool{"P": true, "A": true, "M": true, "G": true, "C": true}

// ParseAnnual parses a narrative annual-reconciliation statement. The form
// sweeps up transactions that should have been reported earlier, exempt
// small acquisitions and gifts, plus a year-end holdings total.
func (p *Parser) ParseAnnual(content string, id models.FilingIdentity) (*models.AnnualOwnershipRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, forms.Fail(models.FormInsiderAnnual, id, errors.New("empty document"))
	}
	lower := strings.ToLower(content)

	txns := parseAnnualTransactions(content, lower)

	var acquired, disposed float64
	hasGifts := false
	for _, t := range txns {
		if t.AcquiredDisposed == "A" {
			acquired += t.Shares
		} else {
			disposed += t.Shares
		}
		if t.Code == "G" {
			hasGifts = true
		}
	}

	yearEnd, _ := yearEndShareRules.First(content)

	roles := parseRoles(content)
	if len(roles) == 0 {
		roles = []string{"Insider"}
	}

	return &models.AnnualOwnershipRecord{
		Identity:       id,
		Insider:        insiderFromText(insiderNameRules.FirstOr(content, "Unknown Insider"), lower),
		FiscalYear:     fiscalYearRules.FirstOr(content, priorYear(id.FiledDate)),
		Transactions:   txns,
		TotalAcquired:  acquired,
		TotalDisposed:  disposed,
		NetChange:      acquired - disposed,
		YearEndShares:  yearEnd,
		HasLateReports: strings.Contains(lower, "late") || strings.Contains(lower, "should have"),
		HasGifts:       hasGifts || strings.Contains(lower, "gift"),
		Confidence:     p.scorer.Score(len(txns) > 0, yearEnd > 0),
	}, nil
}

func parseAnnualTransactions(content, lower string) []models.InsiderTransaction {
	var txns []models.InsiderTransaction

	for _, m := range annualTxnPattern.FindAllStringSubmatch(content, -1) {
		shares, ok := fields.ParseNumber(m[3])
		if !ok {
			continue
		}
		code := strings.ToUpper(m[2])
		price, hasPrice := fields.ParseNumber(m[4])

		direction := "D"
		if acquisitionCodes[code] {
			direction = "A"
		}
		txns = append(txns, models.InsiderTransaction{
			SecurityTitle:    "Common Stock",
			Date:             normalizeSlashDate(m[1]),
			Code:             code,
			Shares:           shares,
			PricePerShare:    price,
			HasPrice:         hasPrice,
			AcquiredDisposed: direction,
			DirectIndirect:   "D",
		})
	}

	// A gift mentioned only in prose still counts as a disposition.
	if strings.Contains(lower, "gift") && !hasCode(txns, "G") {
		if m := giftPattern.FindStringSubmatch(content); m != nil {
			if shares, ok := fields.ParseNumber(m[1]); ok {
				txns = append(txns, models.InsiderTransaction{
					SecurityTitle:    "Common Stock",
					Code:             "G",
					Shares:           shares,
					AcquiredDisposed: "D",
					DirectIndirect:   "D",
				})
			}
		}
	}

	return txns
}

func hasCode(txns []models.InsiderTransaction, code string) bool {
	for _, t := range txns {
		if t.Code == code {
			return true
		}
	}
	return false
}

func normalizeSlashDate(s string) string {
	t, err := time.Parse("1/2/2006", s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}

// priorYear derives the default fiscal year from the filed date so parsing
// stays deterministic for identical inputs.
func priorYear(filedDate string) string {
	t, err := time.Parse("2006-01-02", filedDate)
	if err != nil {
		return ""
	}
	return t.AddDate(-1, 0, 0).Format("2006")
}
