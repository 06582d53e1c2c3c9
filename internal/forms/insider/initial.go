package insider

import (
	"errors"
	"regexp"
	"strings"

	"github.com/quantfold/filingscan/internal/extract/fields"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/pkg/models"
)

var (
	insiderNameRules = fields.RuleSet{
		{Pattern: regexp.MustCompile(`(?i)name of reporting person[:\s]*([^\n]+)`)},
	}
	insiderAddressRules = fields.RuleSet{
		{Pattern: regexp.MustCompile(`(?i)address[:\s]*([^\n]+)`)},
	}
	eventDateRules = fields.RuleSet{
		{Pattern: regexp.MustCompile(`(?i)date of event[^:\n]*:\s*([^\n]+)`)},
	}

	officerTitlePattern = regexp.MustCompile(`(?i)chief\s+\w+\s+officer|\bceo\b|\bcfo\b|\bcoo\b|\bcto\b|president|vice president|\bvp\b`)
	commonStockPattern  = regexp.MustCompile(`(?i)common stock[:\s]*(\d[\d,]*)\s*shares?`)
	sharesOfPattern     = regexp.MustCompile(`(?i)(\d[\d,]*)\s*shares?\s+of\s+([^,\n]+)`)
)

var derivativeWords = []string{"option", "warrant", "convertible", "derivative"}

// ParseInitial parses a narrative initial-ownership statement. The form is
// filed when someone first becomes an insider, so the holdings it lists are
// the baseline for tracking later transaction filings.
func (p *Parser) ParseInitial(content string, id models.FilingIdentity) (*models.InitialOwnershipRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, forms.Fail(models.FormInsiderInitial, id, errors.New("empty document"))
	}
	lower := strings.ToLower(content)

	name := insiderNameRules.FirstOr(content, "Unknown Insider")
	roles := parseRoles(content)
	if len(roles) == 0 {
		roles = []string{"Other"}
	}
	holdings := parseHoldings(content, lower)

	var total float64
	for _, h := range holdings {
		total += h.Shares
	}

	return &models.InitialOwnershipRecord{
		Identity:          id,
		Insider:           insiderFromText(name, lower),
		Roles:             roles,
		Address:           insiderAddressRules.FirstOr(content, ""),
		DateBecameInsider: eventDateRules.FirstOr(content, id.FiledDate),
		Holdings:          holdings,
		TotalShares:       total,
		HasDerivatives:    containsAny(lower, derivativeWords),
		Confidence:        p.scorer.Score(len(holdings) > 0),
	}, nil
}

// parseRoles extracts the insider's declared relationships to the issuer.
// An officer mention is upgraded to the specific title when one appears.
func parseRoles(text string) []string {
	lower := strings.ToLower(text)
	var roles []string
	if strings.Contains(lower, "director") {
		roles = append(roles, "Director")
	}
	if strings.Contains(lower, "officer") {
		if title := officerTitlePattern.FindString(text); title != "" {
			roles = append(roles, strings.ToUpper(title))
		} else {
			roles = append(roles, "Officer")
		}
	}
	if strings.Contains(lower, "10%") || strings.Contains(lower, "ten percent") {
		roles = append(roles, "10% Owner")
	}
	return roles
}

func parseHoldings(text, lower string) []models.SecurityHolding {
	var holdings []models.SecurityHolding

	if m := commonStockPattern.FindStringSubmatch(text); m != nil {
		if shares, ok := fields.ParseNumber(m[1]); ok {
			holdings = append(holdings, models.SecurityHolding{
				SecurityTitle:   "Common Stock",
				Shares:          shares,
				OwnershipNature: "Direct",
			})
		}
	}

	for _, m := range sharesOfPattern.FindAllStringSubmatch(text, -1) {
		shares, ok := fields.ParseNumber(m[1])
		if !ok {
			continue
		}
		dup := false
		for _, h := range holdings {
			if h.Shares == shares {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		holdings = append(holdings, models.SecurityHolding{
			SecurityTitle:   strings.TrimSpace(m[2]),
			Shares:          shares,
			OwnershipNature: "Direct",
		})
	}

	if strings.Contains(lower, "indirect") {
		for i := range holdings {
			if strings.Contains(lower, "trust") {
				holdings[i].OwnershipNature = "Indirect"
				holdings[i].IndirectExplanation = "By Trust"
			} else if strings.Contains(lower, "spouse") {
				holdings[i].OwnershipNature = "Indirect"
				holdings[i].IndirectExplanation = "By Spouse"
			}
		}
	}

	return holdings
}

func insiderFromText(name, lower string) models.InsiderInfo {
	return models.InsiderInfo{
		Name:              name,
		IsDirector:        strings.Contains(lower, "director"),
		IsOfficer:         strings.Contains(lower, "officer"),
		IsTenPercentOwner: strings.Contains(lower, "10%") || strings.Contains(lower, "ten percent"),
	}
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
