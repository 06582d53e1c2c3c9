// Package ownership parses beneficial-ownership disclosure schedules. The
// active variant signals possible intent to influence the issuer; the
// passive variant is filed by large holders with no such intent. Both are
// narrative HTML/text documents, so extraction runs pattern batteries over
// stripped text.
package ownership

import (
	"errors"
	"regexp"
	"strings"

	"github.com/quantfold/filingscan/internal/extract/confidence"
	"github.com/quantfold/filingscan/internal/extract/fields"
	"github.com/quantfold/filingscan/internal/extract/htmltext"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/internal/signals"
	"github.com/quantfold/filingscan/pkg/models"
	"github.com/quantfold/filingscan/pkg/textutil"
)

var (
	companyNameRules = fields.RuleSet{
		{Pattern: regexp.MustCompile(`(?i)name of issuer[:\s]+([^\n]+)`), Post: cleanName},
		{Pattern: regexp.MustCompile(`(?i)subject company[:\s]+([^\n]+)`), Post: cleanName},
	}
	cusipRules = fields.RuleSet{
		{Pattern: regexp.MustCompile(`(?i)cusip[^\d]*(\d{6,9}[A-Z0-9]*)`)},
		{Pattern: regexp.MustCompile(`(?i)cusip number[:\s]+([A-Z0-9]{6,9})`)},
	}
	filerNameRules = fields.RuleSet{
		{Pattern: regexp.MustCompile(`(?i)name of person[s]? filing[:\s]+([^\n]+)`)},
		{Pattern: regexp.MustCompile(`(?i)name of reporting person[:\s]+([^\n]+)`)},
		{Pattern: regexp.MustCompile(`(?i)reporting person[:\s]+([^\n]+)`)},
		{Pattern: regexp.MustCompile(`(?i)filed by[:\s]+([^\n]+)`)},
	}
	sharesRules = fields.NumberSet{
		{Pattern: regexp.MustCompile(`(?i)aggregate[^\n]*number[^\n]*shares[:\s]*([\d,]+)`)},
		{Pattern: regexp.MustCompile(`(?i)aggregate amount[^:\n]*[:\s]+(\d[\d,]*)`)},
		{Pattern: regexp.MustCompile(`(?i)shares[^\n]*beneficially[^\n]*owned[:\s]*([\d,]+)`)},
		{Pattern: regexp.MustCompile(`(\d[\d,]+)\s*shares`), Post: atLeastFourDigits},
	}
	percentRules = fields.NumberSet{
		{Pattern: regexp.MustCompile(`(?i)percent of class[:\s]*([\d.]+)\s*%?`)},
		{Pattern: regexp.MustCompile(`(?i)([\d.]+)\s*%\s*of[^\n]*class`)},
		{Pattern: regexp.MustCompile(`([\d.]+)%`)},
	}
	shareClassRules = fields.RuleSet{
		{Pattern: regexp.MustCompile(`(?i)class of securities[:\s]+([^\n]+)`)},
	}
	eventDateRules = fields.RuleSet{
		{Pattern: regexp.MustCompile(`(?i)date of event[^:\n]*[:\s]+([\d/\-]+)`)},
	}
	reportingTypeRule = regexp.MustCompile(`(?i)type of reporting person[:\s]*([A-Z]{2})`)

	soleVotingRules = fields.NumberSet{
		{Pattern: regexp.MustCompile(`(?i)sole voting power[:\s]+(\d[\d,]*)`)},
		{Pattern: regexp.MustCompile(`(?i)sole[^\n]*voting[^\n]*power[:\s]*(\d[\d,]*)`)},
	}
	sharedVotingRules = fields.NumberSet{
		{Pattern: regexp.MustCompile(`(?i)shared voting power[:\s]+(\d[\d,]*)`)},
		{Pattern: regexp.MustCompile(`(?i)shared[^\n]*voting[^\n]*power[:\s]*(\d[\d,]*)`)},
	}
	soleDispositiveRules = fields.NumberSet{
		{Pattern: regexp.MustCompile(`(?i)sole dispositive power[:\s]+(\d[\d,]*)`)},
		{Pattern: regexp.MustCompile(`(?i)sole[^\n]*dispositive[^\n]*power[:\s]*(\d[\d,]*)`)},
	}
	sharedDispositiveRules = fields.NumberSet{
		{Pattern: regexp.MustCompile(`(?i)shared dispositive power[:\s]+(\d[\d,]*)`)},
		{Pattern: regexp.MustCompile(`(?i)shared[^\n]*dispositive[^\n]*power[:\s]*(\d[\d,]*)`)},
	}

	purposeSection = regexp.MustCompile(`(?is)item\s*4[.\s:]+purpose.*?(?:item\s*5|$)`)
	purposeHeader  = regexp.MustCompile(`(?i)item\s*4[.\s:]+purpose[^\n]*\n*`)
	purposeTrailer = regexp.MustCompile(`(?i)item\s*5\s*$`)

	parenthetical = regexp.MustCompile(`\(.*\)`)
)

func cleanName(s string) (string, bool) {
	s = strings.TrimSpace(parenthetical.ReplaceAllString(s, ""))
	return s, len(s) > 3
}

// atLeastFourDigits rejects small bare numbers the generic share pattern
// would otherwise pick up from page furniture.
func atLeastFourDigits(s string) (string, bool) {
	return s, len(strings.ReplaceAll(s, ",", "")) >= 4
}

var reportingPersonTypes = map[string]string{
	"IA": "Investment Adviser",
	"BD": "Broker Dealer",
	"BK": "Bank",
	"CO": "Corporation",
	"CP": "Corporation Pension",
	"EP": "Employee Benefit Plan",
	"HC": "Holding Company",
	"IN": "Individual",
	"IV": "Investment Company",
	"OO": "Other",
	"PN": "Partnership",
}

// Prior carries the filer's previously disclosed percent of class, when a
// prior filing is known to the caller.
type Prior struct {
	Percent float64
	Known   bool
}

// Parser parses ownership disclosure schedules.
type Parser struct {
	scorer confidence.Scorer
	caps   forms.Caps
}

// NewParser returns a parser using the given confidence policy and excerpt
// caps.
func NewParser(scorer confidence.Scorer, caps forms.Caps) *Parser {
	return &Parser{scorer: scorer, caps: caps}
}

// Parse extracts an ownership disclosure record. form selects the active or
// passive variant; prior enables the percent-change signal.
func (p *Parser) Parse(content string, form models.FormType, id models.FilingIdentity, prior Prior) (*models.OwnershipDisclosureRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, forms.Fail(form, id, errors.New("empty document"))
	}
	text := htmltext.Strip(content)
	lower := strings.ToLower(text)

	if id.CompanyName == "" {
		id.CompanyName = companyNameRules.FirstOr(text, "Unknown")
	}

	filerName := filerNameRules.FirstOr(text, "Unknown Filer")
	shares, sharesOK := sharesRules.First(text)
	percent, percentOK := percentRules.First(text)
	if percentOK && (percent <= 0 || percent > 100) {
		percent, percentOK = 0, false
	}

	isActivist := form == models.FormOwnershipActive
	isAmendment := strings.Contains(lower, "amendment")

	var purpose string
	if isActivist {
		purpose = extractPurpose(text, p.caps.PurposeChars)
	}

	var reportingType string
	if m := reportingTypeRule.FindStringSubmatch(text); m != nil {
		code := strings.ToUpper(m[1])
		if decoded, ok := reportingPersonTypes[code]; ok {
			reportingType = decoded
		} else {
			reportingType = code
		}
	}

	var changePercent float64
	if prior.Known {
		changePercent = percent - prior.Percent
	}

	soleVoting, _ := soleVotingRules.First(text)
	sharedVoting, _ := sharedVotingRules.First(text)
	soleDispositive, _ := soleDispositiveRules.First(text)
	sharedDispositive, _ := sharedDispositiveRules.First(text)

	return &models.OwnershipDisclosureRecord{
		Identity:  id,
		FormType:  form,
		CUSIP:     cusipRules.FirstOr(text, ""),
		EventDate: eventDateRules.FirstOr(text, id.FiledDate),

		FilerName:  filerName,
		FilerClass: classifyFiler(filerName),
		FilerType:  reportingType,
		ShareClass: shareClassRules.FirstOr(text, "Common Stock"),

		SharesOwned:            int64(shares),
		PercentOfClass:         percent,
		SoleVotingPower:        int64(soleVoting),
		SharedVotingPower:      int64(sharedVoting),
		SoleDispositivePower:   int64(soleDispositive),
		SharedDispositivePower: int64(sharedDispositive),

		IsActivist:  isActivist,
		IsAmendment: isAmendment,
		Purpose:     purpose,

		PreviousPercent:    prior.Percent,
		HasPreviousPercent: prior.Known,
		ChangePercent:      changePercent,

		Signal:     signals.Ownership(percent, isAmendment, prior.Known, changePercent),
		Confidence: p.scorer.Score(sharesOK, percentOK),
	}, nil
}

func extractPurpose(text string, max int) string {
	m := purposeSection.FindString(text)
	if m == "" {
		return ""
	}
	m = purposeHeader.ReplaceAllString(m, "")
	m = purposeTrailer.ReplaceAllString(m, "")
	m = textutil.Truncate(strings.TrimSpace(m), max)
	if len(m) <= 20 {
		return ""
	}
	return m
}

// Recognizable institutional managers; a name match classifies the filer
// without further pattern checks.
var majorInstitutions = []string{
	"blackrock", "vanguard", "state street", "fidelity", "capital group",
	"t. rowe price", "wellington", "geode capital", "northern trust",
	"jp morgan", "morgan stanley", "goldman sachs", "citadel", "renaissance",
	"two sigma", "bridgewater", "aqr capital", "millennium", "point72",
	"elliott",
}

var institutionalMarkers = []string{"llc", "lp", "partners", "capital", "management", "advisors"}

var qualifiedMarkers = []string{"trust", "pension", "retirement"}

func classifyFiler(name string) models.FilerClass {
	lower := strings.ToLower(name)
	for _, inst := range majorInstitutions {
		if strings.Contains(lower, inst) {
			return models.FilerInstitutional
		}
	}
	for _, marker := range institutionalMarkers {
		if strings.Contains(lower, marker) {
			return models.FilerInstitutional
		}
	}
	for _, marker := range qualifiedMarkers {
		if strings.Contains(lower, marker) {
			return models.FilerQualified
		}
	}
	return models.FilerPassive
}
