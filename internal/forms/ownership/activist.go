package ownership

import (
	"fmt"
	"strings"

	"github.com/quantfold/filingscan/pkg/models"
)

// activistKeywords maps purpose-section keywords to the signal description
// reported for each.
var activistKeywords = []struct {
	keyword     string
	description string
}{
	{"board", "Seeking board representation"},
	{"change", "Seeking changes"},
	{"merger", "Mentions merger/acquisition"},
	{"acquisition", "Mentions merger/acquisition"},
	{"sale", "Mentions potential sale"},
	{"strategic", "Mentions strategic alternatives"},
	{"management", "Mentions management changes"},
	{"vote", "Plans to influence voting"},
	{"proxy", "Mentions proxy contest"},
}

// Assess scans a disclosure record for activist intent. The score is a
// rough 0-100 screen, not a prediction.
func Assess(rec *models.OwnershipDisclosureRecord) models.ActivistAssessment {
	var found []string
	score := 0

	if rec.IsActivist {
		found = append(found, "Filed active schedule (indicates intent to influence)")
		score += 30
	}

	switch {
	case rec.PercentOfClass >= 10:
		found = append(found, fmt.Sprintf("Large stake (%.1f%%)", rec.PercentOfClass))
		score += 20
	case rec.PercentOfClass >= 5:
		found = append(found, fmt.Sprintf("Significant stake (%.1f%%)", rec.PercentOfClass))
		score += 10
	}

	if rec.Purpose != "" {
		purposeLower := strings.ToLower(rec.Purpose)
		for _, kw := range activistKeywords {
			if strings.Contains(purposeLower, kw.keyword) {
				found = append(found, kw.description)
				score += 15
			}
		}
	}

	if score > 100 {
		score = 100
	}

	var recommendation string
	switch {
	case score >= 50:
		recommendation = "High activist risk - monitor closely"
	case score >= 25:
		recommendation = "Moderate activist risk"
	default:
		recommendation = "Low activist risk - likely passive"
	}

	return models.ActivistAssessment{
		IsActivistFiling: rec.IsActivist,
		RiskScore:        score,
		Signals:          found,
		Recommendation:   recommendation,
	}
}
