package holdings

import (
	"sort"

	"github.com/quantfold/filingscan/pkg/models"
)

// Differencer compares two holdings snapshots of the same filer. The
// category lists it emits are capped for reporting; the portfolio aggregates
// are computed over the full holdings set.
type Differencer struct {
	// ChangeThresholdPct is the minimum |percent change| for a position to
	// be reported as increased or decreased. Smaller moves are treated as
	// noise.
	ChangeThresholdPct float64
	// MaxPositions caps each category list.
	MaxPositions int
}

// NewDifferencer returns a differencer with the shipped 5% threshold and
// 20-entry category cap.
func NewDifferencer() Differencer {
	return Differencer{ChangeThresholdPct: 5.0, MaxPositions: 20}
}

// Compare builds the delta between the current and previous snapshots.
// Neither input is mutated. A security whose previous share count is zero is
// reported as a new position, since its percent change is undefined.
func (d Differencer) Compare(current, previous *models.HoldingRecord) models.HoldingsDelta {
	prevByCUSIP := make(map[string]models.Holding, len(previous.Holdings))
	for _, h := range previous.Holdings {
		prevByCUSIP[h.CUSIP] = h
	}
	currByCUSIP := make(map[string]models.Holding, len(current.Holdings))
	for _, h := range current.Holdings {
		currByCUSIP[h.CUSIP] = h
	}

	var newPositions, increased, decreased []models.PositionChange
	for _, curr := range current.Holdings {
		prev, held := prevByCUSIP[curr.CUSIP]
		if !held || prev.SharesOrPrincipal == 0 {
			newPositions = append(newPositions, models.PositionChange{
				IssuerName:  curr.IssuerName,
				CUSIP:       curr.CUSIP,
				SharesAfter: curr.SharesOrPrincipal,
				ShareChange: curr.SharesOrPrincipal,
				Value:       curr.Value(),
			})
			continue
		}

		change := curr.SharesOrPrincipal - prev.SharesOrPrincipal
		pct := float64(change) / float64(prev.SharesOrPrincipal) * 100
		if pct < d.ChangeThresholdPct && pct > -d.ChangeThresholdPct {
			continue
		}

		pc := models.PositionChange{
			IssuerName:   curr.IssuerName,
			CUSIP:        curr.CUSIP,
			SharesBefore: prev.SharesOrPrincipal,
			SharesAfter:  curr.SharesOrPrincipal,
			ShareChange:  change,
			PctChange:    pct,
		}
		if change > 0 {
			increased = append(increased, pc)
		} else {
			decreased = append(decreased, pc)
		}
	}

	var closed []models.PositionChange
	for _, prev := range previous.Holdings {
		if _, held := currByCUSIP[prev.CUSIP]; held {
			continue
		}
		closed = append(closed, models.PositionChange{
			IssuerName:   prev.IssuerName,
			CUSIP:        prev.CUSIP,
			SharesBefore: prev.SharesOrPrincipal,
			ShareChange:  -prev.SharesOrPrincipal,
			Value:        prev.Value(),
		})
	}

	sort.SliceStable(increased, func(i, j int) bool { return increased[i].ShareChange > increased[j].ShareChange })
	sort.SliceStable(decreased, func(i, j int) bool { return decreased[i].ShareChange < decreased[j].ShareChange })

	return models.HoldingsDelta{
		Filer:           current.FilerName,
		CurrentQuarter:  current.ReportDate,
		PreviousQuarter: previous.ReportDate,
		Portfolio: models.PortfolioChange{
			ValueBefore:     previous.TotalValue,
			ValueAfter:      current.TotalValue,
			ValueChange:     current.TotalValue - previous.TotalValue,
			PositionsBefore: previous.TotalPositions,
			PositionsAfter:  current.TotalPositions,
		},
		NewPositions:       d.cap(newPositions),
		ClosedPositions:    d.cap(closed),
		IncreasedPositions: d.cap(increased),
		DecreasedPositions: d.cap(decreased),
	}
}

func (d Differencer) cap(changes []models.PositionChange) []models.PositionChange {
	if d.MaxPositions > 0 && len(changes) > d.MaxPositions {
		return changes[:d.MaxPositions]
	}
	return changes
}
