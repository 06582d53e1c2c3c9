// Package confidence assigns a coarse extraction-quality score to records.
// The score exists so downstream consumers can filter weak extractions; it
// is not a calibrated probability.
package confidence

// Default thresholds. These are starting points, not calibrated values;
// override them via config when tuning.
const (
	DefaultBase     = 0.85
	DefaultFallback = 0.5
)

// Scorer maps field-resolution outcomes to a confidence scalar in [0,1].
type Scorer struct {
	// Base is awarded when at least one high-signal field was extracted
	// via a matched pattern.
	Base float64
	// Fallback is awarded when only declared defaults fired.
	Fallback float64
}

// NewScorer returns a scorer with the shipped thresholds.
func NewScorer() Scorer {
	return Scorer{Base: DefaultBase, Fallback: DefaultFallback}
}

// Score returns Base when any of the high-signal extraction flags is set,
// Fallback otherwise.
func (s Scorer) Score(extracted ...bool) float64 {
	for _, ok := range extracted {
		if ok {
			return s.Base
		}
	}
	return s.Fallback
}
