// Package fields implements ordered pattern-rule extraction of single
// logical fields from raw filing text. Rules are tried in priority order:
// specific, contextual patterns come before generic numeric ones, so a rule
// set must be declared most-specific-first. A failed numeric conversion means
// "field absent", never an error.
package fields

import (
	"regexp"
	"strconv"
	"strings"
)

// Rule is one (pattern, capture) step of a string field battery.
type Rule struct {
	Pattern *regexp.Regexp
	Group   int                         // capture group, 0 means group 1
	Post    func(string) (string, bool) // optional cleanup/validation
}

// RuleSet is an ordered battery of rules for a single field.
type RuleSet []Rule

// First returns the first rule match, post-processed. Reports false when no
// rule fired.
func (rs RuleSet) First(text string) (string, bool) {
	for _, r := range rs {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		g := r.Group
		if g == 0 {
			g = 1
		}
		if g >= len(m) {
			continue
		}
		v := strings.TrimSpace(m[g])
		if r.Post != nil {
			var ok bool
			if v, ok = r.Post(v); !ok {
				continue
			}
		}
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// FirstOr returns the first match or the declared default.
func (rs RuleSet) FirstOr(text, def string) string {
	if v, ok := rs.First(text); ok {
		return v
	}
	return def
}

// NumberSet is an ordered battery for a plain numeric field (share counts,
// percentages). Thousands separators are stripped before conversion.
type NumberSet []Rule

// First returns the first successfully converted number.
func (ns NumberSet) First(text string) (float64, bool) {
	for _, r := range ns {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		g := r.Group
		if g == 0 {
			g = 1
		}
		if g >= len(m) {
			continue
		}
		raw := m[g]
		if r.Post != nil {
			var ok bool
			if raw, ok = r.Post(raw); !ok {
				continue
			}
		}
		if v, ok := ParseNumber(raw); ok {
			return v, true
		}
	}
	return 0, false
}

// FirstInt is First truncated to int64.
func (ns NumberSet) FirstInt(text string) (int64, bool) {
	v, ok := ns.First(text)
	if !ok {
		return 0, false
	}
	return int64(v), true
}

// MoneyRule matches a monetary amount with an optional trailing unit token.
// UnitGroup of 0 means the pattern carries no unit and the amount is taken
// as already being in millions.
type MoneyRule struct {
	Pattern    *regexp.Regexp
	ValueGroup int
	UnitGroup  int
}

// MoneySet is an ordered battery for a monetary field. All amounts are
// normalized to millions: "billion"/"B" multiplies by 1000, "million"/"M"
// (or no unit) leaves the value unchanged.
type MoneySet []MoneyRule

// FirstMillions returns the first matched amount normalized to millions.
func (ms MoneySet) FirstMillions(text string) (float64, bool) {
	for _, r := range ms {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		vg := r.ValueGroup
		if vg == 0 {
			vg = 1
		}
		if vg >= len(m) {
			continue
		}
		v, ok := ParseNumber(m[vg])
		if !ok {
			continue
		}
		unit := ""
		if r.UnitGroup > 0 && r.UnitGroup < len(m) {
			unit = m[r.UnitGroup]
		}
		return NormalizeMillions(v, unit), true
	}
	return 0, false
}

// RangeRule matches a low-to-high monetary range sharing one unit token.
type RangeRule struct {
	Pattern   *regexp.Regexp
	LowGroup  int
	HighGroup int
	UnitGroup int
}

// RangeSet is an ordered battery for a guidance-style range field.
type RangeSet []RangeRule

// FirstMillions returns the first matched (low, high) pair normalized to
// millions.
func (rs RangeSet) FirstMillions(text string) (low, high float64, ok bool) {
	for _, r := range rs {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if r.LowGroup >= len(m) || r.HighGroup >= len(m) {
			continue
		}
		lo, okLo := ParseNumber(m[r.LowGroup])
		hi, okHi := ParseNumber(m[r.HighGroup])
		if !okLo || !okHi {
			continue
		}
		unit := ""
		if r.UnitGroup > 0 && r.UnitGroup < len(m) {
			unit = m[r.UnitGroup]
		}
		return NormalizeMillions(lo, unit), NormalizeMillions(hi, unit), true
	}
	return 0, 0, false
}

// ParseNumber converts a numeric string after stripping thousands separators
// and a leading dollar sign. Reports false on conversion failure.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NormalizeMillions scales a value by its unit token: billions become
// thousands of millions, millions (or no unit) pass through.
func NormalizeMillions(v float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "billion", "billions", "b":
		return v * 1000
	case "million", "millions", "m", "":
		return v
	default:
		return v
	}
}
