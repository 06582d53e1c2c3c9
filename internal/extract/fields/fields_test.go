package fields

import (
	"regexp"
	"testing"
)

func TestRuleSetOrdering(t *testing.T) {
	// Specific rule first; generic fallback second.
	rs := RuleSet{
		{Pattern: regexp.MustCompile(`(?i)name of issuer[:\s]+([^\n]+)`)},
		{Pattern: regexp.MustCompile(`(?i)subject company[:\s]+([^\n]+)`)},
	}

	text := "Subject Company: Fallback Corp\nName of Issuer: Target Corporation"
	got, ok := rs.First(text)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "Target Corporation" {
		t.Errorf("specific rule should win, got %q", got)
	}

	if v := rs.FirstOr("nothing here", "Unknown"); v != "Unknown" {
		t.Errorf("expected default, got %q", v)
	}
}

func TestRuleSetPostFilter(t *testing.T) {
	rs := RuleSet{
		{
			Pattern: regexp.MustCompile(`company[:\s]+([^\n]+)`),
			Post: func(s string) (string, bool) {
				if len(s) < 4 {
					return "", false
				}
				return s, true
			},
		},
	}

	if _, ok := rs.First("company: ab"); ok {
		t.Error("post filter should reject short match")
	}
	if v, ok := rs.First("company: Acme Inc"); !ok || v != "Acme Inc" {
		t.Errorf("expected Acme Inc, got %q ok=%v", v, ok)
	}
}

func TestNumberSetCommaStripping(t *testing.T) {
	ns := NumberSet{
		{Pattern: regexp.MustCompile(`(?i)shares[:\s]+([\d,]+)`)},
	}

	v, ok := ns.First("Shares: 15,000,000")
	if !ok || v != 15000000 {
		t.Errorf("expected 15000000, got %v ok=%v", v, ok)
	}

	if _, ok := ns.First("Shares: n/a"); ok {
		t.Error("non-numeric match must report field absent")
	}
}

func TestMoneySetUnitNormalization(t *testing.T) {
	ms := MoneySet{
		{
			Pattern:    regexp.MustCompile(`(?i)revenue of \$?([\d,]+(?:\.\d+)?)\s*(million|billion|M|B)?`),
			ValueGroup: 1,
			UnitGroup:  2,
		},
	}

	tests := []struct {
		text string
		want float64
	}{
		{"revenue of $25.7 billion", 25700},
		{"revenue of $8,500 million", 8500},
		{"revenue of $450M", 450},
		{"revenue of $2B", 2000},
		{"revenue of $950", 950}, // no unit: taken as millions
	}

	for _, tt := range tests {
		got, ok := ms.FirstMillions(tt.text)
		if !ok {
			t.Errorf("%q: expected match", tt.text)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestRangeSetMillions(t *testing.T) {
	rs := RangeSet{
		{
			Pattern:   regexp.MustCompile(`(?i)range of \$?([\d,]+(?:\.\d+)?)\s*(?:to|-)\s*\$?([\d,]+(?:\.\d+)?)\s*(million|billion)?`),
			LowGroup:  1,
			HighGroup: 2,
			UnitGroup: 3,
		},
	}

	lo, hi, ok := rs.FirstMillions("in the range of $9,000 to $10,500 million")
	if !ok {
		t.Fatal("expected match")
	}
	if lo != 9000 || hi != 10500 {
		t.Errorf("got %v-%v, want 9000-10500", lo, hi)
	}

	lo, hi, ok = rs.FirstMillions("in the range of $1.5 to $2.0 billion")
	if !ok {
		t.Fatal("expected match")
	}
	if lo != 1500 || hi != 2000 {
		t.Errorf("got %v-%v, want 1500-2000", lo, hi)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234,567", 1234567, true},
		{"$185.50", 185.5, true},
		{" 42 ", 42, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
