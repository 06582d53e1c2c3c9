package signals

import (
	"testing"

	"github.com/quantfold/filingscan/pkg/models"
)

func TestOwnership(t *testing.T) {
	tests := []struct {
		name        string
		percent     float64
		isAmendment bool
		hasPrevious bool
		change      float64
		want        models.OwnershipSignal
	}{
		{"major new position", 12.0, false, false, 0, models.SignalMajorNewPosition},
		{"new position", 6.1, false, false, 0, models.SignalNewPosition},
		{"significant accumulation", 9.5, true, true, 2.5, models.SignalSignificantAccumulation},
		{"accumulating", 7.2, true, true, 0.4, models.SignalAccumulating},
		{"significant reduction", 4.0, true, true, -3.1, models.SignalSignificantReduction},
		{"reducing", 6.5, true, true, -0.5, models.SignalReducing},
		{"unchanged amendment", 5.0, true, true, 0, models.SignalMaintaining},
		{"amendment without prior", 5.0, true, false, 0, models.SignalMaintaining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ownership(tt.percent, tt.isAmendment, tt.hasPrevious, tt.change)
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCapExTrend(t *testing.T) {
	tests := []struct {
		change   float64
		hasPrior bool
		want     models.CapExSignal
	}{
		{25.0, true, models.CapExInvesting},
		{18.06, true, models.CapExMaintaining},
		{-10.0, true, models.CapExMaintaining},
		{-35.0, true, models.CapExCutting},
		{0, false, models.CapExUnknown},
	}

	for _, tt := range tests {
		if got := CapExTrend(tt.change, tt.hasPrior); got != tt.want {
			t.Errorf("CapExTrend(%v, %v) = %s, want %s", tt.change, tt.hasPrior, got, tt.want)
		}
	}
}

func TestEventSentiment(t *testing.T) {
	positive := "Record revenue growth with strong profit and improved margins; the successful expansion exceeded plans."
	if got := EventSentiment(positive); got != models.SentimentPositive {
		t.Errorf("positive text = %s", got)
	}

	negative := "The impairment and restructuring drove a loss; the agreement was terminated, the CFO resigned and a covenant breach caused a default."
	if got := EventSentiment(negative); got != models.SentimentNegative {
		t.Errorf("negative text = %s", got)
	}

	if got := EventSentiment("The company held its annual meeting."); got != models.SentimentNeutral {
		t.Errorf("neutral text = %s", got)
	}

	// A small edge must not flip the reading.
	mixed := "Revenue growth and a strong quarter, offset by a decline in one segment."
	if got := EventSentiment(mixed); got != models.SentimentNeutral {
		t.Errorf("mixed text = %s", got)
	}
}

func TestOverallSentiment(t *testing.T) {
	pos := models.SentimentPositive
	neg := models.SentimentNegative
	neu := models.SentimentNeutral

	tests := []struct {
		in   []models.Sentiment
		want models.Sentiment
	}{
		{[]models.Sentiment{pos, pos, pos, neu}, models.SentimentPositive},
		{[]models.Sentiment{neg, neg, neg, pos}, models.SentimentNeutral}, // margin of 2 not exceeded
		{[]models.Sentiment{neg, neg, neg, neg, pos}, models.SentimentNegative},
		{[]models.Sentiment{pos, neg}, models.SentimentNeutral},
		{nil, models.SentimentNeutral},
	}

	for _, tt := range tests {
		if got := OverallSentiment(tt.in); got != tt.want {
			t.Errorf("OverallSentiment(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestEventMateriality(t *testing.T) {
	if got := EventMateriality("2.02", "routine wording"); got != models.MaterialityHigh {
		t.Errorf("high-impact item = %s", got)
	}
	if got := EventMateriality("8.01", "a $2.5 billion settlement"); got != models.MaterialityHigh {
		t.Errorf("billion text = %s", got)
	}
	if got := EventMateriality("8.01", "a $40 million payment"); got != models.MaterialityMedium {
		t.Errorf("million text = %s", got)
	}
	if got := EventMateriality("8.01", "administrative update"); got != models.MaterialityLow {
		t.Errorf("plain text = %s", got)
	}
}

func TestFedTone(t *testing.T) {
	hawkish := "The committee remains vigilant on inflation; policy will stay restrictive and higher for longer amid further tightening."
	if got := FedTone(hawkish); got != models.PolicyHawkish {
		t.Errorf("hawkish text = %s", got)
	}

	dovish := "Given the progress on prices, the committee sees scope for easing and a cut as policy is normalizing toward a balanced, accommodative stance."
	if got := FedTone(dovish); got != models.PolicyDovish {
		t.Errorf("dovish text = %s", got)
	}

	if got := FedTone("The committee reviewed economic conditions."); got != models.PolicyNeutral {
		t.Errorf("neutral text = %s", got)
	}
}

func TestCallTone(t *testing.T) {
	confident := "We are confident in our momentum after a record quarter with strong results; we are pleased and optimistic, and we are raising guidance."
	if got := CallTone(confident); got != models.ToneConfident {
		t.Errorf("confident text = %s", got)
	}

	cautious := "Demand could soften and the environment might remain uncertain and challenging; we are cautious given the headwind and margin pressure and the risk to guidance."
	if got := CallTone(cautious); got != models.ToneCautious {
		t.Errorf("cautious text = %s", got)
	}
}

func TestTonePhrases(t *testing.T) {
	conf, hedge := TonePhrases("A record quarter; still, demand could soften given the headwind.")
	if len(conf) != 1 || conf[0] != "record" {
		t.Errorf("confident = %v", conf)
	}
	if len(hedge) != 2 || hedge[0] != "could" || hedge[1] != "headwind" {
		t.Errorf("hedging = %v", hedge)
	}
}

func TestHedgingRate(t *testing.T) {
	// 10 words, one hedging occurrence.
	text := "Results could vary with conditions in the market next year."
	if got := HedgingRate(text); got != 100 {
		t.Errorf("HedgingRate = %v", got)
	}
	if got := HedgingRate(""); got != 0 {
		t.Errorf("HedgingRate empty = %v", got)
	}
}
