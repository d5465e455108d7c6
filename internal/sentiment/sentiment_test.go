package sentiment

import (
	"math"
	"testing"
)

func TestAggregateEmptyIsNeutral(t *testing.T) {
	if got := Aggregate(nil); got != 0.0 {
		t.Errorf("Expected 0.0 for nil input, got %v", got)
	}
	if got := Aggregate([]float64{}); got != 0.0 {
		t.Errorf("Expected 0.0 for empty input, got %v", got)
	}
}

func TestAggregateMean(t *testing.T) {
	got := Aggregate([]float64{0.5, -0.25, 0.2})
	if math.Abs(got-0.15) > 1e-12 {
		t.Errorf("Expected mean 0.15, got %v", got)
	}
	if got := Aggregate([]float64{0.7}); got != 0.7 {
		t.Errorf("Expected single value passthrough, got %v", got)
	}
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func TestVaderScorerMockHeadlines(t *testing.T) {
	s := NewVaderScorer()
	headlines := []struct {
		text string
		want float64
	}{
		{"Reliance Industries Limited sees steady growth amid market volatility.", 0.1779},
		{"Investors are eyeing this stock after recent financial reports.", 0.0},
		{"Analysts suggest this could be a good time to review positions.", 0.4404},
	}

	scores := make([]float64, len(headlines))
	for i, h := range headlines {
		scores[i] = s.Score(h.text)
		if got := round4(scores[i]); got != h.want {
			t.Errorf("Score(%q) = %.4f, want %.4f", h.text, got, h.want)
		}
	}
	if got := round4(Aggregate(scores)); got != 0.2061 {
		t.Errorf("Expected mean 0.2061, got %.4f", got)
	}
}

func TestVaderScorerNegationAndEmphasis(t *testing.T) {
	s := NewVaderScorer()

	if got := round4(s.Score("Shares are not bad")); got != 0.6187 {
		t.Errorf("Expected negated negative to score 0.6187, got %.4f", got)
	}
	if got := round4(s.Score("The company is doing GREAT!!!")); got != 0.7723 {
		t.Errorf("Expected emphasis to score 0.7723, got %.4f", got)
	}
	if neg := s.Score("Shares plunge after fraud charges and weak quarterly results"); neg >= 0 {
		t.Errorf("Expected negative score, got %v", neg)
	}
	if got := s.Score(""); got != 0 {
		t.Errorf("Expected 0 for empty text, got %v", got)
	}
}

func TestVaderScorerSharesAnalyzer(t *testing.T) {
	if NewVaderScorer().analyzer != NewVaderScorer().analyzer {
		t.Error("Expected scorers to share one analyzer")
	}
}
