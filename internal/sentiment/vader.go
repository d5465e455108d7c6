package sentiment

import (
	"sync"

	"github.com/jonreiter/govader"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
)

// The analyzer parses its lexicon on construction and is read-only afterwards,
// so one instance is shared by every scorer.
var sharedAnalyzer = sync.OnceValue(govader.NewSentimentIntensityAnalyzer)

// VaderScorer scores text with VADER's compound polarity in [-1, 1].
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

var _ interfaces.Scorer = (*VaderScorer)(nil)

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: sharedAnalyzer()}
}

func (v *VaderScorer) Score(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}
