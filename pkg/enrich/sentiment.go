package enrich

import (
	"github.com/jonreiter/govader"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
)

// Compound score thresholds. A score of exactly +/-0.05 is neutral; the
// comparisons are strict.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// VaderScorer scores sentiment with the VADER lexicon. The compound score
// falls in [-1, 1].
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer builds a scorer with the default VADER lexicon.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score classifies text into positive/negative/neutral. A scoring failure
// degrades to "unknown" rather than propagating.
func (s *VaderScorer) Score(text string) (label string) {
	defer func() {
		if r := recover(); r != nil {
			label = article.SentimentUnknown
		}
	}()
	scores := s.analyzer.PolarityScores(text)
	return classifyCompound(scores.Compound)
}

func classifyCompound(compound float64) string {
	switch {
	case compound > positiveThreshold:
		return article.SentimentPositive
	case compound < negativeThreshold:
		return article.SentimentNegative
	default:
		return article.SentimentNeutral
	}
}
