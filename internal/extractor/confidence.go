package extractor

import (
	"math"
	"unicode/utf8"

	"joblocator/internal/domain"
)

const (
	baseConfidence       = 0.5
	explanationBonus     = 0.2
	minExplanationLength = 20
	maxConfidence        = 1.0
)

var granularityBonus = map[domain.Granularity]float64{
	domain.GranularityFullStreet:      0.30,
	domain.GranularityCityStatePostal: 0.28,
	domain.GranularityCityState:       0.25,
	domain.GranularityCity:            0.20,
	domain.GranularityState:           0.15,
	domain.GranularityCountry:         0.10,
	domain.GranularityNone:            0.00,
}

// Score returns a heuristic confidence in [0, 1] for a parsed answer.
// It is not a probability: it only reflects answer presence, explanation
// substance and how specific the location is.
func Score(answer, explanation string, g domain.Granularity) float64 {
	if domain.IsAbsentAnswer(answer) {
		return 0.0
	}

	score := baseConfidence
	if utf8.RuneCountInString(explanation) > minExplanationLength {
		score += explanationBonus
	}
	score += granularityBonus[g]

	if score > maxConfidence {
		score = maxConfidence
	}
	// two decimals keeps sums like 0.5+0.2+0.25 stable under float addition
	return math.Round(score*100) / 100
}
