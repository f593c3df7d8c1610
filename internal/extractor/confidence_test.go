package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"joblocator/internal/domain"
	"joblocator/internal/extractor"
)

const longExplanation = "The posting labels this line as the work location."

func TestScore_AbsentAnswerIsZero(t *testing.T) {
	for _, answer := range []string{"", "UNKNOWN", "unknown"} {
		for _, g := range domain.Granularities() {
			assert.Equal(t, 0.0, extractor.Score(answer, longExplanation, g), "answer %q granularity %s", answer, g)
		}
	}
}

func TestScore_Table(t *testing.T) {
	tests := []struct {
		name        string
		explanation string
		granularity domain.Granularity
		want        float64
	}{
		{"full street with explanation", longExplanation, domain.GranularityFullStreet, 1.0},
		{"city state postal with explanation", longExplanation, domain.GranularityCityStatePostal, 0.98},
		{"city state with explanation", "Explicitly stated in header.", domain.GranularityCityState, 0.95},
		{"city with explanation", longExplanation, domain.GranularityCity, 0.9},
		{"state with explanation", longExplanation, domain.GranularityState, 0.85},
		{"country with explanation", longExplanation, domain.GranularityCountry, 0.8},
		{"none with explanation", longExplanation, domain.GranularityNone, 0.7},
		{"full street short explanation", "Header.", domain.GranularityFullStreet, 0.8},
		{"city no explanation", "", domain.GranularityCity, 0.7},
		{"explanation of exactly 20 chars gets no bonus", "12345678901234567890", domain.GranularityNone, 0.5},
		{"explanation of 21 chars gets the bonus", "123456789012345678901", domain.GranularityNone, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, extractor.Score("Austin, TX", tt.explanation, tt.granularity), 1e-9)
		})
	}
}

func TestScore_NeverExceedsOne(t *testing.T) {
	for _, explanation := range []string{"", "short", longExplanation} {
		for _, g := range domain.Granularities() {
			score := extractor.Score("somewhere", explanation, g)
			assert.LessOrEqual(t, score, 1.0)
			assert.GreaterOrEqual(t, score, 0.0)
		}
	}
}

func TestScore_MonotonicInGranularity(t *testing.T) {
	order := domain.Granularities() // most specific first
	for _, explanation := range []string{"", longExplanation} {
		for i := 1; i < len(order); i++ {
			more := extractor.Score("somewhere", explanation, order[i-1])
			less := extractor.Score("somewhere", explanation, order[i])
			assert.GreaterOrEqual(t, more, less, "%s vs %s", order[i-1], order[i])
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	first := extractor.Score("Austin, TX", longExplanation, domain.GranularityCityState)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, extractor.Score("Austin, TX", longExplanation, domain.GranularityCityState))
	}
}
