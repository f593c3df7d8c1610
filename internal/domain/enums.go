package domain

import "strings"

// Granularity is the specificity level of an extracted location.
type Granularity string

const (
	GranularityFullStreet      Granularity = "full_street"
	GranularityCityStatePostal Granularity = "city_state_postal"
	GranularityCityState       Granularity = "city_state"
	GranularityCity            Granularity = "city"
	GranularityState           Granularity = "state"
	GranularityCountry         Granularity = "country"
	GranularityNone            Granularity = "none"
)

// granularityOrder lists levels from most to least specific.
var granularityOrder = []Granularity{
	GranularityFullStreet,
	GranularityCityStatePostal,
	GranularityCityState,
	GranularityCity,
	GranularityState,
	GranularityCountry,
	GranularityNone,
}

// Granularities returns every level ordered from most to least specific, ending with none.
func Granularities() []Granularity {
	out := make([]Granularity, len(granularityOrder))
	copy(out, granularityOrder)
	return out
}

// Valid reports whether g is one of the known levels.
func (g Granularity) Valid() bool {
	for _, known := range granularityOrder {
		if g == known {
			return true
		}
	}
	return false
}

// ParseGranularity maps a model-supplied value to a Granularity. Unknown values map to none.
func ParseGranularity(s string) Granularity {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return GranularityNone
	}
	return g
}

// ExtractionOutcome classifies how an extraction call ended.
type ExtractionOutcome string

const (
	OutcomeFound        ExtractionOutcome = "found"
	OutcomeNotFound     ExtractionOutcome = "not_found"
	OutcomeParseError   ExtractionOutcome = "parse_error"
	OutcomeBackendError ExtractionOutcome = "backend_error"
)
