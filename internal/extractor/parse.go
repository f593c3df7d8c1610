package extractor

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/xeipuuv/gojsonschema"

	"joblocator/internal/domain"
)

// maxRawEcho bounds how much of an unparseable response is echoed into the explanation.
const maxRawEcho = 200

var (
	openFenceRe  = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	closeFenceRe = regexp.MustCompile("\r?\n?```$")

	outputSchema = mustCompileSchema(OutputSchema)
)

// ParsedFields is the structured view of one model response.
// Answer is empty when the model reported no location or the response could not be parsed.
type ParsedFields struct {
	Answer      string
	Explanation string
	Granularity domain.Granularity
	// Failed is set when the response was not decodable JSON.
	Failed bool
	// Violations lists deviations from the output contract. They never change the fields.
	Violations []string
}

// modelOutput mirrors the object the prompt requests; every key is optional on the wire.
type modelOutput struct {
	Answer      *string `json:"answer"`
	Explanation *string `json:"explanation"`
	Granularity *string `json:"granularity"`
}

// ParseResponse converts raw model output into ParsedFields. It never fails: malformed
// output produces a ParsedFields with Failed set and a diagnostic explanation.
func ParseResponse(raw string) ParsedFields {
	trimmed := strings.TrimSpace(raw)
	body := StripFences(trimmed)

	var out modelOutput
	// json.Unmarshal accepts a bare null into a struct; only an object is a reply.
	if !strings.HasPrefix(body, "{") || json.Unmarshal([]byte(body), &out) != nil {
		return ParsedFields{
			Granularity: domain.GranularityNone,
			Explanation: "Failed to parse LLM response: " + Truncate(trimmed, maxRawEcho),
			Failed:      true,
		}
	}

	fields := ParsedFields{
		Answer:      domain.AnswerUnknown,
		Granularity: domain.GranularityNone,
		Violations:  contractViolations(body),
	}
	if out.Answer != nil {
		fields.Answer = *out.Answer
	}
	if out.Explanation != nil {
		fields.Explanation = *out.Explanation
	}
	if out.Granularity != nil {
		fields.Granularity = domain.ParseGranularity(*out.Granularity)
	}

	if domain.IsAbsentAnswer(fields.Answer) {
		fields.Answer = ""
		fields.Granularity = domain.GranularityNone
	}
	return fields
}

// StripFences removes a surrounding markdown code fence, with or without a language tag.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = openFenceRe.ReplaceAllString(s, "")
	s = closeFenceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Truncate shortens s to at most maxRunes characters.
func Truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	return string([]rune(s)[:maxRunes])
}

func contractViolations(body string) []string {
	result, err := outputSchema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil || result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	sort.Strings(violations)
	return violations
}

func mustCompileSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic("extractor: invalid output schema: " + err.Error())
	}
	return s
}
