package extractor

import (
	"regexp"
	"sort"
	"strings"
)

type remoteIndicator struct {
	keyword string
	re      *regexp.Regexp
}

// Patterns run against lower-cased text. "fully distributed" also accepts one
// work-arrangement word in between, as in "fully remote, distributed".
var remoteIndicators = []remoteIndicator{
	{"remote", regexp.MustCompile(`\bremote\b`)},
	{"work from home", regexp.MustCompile(`\bwork[\s-]+from[\s-]+home\b`)},
	{"wfh", regexp.MustCompile(`\bwfh\b`)},
	{"telecommute", regexp.MustCompile(`\btelecommute\b`)},
	{"telework", regexp.MustCompile(`\btelework\b`)},
	{"hybrid", regexp.MustCompile(`\bhybrid\b`)},
	{"virtual position", regexp.MustCompile(`\bvirtual\s+position\b`)},
	{"fully distributed", regexp.MustCompile(`\bfully(?:[\s,-]+(?:remote|global|globally|geographically))?[\s,-]+distributed\b`)},
}

// DetectRemote returns the distinct work-arrangement keywords found in text, sorted.
// The result is never nil.
func DetectRemote(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, len(remoteIndicators))
	for _, ind := range remoteIndicators {
		if ind.re.MatchString(lower) {
			found = append(found, ind.keyword)
		}
	}
	sort.Strings(found)
	return found
}
