package parsepdf

import (
	"regexp"
	"strings"
)

// dueDatePatterns is ordered from explicit due-date labels down to bare
// date shapes. The first matching pattern wins.
var dueDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)please\s*pay\s*by[\s:]*([A-Za-z]{3,9}\.?\s*\d{1,2}[\s,]*\d{4})`),
	regexp.MustCompile(`(?i)due\s*date[\s:]*([A-Za-z]{3,9}\.?\s*\d{1,2}[\s,]*\d{4})`),
	regexp.MustCompile(`(?i)([A-Za-z]{3,9}\.?\s*\d{1,2}[\s,]*\d{4})`),
	regexp.MustCompile(`(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
}

var commaSpacing = regexp.MustCompile(`\s*,\s*`)

// normalizeDate collapses whitespace runs and regularizes comma spacing.
// The value stays a raw matched substring; it is never parsed into a
// calendar date.
func normalizeDate(v string) string {
	v = collapseSpaces.ReplaceAllString(v, " ")
	v = commaSpacing.ReplaceAllString(v, ", ")
	return strings.TrimSpace(v)
}

func extractDueDate(text string) scoredField[string] {
	for i, pattern := range dueDatePatterns {
		match := pattern.FindStringSubmatch(text)
		if len(match) > 1 && match[1] != "" {
			return scoredField[string]{
				value:      normalizeDate(match[1]),
				ok:         true,
				confidence: patternConfidence(i),
			}
		}
	}
	return scoredField[string]{}
}
