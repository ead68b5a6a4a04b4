package parsepdf

import (
	"regexp"
	"strings"
)

// knownProviders is the allow-list of canonical provider names. A
// case-insensitive substring hit anywhere in the document short-circuits
// the heuristics at near-certain confidence.
var knownProviders = []string{
	"Georgia Power",
	"Comcast",
	"Xfinity",
	"AT&T",
	"Verizon",
	"Spectrum",
	"T-Mobile",
	"Sprint",
	"Southern Company",
	"Arrow Exterminators",
	"Gymnastics Unlimited",
}

// providerPatterns is the labeled-field fallback, tried only when no
// header line scores above the threshold.
var providerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:from|billed by|provider|company)[:\s]*([A-Z][A-Za-z\s&.]+(?:Inc|LLC|Corp|Company|Co)?)`),
	regexp.MustCompile(`(?m)^([A-Z][A-Z\s&.]{2,}(?:Inc|LLC|Corp|Company|Co|Energy|Electric|Gas|Water|Telecom|Mobile|Internet|Exterminators|Pest|Gymnastics)?)\s*$`),
	regexp.MustCompile(`(?i)((?:AT&T|Verizon|Comcast|Xfinity|Georgia Power|Spectrum|T-Mobile|Sprint|Arrow Exterminators|Gymnastics Unlimited))`),
}

// noiseKeywords disqualify a header line as a provider-name candidate.
var noiseKeywords = []string{
	"invoice",
	"customer",
	"instructions",
	"precautions",
	"total",
	"amount",
	"tax",
	"balance",
	"page",
	"printed",
}

// businessKeywords hint that a line names a business.
var businessKeywords = []string{
	"electric",
	"power",
	"energy",
	"utility",
	"gas",
	"water",
	"internet",
	"cable",
	"wireless",
	"mobile",
	"exterminators",
	"pest",
	"gymnastics",
	"billing",
	"services",
	"company",
	"inc",
	"llc",
}

var (
	collapseSpaces  = regexp.MustCompile(`\s+`)
	stripPunct      = regexp.MustCompile(`[^\w\s&.\-]`)
	corporateSuffix = regexp.MustCompile(`(?i)Inc|LLC|Company|Co\.|Corp|Exterminators|Gymnastics|Power|Electric`)
	headerLen       = 600
)

func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = collapseSpaces.ReplaceAllString(line, " ")
	line = stripPunct.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// extractProvider identifies the bill's service provider. The allow-list
// is checked first; otherwise candidate lines from the document header
// are scored on corporate suffixes, business keywords and brevity, with
// a labeled-field regex fallback at low fixed confidence.
func extractProvider(text string) scoredField[string] {
	lowerText := strings.ToLower(text)
	for _, provider := range knownProviders {
		if strings.Contains(lowerText, strings.ToLower(provider)) {
			return scoredField[string]{value: provider, ok: true, confidence: 0.99}
		}
	}

	header := text
	if len(header) > headerLen {
		header = header[:headerLen]
	}

	var best scoredField[string]
	for _, line := range strings.Split(header, "\n") {
		cleaned := cleanLine(line)
		if cleaned == "" || len(cleaned) < 3 {
			continue
		}

		lower := strings.ToLower(cleaned)
		if containsAny(lower, noiseKeywords) {
			continue
		}
		if cleaned[0] < 'A' || cleaned[0] > 'Z' {
			continue
		}

		score := 0.0
		if corporateSuffix.MatchString(cleaned) {
			score += 0.6
		}
		if containsAny(lower, businessKeywords) {
			score += 0.3
		}
		if len(strings.Fields(cleaned)) <= 5 {
			score += 0.2
		}

		if score > 0.3 && score > best.confidence {
			best = scoredField[string]{value: cleaned, ok: true, confidence: score}
		}
	}
	if best.ok {
		return best
	}

	for _, pattern := range providerPatterns {
		match := pattern.FindStringSubmatch(text)
		if len(match) > 1 && match[1] != "" {
			return scoredField[string]{value: cleanLine(match[1]), ok: true, confidence: 0.45}
		}
	}

	return scoredField[string]{}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
