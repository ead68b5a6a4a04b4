package parsepdf

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPatterns is ordered from most to least specific. Every pattern
// captures the numeric value (commas allowed) in group 1.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:total\s+(?:amount\s+)?due|amount\s+due|balance\s+due|please\s+pay)[:\s]*\$?([\d,]+\.?\d{0,2})`),
	regexp.MustCompile(`(?i)(?:current\s+charges|new\s+charges|total\s+current)[:\s]*\$?([\d,]+\.?\d{0,2})`),
	regexp.MustCompile(`(?i)(?:pay\s+this\s+amount|payment\s+due)[:\s]*\$?([\d,]+\.?\d{0,2})`),
	regexp.MustCompile(`(?i)\$\s*([\d,]+\.\d{2})\s*(?:due|total)`),
	regexp.MustCompile(`(?m)(?:^|\s)\$([\d,]+\.\d{2})(?:\s|$)`),
	regexp.MustCompile(`(?m)(?:^|\s)\$([\d,]+(?:\.\d{1,2})?)(?:\s|$)`),
}

// extractAmount scans the whole document with every amount pattern,
// scoring each candidate by pattern specificity, plausible-value range
// and position in the document. Bills put the amount due near the
// bottom, so later matches score higher.
func extractAmount(text string) scoredField[float64] {
	var (
		best     scoredField[float64]
		docLen   = float64(len(text))
		foundAny bool
	)

	for i, pattern := range amountPatterns {
		for _, match := range pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := match[2], match[3]
			if start < 0 {
				continue
			}

			raw := strings.ReplaceAll(text[start:end], ",", "")
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil || value <= 0 || value >= 100000 {
				continue
			}

			rangeConfidence := 0.7
			if value >= 10 && value <= 5000 {
				rangeConfidence = 1.0
			}

			posRatio := float64(match[0]) / docLen
			positionConfidence := 0.6
			switch {
			case posRatio > 0.6:
				positionConfidence = 1.0
			case posRatio > 0.4:
				positionConfidence = 0.85
			}

			combined := patternConfidence(i) * rangeConfidence * positionConfidence

			if !foundAny || combined > best.confidence {
				best = scoredField[float64]{value: value, ok: true, confidence: combined}
				foundAny = true
			}
		}
	}

	return best
}
