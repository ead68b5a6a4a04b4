package parsepdf

import (
	"net/url"
	"regexp"
	"strings"
)

// portalPatterns favors explicit "pay online at" phrasing, then generic
// website labels, then bare payment-path URLs, then pay.* subdomains.
var portalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:pay\s+(?:online\s+)?at|visit|go\s+to)[:\s]*((?:https?://)?[\w.\-]+\.(?:com|net|org|gov)(?:/[\w./\-]*)?)`),
	regexp.MustCompile(`(?i)(?:website|portal|online)[:\s]*((?:https?://)?[\w.\-]+\.(?:com|net|org|gov)(?:/[\w./\-]*)?)`),
	regexp.MustCompile(`(?i)((?:https?://)?(?:www\.)?[\w.\-]+\.(?:com|net|org)/(?:pay|bill|account|payment)[\w./\-]*)`),
	regexp.MustCompile(`(?i)((?:https?://)?pay\.[\w.\-]+\.(?:com|net|org))`),
}

// OCR text extraction confuses o/0 and l/1 directly before a dot and
// extension. RE2 has no lookahead, so the trailing dot-plus-letter is
// captured and re-emitted instead.
var (
	ocrZero = regexp.MustCompile(`o(\.\w)`)
	ocrOne  = regexp.MustCompile(`l(\.\w)`)
)

// normalizePortalURL lowercases, strips whitespace, applies the OCR
// corrections and ensures an https scheme.
func normalizePortalURL(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	u = collapseSpaces.ReplaceAllString(u, "")
	u = ocrZero.ReplaceAllString(u, "0$1")
	u = ocrOne.ReplaceAllString(u, "1$1")
	if !strings.HasPrefix(u, "http") {
		u = "https://" + u
	}
	return u
}

// extractPaymentPortal returns the first pattern match that survives
// normalization and parses as an absolute URL. A match that fails URL
// validation falls through to the next pattern.
func extractPaymentPortal(text string) scoredField[string] {
	for i, pattern := range portalPatterns {
		match := pattern.FindStringSubmatch(text)
		if len(match) < 2 || match[1] == "" {
			continue
		}

		candidate := normalizePortalURL(match[1])

		parsed, err := url.Parse(candidate)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			continue
		}

		return scoredField[string]{
			value:      candidate,
			ok:         true,
			confidence: patternConfidence(i),
		}
	}
	return scoredField[string]{}
}
