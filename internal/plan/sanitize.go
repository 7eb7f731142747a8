package plan

import "strings"

var fenceTokens = []string{"```json", "```"}

// Sanitize strips code fences and surrounding prose from a model response and
// returns the span from the first '{' to the last '}' inclusive. Without such a
// span the cleaned text is returned as is so that Parse rejects it.
func Sanitize(raw string) string {
	clean := strings.TrimSpace(raw)
	for _, tok := range fenceTokens {
		clean = strings.ReplaceAll(clean, tok, "")
	}

	first := strings.Index(clean, "{")
	last := strings.LastIndex(clean, "}")
	if first < 0 || last < first {
		return strings.TrimSpace(clean)
	}
	return clean[first : last+1]
}
