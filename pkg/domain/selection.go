package domain

import "strings"

// SelectionSeparator joins the keys of a multi-select answer.
const SelectionSeparator = ","

// ParseSelection splits a multi-select answer into keys. Tokens are trimmed,
// blanks are discarded and repeated keys are kept once, in first-seen order.
func ParseSelection(raw string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, tok := range strings.Split(raw, SelectionSeparator) {
		tok = strings.TrimSpace(tok)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		keys = append(keys, tok)
	}
	return keys
}

// FormatSelection is the inverse of ParseSelection.
func FormatSelection(keys ...string) string {
	return strings.Join(ParseSelection(strings.Join(keys, SelectionSeparator)), SelectionSeparator)
}
