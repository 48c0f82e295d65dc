package core

import "strings"

// NormalizeTags trims whitespace, strips control characters and drops
// empty entries, preserving order. Duplicates are kept; tags are
// free-form and the user may repeat them on purpose.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(stripControl(t))
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SplitTags splits a comma-separated user input into normalized tags.
func SplitTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 {
			return -1
		}
		return r
	}, s)
}
