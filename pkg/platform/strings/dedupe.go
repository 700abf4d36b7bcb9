// Package strings holds helpers for lists of strings read from configuration
// and request bodies.
package strings

import "strings"

// DedupeAndTrim trims every value and drops blanks and repeats, keeping the
// first occurrence of each.
func DedupeAndTrim(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// SplitList splits a comma separated setting such as a broker list.
func SplitList(raw string) []string {
	return DedupeAndTrim(strings.Split(raw, ","))
}
