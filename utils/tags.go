package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var tagPolicy = bluemonday.StrictPolicy()

// NormalizeTag cleans a user-supplied tag label: strips any markup, trims and
// lowercases. Returns "" for labels that are empty after cleaning.
func NormalizeTag(label string) string {
	clean := tagPolicy.Sanitize(label)
	return strings.ToLower(strings.TrimSpace(clean))
}

// AddTag appends tag to set if absent, preserving order.
func AddTag(set []string, tag string) []string {
	for _, t := range set {
		if t == tag {
			return set
		}
	}
	return append(set, tag)
}

// RemoveTag deletes tag from set, preserving order of the rest.
func RemoveTag(set []string, tag string) []string {
	out := set[:0]
	for _, t := range set {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

// ContainsTag reports whether tag is present in set.
func ContainsTag(set []string, tag string) bool {
	for _, t := range set {
		if t == tag {
			return true
		}
	}
	return false
}
