// Package tree builds configuration trees from flat setting rows and
// flattens them back into the derived file shapes. Matching between the two
// representations runs over normalized paths so that data authored under
// different naming conventions still lines up.
package tree

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// NormalizePath canonicalizes a slash-delimited path for tolerant matching:
// empty segments are dropped, each segment is lower-cased and stripped of
// everything outside [a-z0-9]. Normalization is idempotent.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	parts := strings.Split(path, "/")
	normalized := parts[:0]
	for _, part := range parts {
		if part == "" {
			continue
		}
		normalized = append(normalized, nonAlnum.ReplaceAllString(strings.ToLower(part), ""))
	}
	return strings.Join(normalized, "/")
}

// JoinPath forms the literal path key of a node from its ancestor dataNames
// and its own dataName.
func JoinPath(parents []string, dataName string) string {
	if len(parents) == 0 {
		return dataName
	}
	return strings.Join(parents, "/") + "/" + dataName
}
