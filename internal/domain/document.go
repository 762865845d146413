package domain

import "strings"

// SplitLines splits text into its lines on "\n" boundaries.
// An empty string is a document with a single empty line, which is what
// plain splitting produces and what the diff output for empty inputs
// relies on.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
