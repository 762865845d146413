// Package diff computes a line-level edit script between two texts.
//
// The script is minimal in its total number of Insert and Delete operations
// for some valid alignment of the two line sequences; unchanged lines are
// found with a longest-common-subsequence dynamic program. Compute is a
// total, pure function: any pair of strings is valid input, there is no I/O,
// and identical inputs always produce identical scripts.
//
// Cost is O(M×N) time and space for documents of M and N lines. Callers
// embedding this in an interactive path should bound input size themselves;
// see the limits section of the config package.
package diff

import "github.com/juparave/linediff/internal/domain"

// Compute diffs original to changed and returns the edit script.
func Compute(original, changed string) domain.Script {
	oldLines := domain.SplitLines(original)
	newLines := domain.SplitLines(changed)

	// An empty side is a zero-line document whenever the other side has
	// content, so creating or emptying a document reads as pure inserts or
	// deletes rather than dragging a phantom empty line through the
	// alignment. Two empty inputs still compare as one empty line each.
	if original == "" && changed != "" {
		oldLines = nil
	}
	if changed == "" && original != "" {
		newLines = nil
	}

	m := len(oldLines)
	n := len(newLines)

	// dp[i][j] = length of the LCS of oldLines[:i] and newLines[:j].
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if oldLines[i-1] == newLines[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	// Walk the table backward from (m, n), emitting operations in reverse.
	// On a tie between the two axes we consume the changed side first, so
	// that alignment (not minimality) is the only thing the tie affects and
	// repeated runs stay reproducible.
	ops := make(domain.Script, 0, m+n)
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && oldLines[i-1] == newLines[j-1]:
			ops = append(ops, domain.Operation{Op: domain.OpEqual, Text: oldLines[i-1], OldLine: i, NewLine: j})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			ops = append(ops, domain.Operation{Op: domain.OpInsert, Text: newLines[j-1], NewLine: j})
			j--
		default:
			ops = append(ops, domain.Operation{Op: domain.OpDelete, Text: oldLines[i-1], OldLine: i})
			i--
		}
	}

	// Restore forward order.
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}

	return ops
}
