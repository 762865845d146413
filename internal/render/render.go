// Package render turns edit scripts into text: the plain one-line-per-op
// serialization and a classic unified diff.
package render

import (
	"fmt"
	"strings"

	"github.com/juparave/linediff/internal/domain"
)

// ANSI codes used when color output is requested.
const (
	reset    = "\x1b[0m"
	red      = "\x1b[31m"
	green    = "\x1b[32m"
	magenta  = "\x1b[35m"
	cyanBold = "\x1b[1;36m"
)

// Script serializes the script one line per operation, prefixed with "+",
// "-", or a space. The serialization is lossless: both sides of the diff can
// be reconstructed from it, which makes it suitable for copy and export.
func Script(s domain.Script) string {
	var b strings.Builder
	for i, op := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(op.Op.String())
		b.WriteString(op.Text)
	}
	return b.String()
}

// Unified renders the script as a unified diff with ---/+++ file headers and
// @@ hunk headers. contextSize controls how many unchanged lines surround
// each change group; two groups separated by at most 2*contextSize unchanged
// lines are merged into one hunk. If color is set the output carries ANSI
// escapes for terminals.
//
// A script with no changes renders as just the file headers.
func Unified(s domain.Script, fromName, toName string, contextSize int, color bool) string {
	colorize := func(text, code string) string {
		if !color {
			return text
		}
		return code + text + reset
	}

	out := []string{
		colorize("--- "+fromName, cyanBold),
		colorize("+++ "+toName, cyanBold),
	}

	// Running count of lines consumed on each side before the cursor.
	cursor := 0
	oldPos := 0
	newPos := 0

	for _, h := range hunks(s, contextSize) {
		for ; cursor < h.start; cursor++ {
			oldPos += sideLines(s[cursor], domain.OpDelete)
			newPos += sideLines(s[cursor], domain.OpInsert)
		}
		ops := s[h.start:h.end]

		oldCount := 0
		newCount := 0
		for _, op := range ops {
			oldCount += sideLines(op, domain.OpDelete)
			newCount += sideLines(op, domain.OpInsert)
		}

		// Per unified-diff convention a side with zero lines reports the
		// line before the hunk.
		oldStart := oldPos + 1
		if oldCount == 0 {
			oldStart = oldPos
		}
		newStart := newPos + 1
		if newCount == 0 {
			newStart = newPos
		}

		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
		out = append(out, colorize(header, magenta))

		for _, op := range ops {
			line := op.Op.String() + op.Text
			switch op.Op {
			case domain.OpInsert:
				out = append(out, colorize(line, green))
			case domain.OpDelete:
				out = append(out, colorize(line, red))
			default:
				out = append(out, line)
			}
		}

		for ; cursor < h.end; cursor++ {
			oldPos += sideLines(s[cursor], domain.OpDelete)
			newPos += sideLines(s[cursor], domain.OpInsert)
		}
	}

	return strings.Join(out, "\n")
}

// sideLines reports whether op contributes a line to the given side: 1 for
// Equal operations and operations matching side (OpDelete for the original
// document, OpInsert for the changed one), 0 otherwise.
func sideLines(op domain.Operation, side domain.Op) int {
	if op.Op == domain.OpEqual || op.Op == side {
		return 1
	}
	return 0
}

// hunk is a half-open operation index range [start, end) covering one
// rendered @@ section.
type hunk struct {
	start, end int
}

// hunks locates the change groups in s and expands each by contextSize
// equal operations on both ends, merging groups whose expanded ranges meet.
func hunks(s domain.Script, contextSize int) []hunk {
	if contextSize < 0 {
		contextSize = 0
	}

	var out []hunk
	i := 0
	for i < len(s) {
		if s[i].Op == domain.OpEqual {
			i++
			continue
		}

		// Found the start of a change group. Expand back by context.
		start := i - contextSize
		if start < 0 {
			start = 0
		}

		// Consume changes and any equal gap short enough to bridge to the
		// next change group.
		end := i
		for end < len(s) {
			if s[end].Op != domain.OpEqual {
				end++
				continue
			}
			gap := end
			for gap < len(s) && s[gap].Op == domain.OpEqual {
				gap++
			}
			if gap < len(s) && gap-end <= 2*contextSize {
				end = gap
				continue
			}
			break
		}

		// Trailing context.
		tail := end + contextSize
		if tail > len(s) {
			tail = len(s)
		}

		out = append(out, hunk{start: start, end: tail})
		i = tail
	}
	return out
}
