package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/juparave/linediff/internal/diff"
	"github.com/juparave/linediff/internal/domain"
)

func TestScript(t *testing.T) {
	s := diff.Compute("a\nb\nc", "a\nx\nc")

	want := strings.Join([]string{
		" a",
		"-b",
		"+x",
		" c",
	}, "\n")
	require.Equal(t, want, Script(s))
}

func TestScript_EmptyInputs(t *testing.T) {
	// Two empty documents compare as a single equal empty line.
	require.Equal(t, " ", Script(diff.Compute("", "")))
}

func TestUnified_SingleHunk(t *testing.T) {
	s := diff.Compute("a\nb\nc", "a\nx\nc")

	want := strings.Join([]string{
		"--- old.txt",
		"+++ new.txt",
		"@@ -1,3 +1,3 @@",
		" a",
		"-b",
		"+x",
		" c",
	}, "\n")
	require.Equal(t, want, Unified(s, "old.txt", "new.txt", 1, false))
}

func TestUnified_PureInsertZeroContext(t *testing.T) {
	s := diff.Compute("a\nb", "a\nb\nc")

	// A side with no lines reports the line before the hunk.
	want := strings.Join([]string{
		"--- old.txt",
		"+++ new.txt",
		"@@ -2,0 +3,1 @@",
		"+c",
	}, "\n")
	require.Equal(t, want, Unified(s, "old.txt", "new.txt", 0, false))
}

func TestUnified_HunkGrouping(t *testing.T) {
	original := "a\nb\nc\nd\ne\nf\ng"
	changed := "a\nB\nc\nd\ne\nF\ng"
	s := diff.Compute(original, changed)

	// Context 1: the three unchanged lines between the edits exceed
	// 2*context, so the changes land in separate hunks.
	narrow := Unified(s, "old.txt", "new.txt", 1, false)
	require.Equal(t, 2, strings.Count(narrow, "@@ -"))
	require.Contains(t, narrow, "@@ -1,3 +1,3 @@")
	require.Contains(t, narrow, "@@ -5,3 +5,3 @@")
	require.NotContains(t, narrow, " d") // middle line outside both hunks

	// Context 2: the gap is bridgeable and the hunks merge.
	wide := Unified(s, "old.txt", "new.txt", 2, false)
	require.Equal(t, 1, strings.Count(wide, "@@ -"))
	require.Contains(t, wide, "@@ -1,7 +1,7 @@")
	require.Contains(t, wide, " d")
}

func TestUnified_NoChanges(t *testing.T) {
	s := diff.Compute("a\nb", "a\nb")
	require.Equal(t, "--- old.txt\n+++ new.txt", Unified(s, "old.txt", "new.txt", 3, false))
}

func TestUnified_Color(t *testing.T) {
	s := diff.Compute("a", "b")
	out := Unified(s, "old.txt", "new.txt", 0, true)

	require.Contains(t, out, "\x1b[31m-a\x1b[0m")
	require.Contains(t, out, "\x1b[32m+b\x1b[0m")
	require.Contains(t, out, "\x1b[35m@@")
}

func TestUnified_RoundTripAgainstScript(t *testing.T) {
	// With unlimited context the unified body carries every operation, so
	// it must agree line for line with the plain script serialization.
	original := "one\ntwo\nthree\nfour"
	changed := "one\n2\nthree\n4\nfive"
	s := diff.Compute(original, changed)

	out := Unified(s, "old.txt", "new.txt", len(s), false)
	lines := strings.Split(out, "\n")
	require.Equal(t, "--- old.txt", lines[0])
	require.Equal(t, "+++ new.txt", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "@@ "))
	require.Equal(t, strings.Split(Script(s), "\n"), lines[3:])
}

func TestUnified_StartOfFileChange(t *testing.T) {
	s := diff.Compute("a\nb\nc", "x\nb\nc")

	want := strings.Join([]string{
		"--- old.txt",
		"+++ new.txt",
		"@@ -1,2 +1,2 @@",
		"-a",
		"+x",
		" b",
	}, "\n")
	require.Equal(t, want, Unified(s, "old.txt", "new.txt", 1, false))
}

func TestUnified_InsertIntoEmpty(t *testing.T) {
	s := domain.Script{
		{Op: domain.OpInsert, Text: "x", NewLine: 1},
		{Op: domain.OpInsert, Text: "y", NewLine: 2},
	}

	want := strings.Join([]string{
		"--- old.txt",
		"+++ new.txt",
		"@@ -0,0 +1,2 @@",
		"+x",
		"+y",
	}, "\n")
	require.Equal(t, want, Unified(s, "old.txt", "new.txt", 3, false))
}
