package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty string is one empty line", text: "", want: []string{""}},
		{name: "single line", text: "a", want: []string{"a"}},
		{name: "two lines", text: "a\nb", want: []string{"a", "b"}},
		{name: "trailing newline yields empty last line", text: "a\n", want: []string{"a", ""}},
		{name: "blank lines survive", text: "a\n\nb", want: []string{"a", "", "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitLines(tc.text)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.text, JoinLines(got))
		})
	}
}

func TestScriptAccessors(t *testing.T) {
	s := Script{
		{Op: OpEqual, Text: "a", OldLine: 1, NewLine: 1},
		{Op: OpDelete, Text: "b", OldLine: 2},
		{Op: OpInsert, Text: "x", NewLine: 2},
		{Op: OpEqual, Text: "c", OldLine: 3, NewLine: 3},
	}

	require.Equal(t, 2, s.EqualCount())
	require.Equal(t, 1, s.InsertCount())
	require.Equal(t, 1, s.DeleteCount())
	require.True(t, s.HasChanges())
	require.Equal(t, "a\nb\nc", s.OldText())
	require.Equal(t, "a\nx\nc", s.NewText())

	unchanged := Script{{Op: OpEqual, Text: "a", OldLine: 1, NewLine: 1}}
	require.False(t, unchanged.HasChanges())
}

func TestOpString(t *testing.T) {
	require.Equal(t, " ", OpEqual.String())
	require.Equal(t, "+", OpInsert.String())
	require.Equal(t, "-", OpDelete.String())
}
