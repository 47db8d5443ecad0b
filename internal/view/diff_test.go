package view

import (
	"strings"
	"testing"

	"github.com/kurobon/gitview/internal/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `diff --git a/greet.txt b/greet.txt
--- a/greet.txt
+++ b/greet.txt
@@ -1,4 +1,4 @@
 hello
-the quick fox
+the slow fox
+brand new
 bye
-gone
`

func TestDiff(t *testing.T) {
	page := Diff([]diff.ParsedDiff{diff.Parse(sample)}, DiffOptions{Split: true})
	require.Len(t, page.Files, 1)
	require.Len(t, page.Stats, 1)
	assert.Equal(t, 2, page.Stats[0].Additions)
	assert.Equal(t, 2, page.Stats[0].Deletions)

	f := page.Files[0]
	assert.Equal(t, "greet.txt", f.FilePath)
	require.Len(t, f.Hunks, 1)
	h := f.Hunks[0]
	require.Len(t, h.Lines, 6)

	// The paired lines get word highlights on each side.
	assert.Equal(t, []diff.Span{
		{Kind: diff.SpanNormal, Text: "the "},
		{Kind: diff.SpanRemoved, Text: "quick"},
		{Kind: diff.SpanNormal, Text: " fox"},
	}, h.Lines[1].Spans)
	assert.Equal(t, []diff.Span{
		{Kind: diff.SpanNormal, Text: "the "},
		{Kind: diff.SpanAdded, Text: "slow"},
		{Kind: diff.SpanNormal, Text: " fox"},
	}, h.Lines[2].Spans)

	// Unpaired lines are not highlighted.
	assert.Empty(t, h.Lines[3].Spans)
	assert.Empty(t, h.Lines[5].Spans)
	assert.Empty(t, h.Lines[0].Spans)

	require.Len(t, h.Split, 5)
	assert.Equal(t, 0, *h.Split[0].Left)
	assert.Equal(t, 0, *h.Split[0].Right)
	assert.Equal(t, 1, *h.Split[1].Left)
	assert.Equal(t, 2, *h.Split[1].Right)
	assert.Nil(t, h.Split[2].Left)
	assert.Equal(t, 3, *h.Split[2].Right)
	assert.Equal(t, 5, *h.Split[4].Left)
	assert.Nil(t, h.Split[4].Right)
}

func TestDiff_TokenCap(t *testing.T) {
	long := strings.Repeat("w ", 50)
	text := "@@ -1 +1 @@\n-" + long + "a\n+" + long + "b\n"

	page := Diff([]diff.ParsedDiff{diff.Parse(text)}, DiffOptions{MaxTokens: 10})
	h := page.Files[0].Hunks[0]
	assert.Empty(t, h.Lines[0].Spans)
	assert.Empty(t, h.Lines[1].Spans)
	assert.Nil(t, h.Split)

	page = Diff([]diff.ParsedDiff{diff.Parse(text)}, DiffOptions{})
	assert.NotEmpty(t, page.Files[0].Hunks[0].Lines[0].Spans)
}

func TestDiff_Binary(t *testing.T) {
	page := Diff([]diff.ParsedDiff{diff.Parse("Binary files a/x.png and b/x.png differ\n")}, DiffOptions{})
	require.Len(t, page.Files, 1)
	assert.True(t, page.Files[0].IsBinary)
	assert.Empty(t, page.Files[0].Hunks)
	assert.NotNil(t, page.Files[0].Hunks)
}
