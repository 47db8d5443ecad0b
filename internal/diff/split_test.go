package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	parsed := Parse(lines(
		"@@ -1,5 +1,4 @@",
		" c1",
		"-d1",
		"-d2",
		"+a1",
		" c2",
		"+a2",
		"-d3",
	))
	require.Len(t, parsed.Hunks, 1)

	rows := Split(parsed.Hunks[0])
	require.Len(t, rows, 6)

	assert.Equal(t, "c1", rows[0].Left.Content)
	assert.Equal(t, "c1", rows[0].Right.Content)

	assert.Equal(t, "d1", rows[1].Left.Content)
	assert.Equal(t, "a1", rows[1].Right.Content)

	assert.Equal(t, "d2", rows[2].Left.Content)
	assert.Nil(t, rows[2].Right)

	assert.Equal(t, "c2", rows[3].Left.Content)

	// An addition followed by a deletion is not a replacement pair.
	assert.Nil(t, rows[4].Left)
	assert.Equal(t, "a2", rows[4].Right.Content)
	assert.Equal(t, "d3", rows[5].Left.Content)
	assert.Nil(t, rows[5].Right)
}
