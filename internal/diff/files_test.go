package diff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoFiles = `commit 0123456789abcdef
Author: Test <test@test.com>

    touch two files

diff --git a/one.txt b/one.txt
index 1111111..2222222 100644
--- a/one.txt
+++ b/one.txt
@@ -1 +1,2 @@
 keep
+added
diff --git a/img.png b/img.png
new file mode 100644
index 0000000..3333333
Binary files /dev/null and b/img.png differ
`

func TestSplitFiles(t *testing.T) {
	chunks := SplitFiles(twoFiles)
	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0], "one.txt")
	assert.NotContains(t, chunks[0], "touch two files")
	assert.Contains(t, chunks[1], "img.png")

	assert.Len(t, SplitFiles("@@ -1 +1 @@\n-a\n+b\n"), 1)
	assert.Empty(t, SplitFiles("  \n"))
}

func TestParseFiles(t *testing.T) {
	files, err := ParseFiles(context.Background(), twoFiles)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "one.txt", files[0].FilePath)
	assert.Equal(t, 1, files[0].Additions)
	assert.Equal(t, "img.png", files[1].FilePath)
	assert.True(t, files[1].IsBinary)
	assert.Equal(t, StatusAdded, files[1].Status)

	stats := Stats(files)
	assert.Equal(t, []DiffStat{
		{FilePath: "one.txt", Status: StatusModified, Additions: 1},
		{FilePath: "img.png", Status: StatusAdded, IsBinary: true},
	}, stats)
}

func TestParseFiles_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseFiles(ctx, twoFiles)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFiles_Empty(t *testing.T) {
	files, err := ParseFiles(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, files)
}
