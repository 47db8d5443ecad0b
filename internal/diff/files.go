package diff

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxParseWorkers bounds the goroutines ParseFiles starts for one call.
const maxParseWorkers = 8

// SplitFiles cuts multi-file diff text at each "diff --git" header. Text
// before the first header (a commit message, for instance) is dropped. Text
// with no git header at all is returned as a single chunk.
func SplitFiles(text string) []string {
	var chunks []string
	start := -1
	for i := 0; i < len(text); {
		end := strings.IndexByte(text[i:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += i + 1
		}
		if strings.HasPrefix(text[i:], "diff --git ") {
			if start >= 0 {
				chunks = append(chunks, text[start:i])
			}
			start = i
		}
		i = end
	}
	switch {
	case start >= 0:
		chunks = append(chunks, text[start:])
	case strings.TrimSpace(text) != "":
		chunks = append(chunks, text)
	}
	return chunks
}

// ParseFiles parses every file of a multi-file diff. Files are independent,
// so they are parsed concurrently; the result keeps input order. The only
// error is ctx's.
func ParseFiles(ctx context.Context, text string) ([]ParsedDiff, error) {
	chunks := SplitFiles(text)
	out := make([]ParsedDiff, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParseWorkers)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Parse(chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats summarizes parsed files.
func Stats(files []ParsedDiff) []DiffStat {
	stats := make([]DiffStat, 0, len(files))
	for _, f := range files {
		stats = append(stats, DiffStat{
			FilePath:  f.FilePath,
			Status:    f.Status,
			Additions: f.Additions,
			Deletions: f.Deletions,
			IsBinary:  f.IsBinary,
		})
	}
	return stats
}
