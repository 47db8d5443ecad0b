package view

import (
	"github.com/kurobon/gitview/internal/diff"
)

// LineView is a diff line with its word highlights. Spans is empty when the
// line has no partner or the pair was too long to highlight.
type LineView struct {
	diff.DiffLine
	Spans []diff.Span `json:"spans,omitempty"`
}

// SplitRowView indexes into HunkView.Lines; a nil side is blank.
type SplitRowView struct {
	Left  *int `json:"left,omitempty"`
	Right *int `json:"right,omitempty"`
}

type HunkView struct {
	Header    string         `json:"header"`
	Section   string         `json:"section,omitempty"`
	OldStart  int            `json:"oldStart"`
	OldLines  int            `json:"oldLines"`
	NewStart  int            `json:"newStart"`
	NewLines  int            `json:"newLines"`
	Truncated bool           `json:"truncated,omitempty"`
	Lines     []LineView     `json:"lines"`
	Split     []SplitRowView `json:"split,omitempty"`
}

type FileView struct {
	FilePath  string          `json:"filePath"`
	OldPath   string          `json:"oldPath,omitempty"`
	NewPath   string          `json:"newPath,omitempty"`
	Status    diff.FileStatus `json:"status"`
	IsBinary  bool            `json:"isBinary"`
	Additions int             `json:"additions"`
	Deletions int             `json:"deletions"`
	Hunks     []HunkView      `json:"hunks"`
}

type DiffPage struct {
	Files []FileView      `json:"files"`
	Stats []diff.DiffStat `json:"stats"`
}

type DiffOptions struct {
	// MaxTokens caps word highlighting per line; 0 means no cap.
	MaxTokens int
	// Split adds side-by-side rows to every hunk.
	Split bool
}

// Diff builds the diff page for parsed files. Each deleted line is word
// highlighted against the added line it sits beside in the split layout.
func Diff(files []diff.ParsedDiff, opts DiffOptions) DiffPage {
	page := DiffPage{Files: make([]FileView, 0, len(files)), Stats: diff.Stats(files)}
	for _, f := range files {
		fv := FileView{
			FilePath:  f.FilePath,
			OldPath:   f.OldPath,
			NewPath:   f.NewPath,
			Status:    f.Status,
			IsBinary:  f.IsBinary,
			Additions: f.Additions,
			Deletions: f.Deletions,
			Hunks:     make([]HunkView, 0, len(f.Hunks)),
		}
		for _, h := range f.Hunks {
			fv.Hunks = append(fv.Hunks, hunkView(h, opts))
		}
		page.Files = append(page.Files, fv)
	}
	return page
}

func hunkView(h diff.Hunk, opts DiffOptions) HunkView {
	hv := HunkView{
		Header:    h.Header,
		Section:   h.Section,
		OldStart:  h.OldStart,
		OldLines:  h.OldLines,
		NewStart:  h.NewStart,
		NewLines:  h.NewLines,
		Truncated: h.Truncated(),
		Lines:     make([]LineView, len(h.Lines)),
	}
	index := make(map[*diff.DiffLine]int, len(h.Lines))
	for i := range h.Lines {
		hv.Lines[i] = LineView{DiffLine: h.Lines[i]}
		index[&h.Lines[i]] = i
	}

	for _, row := range diff.Split(h) {
		var left, right *int
		if row.Left != nil {
			i := index[row.Left]
			left = &i
		}
		if row.Right != nil {
			i := index[row.Right]
			right = &i
		}
		if opts.Split {
			hv.Split = append(hv.Split, SplitRowView{Left: left, Right: right})
		}

		if left == nil || right == nil || row.Left.Type != diff.LineDeletion || row.Right.Type != diff.LineAddition {
			continue
		}
		wd, ok := diff.WordsLimited(row.Left.Content, row.Right.Content, opts.MaxTokens)
		if !ok {
			continue
		}
		hv.Lines[*left].Spans = wd.Old
		hv.Lines[*right].Spans = wd.New
	}
	return hv
}
