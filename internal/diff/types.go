package diff

// LineType classifies a line inside a hunk.
type LineType string

const (
	LineContext  LineType = "context"
	LineAddition LineType = "addition"
	LineDeletion LineType = "deletion"
)

// FileStatus is the kind of change a file diff describes.
type FileStatus string

const (
	StatusModified FileStatus = "modified"
	StatusAdded    FileStatus = "added"
	StatusDeleted  FileStatus = "deleted"
	StatusRenamed  FileStatus = "renamed"
)

// UnknownPath is reported when a header never names the file.
const UnknownPath = "unknown"

// DiffLine is one line of a hunk. OldLineNo is nil for additions and
// NewLineNo is nil for deletions.
type DiffLine struct {
	Type      LineType `json:"lineType"`
	OldLineNo *int     `json:"oldLineNo,omitempty"`
	NewLineNo *int     `json:"newLineNo,omitempty"`
	Content   string   `json:"content"`
	NoNewline bool     `json:"noNewline,omitempty"` // followed by "\ No newline at end of file"
}

// Hunk is one "@@ -a,b +c,d @@" block.
type Hunk struct {
	OldStart int        `json:"oldStart"`
	OldLines int        `json:"oldLines"`
	NewStart int        `json:"newStart"`
	NewLines int        `json:"newLines"`
	Header   string     `json:"header"`
	Section  string     `json:"section,omitempty"` // text after the closing @@
	Lines    []DiffLine `json:"lines"`
}

// Truncated reports whether the hunk holds fewer lines than its header
// declared, which happens when the diff text was cut short.
func (h Hunk) Truncated() bool {
	oldSeen, newSeen := 0, 0
	for _, l := range h.Lines {
		if l.Type != LineAddition {
			oldSeen++
		}
		if l.Type != LineDeletion {
			newSeen++
		}
	}
	return oldSeen < h.OldLines || newSeen < h.NewLines
}

// ParsedDiff is the structured form of a single file's unified diff.
type ParsedDiff struct {
	FilePath  string     `json:"filePath"`
	OldPath   string     `json:"oldPath"`
	NewPath   string     `json:"newPath"`
	Status    FileStatus `json:"status"`
	IsBinary  bool       `json:"isBinary"`
	Hunks     []Hunk     `json:"hunks"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
}

// DiffStat summarizes one file of a diff.
type DiffStat struct {
	FilePath  string     `json:"filePath"`
	Status    FileStatus `json:"status"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
	IsBinary  bool       `json:"isBinary"`
}

func intPtr(v int) *int { return &v }
