package state

import (
	"errors"
	"time"
)

var (
	// ErrRepoNotFound is returned when a path or name does not resolve to a
	// git repository.
	ErrRepoNotFound = errors.New("repository not found")
	// ErrCommitNotFound is returned for unknown commit ids and revisions.
	ErrCommitNotFound = errors.New("commit not found")
	// ErrFileNotFound is returned when a path exists on neither side of a
	// requested diff, or not at the requested commit.
	ErrFileNotFound = errors.New("file not found")
)

// Commit is a commit as the history view consumes it. IDs are always full
// 40-hex object names.
type Commit struct {
	ID        string    `json:"id"`
	ParentIDs []string  `json:"parentIds"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RefKind classifies a Ref.
type RefKind string

const (
	RefHead   RefKind = "head"
	RefBranch RefKind = "branch"
	RefRemote RefKind = "remote"
	RefTag    RefKind = "tag"
)

// Ref is a named pointer at a commit. Target is the full commit id; annotated
// tags are peeled.
type Ref struct {
	Name   string  `json:"name"`
	Kind   RefKind `json:"kind"`
	Target string  `json:"target"`
	// Current is set on the branch HEAD points at.
	Current bool `json:"current,omitempty"`
}

// ListOptions selects a page of history.
type ListOptions struct {
	Ref   string // revision to start from; HEAD when empty
	All   bool   // start from every branch, remote branch and tag instead
	Skip  int
	Limit int // 0 means no limit
}

// ChangeKind is how a commit touched a file.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeRenamed  ChangeKind = "renamed"
)

// FileHistoryEntry is one commit in the history of a path.
type FileHistoryEntry struct {
	Commit Commit     `json:"commit"`
	Path   string     `json:"path"`
	Change ChangeKind `json:"change"`
	// OldPath is set for renames.
	OldPath string `json:"oldPath,omitempty"`
}

// ChangedFile is a path with uncommitted changes. Status is the two-letter
// porcelain code (staging, worktree).
type ChangedFile struct {
	Path   string `json:"path"`
	Status string `json:"status"`
}

// FileSnapshot is a file read from a commit or the worktree.
type FileSnapshot struct {
	Path     string `json:"path"`
	CommitID string `json:"commitId,omitempty"`
	Content  string `json:"content"`
	IsBinary bool   `json:"isBinary"`
}
