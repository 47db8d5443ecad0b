package state

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/binary"
)

// FileContent reads path at commitID, or from the worktree when commitID is
// empty. Binary files are reported with empty Content.
func FileContent(repo *gogit.Repository, path, commitID string) (FileSnapshot, error) {
	out := FileSnapshot{Path: path}

	if commitID == "" {
		wt, err := repo.Worktree()
		if err != nil {
			return out, fmt.Errorf("worktree: %w", err)
		}
		data, err := util.ReadFile(wt.Filesystem, path)
		if err != nil {
			if os.IsNotExist(err) {
				return out, fmt.Errorf("%s: %w", path, ErrFileNotFound)
			}
			return out, fmt.Errorf("read %s: %w", path, err)
		}
		out.IsBinary, _ = binary.IsBinary(bytes.NewReader(data))
		if !out.IsBinary {
			out.Content = string(data)
		}
		return out, nil
	}

	c, err := resolveCommit(repo, commitID)
	if err != nil {
		return out, err
	}
	out.CommitID = c.Hash.String()
	f, err := c.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return out, fmt.Errorf("%s at %s: %w", path, c.Hash, ErrFileNotFound)
		}
		return out, fmt.Errorf("%s at %s: %w", path, c.Hash, err)
	}
	if out.IsBinary, err = f.IsBinary(); err != nil {
		return out, fmt.Errorf("%s at %s: %w", path, c.Hash, err)
	}
	if !out.IsBinary {
		if out.Content, err = f.Contents(); err != nil {
			return out, fmt.Errorf("%s at %s: %w", path, c.Hash, err)
		}
	}
	return out, nil
}

// FileHistory lists the commits reachable from HEAD that changed path
// relative to their first parent, newest first. Renames are followed: once
// a commit is found to have renamed the file, older commits are matched
// against the old name. A limit of 0 means no limit.
func FileHistory(ctx context.Context, repo *gogit.Repository, path string, limit int) ([]FileHistoryEntry, error) {
	tips, err := seeds(repo, ListOptions{})
	if err != nil {
		return nil, err
	}
	ordered, err := walkOrdered(ctx, repo, tips)
	if err != nil {
		return nil, err
	}

	out := []FileHistoryEntry{}
	current := path
	for _, commit := range ordered {
		if limit > 0 && len(out) >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := repo.CommitObject(plumbing.NewHash(commit.ID))
		if err != nil {
			return nil, fmt.Errorf("commit %s: %w", commit.ID, err)
		}
		entry, ok, err := fileChange(ctx, c, current)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		entry.Commit = commit
		out = append(out, entry)
		if entry.Change == ChangeRenamed {
			current = entry.OldPath
		}
	}
	return out, nil
}

// fileChange reports how c changed path against its first parent.
func fileChange(ctx context.Context, c *object.Commit, path string) (FileHistoryEntry, bool, error) {
	entry := FileHistoryEntry{Path: path}

	tree, err := c.Tree()
	if err != nil {
		return entry, false, fmt.Errorf("tree of %s: %w", c.Hash, err)
	}
	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return entry, false, fmt.Errorf("parent of %s: %w", c.Hash, err)
		}
		if parentTree, err = parent.Tree(); err != nil {
			return entry, false, fmt.Errorf("tree of %s: %w", parent.Hash, err)
		}
	}

	cur := findEntry(tree, path)
	prev := findEntry(parentTree, path)
	switch {
	case cur == nil && prev == nil:
		return entry, false, nil
	case cur != nil && prev != nil:
		if cur.Hash == prev.Hash && cur.Mode == prev.Mode {
			return entry, false, nil
		}
		entry.Change = ChangeModified
		return entry, true, nil
	case cur == nil:
		entry.Change = ChangeDeleted
		return entry, true, nil
	}

	// Present now, absent in the parent: an add unless rename detection
	// pairs it with a removed file.
	entry.Change = ChangeAdded
	if parentTree == nil {
		return entry, true, nil
	}
	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return entry, false, fmt.Errorf("diff %s: %w", c.Hash, err)
	}
	for _, ch := range changes {
		if ch.To.Name == path && ch.From.Name != "" && ch.From.Name != path {
			entry.Change = ChangeRenamed
			entry.OldPath = ch.From.Name
			break
		}
	}
	return entry, true, nil
}

func findEntry(tree *object.Tree, path string) *object.TreeEntry {
	if tree == nil {
		return nil
	}
	e, err := tree.FindEntry(path)
	if err != nil {
		return nil
	}
	return e
}
