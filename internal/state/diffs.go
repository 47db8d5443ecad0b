package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// resolveCommit finds a commit by full id, abbreviated id or revision.
func resolveCommit(repo *gogit.Repository, rev string) (*object.Commit, error) {
	h, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rev, ErrCommitNotFound)
	}
	c, err := repo.CommitObject(peel(repo, *h))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rev, ErrCommitNotFound)
	}
	return c, nil
}

// CommitDiff renders the unified diff of a commit against its first parent.
// Root commits diff against the empty tree. A non-empty path restricts the
// output to the file with that name on either side.
func CommitDiff(ctx context.Context, repo *gogit.Repository, id, path string, contextLines int) (string, error) {
	c, err := resolveCommit(repo, id)
	if err != nil {
		return "", err
	}
	tree, err := c.Tree()
	if err != nil {
		return "", fmt.Errorf("tree of %s: %w", c.Hash, err)
	}
	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return "", fmt.Errorf("parent of %s: %w", c.Hash, err)
		}
		if parentTree, err = parent.Tree(); err != nil {
			return "", fmt.Errorf("tree of %s: %w", parent.Hash, err)
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", c.Hash, err)
	}
	if path != "" {
		var kept object.Changes
		for _, ch := range changes {
			if ch.From.Name == path || ch.To.Name == path {
				kept = append(kept, ch)
			}
		}
		changes = kept
	}

	patch, err := changes.PatchContext(ctx)
	if err != nil {
		return "", fmt.Errorf("patch %s: %w", c.Hash, err)
	}
	return encode(patch, contextLines)
}

// WorktreeDiff renders the unified diff of one uncommitted file: HEAD to
// index when staged, index to worktree otherwise. Untracked files diff
// against nothing. Unchanged files yield "".
func WorktreeDiff(repo *gogit.Repository, path string, staged bool, contextLines int) (string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("worktree: %w", err)
	}

	var from, to *blobSide
	if staged {
		if from, err = headSide(repo, path); err != nil {
			return "", err
		}
		if to, err = indexSide(repo, path); err != nil {
			return "", err
		}
	} else {
		if from, err = indexSide(repo, path); err != nil {
			return "", err
		}
		if to, err = worktreeSide(wt, path, from); err != nil {
			return "", err
		}
	}

	switch {
	case from == nil && to == nil:
		return "", fmt.Errorf("%s: %w", path, ErrFileNotFound)
	case from != nil && to != nil && from.hash == to.hash:
		return "", nil
	}
	return encode(newContentPatch(from, to), contextLines)
}

func encode(patch fdiff.Patch, contextLines int) (string, error) {
	var sb strings.Builder
	if err := fdiff.NewUnifiedEncoder(&sb, contextLines).Encode(patch); err != nil {
		return "", fmt.Errorf("encode patch: %w", err)
	}
	return sb.String(), nil
}

func headSide(repo *gogit.Repository, path string) (*blobSide, error) {
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	c, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("HEAD commit: %w", err)
	}
	return treeSide(c, path)
}

func indexSide(repo *gogit.Repository, path string) (*blobSide, error) {
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	entry, err := idx.Entry(path)
	if err != nil {
		return nil, nil
	}
	blob, err := repo.BlobObject(entry.Hash)
	if err != nil {
		return nil, fmt.Errorf("%s in index: %w", path, err)
	}
	r, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("%s in index: %w", path, err)
	}
	defer r.Close()
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s in index: %w", path, err)
	}
	return newBlobSide(path, entry.Mode, entry.Hash, content), nil
}

// worktreeSide reads the working copy. The mode is taken from the index
// side when there is one.
func worktreeSide(wt *gogit.Worktree, path string, tracked *blobSide) (*blobSide, error) {
	content, err := util.ReadFile(wt.Filesystem, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s in worktree: %w", path, err)
	}
	mode := filemode.Regular
	if tracked != nil {
		mode = tracked.mode
	}
	return newBlobSide(path, mode, plumbing.ZeroHash, content), nil
}

// ChangedFiles lists paths with staged changes, or with unstaged changes
// (untracked files included), sorted by path.
func ChangedFiles(repo *gogit.Repository, staged bool) ([]ChangedFile, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	out := []ChangedFile{}
	for file, s := range status {
		if staged && (s.Staging == gogit.Unmodified || s.Staging == gogit.Untracked) {
			continue
		}
		if !staged && s.Worktree == gogit.Unmodified {
			continue
		}
		out = append(out, ChangedFile{Path: file, Status: string([]byte{byte(s.Staging), byte(s.Worktree)})})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
