package state

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// walkLimit caps how many commits one history walk collects.
const walkLimit = 20000

// Commits lists history newest first with every commit ahead of its parents,
// then applies opts.Skip and opts.Limit. An unborn HEAD yields no commits.
func Commits(ctx context.Context, repo *gogit.Repository, opts ListOptions) ([]Commit, error) {
	tips, err := seeds(repo, opts)
	if err != nil {
		return nil, err
	}
	ordered, err := walkOrdered(ctx, repo, tips)
	if err != nil {
		return nil, err
	}
	return page(ordered, opts.Skip, opts.Limit), nil
}

// seeds returns the commits a walk starts from.
func seeds(repo *gogit.Repository, opts ListOptions) ([]plumbing.Hash, error) {
	if !opts.All {
		if opts.Ref == "" {
			head, err := repo.Head()
			if err != nil {
				if errors.Is(err, plumbing.ErrReferenceNotFound) {
					return nil, nil
				}
				return nil, fmt.Errorf("resolve HEAD: %w", err)
			}
			return []plumbing.Hash{head.Hash()}, nil
		}
		h, err := repo.ResolveRevision(plumbing.Revision(opts.Ref))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.Ref, ErrCommitNotFound)
		}
		return []plumbing.Hash{peel(repo, *h)}, nil
	}

	var tips []plumbing.Hash
	if h, err := repo.Head(); err == nil {
		tips = append(tips, h.Hash())
	}
	refs, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	err = refs.ForEach(func(r *plumbing.Reference) error {
		if r.Type() != plumbing.HashReference {
			return nil
		}
		n := r.Name()
		if n.IsBranch() || n.IsRemote() || n.IsTag() {
			tips = append(tips, peel(repo, r.Hash()))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	return tips, nil
}

// peel resolves an annotated tag to the object it points at.
func peel(repo *gogit.Repository, h plumbing.Hash) plumbing.Hash {
	if tag, err := repo.TagObject(h); err == nil {
		return tag.Target
	}
	return h
}

// walkOrdered collects every commit reachable from tips and orders it.
func walkOrdered(ctx context.Context, repo *gogit.Repository, tips []plumbing.Hash) ([]Commit, error) {
	var collected []*object.Commit
	seen := make(map[plumbing.Hash]bool)
	queue := append([]plumbing.Hash(nil), tips...)

	for len(queue) > 0 && len(collected) < walkLimit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current := queue[0]
		queue = queue[1:]
		if seen[current] {
			continue
		}
		seen[current] = true

		c, err := repo.CommitObject(current)
		if err != nil {
			log.Warn("skipping unreadable commit", "id", current, "err", err)
			continue
		}
		collected = append(collected, c)
		queue = append(queue, c.ParentHashes...)
	}
	if len(collected) >= walkLimit {
		log.Warn("history walk truncated", "limit", walkLimit)
	}

	ordered := topoOrder(collected)
	out := make([]Commit, len(ordered))
	for i, c := range ordered {
		out[i] = toCommit(c)
	}
	return out, nil
}

// topoOrder sorts by committer time, newest first, then moves any commit
// that would precede one of its children down just far enough. Clock skew
// between machines makes the plain time sort unsafe for lane layout.
func topoOrder(commits []*object.Commit) []*object.Commit {
	sort.SliceStable(commits, func(i, j int) bool {
		ti, tj := commits[i].Committer.When, commits[j].Committer.When
		if ti.Equal(tj) {
			return commits[i].Hash.String() > commits[j].Hash.String()
		}
		return ti.After(tj)
	})

	pos := make(map[plumbing.Hash]int, len(commits))
	for i, c := range commits {
		pos[c.Hash] = i
	}
	children := make([]int, len(commits))
	for _, c := range commits {
		for _, p := range c.ParentHashes {
			if i, ok := pos[p]; ok {
				children[i]++
			}
		}
	}

	// ready holds positions in the time-sorted list; the smallest pops first.
	ready := binaryheap.NewWith(utils.IntComparator)
	for i, n := range children {
		if n == 0 {
			ready.Push(i)
		}
	}
	out := make([]*object.Commit, 0, len(commits))
	for !ready.Empty() {
		v, _ := ready.Pop()
		i := v.(int)
		out = append(out, commits[i])
		for _, p := range commits[i].ParentHashes {
			if j, ok := pos[p]; ok {
				children[j]--
				if children[j] == 0 {
					ready.Push(j)
				}
			}
		}
	}
	return out
}

func toCommit(c *object.Commit) Commit {
	parents := make([]string, len(c.ParentHashes))
	for i, p := range c.ParentHashes {
		parents[i] = p.String()
	}
	return Commit{
		ID:        c.Hash.String(),
		ParentIDs: parents,
		Author:    c.Author.Name,
		Email:     c.Author.Email,
		Message:   c.Message,
		Timestamp: c.Author.When,
	}
}

func page(commits []Commit, skip, limit int) []Commit {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(commits) {
		return []Commit{}
	}
	commits = commits[skip:]
	if limit > 0 && limit < len(commits) {
		commits = commits[:limit]
	}
	return commits
}
