package state

import (
	"errors"
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Refs lists HEAD, local branches, remote branches and tags. HEAD is first
// when the repository has one; the rest are sorted by kind then name.
func Refs(repo *gogit.Repository) ([]Ref, error) {
	var out []Ref

	headBranch := ""
	head, err := repo.Head()
	switch {
	case err == nil:
		out = append(out, Ref{Name: "HEAD", Kind: RefHead, Target: head.Hash().String()})
		if head.Name().IsBranch() {
			headBranch = head.Name().Short()
		}
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// unborn branch
	default:
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	var named []Ref
	err = iter.ForEach(func(r *plumbing.Reference) error {
		if r.Type() != plumbing.HashReference {
			return nil
		}
		n := r.Name()
		switch {
		case n.IsBranch():
			named = append(named, Ref{
				Name:    n.Short(),
				Kind:    RefBranch,
				Target:  r.Hash().String(),
				Current: n.Short() == headBranch,
			})
		case n.IsRemote():
			named = append(named, Ref{Name: n.Short(), Kind: RefRemote, Target: r.Hash().String()})
		case n.IsTag():
			named = append(named, Ref{Name: n.Short(), Kind: RefTag, Target: peel(repo, r.Hash()).String()})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}

	rank := map[RefKind]int{RefBranch: 0, RefRemote: 1, RefTag: 2}
	sort.Slice(named, func(i, j int) bool {
		if named[i].Kind != named[j].Kind {
			return rank[named[i].Kind] < rank[named[j].Kind]
		}
		return named[i].Name < named[j].Name
	})
	return append(out, named...), nil
}

// RefTarget returns r.Target, for joining refs onto commits.
func RefTarget(r Ref) string { return r.Target }
