package state

import (
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefs(t *testing.T) {
	r := newTestRepo(t)
	c1 := r.commit("one", map[string]string{"a": "1"})
	c2 := r.commit("two", map[string]string{"a": "2"})

	require.NoError(t, r.repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName("feature"), c1)))
	require.NoError(t, r.repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", "master"), c1)))
	_, err := r.repo.CreateTag("v0.9", c1, nil)
	require.NoError(t, err)
	tag, err := r.repo.CreateTag("v1.0", c2, &gogit.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Test", Email: "test@test.com", When: r.clock},
		Message: "release",
	})
	require.NoError(t, err)
	require.NotEqual(t, c2, tag.Hash(), "annotated tag points at a tag object")

	refs, err := Refs(r.repo)
	require.NoError(t, err)

	assert.Equal(t, []Ref{
		{Name: "HEAD", Kind: RefHead, Target: c2.String()},
		{Name: "feature", Kind: RefBranch, Target: c1.String()},
		{Name: "master", Kind: RefBranch, Target: c2.String(), Current: true},
		{Name: "origin/master", Kind: RefRemote, Target: c1.String()},
		{Name: "v0.9", Kind: RefTag, Target: c1.String()},
		{Name: "v1.0", Kind: RefTag, Target: c2.String()},
	}, refs)
}

func TestRefs_DetachedHead(t *testing.T) {
	r := newTestRepo(t)
	c1 := r.commit("one", map[string]string{"a": "1"})
	r.commit("two", map[string]string{"a": "2"})
	require.NoError(t, r.wt.Checkout(&gogit.CheckoutOptions{Hash: c1}))

	refs, err := Refs(r.repo)
	require.NoError(t, err)
	require.NotEmpty(t, refs)
	assert.Equal(t, Ref{Name: "HEAD", Kind: RefHead, Target: c1.String()}, refs[0])
	for _, ref := range refs[1:] {
		assert.False(t, ref.Current)
	}
}

func TestRefs_UnbornHead(t *testing.T) {
	r := newTestRepo(t)
	refs, err := Refs(r.repo)
	require.NoError(t, err)
	assert.Empty(t, refs)
}
