package state

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// testRepo builds in-memory repositories with a deterministic clock.
type testRepo struct {
	t     *testing.T
	repo  *gogit.Repository
	fs    billy.Filesystem
	wt    *gogit.Worktree
	clock time.Time
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	fs := memfs.New()
	repo, err := gogit.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{
		t:     t,
		repo:  repo,
		fs:    fs,
		wt:    wt,
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *testRepo) write(path, content string) {
	r.t.Helper()
	require.NoError(r.t, util.WriteFile(r.fs, path, []byte(content), 0644))
}

func (r *testRepo) add(path string) {
	r.t.Helper()
	_, err := r.wt.Add(path)
	require.NoError(r.t, err)
}

// commit writes and stages files, then commits one hour after the previous
// commit.
func (r *testRepo) commit(msg string, files map[string]string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	r.clock = r.clock.Add(time.Hour)
	return r.commitAt(r.clock, msg, files, parents...)
}

func (r *testRepo) commitAt(when time.Time, msg string, files map[string]string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	for path, content := range files {
		r.write(path, content)
		r.add(path)
	}
	h, err := r.wt.Commit(msg, &gogit.CommitOptions{
		Author:            &object.Signature{Name: "Test", Email: "test@test.com", When: when},
		Parents:           parents,
		AllowEmptyCommits: true,
	})
	require.NoError(r.t, err)
	return h
}

func (r *testRepo) checkout(branch string, create bool) {
	r.t.Helper()
	require.NoError(r.t, r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	}))
}

func (r *testRepo) ids(commits []Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.ID
	}
	return out
}
