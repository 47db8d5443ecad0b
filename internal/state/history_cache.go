package state

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// maxHistoryEntries bounds the number of ordered walks kept in memory.
const maxHistoryEntries = 32

// historyCache keeps ordered walks so that paging through a large history
// does not re-walk and re-sort it for every page. An entry is valid while
// the walk's starting commits are unchanged; history reachable from fixed
// commits cannot change.
type historyCache struct {
	mu      sync.RWMutex
	entries map[string]historyEntry
}

type historyEntry struct {
	fingerprint string
	commits     []Commit
	cachedAt    time.Time
}

func newHistoryCache() *historyCache {
	return &historyCache{entries: make(map[string]historyEntry)}
}

// Get returns the cached walk for key if it was built from the same tips.
func (hc *historyCache) Get(key, fingerprint string) ([]Commit, bool) {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	e, ok := hc.entries[key]
	if !ok || e.fingerprint != fingerprint {
		return nil, false
	}
	return e.commits, true
}

// Set stores a walk, evicting the oldest entry when full.
func (hc *historyCache) Set(key, fingerprint string, commits []Commit) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	if _, ok := hc.entries[key]; !ok && len(hc.entries) >= maxHistoryEntries {
		var oldest string
		var oldestAt time.Time
		for k, e := range hc.entries {
			if oldest == "" || e.cachedAt.Before(oldestAt) {
				oldest, oldestAt = k, e.cachedAt
			}
		}
		delete(hc.entries, oldest)
	}
	hc.entries[key] = historyEntry{fingerprint: fingerprint, commits: commits, cachedAt: time.Now()}
}

// Invalidate drops every entry of a repository.
func (hc *historyCache) Invalidate(repo string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	for k := range hc.entries {
		if strings.HasPrefix(k, repo+"\x00") {
			delete(hc.entries, k)
		}
	}
}

func historyKey(repo string, opts ListOptions) string {
	return repo + "\x00" + opts.Ref + "\x00" + strconv.FormatBool(opts.All)
}

func fingerprint(tips []plumbing.Hash) string {
	ids := make([]string, len(tips))
	for i, h := range tips {
		ids[i] = h.String()
	}
	slices.Sort(ids)
	return strings.Join(slices.Compact(ids), ",")
}

// Commits is the cached form of the package-level Commits for a repository
// known to the manager.
func (m *Manager) Commits(ctx context.Context, nameOrPath string, opts ListOptions) ([]Commit, error) {
	repo, err := m.Open(nameOrPath)
	if err != nil {
		return nil, err
	}
	return m.commits(ctx, nameOrPath, repo, opts)
}

func (m *Manager) commits(ctx context.Context, name string, repo *gogit.Repository, opts ListOptions) ([]Commit, error) {
	tips, err := seeds(repo, opts)
	if err != nil {
		return nil, err
	}
	key, fp := historyKey(name, opts), fingerprint(tips)
	ordered, ok := m.history.Get(key, fp)
	if !ok {
		ordered, err = walkOrdered(ctx, repo, tips)
		if err != nil {
			return nil, err
		}
		m.history.Set(key, fp, ordered)
	}
	return slices.Clone(page(ordered, opts.Skip, opts.Limit)), nil
}
