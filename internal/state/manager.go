package state

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	gogit "github.com/go-git/go-git/v5"
)

// Manager hands out repositories by name or path. Repositories opened from
// disk are cached for the life of the manager.
type Manager struct {
	repos   map[string]*gogit.Repository
	history *historyCache
	mu      sync.RWMutex
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		repos:   make(map[string]*gogit.Repository),
		history: newHistoryCache(),
	}
}

// Register makes repo available under name. An existing entry is replaced.
func (m *Manager) Register(name string, repo *gogit.Repository) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.repos[name] = repo
	m.history.Invalidate(name)
}

// Open returns the repository registered as nameOrPath, or opens the
// repository containing that path on disk.
func (m *Manager) Open(nameOrPath string) (*gogit.Repository, error) {
	if nameOrPath == "" {
		return nil, fmt.Errorf("no repository given: %w", ErrRepoNotFound)
	}
	key, repo, ok := m.lookup(nameOrPath)
	if ok {
		return repo, nil
	}

	repo, err := gogit.PlainOpenWithOptions(key, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", nameOrPath, ErrRepoNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", nameOrPath, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.repos[key]; ok {
		return existing, nil
	}
	m.repos[key] = repo
	return repo, nil
}

// Names lists registered and opened repositories.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.repos))
	for name := range m.repos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) lookup(nameOrPath string) (string, *gogit.Repository, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if repo, ok := m.repos[nameOrPath]; ok {
		return nameOrPath, repo, true
	}
	key := nameOrPath
	if abs, err := filepath.Abs(nameOrPath); err == nil {
		key = abs
	}
	repo, ok := m.repos[key]
	return key, repo, ok
}
