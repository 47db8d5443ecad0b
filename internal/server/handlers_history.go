package server

import (
	"net/http"

	"github.com/kurobon/gitview/internal/graph"
	"github.com/kurobon/gitview/internal/state"
	"github.com/kurobon/gitview/internal/view"
)

// handleHistory serves one page of the commit list with graph rows.
// Query: repo, ref, all, skip, limit.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	skip, err := intParam(r, "skip", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := intParam(r, "limit", s.Config.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if limit == 0 || limit > s.Config.MaxCommits {
		limit = s.Config.MaxCommits
	}
	all, err := boolParam(r, "all")
	if err != nil {
		writeError(w, err)
		return
	}

	name := s.repoName(r)
	repo, err := s.Manager.Open(name)
	if err != nil {
		writeError(w, err)
		return
	}
	// Lanes entering the page depend on every row above it, so the walk
	// always starts at the top. One extra commit tells whether more exist.
	commits, err := s.Manager.Commits(r.Context(), name, state.ListOptions{
		Ref:   r.URL.Query().Get("ref"),
		All:   all,
		Limit: skip + limit + 1,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	refs, err := state.Refs(repo)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view.History(commits, refs, view.HistoryOptions{
		Skip:           skip,
		Limit:          limit,
		Palette:        graph.Palette(s.Config.Palette),
		PrefixRefMatch: s.Config.PrefixRefMatch,
	}))
}

// handleFileHistory lists the commits that touched a path.
// Query: repo, path, limit.
func (s *Server) handleFileHistory(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	path, err := requiredParam(r, "path")
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := intParam(r, "limit", s.Config.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	repo, err := s.Manager.Open(s.repoName(r))
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := state.FileHistory(r.Context(), repo, path, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"path":    path,
		"entries": entries,
	})
}

func (s *Server) handleRefs(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	repo, err := s.Manager.Open(s.repoName(r))
	if err != nil {
		writeError(w, err)
		return
	}
	refs, err := state.Refs(repo)
	if err != nil {
		writeError(w, err)
		return
	}
	if refs == nil {
		refs = []state.Ref{}
	}
	writeJSON(w, http.StatusOK, refs)
}
