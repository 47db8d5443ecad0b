package server

import (
	"net/http"

	"github.com/kurobon/gitview/internal/state"
)

// handleWorktreeDiff serves the uncommitted changes of one file.
// Query: repo, path, staged, split.
func (s *Server) handleWorktreeDiff(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	path, err := requiredParam(r, "path")
	if err != nil {
		writeError(w, err)
		return
	}
	staged, err := boolParam(r, "staged")
	if err != nil {
		writeError(w, err)
		return
	}
	split, err := boolParam(r, "split")
	if err != nil {
		writeError(w, err)
		return
	}
	repo, err := s.Manager.Open(s.repoName(r))
	if err != nil {
		writeError(w, err)
		return
	}

	text, err := state.WorktreeDiff(repo, path, staged, s.Config.ContextLines)
	if err != nil {
		writeError(w, err)
		return
	}
	s.renderDiff(w, r, text, split)
}

// handleChangedFiles lists files with staged or unstaged changes.
func (s *Server) handleChangedFiles(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	staged, err := boolParam(r, "staged")
	if err != nil {
		writeError(w, err)
		return
	}
	repo, err := s.Manager.Open(s.repoName(r))
	if err != nil {
		writeError(w, err)
		return
	}
	files, err := state.ChangedFiles(repo, staged)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// handleFileContent serves a file at a commit, or from the worktree when
// commit is omitted. Query: repo, path, commit.
func (s *Server) handleFileContent(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	path, err := requiredParam(r, "path")
	if err != nil {
		writeError(w, err)
		return
	}
	repo, err := s.Manager.Open(s.repoName(r))
	if err != nil {
		writeError(w, err)
		return
	}
	content, err := state.FileContent(repo, path, r.URL.Query().Get("commit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

// handleImageDiff serves both versions of an image so a renderer can show
// them side by side. Query: repo, path, commit, staged.
func (s *Server) handleImageDiff(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	path, err := requiredParam(r, "path")
	if err != nil {
		writeError(w, err)
		return
	}
	staged, err := boolParam(r, "staged")
	if err != nil {
		writeError(w, err)
		return
	}
	repo, err := s.Manager.Open(s.repoName(r))
	if err != nil {
		writeError(w, err)
		return
	}
	pair, err := state.ImageDiff(repo, path, r.URL.Query().Get("commit"), staged)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

// handleImage serves one image at a commit, or from the worktree.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	path, err := requiredParam(r, "path")
	if err != nil {
		writeError(w, err)
		return
	}
	repo, err := s.Manager.Open(s.repoName(r))
	if err != nil {
		writeError(w, err)
		return
	}
	img, err := state.ImageAt(repo, path, r.URL.Query().Get("commit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}
