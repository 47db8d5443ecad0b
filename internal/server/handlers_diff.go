package server

import (
	"encoding/json"
	"net/http"

	"github.com/kurobon/gitview/internal/diff"
	"github.com/kurobon/gitview/internal/state"
	"github.com/kurobon/gitview/internal/view"
)

// maxDiffBody bounds POSTed diff text.
const maxDiffBody = 32 << 20

func (s *Server) diffOptions(split bool) view.DiffOptions {
	return view.DiffOptions{MaxTokens: s.Config.WordDiffMaxTokens, Split: split}
}

// renderDiff parses unified diff text into a diff page.
func (s *Server) renderDiff(w http.ResponseWriter, r *http.Request, text string, split bool) {
	files, err := diff.ParseFiles(r.Context(), text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Diff(files, s.diffOptions(split)))
}

// handleCommitDiff serves a commit's changes. Query: repo, id, path, split.
func (s *Server) handleCommitDiff(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	id, err := requiredParam(r, "id")
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

	text, err := state.CommitDiff(r.Context(), repo, id, r.URL.Query().Get("path"), s.Config.ContextLines)
	if err != nil {
		writeError(w, err)
		return
	}
	s.renderDiff(w, r, text, split)
}

type ParseRequest struct {
	Text  string `json:"text"`
	Split bool   `json:"split"`
}

// handleParseDiff renders diff text supplied by the client.
func (s *Server) handleParseDiff(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req ParseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDiffBody)).Decode(&req); err != nil {
		writeError(w, badRequest("invalid request body: %v", err))
		return
	}
	s.renderDiff(w, r, req.Text, req.Split)
}

type WordsRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type WordsResponse struct {
	diff.WordDiff
	// Highlighted is false when the lines were too long to compare word by
	// word; the renderer then marks them as wholly removed and added.
	Highlighted bool `json:"highlighted"`
}

func (s *Server) handleWordDiff(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req WordsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDiffBody)).Decode(&req); err != nil {
		writeError(w, badRequest("invalid request body: %v", err))
		return
	}
	wd, ok := diff.WordsLimited(req.Old, req.New, s.Config.WordDiffMaxTokens)
	writeJSON(w, http.StatusOK, WordsResponse{WordDiff: wd, Highlighted: ok})
}
