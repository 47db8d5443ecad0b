package view

import (
	"testing"
	"time"

	"github.com/kurobon/gitview/internal/graph"
	"github.com/kurobon/gitview/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func commit(id string, age time.Duration, message string, parents ...string) state.Commit {
	return state.Commit{ID: id, ParentIDs: parents, Message: message, Timestamp: now.Add(-age)}
}

func sampleHistory() []state.Commit {
	return []state.Commit{
		commit("c1", time.Hour, "Merge branch 'feature'\n\nbody", "c2", "c5"),
		commit("c2", 3*24*time.Hour, "  tidy  \n", "c3"),
		commit("c3", 4*24*time.Hour, "root"),
		commit("c5", 5*24*time.Hour, "side"),
	}
}

func TestHistory(t *testing.T) {
	refs := []state.Ref{
		{Name: "HEAD", Kind: state.RefHead, Target: "c1"},
		{Name: "main", Kind: state.RefBranch, Target: "c1", Current: true},
		{Name: "feature", Kind: state.RefBranch, Target: "c5"},
		{Name: "stale", Kind: state.RefBranch, Target: "elsewhere"},
	}

	page := History(sampleHistory(), refs, HistoryOptions{Palette: graph.Palette{"red", "blue"}, Now: now})
	require.Len(t, page.Rows, 4)
	assert.False(t, page.HasMore)
	assert.Equal(t, []string{"red", "blue"}, page.Palette)

	r0 := page.Rows[0]
	assert.Equal(t, "Merge branch 'feature'", r0.Summary)
	assert.Equal(t, "1 hour ago", r0.When)
	assert.Equal(t, "red", r0.Color)
	assert.Len(t, r0.Graph.LinesDown, 2)
	assert.Len(t, r0.Refs, 2)

	assert.Equal(t, "tidy", page.Rows[1].Summary)
	assert.Equal(t, "3 days ago", page.Rows[1].When)

	side := page.Rows[3]
	assert.Equal(t, 1, side.Graph.Column)
	assert.Equal(t, "blue", side.Color)
	require.Len(t, side.Refs, 1)
	assert.Equal(t, "feature", side.Refs[0].Name)
}

func TestHistory_Window(t *testing.T) {
	full := History(sampleHistory(), nil, HistoryOptions{Now: now})

	page := History(sampleHistory(), nil, HistoryOptions{Skip: 1, Limit: 2, Now: now})
	require.Len(t, page.Rows, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, 1, page.Skip)
	assert.Equal(t, "c2", page.Rows[0].Commit.ID)
	// Lanes inside the window match a layout of the whole history.
	assert.Equal(t, full.Rows[1].Graph, page.Rows[0].Graph)
	assert.Equal(t, full.Rows[2].Graph, page.Rows[1].Graph)
	assert.Equal(t, []string(graph.DefaultPalette), page.Palette)

	empty := History(sampleHistory(), nil, HistoryOptions{Skip: 10, Limit: 2, Now: now})
	assert.Empty(t, empty.Rows)
	assert.NotNil(t, empty.Rows)
}
