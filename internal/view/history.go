// Package view joins the data source with the diff and graph engines into
// the page models the renderer draws.
package view

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kurobon/gitview/internal/graph"
	"github.com/kurobon/gitview/internal/state"
)

// HistoryRow is one line of the history list.
type HistoryRow struct {
	Commit  state.Commit   `json:"commit"`
	Summary string         `json:"summary"`
	When    string         `json:"when"` // relative, e.g. "3 days ago"
	Graph   graph.GraphRow `json:"graph"`
	Color   string         `json:"color"`
	Refs    []state.Ref    `json:"refs,omitempty"`
}

// HistoryPage is a window of rows plus what the renderer needs to draw the
// lanes that cross it.
type HistoryPage struct {
	Rows    []HistoryRow `json:"rows"`
	Palette []string     `json:"palette"`
	Skip    int          `json:"skip"`
	HasMore bool         `json:"hasMore"`
}

type HistoryOptions struct {
	Skip           int
	Limit          int
	Palette        graph.Palette
	PrefixRefMatch bool
	Now            time.Time
}

// History lays out commits and returns the rows in [Skip, Skip+Limit).
// Commits must hold every commit from the top of the history down to at
// least the end of the window so lanes entering the window are right;
// anything past the window only sets HasMore.
func History(commits []state.Commit, refs []state.Ref, opts HistoryOptions) HistoryPage {
	palette := opts.Palette
	if len(palette) == 0 {
		palette = graph.DefaultPalette
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	page := HistoryPage{Rows: []HistoryRow{}, Palette: palette, Skip: opts.Skip}
	end := len(commits)
	if opts.Limit > 0 && opts.Skip+opts.Limit < end {
		end = opts.Skip + opts.Limit
		page.HasMore = true
	}
	if opts.Skip >= end {
		return page
	}
	commits = commits[:end]

	nodes := make([]graph.Commit, len(commits))
	ids := make([]string, len(commits))
	for i, c := range commits {
		nodes[i] = graph.Commit{ID: c.ID, ParentIDs: c.ParentIDs}
		ids[i] = c.ID
	}
	rows := graph.Layout(nodes)
	decorations := graph.Decorate(ids, refs, state.RefTarget, opts.PrefixRefMatch)

	for i := opts.Skip; i < end; i++ {
		c := commits[i]
		page.Rows = append(page.Rows, HistoryRow{
			Commit:  c,
			Summary: summary(c.Message),
			When:    humanize.RelTime(c.Timestamp, now, "ago", "from now"),
			Graph:   rows[i],
			Color:   palette.Color(rows[i].ColorIndex),
			Refs:    decorations[c.ID],
		})
	}
	return page
}

func summary(message string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return strings.TrimSpace(first)
}
