package view

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders a history page as plain text in the style of
// `git log --graph --oneline`. Diagonal edges get a connector line below the
// commit.
func WriteText(w io.Writer, page HistoryPage) error {
	for _, row := range page.Rows {
		g := row.Graph
		cells := make([]byte, 2*g.LaneCount)
		for i := range cells {
			cells[i] = ' '
		}
		for _, s := range g.LinesIn {
			if s.ToCol < g.LaneCount {
				cells[2*s.ToCol] = '|'
			}
		}
		for _, s := range g.LinesDown {
			if s.FromCol == s.ToCol && s.FromCol < g.LaneCount {
				cells[2*s.FromCol] = '|'
			}
		}
		cells[2*g.Column] = '*'

		line := strings.TrimRight(string(cells), " ") + " " + shortID(row.Commit.ID)
		if len(row.Refs) > 0 {
			names := make([]string, len(row.Refs))
			for i, r := range row.Refs {
				names[i] = r.Name
			}
			line += " (" + strings.Join(names, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line+" "+row.Summary); err != nil {
			return err
		}

		if conn := connectors(row); conn != "" {
			if _, err := fmt.Fprintln(w, conn); err != nil {
				return err
			}
		}
	}
	return nil
}

func connectors(row HistoryRow) string {
	g := row.Graph
	width := 2 * g.LaneCount
	cells := []byte(strings.Repeat(" ", width))
	diagonal := false
	for _, s := range g.LinesDown {
		switch {
		case s.ToCol > s.FromCol:
			cells[2*s.FromCol+1] = '\\'
			diagonal = true
		case s.ToCol < s.FromCol:
			cells[2*s.ToCol+1] = '/'
			diagonal = true
		case s.FromCol < g.LaneCount:
			cells[2*s.FromCol] = '|'
		}
	}
	if !diagonal {
		return ""
	}
	return strings.TrimRight(string(cells), " ")
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
