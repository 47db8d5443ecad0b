// Package graph lays out a commit list as lanes and line segments for
// drawing a branch/merge graph.
package graph

// ColorIndex identifies a lane color. It grows without bound; Palette maps it
// onto a finite set of colors.
type ColorIndex uint64

// Commit is the layout input: an id and its parents in git order (first
// parent first).
type Commit struct {
	ID        string   `json:"id"`
	ParentIDs []string `json:"parentIds"`
}

// Segment is a line between two lane columns. In LinesDown it runs from
// the row's midline (FromCol) to the top of the next row (ToCol); in LinesIn
// it is vertical and FromCol equals ToCol.
type Segment struct {
	FromCol    int        `json:"fromCol"`
	ToCol      int        `json:"toCol"`
	ColorIndex ColorIndex `json:"colorIndex"`
}

// GraphRow is the layout of one commit.
type GraphRow struct {
	CommitID   string     `json:"commitId"`
	Column     int        `json:"column"`
	ColorIndex ColorIndex `json:"colorIndex"`
	// LinesIn mirrors the previous row's LinesDown one for one. A join into
	// a lane that also continues straight down arrives as two identical
	// vertical segments at that column; renderers may stroke it once.
	LinesIn   []Segment `json:"linesIn"`
	LinesDown []Segment `json:"linesDown"`
	LaneCount int       `json:"laneCount"`
	// Columns of other lanes that were also waiting for this commit and end
	// at its node.
	Converging []int `json:"converging,omitempty"`
}

type lane struct {
	waiting  string // commit id the lane expects next
	occupied bool
	color    ColorIndex
}

// LaneTable is the state threaded through one layout pass. Step never
// mutates its receiver, so a table can be kept per row and replayed.
type LaneTable struct {
	lanes     []lane
	nextColor ColorIndex
	exits     []Segment // LinesDown of the previous row
}

// Width is the number of lanes currently held.
func (t LaneTable) Width() int { return len(t.lanes) }

// Pending returns the commit ids that lanes are still waiting for, in
// column order. Free columns are reported as "".
func (t LaneTable) Pending() []string {
	out := make([]string, len(t.lanes))
	for i, l := range t.lanes {
		if l.occupied {
			out[i] = l.waiting
		}
	}
	return out
}

// Layout assigns every commit a lane. Commits must already be ordered with
// descendants before ancestors; the order is not re-derived. Parents that
// never show up leave their lane pending past the last row.
func Layout(commits []Commit) []GraphRow {
	rows := make([]GraphRow, 0, len(commits))
	var t LaneTable
	for _, c := range commits {
		var row GraphRow
		t, row = t.Step(c)
		rows = append(rows, row)
	}
	return rows
}

// Step lays out the next commit and returns the updated table with the row.
func (t LaneTable) Step(c Commit) (LaneTable, GraphRow) {
	incoming := t.lanes
	lanes := make([]lane, len(incoming), len(incoming)+len(c.ParentIDs))
	copy(lanes, incoming)
	next := LaneTable{nextColor: t.nextColor}

	// 1. Find the lane waiting for this commit, or open one.
	col := indexWaiting(lanes, c.ID)
	if col < 0 {
		lanes, col = allocate(lanes)
		lanes[col].color = next.nextColor
		next.nextColor++
	}
	color := lanes[col].color

	// 2. The commit has arrived; drop every lane that waited for it.
	lanes[col].occupied = false
	var converging []int
	for i := range lanes {
		if i != col && lanes[i].occupied && lanes[i].waiting == c.ID {
			lanes[i].occupied = false
			converging = append(converging, i)
		}
	}

	// 3. Hand parents to lanes.
	var joins []Segment
	for pIdx, p := range c.ParentIDs {
		if k := indexWaiting(lanes, p); k >= 0 {
			if k != col {
				joins = append(joins, Segment{FromCol: col, ToCol: k, ColorIndex: lanes[k].color})
			}
			continue
		}
		if pIdx == 0 {
			lanes[col] = lane{waiting: p, occupied: true, color: color}
			continue
		}
		var k int
		lanes, k = allocate(lanes)
		lanes[k] = lane{waiting: p, occupied: true, color: next.nextColor}
		next.nextColor++
	}

	// 4. Outgoing segments, each matched to where its lane sat before.
	used := make([]bool, len(incoming))
	down := make([]Segment, 0, len(lanes)+len(joins))
	for i, l := range lanes {
		if !l.occupied {
			continue
		}
		from := col
		for j, prev := range incoming {
			if !used[j] && prev.occupied && prev.waiting == l.waiting {
				used[j] = true
				from = j
				break
			}
		}
		down = append(down, Segment{FromCol: from, ToCol: i, ColorIndex: l.color})
	}
	down = append(down, joins...)

	// 5. Incoming segments are the previous row's exits.
	in := make([]Segment, len(t.exits))
	for i, s := range t.exits {
		in[i] = Segment{FromCol: s.ToCol, ToCol: s.ToCol, ColorIndex: s.ColorIndex}
	}

	row := GraphRow{
		CommitID:   c.ID,
		Column:     col,
		ColorIndex: color,
		LinesIn:    in,
		LinesDown:  down,
		LaneCount:  len(lanes),
		Converging: converging,
	}

	// 6. Trim free lanes from the right edge.
	for len(lanes) > 0 && !lanes[len(lanes)-1].occupied {
		lanes = lanes[:len(lanes)-1]
	}
	next.lanes = lanes
	next.exits = down
	return next, row
}

func indexWaiting(lanes []lane, id string) int {
	for i, l := range lanes {
		if l.occupied && l.waiting == id {
			return i
		}
	}
	return -1
}

// allocate returns the first free lane, appending one when all are taken.
// The returned lane is not marked occupied.
func allocate(lanes []lane) ([]lane, int) {
	for i, l := range lanes {
		if !l.occupied {
			return lanes, i
		}
	}
	return append(lanes, lane{}), len(lanes)
}
