package diff

// SplitRow is one row of a side-by-side rendering. A nil side is blank.
type SplitRow struct {
	Left  *DiffLine `json:"left,omitempty"`
	Right *DiffLine `json:"right,omitempty"`
}

// Split projects a hunk onto side-by-side rows. Context lines fill both
// sides; a run of deletions is paired line by line with the run of additions
// that follows it, and the longer run leaves the other side blank.
func Split(h Hunk) []SplitRow {
	rows := make([]SplitRow, 0, len(h.Lines))
	var dels, adds []*DiffLine

	flush := func() {
		n := max(len(dels), len(adds))
		for i := 0; i < n; i++ {
			var row SplitRow
			if i < len(dels) {
				row.Left = dels[i]
			}
			if i < len(adds) {
				row.Right = adds[i]
			}
			rows = append(rows, row)
		}
		dels, adds = dels[:0], adds[:0]
	}

	for i := range h.Lines {
		l := &h.Lines[i]
		switch l.Type {
		case LineDeletion:
			if len(adds) > 0 {
				flush()
			}
			dels = append(dels, l)
		case LineAddition:
			adds = append(adds, l)
		default:
			flush()
			rows = append(rows, SplitRow{Left: l, Right: l})
		}
	}
	flush()
	return rows
}
