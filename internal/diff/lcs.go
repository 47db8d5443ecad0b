package diff

// EditKind tags one step of an edit script.
type EditKind string

const (
	EditEqual  EditKind = "equal"
	EditInsert EditKind = "insert"
	EditDelete EditKind = "delete"
)

// Edit is a single token of an edit script.
type Edit[T comparable] struct {
	Kind  EditKind `json:"kind"`
	Token T        `json:"token"`
}

// LCS computes a minimal edit script turning a into b using the classic
// longest-common-subsequence table.
//
// Every token of both inputs appears exactly once: equal+delete tokens rebuild
// a, equal+insert tokens rebuild b. Time and space are O(len(a)*len(b)), so
// callers cap the input (word diffs of one line, not whole files).
func LCS[T comparable](a, b []T) []Edit[T] {
	m, n := len(a), len(b)

	// Degenerate inputs skip the table entirely.
	if m == 0 || n == 0 {
		out := make([]Edit[T], 0, m+n)
		for _, tok := range a {
			out = append(out, Edit[T]{Kind: EditDelete, Token: tok})
		}
		for _, tok := range b {
			out = append(out, Edit[T]{Kind: EditInsert, Token: tok})
		}
		return out
	}

	// table[i][j] is the LCS length of a[:i] and b[:j].
	width := n + 1
	table := make([]int, (m+1)*width)
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case a[i-1] == b[j-1]:
				table[i*width+j] = table[(i-1)*width+j-1] + 1
			case table[(i-1)*width+j] >= table[i*width+j-1]:
				table[i*width+j] = table[(i-1)*width+j]
			default:
				table[i*width+j] = table[i*width+j-1]
			}
		}
	}

	// Backtrack from (m,n). The script is built in reverse, so preferring
	// insert on ties places additions after removals once reversed.
	rev := make([]Edit[T], 0, m+n-table[m*width+n])
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			rev = append(rev, Edit[T]{Kind: EditEqual, Token: a[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || table[i*width+j-1] >= table[(i-1)*width+j]):
			rev = append(rev, Edit[T]{Kind: EditInsert, Token: b[j-1]})
			j--
		default:
			rev = append(rev, Edit[T]{Kind: EditDelete, Token: a[i-1]})
			i--
		}
	}

	for l, r := 0, len(rev)-1; l < r; l, r = l+1, r-1 {
		rev[l], rev[r] = rev[r], rev[l]
	}
	return rev
}
