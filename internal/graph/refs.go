package graph

import (
	"slices"
	"strings"
)

// minPrefixLen is the shortest abbreviated id the prefix join accepts.
const minPrefixLen = 4

// Decorate groups refs by the commit they point at. Association is by exact
// id. With prefixMatch set, a ref whose target is an abbreviated id is
// attached to the single listed commit with that prefix; ambiguous or short
// prefixes attach to nothing. Refs pointing outside ids are dropped.
func Decorate[R any](ids []string, refs []R, target func(R) string, prefixMatch bool) map[string][]R {
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	var sorted []string
	if prefixMatch {
		sorted = slices.Clone(ids)
		slices.Sort(sorted)
	}

	out := make(map[string][]R)
	for _, r := range refs {
		id := target(r)
		if _, ok := known[id]; !ok {
			if !prefixMatch {
				continue
			}
			var found bool
			if id, found = uniquePrefix(sorted, id); !found {
				continue
			}
		}
		out[id] = append(out[id], r)
	}
	return out
}

func uniquePrefix(sorted []string, prefix string) (string, bool) {
	if len(prefix) < minPrefixLen {
		return "", false
	}
	i, _ := slices.BinarySearch(sorted, prefix)
	if i >= len(sorted) || !strings.HasPrefix(sorted[i], prefix) {
		return "", false
	}
	if i+1 < len(sorted) && strings.HasPrefix(sorted[i+1], prefix) && sorted[i+1] != sorted[i] {
		return "", false
	}
	return sorted[i], true
}
