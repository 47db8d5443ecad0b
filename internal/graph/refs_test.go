package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testRef struct {
	name   string
	target string
}

func refTarget(r testRef) string { return r.target }

func TestDecorate(t *testing.T) {
	ids := []string{
		"a1b2c3d4e5f60718293a4b5c6d7e8f9012345678",
		"a1b2ffff00000000000000000000000000000000",
		"0123456789abcdef0123456789abcdef01234567",
	}

	tests := []struct {
		name        string
		refs        []testRef
		prefixMatch bool
		want        map[string][]string
	}{
		{
			name: "exact match",
			refs: []testRef{{"main", ids[0]}, {"v1.0", ids[0]}, {"dev", ids[2]}},
			want: map[string][]string{ids[0]: {"main", "v1.0"}, ids[2]: {"dev"}},
		},
		{
			name: "outside list dropped",
			refs: []testRef{{"gone", "ffffffffffffffffffffffffffffffffffffffff"}},
			want: map[string][]string{},
		},
		{
			name: "prefix ignored by default",
			refs: []testRef{{"short", "01234567"}},
			want: map[string][]string{},
		},
		{
			name:        "unique prefix",
			refs:        []testRef{{"short", "01234567"}},
			prefixMatch: true,
			want:        map[string][]string{ids[2]: {"short"}},
		},
		{
			name:        "ambiguous prefix",
			refs:        []testRef{{"amb", "a1b2"}},
			prefixMatch: true,
			want:        map[string][]string{},
		},
		{
			name:        "prefix too short",
			refs:        []testRef{{"tiny", "012"}},
			prefixMatch: true,
			want:        map[string][]string{},
		},
		{
			name:        "longer prefix disambiguates",
			refs:        []testRef{{"feat", "a1b2c"}},
			prefixMatch: true,
			want:        map[string][]string{ids[0]: {"feat"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decorate(ids, tt.refs, refTarget, tt.prefixMatch)
			names := map[string][]string{}
			for id, rs := range got {
				for _, r := range rs {
					names[id] = append(names[id], r.name)
				}
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
