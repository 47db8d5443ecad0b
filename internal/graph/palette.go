package graph

// DefaultPalette is the lane palette used when none is configured.
var DefaultPalette = Palette{
	"#4f9cf9",
	"#f97f4f",
	"#5cc98a",
	"#c67ef2",
	"#f2c94c",
	"#ef6b8a",
	"#49c6d6",
	"#a3a86b",
}

// Palette maps ever-growing color indices onto a fixed set of colors.
type Palette []string

// Color returns the color for ci, cycling through the palette.
func (p Palette) Color(ci ColorIndex) string {
	if len(p) == 0 {
		return DefaultPalette.Color(ci)
	}
	return p[ci%ColorIndex(len(p))]
}
