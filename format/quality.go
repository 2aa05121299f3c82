package format

import (
	"fmt"

	"github.com/paulstansifer/convert-nonogram/puzzle"
)

/*

Quality checks: warnings about palettes that will make a puzzle
unpleasant or unprintable.  These are advisory; nothing here
stops a conversion.

*/

// QualityCheck inspects a solved-grid Summary and returns
// human-readable warnings.
func QualityCheck(s *puzzle.Summary) []string {
	var warnings []string

	// colors that render identically are almost certainly an
	// import artifact
	for i := 0; i < len(s.Palette); i++ {
		for j := i + 1; j < len(s.Palette); j++ {
			a, b := s.Palette[i], s.Palette[j]
			if a.RGB != b.RGB && nearRGB(a.RGB, b.RGB) {
				warnings = append(warnings,
					fmt.Sprintf("colors %q and %q are nearly indistinguishable", a.Name, b.Name))
			}
			if a.RGB == b.RGB && !sameCorner(a.Corner, b.Corner) {
				// corners may share an RGB with their full color
				continue
			}
			if a.RGB == b.RGB {
				warnings = append(warnings,
					fmt.Sprintf("colors %q and %q have the same RGB value", a.Name, b.Name))
			}
		}
	}

	// foreground colors that are close to the background defeat
	// the point of the puzzle
	bg := s.Palette[puzzle.Background].RGB
	for c, ci := range s.Palette {
		if puzzle.Color(c) == puzzle.Background || ci.Corner != nil {
			continue
		}
		if nearRGB(bg, ci.RGB) {
			warnings = append(warnings,
				fmt.Sprintf("color %q is hard to tell from the background", ci.Name))
		}
	}

	// unused palette entries bloat every export
	if len(s.Values) == s.Width*s.Height {
		used := make([]bool, len(s.Palette))
		for _, v := range s.Values {
			if int(v) < len(used) {
				used[v] = true
			}
		}
		for c, ci := range s.Palette {
			if !used[c] && puzzle.Color(c) != puzzle.Background {
				warnings = append(warnings,
					fmt.Sprintf("color %q appears in the palette but not the grid", ci.Name))
			}
		}
	}
	return warnings
}

// nearRGB reports whether two colors are uncomfortably close.
func nearRGB(a, b [3]byte) bool {
	if a == b {
		return false
	}
	dist := 0
	for i := 0; i < 3; i++ {
		d := int(a[i]) - int(b[i])
		dist += d * d
	}
	return dist < 48*48
}

// sameCorner compares two optional corner orientations.
func sameCorner(a, b *puzzle.Corner) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
