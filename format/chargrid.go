package format

import (
	"fmt"
	"strings"

	"github.com/paulstansifer/convert-nonogram/puzzle"
)

/*

The char grid: an informal text format where each character is
one cell.  It is the friendliest format for hand-editing, and
the only one besides Olšák that can carry trianogram half-cells
(as the glyphs ◤ ◥ ◣ ◢).

*/

// triangle glyphs and their orientations
var triangleCorners = map[rune]puzzle.Corner{
	'◤': {Upper: true, Left: true},
	'◥': {Upper: true, Left: false},
	'◣': {Upper: false, Left: true},
	'◢': {Upper: false, Left: false},
}

// namedGlyphColors guesses an RGB for common glyph choices.
// Anything unrecognized gets a gray ramp so distinct glyphs stay
// distinct.
var namedGlyphColors = map[rune][3]byte{
	'b': {0, 0, 0},
	'#': {0, 0, 0},
	'*': {0, 0, 0},
	'x': {0, 0, 0},
	'X': {0, 0, 0},
	'r': {255, 0, 0},
	'g': {0, 255, 0},
	'u': {0, 0, 255}, // "u" as in bleu; "b" already means black
	'y': {255, 255, 0},
	'p': {255, 128, 128},
	'o': {255, 165, 0},
	'w': {255, 255, 255},
}

// backgroundCandidates are glyphs assumed to be the background
// when present, in preference order.
var backgroundCandidates = []rune{'.', ' ', '0', 'w'}

// ImportCharGrid parses a character grid into a solved-grid
// Summary.  Every distinct character becomes a palette entry;
// the background is guessed from conventional blank characters,
// falling back to the upper-left cell.
func ImportCharGrid(text string) (*puzzle.Summary, error) {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		// space-only lines are kept: they're rows of background
		if l = strings.TrimRight(l, "\r"); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("char grid is empty")
	}

	rows := make([][]rune, len(lines))
	width := 0
	for i, l := range lines {
		rows[i] = []rune(l)
		if len(rows[i]) > width {
			width = len(rows[i])
		}
	}
	// short lines are padded with the first glyph of the grid,
	// which is almost always the background
	pad := rows[0][0]
	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], pad)
		}
	}

	// collect the distinct glyphs in reading order
	seen := map[rune]bool{}
	var glyphs []rune
	for _, row := range rows {
		for _, ch := range row {
			if !seen[ch] {
				seen[ch] = true
				glyphs = append(glyphs, ch)
			}
		}
	}

	background, ok := guessBackground(glyphs)
	if !ok {
		background = rows[0][0]
	}

	// assign palette slots: background first, then the rest in
	// reading order
	colorOf := map[rune]puzzle.Color{background: puzzle.Background}
	pal := puzzle.Palette{glyphColorInfo(background, 0)}
	trianogram := false
	for _, ch := range glyphs {
		if ch == background {
			continue
		}
		colorOf[ch] = puzzle.Color(len(pal))
		pal = append(pal, glyphColorInfo(ch, len(pal)))
		if _, isTriangle := triangleCorners[ch]; isTriangle {
			trianogram = true
		}
	}

	values := make([]puzzle.Color, 0, width*len(rows))
	for _, row := range rows {
		for _, ch := range row {
			values = append(values, colorOf[ch])
		}
	}
	return &puzzle.Summary{
		Width:      width,
		Height:     len(rows),
		Palette:    pal,
		Values:     values,
		Trianogram: trianogram,
	}, nil
}

// guessBackground picks the conventional blank glyph if one is
// present.
func guessBackground(glyphs []rune) (rune, bool) {
	present := map[rune]bool{}
	for _, ch := range glyphs {
		present[ch] = true
	}
	for _, cand := range backgroundCandidates {
		if present[cand] {
			return cand, true
		}
	}
	return 0, false
}

// glyphColorInfo builds a palette entry for a glyph.
func glyphColorInfo(ch rune, slot int) puzzle.ColorInfo {
	info := puzzle.ColorInfo{Ch: string(ch), Name: fmt.Sprintf("color-%d", slot)}
	if corner, ok := triangleCorners[ch]; ok {
		c := corner
		info.Corner = &c
		info.RGB = [3]byte{0, 0, 0}
		info.Name = "triangle"
		return info
	}
	if rgb, ok := namedGlyphColors[ch]; ok {
		info.RGB = rgb
		return info
	}
	if slot == 0 {
		info.RGB = [3]byte{255, 255, 255}
		return info
	}
	// a gray ramp keeps unrecognized glyphs distinguishable
	level := byte(32 * (slot % 8))
	info.RGB = [3]byte{level, level, level}
	return info
}

// ExportCharGrid renders a solved-grid Summary as a character
// grid, one glyph per cell.
func ExportCharGrid(s *puzzle.Summary) (string, error) {
	if len(s.Values) != s.Width*s.Height {
		return "", fmt.Errorf("char grid export needs a solved grid")
	}
	var sb strings.Builder
	for r := 0; r < s.Height; r++ {
		for c := 0; c < s.Width; c++ {
			color := s.Values[r*s.Width+c]
			if int(color) >= len(s.Palette) {
				return "", fmt.Errorf("cell (%d,%d) color %d is outside the palette", r, c, color)
			}
			ch := s.Palette[color].Ch
			if ch == "" {
				ch = "?"
			}
			sb.WriteString(ch)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
