package puzzle

/*

Clue derivation

Deriving clues is the inverse of solving: walk each line of a
solved grid, coalescing runs of equal non-background color into
clues.  In trianogram mode a half-cell whose foreground faces
down the line opens a capped run and one whose foreground faces
back up the line closes one.

*/

// DeriveClues computes the row and column clue lists of a fully
// solved grid.  It gives an Error if any cell is unsolved.
func DeriveClues(g *Grid, pal Palette, trianogram bool) (rows, cols [][]Clue, err error) {
	values, err := g.Values()
	if err != nil {
		return nil, nil, err
	}
	rows = make([][]Clue, g.height)
	for r := 0; r < g.height; r++ {
		rows[r] = deriveLineClues(values[r*g.width:(r+1)*g.width], pal, trianogram, true)
	}
	cols = make([][]Clue, g.width)
	colVals := make([]Color, g.height)
	for c := 0; c < g.width; c++ {
		for r := 0; r < g.height; r++ {
			colVals[r] = values[r*g.width+c]
		}
		cols[c] = deriveLineClues(colVals, pal, trianogram, false)
	}
	return rows, cols, nil
}

// deriveLineClues computes the clue list for one line of solved
// colors.  isRow selects which corner orientations open and
// close capped runs.
func deriveLineClues(vals []Color, pal Palette, trianogram, isRow bool) []Clue {
	if !trianogram {
		var clues []Clue
		prev := Background
		run := 0
		for i := 0; i <= len(vals); i++ {
			c := Background
			if i < len(vals) {
				c = vals[i]
			}
			if i > 0 && c == prev {
				run++
				continue
			}
			if i > 0 && prev != Background {
				clues = append(clues, Clue{Color: prev, Count: run})
			}
			prev, run = c, 1
		}
		return clues
	}

	var clues []Clue
	var cur Clue
	started := false
	flush := func() {
		if started {
			if cur.Color == Background {
				// a cap-only run still needs a nominal body color
				cur.Color = firstForeground(pal)
			}
			clues = append(clues, cur)
			cur, started = Clue{}, false
		}
	}
	for _, c := range vals {
		corner := pal[c].Corner
		switch {
		case corner != nil && opensRun(*corner, isRow):
			// only a fresh clue can accept a front cap
			flush()
			cur.FrontCap = c
			cur.Count = 1
			started = true
		case corner != nil:
			cur.BackCap = c
			cur.Count++
			started = true
			flush()
		case c == Background:
			flush()
		default:
			// only a body color change forces a new clue here,
			// since the back cap is always still unset
			if started && cur.Color != Background && cur.Color != c {
				flush()
			}
			cur.Color = c
			cur.Count++
			started = true
		}
	}
	flush()
	return clues
}

// opensRun reports whether a half-cell orientation begins a
// capped run when scanning in line direction.  A row scan moves
// rightward, so foreground-on-the-right corners open runs; a
// column scan moves downward, so foreground-on-the-bottom
// corners do.
func opensRun(corner Corner, isRow bool) bool {
	if isRow {
		return !corner.Left
	}
	return !corner.Upper
}

// firstForeground returns the lowest palette color that is
// neither the background nor a half-cell.
func firstForeground(pal Palette) Color {
	for c := 1; c < len(pal); c++ {
		if pal[Color(c)].Corner == nil {
			return Color(c)
		}
	}
	return Background
}
