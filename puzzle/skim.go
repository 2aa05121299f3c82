package puzzle

/*

The skim engine

Skimming is the cheap line technique: pack the clue list as far
left as the fixed cells allow, pack it as far right, and compare.
Cells inside both extremes of a clue's range are forced to that
clue's color; cells outside every clue's range are forced to the
background.  Skimming is linear-ish in the line length and runs
on every dirty line before any scrubbing is considered.

*/

// learn narrows a cell to a single color.  It reports false when
// the cell cannot be that color, which is a contradiction for
// the whole line.
func learn(cells []colorSet, i int, c Color) bool {
	ns := cells[i] & singleSet(c)
	if ns == 0 {
		return false
	}
	cells[i] = ns
	return true
}

// reverseClues returns the clue list as seen when walking the
// line from the other end: reversed order, front and back caps
// swapped.
func reverseClues(clues []Clue) []Clue {
	out := make([]Clue, len(clues))
	for i, cl := range clues {
		out[len(clues)-1-i] = Clue{
			Color:    cl.Color,
			Count:    cl.Count,
			FrontCap: cl.BackCap,
			BackCap:  cl.FrontCap,
		}
	}
	return out
}

// reverseCells returns a reversed copy of a possibility vector.
func reverseCells(cells []colorSet) []colorSet {
	out := make([]colorSet, len(cells))
	for i, cs := range cells {
		out[len(cells)-1-i] = cs
	}
	return out
}

// packLeft places every clue as far left as the current
// possibility vector allows, returning each clue's starting
// position.  Returns false when the clues cannot be placed at
// all, which is a contradiction.
//
// After the greedy pass, a fixup pass walks the line from the
// right: any cell that is known to be foreground but lies beyond
// the packed extents pulls the nearest clue rightward to cover
// it.  This doesn't check that the colors match, so it is a
// conservative approximation, but it lets the overlap step see
// forced cells the greedy pass alone would miss.
func packLeft(clues []Clue, cells []colorSet) ([]int, bool) {
	starts := make([]int, len(clues))
	pos := 0
	for i, cl := range clues {
		if i > 0 && needSep(clues[i-1], cl) {
			pos++
		}
		run := cl.cells()
		for {
			if pos+len(run) > len(cells) {
				return nil, false
			}
			placeable := true
			// Scanning backwards for mismatches lets us jump
			// farther sometimes.  The jump past the mismatched
			// cell is only sound for a single-colored run; a
			// capped run may still fit that cell at a later
			// offset, so it moves one cell at a time.
			for j := len(run) - 1; j >= 0; j-- {
				if !cells[pos+j].canBe(run[j]) {
					if cl.FrontCap == 0 && cl.BackCap == 0 {
						pos = pos + j + 1
					} else {
						pos++
					}
					placeable = false
					break
				}
			}
			if placeable {
				break
			}
		}
		starts[i] = pos
		pos += len(run)
	}

	// The fixup pass: are there orphaned foreground cells off to
	// the right?
	ends := make([]int, len(clues))
	for i, cl := range clues {
		ends[i] = starts[i] + cl.Count - 1
	}
	ci := len(clues) - 1
	i := len(cells) - 1
	for {
		if !cells[i].canBe(Background) {
			if ends[ci] < i {
				ends[ci] = i
				starts[ci] = i - clues[ci].Count + 1
				if starts[ci] < 0 {
					return nil, false
				}
			}
			// skip past the rest of the clue's postulated cells
			// and keep looking
			i = starts[ci]
			if ci == 0 {
				break
			}
			ci--
		}
		if i == 0 {
			break
		}
		i--
	}
	return starts, true
}

// skimLine refines a possibility vector in place using the
// left-pack/right-pack overlap technique.  Returns false on a
// contradiction; the vector contents are unspecified in that
// case.
func skimLine(clues []Clue, cells []colorSet) bool {
	if len(cells) == 0 {
		return len(clues) == 0
	}
	if len(clues) == 0 {
		// Special case, so the packs can safely take the first
		// and last clue.
		for i := range cells {
			if !learn(cells, i, Background) {
				return false
			}
		}
		return true
	}

	lstarts, ok := packLeft(clues, cells)
	if !ok {
		return false
	}
	rstartsRev, ok := packLeft(reverseClues(clues), reverseCells(cells))
	if !ok {
		return false
	}

	n, length := len(clues), len(cells)
	// convert the reversed starts into each clue's rightmost
	// placement in line coordinates
	rstarts := make([]int, n)
	for i := 0; i < n; i++ {
		revEnd := rstartsRev[n-1-i] + clues[i].Count - 1
		rstarts[i] = length - 1 - revEnd
	}

	covered := make([]bool, length)
	for i, cl := range clues {
		// every placement of clue i lies inside its span
		for x := lstarts[i]; x <= rstarts[i]+cl.Count-1; x++ {
			covered[x] = true
		}

		lo := rstarts[i]              // start of the rightmost placement
		hi := lstarts[i] + cl.Count - 1 // end of the leftmost placement
		if hi < lo {
			continue // no overlap for this clue
		}
		if hi-lo+1 == cl.Count {
			// The two extremes coincide: the placement is unique,
			// so every cell's role is known, caps included.
			for j, c := range cl.cells() {
				if !learn(cells, lo+j, c) {
					return false
				}
			}
			if i > 0 && needSep(clues[i-1], cl) && lo > 0 {
				if !learn(cells, lo-1, Background) {
					return false
				}
			}
			if i < n-1 && needSep(cl, clues[i+1]) && hi+1 < length {
				if !learn(cells, hi+1, Background) {
					return false
				}
			}
			continue
		}
		// Partial overlap: only cells that are body cells in
		// every placement can be forced.
		fc, bc := 0, 0
		if cl.FrontCap != 0 {
			fc = 1
		}
		if cl.BackCap != 0 {
			bc = 1
		}
		for x := lo + fc; x <= hi-bc; x++ {
			if !learn(cells, x, cl.Color) {
				return false
			}
		}
	}

	// cells no clue can reach are background
	for x := 0; x < length; x++ {
		if !covered[x] {
			if !learn(cells, x, Background) {
				return false
			}
		}
	}
	return true
}
