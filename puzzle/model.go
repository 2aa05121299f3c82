package puzzle

/*

Nonogram grid representation

*/

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// maxLineLength bounds the puzzle dimensions.  It is generous;
// published puzzles top out two orders of magnitude below it.
const maxLineLength = 1024

/*

Color sets

*/

// A colorSet is the set of colors a cell might still be,
// represented as a bitset over the palette.  Palettes are small,
// so a set fits in one machine word; this keeps cache keys
// compact and set operations cheap.
//
// The empty set is a contradiction.  The solver never adds a
// color to a set, only removes them.
type colorSet uint64

// fullSet returns the set containing every color of an n-color
// palette.
func fullSet(n int) colorSet {
	if n >= 64 {
		return ^colorSet(0)
	}
	return colorSet(1)<<uint(n) - 1
}

// singleSet returns the set containing only c.
func singleSet(c Color) colorSet {
	return colorSet(1) << uint(c)
}

// canBe reports whether c is in the set.
func (cs colorSet) canBe(c Color) bool {
	return cs&singleSet(c) != 0
}

// single returns the set's only member, if it has exactly one.
func (cs colorSet) single() (Color, bool) {
	if cs != 0 && cs&(cs-1) == 0 {
		return Color(bits.TrailingZeros64(uint64(cs))), true
	}
	return 0, false
}

// count returns the set's cardinality.
func (cs colorSet) count() int {
	return bits.OnesCount64(uint64(cs))
}

// colors returns the set's members in ascending order.
func (cs colorSet) colors() []Color {
	out := make([]Color, 0, cs.count())
	for rest := cs; rest != 0; rest &= rest - 1 {
		out = append(out, Color(bits.TrailingZeros64(uint64(rest))))
	}
	return out
}

/*

Grids

*/

// A Grid is a rectangular array of cells, each holding a
// possibility set.  The solver's working grid starts with every
// cell allowing every color; a ground-truth grid has every cell
// solved.  Cells are stored row-major.
type Grid struct {
	width, height int
	cells         []colorSet
}

// NewWorkingGrid returns a grid in which every cell might be any
// color of the palette.
func NewWorkingGrid(width, height int, pal Palette) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]colorSet, width*height),
	}
	full := fullSet(len(pal))
	for i := range g.cells {
		g.cells[i] = full
	}
	return g
}

// NewSolvedGrid returns a grid whose cells are the given colors,
// row-major.  It gives an Error if the value count doesn't match
// the dimensions or a value is outside the palette.
func NewSolvedGrid(width, height int, pal Palette, values []Color) (*Grid, error) {
	if len(values) != width*height {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeStructure,
			Attribute: ValueAttribute,
			Condition: WrongValueCountCondition,
			Values:    ErrorData{width * height, len(values)},
		}
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]colorSet, width*height),
	}
	for i, v := range values {
		if int(v) < 0 || int(v) >= len(pal) {
			return nil, Error{
				Scope:     CellScope,
				Structure: AttributeValueStructure,
				Attribute: ColorAttribute,
				Condition: NotInPaletteCondition,
				Values:    ErrorData{CellRef{i / width, i % width}, v},
			}
		}
		g.cells[i] = singleSet(v)
	}
	return g, nil
}

// Accessors for the grid's dimensions.
func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Possible returns the colors still possible for a cell, in
// ascending order.  The result does not share storage with the
// grid.
func (g *Grid) Possible(row, col int) []Color {
	return g.at(row, col).colors()
}

// Solved returns a cell's color if the cell is solved (exactly
// one possible color remains).
func (g *Grid) Solved(row, col int) (Color, bool) {
	return g.at(row, col).single()
}

// Unsolved returns the cells with more than one possible color,
// in reading order.
func (g *Grid) Unsolved() []CellRef {
	var out []CellRef
	for i, cs := range g.cells {
		if _, ok := cs.single(); !ok {
			out = append(out, CellRef{i / g.width, i % g.width})
		}
	}
	return out
}

// Values returns the colors of a fully solved grid, row-major.
// It gives an Error naming the first unsolved cell otherwise.
func (g *Grid) Values() ([]Color, error) {
	out := make([]Color, len(g.cells))
	for i, cs := range g.cells {
		c, ok := cs.single()
		if !ok {
			return nil, Error{
				Scope:     ArgumentScope,
				Structure: AttributeStructure,
				Attribute: GridAttribute,
				Condition: UnsolvedGridCondition,
				Values:    ErrorData{CellRef{i / g.width, i % g.width}},
			}
		}
		out[i] = c
	}
	return out, nil
}

// Recolor returns a copy of a solved grid with one cell changed
// to the given color.  It is the disambiguator's edit operation.
func (g *Grid) Recolor(row, col int, c Color) *Grid {
	ng := g.copy()
	ng.cells[row*g.width+col] = singleSet(c)
	return ng
}

// at returns the possibility set of a cell.
func (g *Grid) at(row, col int) colorSet {
	return g.cells[row*g.width+col]
}

// copy returns a deep copy of a grid.
func (g *Grid) copy() *Grid {
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  append([]colorSet(nil), g.cells...),
	}
}

/*

Line views

*/

// A line presents one row or column of a grid as an indexed
// sequence of possibility sets.  The skim and scrub engines see
// only the extracted []colorSet, so rows and columns share both
// code paths and cache entries.
type line struct {
	grid *Grid
	id   LineID
}

// lineID constructors.
func rowLine(g *Grid, index int) line { return line{g, LineID{LtypeRow, index}} }
func colLine(g *Grid, index int) line { return line{g, LineID{LtypeCol, index}} }

// length returns the number of cells in the line.
func (ln line) length() int {
	if ln.id.Ltype == LtypeRow {
		return ln.grid.width
	}
	return ln.grid.height
}

// extract copies the line's possibility sets into dst, growing
// it if needed, and returns it.
func (ln line) extract(dst []colorSet) []colorSet {
	n := ln.length()
	if cap(dst) < n {
		dst = make([]colorSet, n)
	}
	dst = dst[:n]
	if ln.id.Ltype == LtypeRow {
		copy(dst, ln.grid.cells[ln.id.Index*ln.grid.width:(ln.id.Index+1)*ln.grid.width])
		return dst
	}
	for i := 0; i < n; i++ {
		dst[i] = ln.grid.cells[i*ln.grid.width+ln.id.Index]
	}
	return dst
}

// flush writes a refined possibility vector back into the grid,
// returning the positions whose sets narrowed.  Widening a set
// would violate the solver's monotonicity, so it panics.
func (ln line) flush(src []colorSet) []int {
	var changed []int
	for i, ns := range src {
		var cell *colorSet
		if ln.id.Ltype == LtypeRow {
			cell = &ln.grid.cells[ln.id.Index*ln.grid.width+i]
		} else {
			cell = &ln.grid.cells[i*ln.grid.width+ln.id.Index]
		}
		if ns == *cell {
			continue
		}
		if ns&^*cell != 0 {
			panic(fmt.Errorf("line %v flush would widen cell %d from %b to %b",
				ln.id, i, *cell, ns))
		}
		*cell = ns
		changed = append(changed, i)
	}
	return changed
}

/*

Cache key packing

*/

// packVector appends a compact encoding of a possibility vector
// to key.  One varint per cell; palettes are small, so nearly
// every cell fits in a byte.
func packVector(key []byte, cells []colorSet) []byte {
	key = binary.AppendUvarint(key, uint64(len(cells)))
	for _, cs := range cells {
		key = binary.AppendUvarint(key, uint64(cs))
	}
	return key
}

// packClues appends a canonical encoding of a clue list to key.
// The encoding has no orientation in it: a row and a column with
// the same clues and possibility vector share cache entries.
func packClues(key []byte, clues []Clue) []byte {
	key = binary.AppendUvarint(key, uint64(len(clues)))
	for _, cl := range clues {
		key = binary.AppendUvarint(key, uint64(cl.Color))
		key = binary.AppendUvarint(key, uint64(cl.Count))
		key = binary.AppendUvarint(key, uint64(cl.FrontCap))
		key = binary.AppendUvarint(key, uint64(cl.BackCap))
	}
	return key
}
