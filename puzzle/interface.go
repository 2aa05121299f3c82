// Package puzzle provides a model for multi-color nonogram
// puzzles and a line-logic solver and disambiguator over them.
// It supports both a golang interface and a web interface to the
// puzzles.
//
// In this package, a puzzle is a rectangular grid of cells plus,
// for each row and column, a list of clues.  A clue is a colored
// run length: it promises one contiguous run of that many cells
// of that color somewhere in the line.  Two consecutive clues of
// the same color must be separated by at least one cell of some
// other color; consecutive clues of different colors may touch.
//
// While solving, the implementation maintains for every cell the
// set of colors the cell might still be.  The solver only ever
// removes colors from these sets: a cell whose set has a single
// member is solved, and a cell whose set goes empty is a
// contradiction that makes the puzzle unsolvable under line
// logic.  The two line techniques are skimming (placing the
// clues as far left and as far right as they will go and forcing
// the overlap) and scrubbing (testing every legal placement of
// the full clue list and dropping cell colors no placement
// realizes).
//
// The package also supports the trianogram variant, where a
// palette color may be a diagonal half-cell (a "cap").  A cap at
// the boundary of a run counts toward the run on its foreground
// side and toward the neighboring gap on its background side, so
// capped runs of the same color may touch.
package puzzle

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// A Color is an index into a puzzle's palette.  Color 0 is
// always the background.
type Color int

// Background is the conventional blank color.
const Background Color = 0

// maxPaletteSize is the largest palette we can represent; the
// possibility set for a cell has to fit in one machine word.
const maxPaletteSize = 64

// A Corner gives the orientation of a trianogram half-cell: the
// quadrant of the cell that is filled with the foreground color.
// The four diagonal orientations are the only legal ones.
type Corner struct {
	Upper bool `json:"upper"`
	Left  bool `json:"left"`
}

// A ColorInfo describes one palette entry.  The glyph and RGB
// values are carried for the format and display collaborators;
// the solver itself only consumes Corner.
type ColorInfo struct {
	Ch     string  `json:"ch"`
	Name   string  `json:"name"`
	RGB    [3]byte `json:"rgb"`
	Corner *Corner `json:"corner,omitempty"`
}

// A Palette is the ordered color table of a puzzle, indexed by
// Color.  Entry 0 is the background.  Palettes are immutable
// during a solve.
type Palette []ColorInfo

// IsCap reports whether a palette color is a trianogram
// half-cell.
func (pal Palette) IsCap(c Color) bool {
	return int(c) < len(pal) && pal[c].Corner != nil
}

// A Clue is one colored run in a line: Count contiguous cells
// of Color.  In trianogram puzzles a clue may additionally carry a
// front cap and/or a back cap, each a half-cell palette color
// occupying the first or last of the Count cells.  A zero cap
// color means the end is uncapped.
type Clue struct {
	Color    Color `json:"color"`
	Count    int   `json:"count"`
	FrontCap Color `json:"frontCap,omitempty"`
	BackCap  Color `json:"backCap,omitempty"`
}

// cells returns the clue's cell-by-cell color sequence, caps in
// their boundary positions.
func (cl Clue) cells() []Color {
	cs := make([]Color, 0, cl.Count)
	if cl.FrontCap != 0 {
		cs = append(cs, cl.FrontCap)
	}
	for i := 0; i < cl.bodyLen(); i++ {
		cs = append(cs, cl.Color)
	}
	if cl.BackCap != 0 {
		cs = append(cs, cl.BackCap)
	}
	return cs
}

// bodyLen returns the number of full-color cells in the run.
func (cl Clue) bodyLen() int {
	n := cl.Count
	if cl.FrontCap != 0 {
		n--
	}
	if cl.BackCap != 0 {
		n--
	}
	return n
}

// needSep reports whether a separator cell is mandatory between
// clue a and the clue b that follows it in the same line.  Two
// runs of the same color need a gap unless a cap provides the
// visual boundary; runs of different colors may always touch.
func needSep(a, b Clue) bool {
	return a.Color == b.Color && a.BackCap == 0 && b.FrontCap == 0
}

// A Summary is the JSON-serializable exchange form of a puzzle.
// It carries either a solved grid (Values, row-major) or full
// row and column clue lists; New accepts both shapes.
type Summary struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Palette    Palette  `json:"palette"`
	Rows       [][]Clue `json:"rows,omitempty"`
	Cols       [][]Clue `json:"cols,omitempty"`
	Values     []Color  `json:"values,omitempty"`
	Trianogram bool     `json:"trianogram,omitempty"`
}

// A Puzzle is a validated puzzle: dimensions, palette, and clue
// lists.  Construct one with New; the zero value is not useful.
type Puzzle struct {
	width, height int
	palette       Palette
	rows, cols    [][]Clue
	trianogram    bool
}

// Accessors for the puzzle's fixed properties.
func (p *Puzzle) Width() int       { return p.width }
func (p *Puzzle) Height() int      { return p.height }
func (p *Puzzle) Palette() Palette { return p.palette }
func (p *Puzzle) Trianogram() bool { return p.trianogram }

// RowClues and ColClues return the clue lists.  The returned
// slices share storage with the puzzle; callers must not modify
// them.
func (p *Puzzle) RowClues() [][]Clue { return p.rows }
func (p *Puzzle) ColClues() [][]Clue { return p.cols }

// New validates a Summary and returns the Puzzle it describes.
// If the Summary carries a solved grid, the clue lists are
// derived from it; otherwise the given clue lists are used.
// All the malformed-puzzle conditions (empty palette, background
// clues, clue lists that cannot fit their lines, non-diagonal
// caps) are detected here, before any solver is run.
//
// When an error is returned from this function, it is always an
// Error value.
func New(s *Summary) (*Puzzle, error) {
	if s == nil {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: ScopeStructure,
			Condition: InvalidArgumentCondition,
		}
	}
	if s.Width < 1 {
		return nil, rangeError(WidthAttribute, s.Width, 1, maxLineLength)
	}
	if s.Height < 1 {
		return nil, rangeError(HeightAttribute, s.Height, 1, maxLineLength)
	}
	if s.Width > maxLineLength {
		return nil, rangeError(WidthAttribute, s.Width, 1, maxLineLength)
	}
	if s.Height > maxLineLength {
		return nil, rangeError(HeightAttribute, s.Height, 1, maxLineLength)
	}
	if err := validatePalette(s.Palette); err != nil {
		return nil, err
	}

	p := &Puzzle{
		width:      s.Width,
		height:     s.Height,
		palette:    s.Palette,
		trianogram: s.Trianogram,
	}

	switch {
	case len(s.Values) > 0:
		g, err := NewSolvedGrid(s.Width, s.Height, s.Palette, s.Values)
		if err != nil {
			return nil, err
		}
		rows, cols, err := DeriveClues(g, s.Palette, s.Trianogram)
		if err != nil {
			return nil, err
		}
		p.rows, p.cols = rows, cols
	case len(s.Rows) == s.Height && len(s.Cols) == s.Width:
		p.rows, p.cols = s.Rows, s.Cols
	default:
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: ScopeStructure,
			Condition: MissingCluesCondition,
		}
	}

	for i, clues := range p.rows {
		if err := validateClues(LineID{LtypeRow, i}, clues, p.width, s.Palette, s.Trianogram); err != nil {
			return nil, err
		}
	}
	for i, clues := range p.cols {
		if err := validateClues(LineID{LtypeCol, i}, clues, p.height, s.Palette, s.Trianogram); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Summary returns the puzzle's exchange form (clue-list shape).
// The result does not share clue storage with the puzzle.
func (p *Puzzle) Summary() *Summary {
	s := &Summary{
		Width:      p.width,
		Height:     p.height,
		Palette:    append(Palette(nil), p.palette...),
		Rows:       make([][]Clue, len(p.rows)),
		Cols:       make([][]Clue, len(p.cols)),
		Trianogram: p.trianogram,
	}
	for i, clues := range p.rows {
		s.Rows[i] = append([]Clue(nil), clues...)
	}
	for i, clues := range p.cols {
		s.Cols[i] = append([]Clue(nil), clues...)
	}
	return s
}

// Signature returns a stable content hash of the puzzle,
// suitable for use as a storage key.  Two puzzles with the same
// dimensions, palette, and clues have the same signature.
func (p *Puzzle) Signature() string {
	bytes, err := json.Marshal(p.Summary())
	if err != nil {
		// Summaries are made of plain data; this can't happen.
		panic(fmt.Errorf("failed to marshal summary: %v", err))
	}
	sum := sha256.Sum256(bytes)
	return hex.EncodeToString(sum[:])
}

/*

Validation

*/

// validatePalette checks a palette for use by the solver: it
// must be non-empty, fit in a possibility-set word, have a
// non-corner background, and have only diagonal corners.
func validatePalette(pal Palette) error {
	if len(pal) == 0 {
		return Error{
			Scope:     PaletteScope,
			Structure: ScopeStructure,
			Condition: EmptyPaletteCondition,
		}
	}
	if len(pal) > maxPaletteSize {
		return Error{
			Scope:     PaletteScope,
			Structure: AttributeValueStructure,
			Attribute: PaletteSizeAttribute,
			Condition: TooLargeCondition,
			Values:    ErrorData{len(pal), maxPaletteSize},
		}
	}
	if pal[Background].Corner != nil {
		return Error{
			Scope:     PaletteScope,
			Structure: AttributeValueStructure,
			Attribute: ColorAttribute,
			Condition: NonDiagonalCapCondition,
			Values:    ErrorData{Background},
		}
	}
	return nil
}

// validateClues checks one line's clue list: colors in palette
// and not background, positive counts, caps only on half-cell
// colors, and total length (with mandatory separators) within
// the line.
func validateClues(lid LineID, clues []Clue, length int, pal Palette, trianogram bool) error {
	need := 0
	for i, cl := range clues {
		if int(cl.Color) < 0 || int(cl.Color) >= len(pal) {
			return clueError(lid, NotInPaletteCondition, cl.Color)
		}
		if cl.Color == Background {
			return clueError(lid, BackgroundClueCondition)
		}
		if pal.IsCap(cl.Color) {
			// a half-cell color can cap a run, not be one
			return clueError(lid, NonDiagonalCapCondition, cl.Color)
		}
		if cl.Count < 1 {
			return clueError(lid, TooSmallCondition, cl.Count, 1)
		}
		for _, cc := range []Color{cl.FrontCap, cl.BackCap} {
			if cc == 0 {
				continue
			}
			if !trianogram {
				return clueError(lid, NonDiagonalCapCondition, cc)
			}
			if int(cc) < 0 || int(cc) >= len(pal) {
				return clueError(lid, NotInPaletteCondition, cc)
			}
			if !pal.IsCap(cc) {
				return clueError(lid, NonDiagonalCapCondition, cc)
			}
		}
		if cl.bodyLen() < 0 {
			// caps don't fit inside the clue's own cells
			return clueError(lid, TooSmallCondition, cl.Count, cl.Count-cl.bodyLen())
		}
		if i > 0 && needSep(clues[i-1], cl) {
			need++
		}
		need += cl.Count
	}
	if need > length {
		return clueError(lid, ClueOverflowCondition, need, length)
	}
	return nil
}

/*

Solver surface

*/

// A Status reports the outcome of a solve.
type Status int

// Constants for the solver outcomes.  Ambiguous and Solved are
// the normal quiescent outcomes; Contradiction means line logic
// proved the constraints unsatisfiable; Cancelled means the host
// interrupted the solve; ResourceExhausted means a bounded cache
// kept the solve from completing (treated as Ambiguous by all
// the callers in this module).
const (
	Ambiguous Status = iota
	Solved
	Contradiction
	Cancelled
	ResourceExhausted
)

// Statuses implement Stringer
func (s Status) String() string {
	switch s {
	case Ambiguous:
		return "ambiguous"
	case Solved:
		return "solved"
	case Contradiction:
		return "contradiction"
	case Cancelled:
		return "cancelled"
	case ResourceExhausted:
		return "resource-exhausted"
	}
	return fmt.Sprintf("<status %d>", int(s))
}

// Counters are the solver's work tally, and the module's only
// difficulty signal.  Runs on the same puzzle always produce the
// same counters.
type Counters struct {
	Skims  int `json:"skims"`
	Scrubs int `json:"scrubs"`
}

// A Reporter observes solver progress.  Implementations must
// tolerate being called frequently; a nil Reporter is permitted
// everywhere one is accepted.
type Reporter interface {
	Report(phase string, done, total int)
}

// SolveOptions tune a solve.  The zero value (or a nil pointer)
// asks for a plain solve with an unbounded line-result cache and
// no interruption.
type SolveOptions struct {
	// Reporter, if non-nil, is told about each line operation.
	Reporter Reporter
	// Interrupt, if non-nil, is polled between line operations;
	// returning true cancels the solve.
	Interrupt func() bool
	// CacheEntries bounds the line-result cache; zero means
	// unbounded.
	CacheEntries int

	// cache, when non-nil, is a shared cache to consult and
	// fill.  The disambiguator uses this to replay solves.
	cache *lineCache
}

// A Result is everything a solve produces: the final working
// grid (partial if the solve was cancelled or contradicted), the
// outcome status, the work counters, and the contradictions
// found (if any).
type Result struct {
	Grid     *Grid     `json:"-"`
	Status   Status    `json:"status"`
	Counters Counters  `json:"counters"`
	Errors   []Error   `json:"errors,omitempty"`
	Unsolved []CellRef `json:"unsolved,omitempty"`
}

// A CellRef names one cell of a grid.
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
