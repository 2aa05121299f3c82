package puzzle

import (
	"sort"
)

/*

The disambiguator

A designer usually starts from a picture, not a clue list, and
the derived puzzle is often ambiguous: line logic stalls with
some cells unresolved.  The disambiguator looks for the smallest
fix — recolor one cell of the picture — that makes the derived
puzzle resolve further (ideally completely).

This is a brute-force outer loop around the solver: every
(ambiguous cell, alternative color) pair gets its own perturbed
puzzle and its own solve.  Only the one row and the one column
through the edited cell change clues, so almost all of the line
work repeats — the shared line-result cache is what makes the
loop affordable.

*/

// defaultDisambiguatorCacheEntries bounds the shared cache when
// the caller doesn't say otherwise.
const defaultDisambiguatorCacheEntries = 1 << 16

// An Edit is one candidate recoloring: change the cell at (Row,
// Col) to Color, resolving Resolved previously-ambiguous cells.
type Edit struct {
	Row      int   `json:"row"`
	Col      int   `json:"col"`
	Color    Color `json:"color"`
	Resolved int   `json:"resolved"`
}

// An OverlayCell tints one ambiguous cell in an editor overlay:
// the best edit that recolors this cell uses Color and resolves
// Strength cells.
type OverlayCell struct {
	Row      int   `json:"row"`
	Col      int   `json:"col"`
	Color    Color `json:"color"`
	Strength int   `json:"strength"`
}

// DisambiguateOptions tune a disambiguator run.
type DisambiguateOptions struct {
	// Reporter, if non-nil, is told about each candidate trial.
	Reporter Reporter
	// Interrupt, if non-nil, is polled between candidate trials.
	Interrupt func() bool
	// CacheEntries bounds the shared line-result cache; zero
	// picks the default bound.
	CacheEntries int
	// MaxEdits caps the ranked edit list; zero keeps every
	// candidate that resolved at least one cell.
	MaxEdits int
}

// A DisambiguateReport ranks the candidate edits of one run.
type DisambiguateReport struct {
	// Status is Solved when the base puzzle needed no edit,
	// Cancelled when the host interrupted the run, and Ambiguous
	// otherwise.
	Status Status `json:"status"`
	// Unsolved is the ambiguity region of the unedited puzzle.
	Unsolved []CellRef `json:"unsolved,omitempty"`
	// Edits is the candidate list, best first.  Ties are broken
	// by (row, col, color) so runs are reproducible.
	Edits []Edit `json:"edits,omitempty"`
	// Overlay tints each ambiguous cell with its own best edit.
	Overlay []OverlayCell `json:"overlay,omitempty"`
	// Counters total the line work across every solve.
	Counters Counters `json:"counters"`
	// CacheHitRate is the fraction of line operations served
	// from the shared cache.
	CacheHitRate float64 `json:"cacheHitRate"`
}

// Disambiguate searches for single-cell recolorings of a solved
// ground-truth grid that make its derived puzzle less ambiguous.
// It gives an Error if the grid has unsolved cells or the
// palette is unusable.
func Disambiguate(g *Grid, pal Palette, trianogram bool, opts *DisambiguateOptions) (*DisambiguateReport, error) {
	if opts == nil {
		opts = &DisambiguateOptions{}
	}
	if err := validatePalette(pal); err != nil {
		return nil, err
	}
	values, err := g.Values()
	if err != nil {
		return nil, err
	}
	rows, cols, err := DeriveClues(g, pal, trianogram)
	if err != nil {
		return nil, err
	}
	base := &Puzzle{
		width:      g.width,
		height:     g.height,
		palette:    pal,
		rows:       rows,
		cols:       cols,
		trianogram: trianogram,
	}

	cacheEntries := opts.CacheEntries
	if cacheEntries == 0 {
		cacheEntries = defaultDisambiguatorCacheEntries
	}
	cache := newLineCache(cacheEntries)

	baseRes := base.Solve(&SolveOptions{cache: cache, Interrupt: opts.Interrupt})
	report := &DisambiguateReport{
		Status:   Ambiguous,
		Unsolved: baseRes.Unsolved,
		Counters: baseRes.Counters,
	}
	if baseRes.Status == Cancelled {
		report.Status = Cancelled
		report.CacheHitRate = cache.hitRate()
		return report, nil
	}
	if len(baseRes.Unsolved) == 0 {
		report.Status = Solved
		report.CacheHitRate = cache.hitRate()
		return report, nil
	}

	// best edit seen per ambiguous cell, for the overlay
	best := make(map[CellRef]Edit)

	trial := 0
	total := len(baseRes.Unsolved) * (len(pal) - 1)
	for _, cell := range baseRes.Unsolved {
		was := values[cell.Row*g.width+cell.Col]
		for c := 0; c < len(pal); c++ {
			k := Color(c)
			if k == was {
				continue
			}
			trial++
			if opts.Reporter != nil {
				opts.Reporter.Report(PhaseDisambiguate, trial, total)
			}
			if opts.Interrupt != nil && opts.Interrupt() {
				report.Status = Cancelled
				report.finish(cache, opts.MaxEdits, best)
				return report, nil
			}

			perturbed := base.recolored(g, cell, k, pal)
			res := perturbed.Solve(&SolveOptions{cache: cache})
			report.Counters.Skims += res.Counters.Skims
			report.Counters.Scrubs += res.Counters.Scrubs
			if res.Status == Contradiction {
				// can't happen: the edited grid satisfies its own
				// derived clues, and the solver never contradicts
				// ground truth
				continue
			}

			edit := Edit{
				Row:      cell.Row,
				Col:      cell.Col,
				Color:    k,
				Resolved: len(baseRes.Unsolved) - len(res.Unsolved),
			}
			if edit.Resolved > 0 {
				report.Edits = append(report.Edits, edit)
				if b, ok := best[cell]; !ok || edit.Resolved > b.Resolved {
					best[cell] = edit
				}
			}
		}
	}

	report.finish(cache, opts.MaxEdits, best)
	return report, nil
}

// recolored builds the puzzle for a single-cell edit.  Only the
// edited cell's row and column get fresh clue lists; every other
// line shares the base puzzle's clues, so its solver work stays
// cache-hittable.
func (p *Puzzle) recolored(g *Grid, cell CellRef, k Color, pal Palette) *Puzzle {
	ng := g.Recolor(cell.Row, cell.Col, k)
	values, _ := ng.Values() // the edit of a solved grid stays solved

	rows := append([][]Clue(nil), p.rows...)
	cols := append([][]Clue(nil), p.cols...)
	rows[cell.Row] = deriveLineClues(
		values[cell.Row*g.width:(cell.Row+1)*g.width], pal, p.trianogram, true)
	colVals := make([]Color, g.height)
	for r := 0; r < g.height; r++ {
		colVals[r] = values[r*g.width+cell.Col]
	}
	cols[cell.Col] = deriveLineClues(colVals, pal, p.trianogram, false)

	return &Puzzle{
		width:      p.width,
		height:     p.height,
		palette:    p.palette,
		rows:       rows,
		cols:       cols,
		trianogram: p.trianogram,
	}
}

// finish ranks the edits, trims the list, and builds the
// overlay.
func (r *DisambiguateReport) finish(cache *lineCache, maxEdits int, best map[CellRef]Edit) {
	sort.Slice(r.Edits, func(i, j int) bool {
		a, b := r.Edits[i], r.Edits[j]
		if a.Resolved != b.Resolved {
			return a.Resolved > b.Resolved
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.Color < b.Color
	})
	if maxEdits > 0 && len(r.Edits) > maxEdits {
		r.Edits = r.Edits[:maxEdits]
	}
	for _, cell := range r.Unsolved {
		if e, ok := best[cell]; ok {
			r.Overlay = append(r.Overlay, OverlayCell{
				Row:      e.Row,
				Col:      e.Col,
				Color:    e.Color,
				Strength: e.Resolved,
			})
		}
	}
	r.CacheHitRate = cache.hitRate()
}
