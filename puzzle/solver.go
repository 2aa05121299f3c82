package puzzle

/*

The grid solver driver

The driver owns a working grid (every cell initially allowing
every color) and a FIFO worklist of lines.  It skims dirty lines
until skimming yields nothing new, then scrubs every line that
is still unfinished; any scrub progress dirties the crossing
lines and sends the driver back to skimming.  The solve ends at
quiescence (a scrub pass with no changes), at a contradiction,
or when the host's interrupt hook asks for cancellation.

Rows are processed before columns when both are queued only so
that the counters come out the same on every run; correctness
doesn't depend on line order.

*/

// phase names passed to the progress Reporter.
const (
	PhaseSkim         = "skim"
	PhaseScrub        = "scrub"
	PhaseDisambiguate = "disambiguate"
)

// a solveState is the driver's working state for one solve.
type solveState struct {
	p     *Puzzle
	g     *Grid
	cache *lineCache
	opts  *SolveOptions
	res   *Result

	queue   []LineID        // FIFO worklist of dirty lines
	queued  map[LineID]bool // membership for the worklist
	scratch []colorSet
}

// Solve runs line logic to quiescence and returns the final
// working grid, the outcome status, and the work counters.  The
// returned grid is partial when the status is Contradiction or
// Cancelled.
func (p *Puzzle) Solve(opts *SolveOptions) *Result {
	if opts == nil {
		opts = &SolveOptions{}
	}
	cache := opts.cache
	if cache == nil {
		cache = newLineCache(opts.CacheEntries)
	}
	s := &solveState{
		p:      p,
		g:      NewWorkingGrid(p.width, p.height, p.palette),
		cache:  cache,
		opts:   opts,
		res:    &Result{},
		queued: make(map[LineID]bool),
	}
	s.res.Grid = s.g
	s.run()
	s.res.Unsolved = s.g.Unsolved()
	if s.res.Status == Ambiguous && len(s.res.Unsolved) == 0 {
		s.res.Status = Solved
	}
	return s.res
}

// run is the driver loop described above.
func (s *solveState) run() {
	s.enqueueAll()
	for {
		if !s.skimPhase() {
			return // contradiction or cancellation
		}
		changed, ok := s.scrubPhase()
		if !ok {
			return
		}
		if !changed {
			return // quiescence
		}
	}
}

// enqueueAll seeds the worklist with every line, rows first.
func (s *solveState) enqueueAll() {
	for r := 0; r < s.p.height; r++ {
		s.enqueue(LineID{LtypeRow, r})
	}
	for c := 0; c < s.p.width; c++ {
		s.enqueue(LineID{LtypeCol, c})
	}
}

// enqueue adds a line to the worklist unless it is already
// there.
func (s *solveState) enqueue(lid LineID) {
	if s.queued[lid] {
		return
	}
	s.queued[lid] = true
	s.queue = append(s.queue, lid)
}

// pop removes and returns the oldest queued line.
func (s *solveState) pop() LineID {
	lid := s.queue[0]
	s.queue = s.queue[1:]
	delete(s.queued, lid)
	return lid
}

// cancelled polls the host's interrupt hook.  A cancelled solve
// keeps the grid as-is; the line being considered is treated as
// unchanged.
func (s *solveState) cancelled() bool {
	if s.opts.Interrupt != nil && s.opts.Interrupt() {
		s.res.Status = Cancelled
		return true
	}
	return false
}

// skimPhase drains the worklist with the skim engine.  Returns
// false when the solve is over (contradiction or cancellation).
func (s *solveState) skimPhase() bool {
	for len(s.queue) > 0 {
		if s.cancelled() {
			return false
		}
		lid := s.pop()
		s.res.Counters.Skims++
		s.report(PhaseSkim, s.res.Counters.Skims, 0)
		if _, ok := s.runLine(engineSkim, lid); !ok {
			return false
		}
	}
	return true
}

// scrubPhase runs the scrub engine over every line that
// skimming left unfinished, rows first.  Returns whether any
// cell changed, and false in ok for contradiction or
// cancellation.
func (s *solveState) scrubPhase() (changed bool, ok bool) {
	total := s.p.height + s.p.width
	done := 0
	for r := 0; r < s.p.height; r++ {
		ch, ok := s.scrubOne(LineID{LtypeRow, r}, &done, total)
		if !ok {
			return false, false
		}
		changed = changed || ch
	}
	for c := 0; c < s.p.width; c++ {
		ch, ok := s.scrubOne(LineID{LtypeCol, c}, &done, total)
		if !ok {
			return false, false
		}
		changed = changed || ch
	}
	return changed, true
}

// scrubOne scrubs a single line if it still has unsolved cells.
func (s *solveState) scrubOne(lid LineID, done *int, total int) (changed bool, ok bool) {
	if s.cancelled() {
		return false, false
	}
	*done++
	if s.lineSolved(lid) {
		return false, true
	}
	s.res.Counters.Scrubs++
	s.report(PhaseScrub, *done, total)
	nchanged, ok := s.runLine(engineScrub, lid)
	if !ok {
		return false, false
	}
	return nchanged > 0, true
}

// lineSolved reports whether every cell of a line is down to a
// single color.
func (s *solveState) lineSolved(lid LineID) bool {
	ln := s.line(lid)
	s.scratch = ln.extract(s.scratch)
	for _, cs := range s.scratch {
		if _, one := cs.single(); !one {
			return false
		}
	}
	return true
}

// line makes the view for a line ID.
func (s *solveState) line(lid LineID) line {
	return line{s.g, lid}
}

// clues returns the clue list for a line ID.
func (s *solveState) clues(lid LineID) []Clue {
	if lid.Ltype == LtypeRow {
		return s.p.rows[lid.Index]
	}
	return s.p.cols[lid.Index]
}

// runLine runs one engine on one line, routing through the
// cache, flushing any refinement into the grid, and dirtying the
// crossing lines of every changed cell.  Returns the number of
// cells that changed, and false on a contradiction.
func (s *solveState) runLine(engine byte, lid LineID) (int, bool) {
	ln := s.line(lid)
	clues := s.clues(lid)
	s.scratch = ln.extract(s.scratch)
	key := cacheKey(engine, clues, s.scratch)

	refined, ok, hit := s.cache.lookup(key)
	if !hit {
		work := append([]colorSet(nil), s.scratch...)
		switch engine {
		case engineSkim:
			ok = skimLine(clues, work)
		case engineScrub:
			ok = scrubLine(clues, work)
		}
		refined = work
		s.cache.store(key, work, ok)
	}
	if !ok {
		s.res.Status = Contradiction
		s.res.Errors = append(s.res.Errors, lineError(lid, NoPossibleColorsCondition))
		return 0, false
	}

	changed := ln.flush(refined)
	for _, pos := range changed {
		if lid.Ltype == LtypeRow {
			s.enqueue(LineID{LtypeCol, pos})
		} else {
			s.enqueue(LineID{LtypeRow, pos})
		}
	}
	return len(changed), true
}

// report forwards progress to the host's Reporter, if any.
func (s *solveState) report(phase string, done, total int) {
	if s.opts.Reporter != nil {
		s.opts.Reporter.Report(phase, done, total)
	}
}
