package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paulstansifer/convert-nonogram/puzzle"
)

/*

puzzle entries

*/

// A puzzleEntry represents the stored form of a puzzle.  It is
// JSON serializable so it can go into the cache as well as the
// database.
type puzzleEntry struct {
	PuzzleId string // puzzle Signature
	Name     string // user-facing name of the puzzle
	Summary  *puzzle.Summary
}

// SavePuzzle stores a puzzle under its signature, giving it a
// user-facing name, and returns the signature.  Saving an
// already-saved puzzle is a no-op.
func SavePuzzle(name string, s *puzzle.Summary) (string, error) {
	p, err := puzzle.New(s)
	if err != nil {
		return "", err
	}
	pe := &puzzleEntry{PuzzleId: p.Signature(), Name: name, Summary: s}
	if pe.cacheLoad() {
		return pe.PuzzleId, nil
	}
	if !pe.databaseLoad() {
		pe.databaseInsert()
	}
	pe.cacheInsert()
	return pe.PuzzleId, nil
}

// LoadPuzzle finds the stored puzzle with the given signature.
// It first checks the cache, then the database (caching the
// result).  The second return value reports whether the puzzle
// was found.
func LoadPuzzle(id string) (*puzzle.Summary, bool) {
	pe := &puzzleEntry{PuzzleId: id}
	if pe.cacheLoad() {
		return pe.Summary, true
	}
	if !pe.databaseLoad() {
		return nil, false
	}
	pe.cacheInsert()
	return pe.Summary, true
}

// ListPuzzles returns the names and signatures of every stored
// puzzle, ordered by name.
func ListPuzzles() (names, ids []string) {
	body := func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx(), "SELECT name, puzzleId FROM puzzles ORDER BY name")
		if err != nil {
			return fmt.Errorf("Failure listing puzzles: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var name, id string
			if err := rows.Scan(&name, &id); err != nil {
				return fmt.Errorf("Failure scanning puzzle row: %v", err)
			}
			names = append(names, name)
			ids = append(ids, id)
		}
		return rows.Err()
	}
	pgExecute(body)
	return
}

// key: compute the cache key for a puzzleEntry.
func (pe *puzzleEntry) key() string {
	return "PID:" + pe.PuzzleId
}

// cacheLoad: load an already cached puzzle entry.  Returns
// whether the entry was found in the cache.
func (pe *puzzleEntry) cacheLoad() bool {
	var bytes []byte
	body := func() (err error) {
		bytes, err = redisBytes(rdc.Do("GET", pe.key()))
		if err != nil {
			err = fmt.Errorf("Cache failure loading puzzleEntry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var spe *puzzleEntry
	if err := json.Unmarshal(bytes, &spe); err != nil {
		panic(fmt.Errorf("Failed to unmarshal puzzleEntry %q: %v", pe.PuzzleId, err))
	}
	if spe.PuzzleId != pe.PuzzleId {
		panic(fmt.Errorf("Cached puzzleEntry (id: %q) found for puzzle %q!",
			spe.PuzzleId, pe.PuzzleId))
	}
	*pe = *spe
	return true
}

// cacheInsert: insert a puzzle entry into the cache.  Replaces
// any existing entry with the same id.
func (pe *puzzleEntry) cacheInsert() {
	bytes, e := json.Marshal(pe)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal puzzleEntry %q: %v", pe.PuzzleId, e))
	}
	body := func() (err error) {
		_, err = rdc.Do("SET", pe.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
}

// databaseLoad: load a puzzle entry from the database.  Returns
// whether a saved entry with the given id was found.
func (pe *puzzleEntry) databaseLoad() (found bool) {
	body := func(tx pgx.Tx) error {
		var summaryJSON []byte
		row := tx.QueryRow(ctx(),
			"SELECT name, summary FROM puzzles WHERE puzzleId = $1", pe.PuzzleId)
		if err := row.Scan(&pe.Name, &summaryJSON); err != nil {
			if err == pgx.ErrNoRows {
				return nil
			}
			return fmt.Errorf("Failure looking up puzzle %q: %v", pe.PuzzleId, err)
		}
		if err := json.Unmarshal(summaryJSON, &pe.Summary); err != nil {
			return fmt.Errorf("Corrupt stored summary for puzzle %q: %v", pe.PuzzleId, err)
		}
		found = true
		return nil
	}
	pgExecute(body)
	return
}

// databaseInsert: insert a new puzzle entry into the database.
func (pe *puzzleEntry) databaseInsert() {
	summaryJSON, e := json.Marshal(pe.Summary)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal summary for puzzle %q: %v", pe.PuzzleId, e))
	}
	body := func(tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx(),
			"INSERT INTO puzzles (puzzleId, name, summary, created) "+
				"VALUES ($1, $2, $3, $4) ON CONFLICT (puzzleId) DO NOTHING",
			pe.PuzzleId, pe.Name, summaryJSON, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	pgExecute(body)
}

/*

solve reports

*/

// A SolveReport is the stored outcome of solving a puzzle: the
// status and the difficulty counters.
type SolveReport struct {
	PuzzleId string
	Status   string
	Skims    int
	Scrubs   int
	Unsolved int
	Saved    string // RFC3339 time when the report was saved
}

// reportKey: the cache key for a puzzle's solve report.
func reportKey(id string) string {
	return "PID:" + id + ":Report"
}

// SaveReport caches the solve report for a puzzle.
func SaveReport(id string, res *puzzle.Result) {
	report := &SolveReport{
		PuzzleId: id,
		Status:   res.Status.String(),
		Skims:    res.Counters.Skims,
		Scrubs:   res.Counters.Scrubs,
		Unsolved: len(res.Unsolved),
		Saved:    time.Now().Format(time.RFC3339),
	}
	bytes, e := json.Marshal(report)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal solve report %q: %v", id, e))
	}
	body := func() (err error) {
		_, err = rdc.Do("SET", reportKey(id), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving solve report %q: %v", id, err)
		}
		return
	}
	rdExecute(body)
}

// LoadReport returns a puzzle's cached solve report, if there is
// one.
func LoadReport(id string) (*SolveReport, bool) {
	var bytes []byte
	body := func() (err error) {
		bytes, err = redisBytes(rdc.Do("GET", reportKey(id)))
		if err != nil {
			err = fmt.Errorf("Cache failure loading solve report %q: %v", id, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return nil, false
	}
	var report *SolveReport
	if err := json.Unmarshal(bytes, &report); err != nil {
		panic(fmt.Errorf("Failed to unmarshal solve report %q: %v", id, err))
	}
	return report, true
}
