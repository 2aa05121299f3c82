package dbprep

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paulstansifer/convert-nonogram/format"
	"github.com/paulstansifer/convert-nonogram/puzzle"
)

/*

The stock puzzle collection.  These are loaded into the database
on first initialization so a fresh install has something to play
with.  They're kept as char grids because that's the easiest
form to eyeball.

*/

var stockPuzzles = map[string]string{
	"plus": `
.#.
###
.#.
`,
	"heart": `
.##.##.
#######
#######
.#####.
..###..
...#...
`,
	"boat": `
.....#....
....##....
...####...
..#####...
....#.....
##########
.########.
`,
	"flag": `
rrrrrr
wwwwww
rrrrrr
`,
	"checkmark": `
.....#
....##
#..##.
##.#..
.###..
..#...
`,
}

// StockPuzzles parses the stock collection into summaries,
// sorted by name.  It panics on a malformed stock grid, since
// that's a build-time mistake.
func StockPuzzles() (names []string, summaries []*puzzle.Summary) {
	for _, name := range []string{"boat", "checkmark", "flag", "heart", "plus"} {
		text := stockPuzzles[name]
		s, err := format.ImportCharGrid(text[1:]) // drop the leading newline
		if err != nil {
			panic(fmt.Errorf("stock puzzle %q doesn't parse: %v", name, err))
		}
		names = append(names, name)
		summaries = append(summaries, s)
	}
	return
}

// DataUp loads the stock puzzles into the database.  Existing
// entries are left alone.
func DataUp() error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/nonogram?sslmode=disable"
	}
	conn, err := pgx.Connect(context.Background(), url)
	if err != nil {
		return fmt.Errorf("Couldn't connect to db at %q: %v", url, err)
	}
	defer conn.Close(context.Background())

	names, summaries := StockPuzzles()
	for i, name := range names {
		p, err := puzzle.New(summaries[i])
		if err != nil {
			return fmt.Errorf("Stock puzzle %q doesn't validate: %v", name, err)
		}
		summaryJSON, err := json.Marshal(summaries[i])
		if err != nil {
			return fmt.Errorf("Couldn't marshal stock puzzle %q: %v", name, err)
		}
		_, err = conn.Exec(context.Background(),
			"INSERT INTO puzzles (puzzleId, name, summary, created) "+
				"VALUES ($1, $2, $3, $4) ON CONFLICT (puzzleId) DO NOTHING",
			p.Signature(), name, summaryJSON, time.Now())
		if err != nil {
			return fmt.Errorf("Couldn't insert stock puzzle %q: %v", name, err)
		}
	}
	return nil
}
