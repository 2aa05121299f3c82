package puzzle

import (
	"testing"
)

func sameClues(a, b []Clue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDeriveLineClues(t *testing.T) {
	pal := Palette{
		{Ch: "."},
		{Ch: "b"},
		{Ch: "r"},
	}
	testCases := []struct {
		vals   []Color
		expect []Clue
	}{
		{[]Color{0, 0, 0}, nil},
		{[]Color{1, 1, 1}, []Clue{bclue(3)}},
		{[]Color{1, 0, 1}, []Clue{bclue(1), bclue(1)}},
		{[]Color{0, 1, 1, 0, 1}, []Clue{bclue(2), bclue(1)}},
		// different colors touching make separate clues
		{[]Color{2, 2, 1, 1}, []Clue{rclue(2), bclue(2)}},
		{[]Color{0, 2, 1, 2, 0}, []Clue{rclue(1), bclue(1), rclue(1)}},
		{nil, nil},
	}
	for i, tc := range testCases {
		got := deriveLineClues(tc.vals, pal, false, true)
		if !sameClues(got, tc.expect) {
			t.Errorf("case %d: clues of %v = %v, expected %v", i, tc.vals, got, tc.expect)
		}
	}
}

func TestDeriveCluesGrid(t *testing.T) {
	pal := twoColorPalette()
	g, err := NewSolvedGrid(3, 2, pal, []Color{
		1, 1, 0,
		0, 1, 1,
	})
	if err != nil {
		t.Fatalf("NewSolvedGrid failed: %v", err)
	}
	rows, cols, err := DeriveClues(g, pal, false)
	if err != nil {
		t.Fatalf("DeriveClues failed: %v", err)
	}
	if !sameClues(rows[0], []Clue{bclue(2)}) || !sameClues(rows[1], []Clue{bclue(2)}) {
		t.Errorf("row clues = %v, expected [[2b] [2b]]", rows)
	}
	if !sameClues(cols[0], []Clue{bclue(1)}) ||
		!sameClues(cols[1], []Clue{bclue(2)}) ||
		!sameClues(cols[2], []Clue{bclue(1)}) {
		t.Errorf("column clues = %v, expected [[1b] [2b] [1b]]", cols)
	}

	wg := NewWorkingGrid(2, 2, pal)
	if _, _, err := DeriveClues(wg, pal, false); err == nil {
		t.Errorf("DeriveClues accepted an unsolved grid")
	}
}

func TestDeriveTrianogramClues(t *testing.T) {
	pal := Palette{
		{Ch: "."},
		{Ch: "#"},
		{Ch: "◤", Corner: &Corner{Upper: true, Left: true}},
		{Ch: "◥", Corner: &Corner{Upper: true, Left: false}},
		{Ch: "◣", Corner: &Corner{Upper: false, Left: true}},
		{Ch: "◢", Corner: &Corner{Upper: false, Left: false}},
	}

	// row: ◢ # ◣ then a gap then a plain run
	got := deriveLineClues([]Color{5, 1, 4, 0, 1, 1}, pal, true, true)
	expect := []Clue{
		{Color: 1, Count: 3, FrontCap: 5, BackCap: 4},
		{Color: 1, Count: 2},
	}
	if !sameClues(got, expect) {
		t.Errorf("row clues = %v, expected %v", got, expect)
	}

	// the same colors scanned as a column: ◢ opens downward, so
	// the roles flip relative to a row scan
	got = deriveLineClues([]Color{4, 1, 5}, pal, true, false)
	// ◣ (4) has its foreground below, so it opens; ◢ (5) has its
	// foreground below too, so it also opens -- ending the first
	// run with a bare cap clue after it
	expect = []Clue{
		{Color: 1, Count: 2, FrontCap: 4},
		{Color: 1, Count: 1, FrontCap: 5},
	}
	if !sameClues(got, expect) {
		t.Errorf("column clues = %v, expected %v", got, expect)
	}

	// a lone capped pair with no body cells
	got = deriveLineClues([]Color{5, 4}, pal, true, true)
	expect = []Clue{{Color: 1, Count: 2, FrontCap: 5, BackCap: 4}}
	if !sameClues(got, expect) {
		t.Errorf("cap-only clues = %v, expected %v", got, expect)
	}
}

// Clue derivation and solving are inverses on line-solvable
// grids: Solve(DeriveClues(G)) returns G exactly.
func TestDeriveSolveRoundTrip(t *testing.T) {
	pal := twoColorPalette()
	values := []Color{
		1, 1, 1,
		0, 0, 0,
		1, 0, 1,
	}
	g, err := NewSolvedGrid(3, 3, pal, values)
	if err != nil {
		t.Fatalf("NewSolvedGrid failed: %v", err)
	}
	rows, cols, err := DeriveClues(g, pal, false)
	if err != nil {
		t.Fatalf("DeriveClues failed: %v", err)
	}
	p, err := New(&Summary{Width: 3, Height: 3, Palette: pal, Rows: rows, Cols: cols})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res := p.Solve(nil)
	if res.Status != Solved {
		t.Fatalf("round-trip solve status = %v, expected solved", res.Status)
	}
	got, _ := res.Grid.Values()
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("cell %d = %v, expected %v", i, got[i], values[i])
		}
	}
}
