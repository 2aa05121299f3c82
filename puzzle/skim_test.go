package puzzle

import (
	"testing"
)

/*

helpers shared by the line-engine tests: a two-color palette
(background and black) plus one extra color for the multi-color
cases.  Cells are spelled the way the tables read: x for
unknown, w for known background, b and r for known foreground.

*/

func cs(colors ...Color) colorSet {
	var out colorSet
	for _, c := range colors {
		out |= singleSet(c)
	}
	return out
}

var (
	tw = cs(0)       // known background
	tb = cs(1)       // known black
	tr = cs(2)       // known red
	tx = cs(0, 1)    // unknown, two-color puzzle
	t3 = cs(0, 1, 2) // unknown, three-color puzzle
)

func cells(sets ...colorSet) []colorSet {
	return append([]colorSet(nil), sets...)
}

func sameCells(a, b []colorSet) bool {
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

func bclue(count int) Clue { return Clue{Color: 1, Count: count} }
func rclue(count int) Clue { return Clue{Color: 2, Count: count} }

func TestSkimLine(t *testing.T) {
	testCases := []struct {
		clues  []Clue
		line   []colorSet
		expect []colorSet
	}{
		{[]Clue{bclue(1)}, cells(tx, tx, tx, tx), cells(tx, tx, tx, tx)},
		{[]Clue{bclue(1)}, cells(tw, tx, tx, tx), cells(tw, tx, tx, tx)},
		{[]Clue{bclue(3)}, cells(tx, tx, tx, tx), cells(tx, tb, tb, tx)},
		{[]Clue{bclue(2), bclue(1)}, cells(tx, tx, tx, tx), cells(tb, tb, tw, tb)},
		{[]Clue{bclue(1), bclue(2)}, cells(tx, tx, tx, tx), cells(tb, tw, tb, tb)},
		{[]Clue{bclue(2)},
			cells(tx, tx, tx, tx, tx, tb, tb, tx),
			cells(tw, tw, tw, tw, tw, tb, tb, tw)},
		{[]Clue{bclue(1)}, cells(tx, tx, tb, tx), cells(tw, tw, tb, tw)},
		{[]Clue{bclue(3)}, cells(tx, tb, tx, tx, tx), cells(tx, tb, tb, tx, tw)},
		{[]Clue{bclue(2), bclue(2)},
			cells(tx, tx, tx, tx, tx),
			cells(tb, tb, tw, tb, tb)},
		// different colors don't need separation, so we don't
		// know as much
		{[]Clue{rclue(2), bclue(2)},
			cells(t3, t3, t3, t3, t3),
			cells(t3, tr, t3, tb, t3)},
		// a clue as long as the line forces every cell
		{[]Clue{bclue(4)}, cells(tx, tx, tx, tx), cells(tb, tb, tb, tb)},
		// no clues means all background
		{nil, cells(tx, tx, tx), cells(tw, tw, tw)},
	}
	for i, tc := range testCases {
		got := append([]colorSet(nil), tc.line...)
		if !skimLine(tc.clues, got) {
			t.Errorf("case %d: skim of %v reported a contradiction", i, tc.line)
			continue
		}
		if !sameCells(got, tc.expect) {
			t.Errorf("case %d: skim of %v gave %v, expected %v", i, tc.line, got, tc.expect)
		}
	}
}

func TestSkimLineContradiction(t *testing.T) {
	testCases := []struct {
		clues []Clue
		line  []colorSet
	}{
		// no room at all
		{[]Clue{bclue(3)}, cells(tx, tx)},
		// a known foreground cell with no clues to cover it
		{nil, cells(tx, tb, tx)},
		// a known background cell splits the line too finely
		{[]Clue{bclue(2)}, cells(tx, tw, tx)},
		// nonempty clues on a zero-length line
		{[]Clue{bclue(1)}, cells()},
	}
	for i, tc := range testCases {
		got := append([]colorSet(nil), tc.line...)
		if skimLine(tc.clues, got) {
			t.Errorf("case %d: skim of %v with clues %v didn't contradict", i, tc.line, tc.clues)
		}
	}
}

func TestSkimLineZeroLength(t *testing.T) {
	if !skimLine(nil, nil) {
		t.Errorf("skim of an empty line with no clues contradicted")
	}
}

func TestSkimTrianogramCaps(t *testing.T) {
	// palette: 0 background, 1 black, 2 is ◣ (closes a row run),
	// 3 is ◢ (opens a row run)
	closeCap, openCap := Color(2), Color(3)
	xt := cs(0, 1, 2, 3)

	// two capped runs meeting in the middle: the facing caps
	// replace the separator, so the unique placement fills the
	// line
	clues := []Clue{
		{Color: 1, Count: 2, BackCap: closeCap},
		{Color: 1, Count: 2, FrontCap: openCap},
	}
	got := cells(xt, xt, xt, xt)
	if !skimLine(clues, got) {
		t.Fatalf("capped skim reported a contradiction")
	}
	expect := cells(cs(1), cs(closeCap), cs(openCap), cs(1))
	if !sameCells(got, expect) {
		t.Errorf("capped skim gave %v, expected %v", got, expect)
	}

	// the same two runs without caps need five cells
	uncapped := []Clue{bclue(2), bclue(2)}
	if err := validateClues(LineID{LtypeRow, 0}, uncapped, 4, Palette{{}, {Ch: "b"}}, false); err == nil {
		t.Errorf("uncapped same-color runs fit in four cells, expected overflow")
	}
}
