package puzzle

import (
	"testing"
)

func TestNextGaps(t *testing.T) {
	collect := func(n, max int) [][]int {
		gaps := make([]int, n)
		var out [][]int
		for ok := true; ok; ok = nextGaps(gaps, max) {
			out = append(out, append([]int(nil), gaps...))
		}
		return out
	}

	got := collect(3, 1)
	expect := [][]int{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if len(got) != len(expect) {
		t.Fatalf("gap enumeration (3, 1) gave %v, expected %v", got, expect)
	}
	for i := range got {
		for j := range got[i] {
			if got[i][j] != expect[i][j] {
				t.Errorf("gap enumeration (3, 1) gave %v, expected %v", got, expect)
			}
		}
	}

	if n := len(collect(3, 2)); n != 10 {
		t.Errorf("gap enumeration (3, 2) gave %d vectors, expected 10", n)
	}

	// an exactly-full line has one arrangement
	if n := len(collect(2, 0)); n != 1 {
		t.Errorf("gap enumeration (2, 0) gave %d vectors, expected 1", n)
	}
}

func TestScrubLine(t *testing.T) {
	testCases := []struct {
		clues  []Clue
		line   []colorSet
		expect []colorSet
	}{
		{[]Clue{bclue(1)}, cells(tx, tx, tx, tx), cells(tx, tx, tx, tx)},
		{[]Clue{bclue(1)}, cells(tw, tx, tx, tx), cells(tw, tx, tx, tx)},
		{[]Clue{bclue(1), bclue(2)}, cells(tx, tx, tx, tx), cells(tb, tw, tb, tb)},
		{[]Clue{bclue(1)}, cells(tx, tx, tb, tx), cells(tw, tw, tb, tw)},
		{[]Clue{bclue(3)}, cells(tx, tx, tx, tx), cells(tx, tb, tb, tx)},
		{[]Clue{bclue(3)}, cells(tx, tb, tx, tx, tx), cells(tx, tb, tb, tx, tw)},
		{[]Clue{bclue(2), bclue(2)},
			cells(tx, tx, tx, tx, tx),
			cells(tb, tb, tw, tb, tb)},
		// different colors don't need separation, so we don't
		// know as much: only the middle cell stays fully open,
		// and the ends only lose the color that can't reach them
		{[]Clue{rclue(2), bclue(2)},
			cells(t3, t3, t3, t3, t3),
			cells(cs(0, 2), tr, t3, tb, tx)},
		{nil, cells(tx, tx, tx), cells(tw, tw, tw)},
	}
	for i, tc := range testCases {
		got := append([]colorSet(nil), tc.line...)
		if !scrubLine(tc.clues, got) {
			t.Errorf("case %d: scrub of %v reported a contradiction", i, tc.line)
			continue
		}
		if !sameCells(got, tc.expect) {
			t.Errorf("case %d: scrub of %v gave %v, expected %v", i, tc.line, got, tc.expect)
		}
	}
}

func TestScrubLineContradiction(t *testing.T) {
	testCases := []struct {
		clues []Clue
		line  []colorSet
	}{
		{[]Clue{bclue(3)}, cells(tx, tx)},
		{[]Clue{bclue(2)}, cells(tx, tw, tx)},
		{[]Clue{bclue(1)}, cells(tb, tx, tb, tx)},
	}
	for i, tc := range testCases {
		got := append([]colorSet(nil), tc.line...)
		if scrubLine(tc.clues, got) {
			t.Errorf("case %d: scrub of %v with clues %v didn't contradict", i, tc.line, tc.clues)
		}
	}
}

// Scrubbing never learns less than skimming on the same input.
func TestScrubRefinesSkim(t *testing.T) {
	testCases := []struct {
		clues []Clue
		line  []colorSet
	}{
		{[]Clue{bclue(2), bclue(1)}, cells(tx, tx, tx, tx, tx, tx)},
		{[]Clue{bclue(3)}, cells(tx, tb, tx, tx, tx)},
		{[]Clue{rclue(1), bclue(2)}, cells(t3, t3, t3, t3)},
		{[]Clue{bclue(1), bclue(1)}, cells(tx, tx, tx, tw, tx)},
	}
	for i, tc := range testCases {
		skimmed := append([]colorSet(nil), tc.line...)
		scrubbed := append([]colorSet(nil), tc.line...)
		if !skimLine(tc.clues, skimmed) || !scrubLine(tc.clues, scrubbed) {
			t.Errorf("case %d: unexpected contradiction", i)
			continue
		}
		for x := range skimmed {
			if scrubbed[x]&^skimmed[x] != 0 {
				t.Errorf("case %d: scrub kept %b at %d that skim removed (%b)",
					i, scrubbed[x], x, skimmed[x])
			}
		}
	}
}

func TestScrubTrianogramCaps(t *testing.T) {
	closeCap, openCap := Color(2), Color(3)
	xt := cs(0, 1, 2, 3)

	clues := []Clue{
		{Color: 1, Count: 2, BackCap: closeCap},
		{Color: 1, Count: 2, FrontCap: openCap},
	}
	got := cells(xt, xt, xt, xt)
	if !scrubLine(clues, got) {
		t.Fatalf("capped scrub reported a contradiction")
	}
	expect := cells(cs(1), cs(closeCap), cs(openCap), cs(1))
	if !sameCells(got, expect) {
		t.Errorf("capped scrub gave %v, expected %v", got, expect)
	}
}
