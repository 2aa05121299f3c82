package puzzle

import (
	"testing"
)

func TestDisambiguateFindsFix(t *testing.T) {
	pal := twoColorPalette()
	// the flipping diagonal: every cell is ambiguous, and
	// blanking either foreground cell resolves everything
	g, err := NewSolvedGrid(2, 2, pal, []Color{1, 0, 0, 1})
	if err != nil {
		t.Fatalf("NewSolvedGrid failed: %v", err)
	}
	report, err := Disambiguate(g, pal, false, nil)
	if err != nil {
		t.Fatalf("Disambiguate failed: %v", err)
	}
	if report.Status != Ambiguous {
		t.Fatalf("status = %v, expected ambiguous", report.Status)
	}
	if len(report.Unsolved) != 4 {
		t.Fatalf("%d unsolved cells, expected 4", len(report.Unsolved))
	}
	if len(report.Edits) == 0 {
		t.Fatalf("no candidate edits found")
	}
	top := report.Edits[0]
	if top.Resolved != len(report.Unsolved) {
		t.Errorf("top edit resolves %d cells, expected the whole region (%d)",
			top.Resolved, len(report.Unsolved))
	}
	// ties break lexicographically, so the first fix is blanking
	// the top-left cell
	if top.Row != 0 || top.Col != 0 || top.Color != 0 {
		t.Errorf("top edit = %+v, expected (0,0) to background", top)
	}
}

func TestDisambiguateSolvedPuzzle(t *testing.T) {
	pal := twoColorPalette()
	g, err := NewSolvedGrid(2, 2, pal, []Color{1, 1, 0, 1})
	if err != nil {
		t.Fatalf("NewSolvedGrid failed: %v", err)
	}
	report, err := Disambiguate(g, pal, false, nil)
	if err != nil {
		t.Fatalf("Disambiguate failed: %v", err)
	}
	if report.Status != Solved {
		t.Errorf("status = %v, expected solved (no edit needed)", report.Status)
	}
	if len(report.Edits) != 0 {
		t.Errorf("solved puzzle produced %d edits", len(report.Edits))
	}
}

func TestDisambiguateDeterminism(t *testing.T) {
	pal := twoColorPalette()
	values := []Color{
		1, 0, 0, 1,
		0, 1, 1, 0,
		0, 1, 1, 0,
		1, 0, 0, 1,
	}
	g, err := NewSolvedGrid(4, 4, pal, values)
	if err != nil {
		t.Fatalf("NewSolvedGrid failed: %v", err)
	}
	a, err := Disambiguate(g, pal, false, nil)
	if err != nil {
		t.Fatalf("Disambiguate failed: %v", err)
	}
	b, err := Disambiguate(g, pal, false, nil)
	if err != nil {
		t.Fatalf("Disambiguate failed: %v", err)
	}
	if len(a.Edits) != len(b.Edits) {
		t.Fatalf("edit counts differ: %d vs %d", len(a.Edits), len(b.Edits))
	}
	for i := range a.Edits {
		if a.Edits[i] != b.Edits[i] {
			t.Errorf("edit %d differs: %+v vs %+v", i, a.Edits[i], b.Edits[i])
		}
	}
	if a.Counters != b.Counters {
		t.Errorf("counters differ: %+v vs %+v", a.Counters, b.Counters)
	}
}

func TestDisambiguateOverlayAndLimits(t *testing.T) {
	pal := twoColorPalette()
	g, err := NewSolvedGrid(2, 2, pal, []Color{1, 0, 0, 1})
	if err != nil {
		t.Fatalf("NewSolvedGrid failed: %v", err)
	}
	report, err := Disambiguate(g, pal, false, &DisambiguateOptions{MaxEdits: 1})
	if err != nil {
		t.Fatalf("Disambiguate failed: %v", err)
	}
	if len(report.Edits) != 1 {
		t.Errorf("MaxEdits=1 returned %d edits", len(report.Edits))
	}
	if len(report.Overlay) == 0 {
		t.Errorf("no overlay cells for an ambiguous region")
	}
	for _, oc := range report.Overlay {
		if oc.Strength < 1 {
			t.Errorf("overlay cell %+v has no strength", oc)
		}
	}
}

func TestDisambiguateCacheReuse(t *testing.T) {
	pal := twoColorPalette()
	g, err := NewSolvedGrid(3, 3, pal, []Color{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	if err != nil {
		t.Fatalf("NewSolvedGrid failed: %v", err)
	}
	report, err := Disambiguate(g, pal, false, nil)
	if err != nil {
		t.Fatalf("Disambiguate failed: %v", err)
	}
	// most perturbed lines repeat between trials; the shared
	// cache is what makes the search affordable
	if report.CacheHitRate < 0.5 {
		t.Errorf("cache hit rate = %v, expected at least 0.5", report.CacheHitRate)
	}
}

func TestDisambiguateRejectsUnsolvedGrid(t *testing.T) {
	pal := twoColorPalette()
	if _, err := Disambiguate(NewWorkingGrid(2, 2, pal), pal, false, nil); err == nil {
		t.Errorf("Disambiguate accepted an unsolved grid")
	}
}

func TestDisambiguateCancellation(t *testing.T) {
	pal := twoColorPalette()
	g, err := NewSolvedGrid(2, 2, pal, []Color{1, 0, 0, 1})
	if err != nil {
		t.Fatalf("NewSolvedGrid failed: %v", err)
	}
	calls := 0
	report, err := Disambiguate(g, pal, false, &DisambiguateOptions{
		Interrupt: func() bool {
			calls++
			return calls > 3
		},
	})
	if err != nil {
		t.Fatalf("Disambiguate failed: %v", err)
	}
	if report.Status != Cancelled {
		t.Errorf("status = %v, expected cancelled", report.Status)
	}
}
