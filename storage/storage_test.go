package storage

import (
	"testing"

	"github.com/paulstansifer/convert-nonogram/puzzle"
)

// These tests need live Redis and Postgres instances (the same
// environment variables the server uses).  They skip themselves
// when storage isn't reachable, so the rest of the suite stays
// runnable on a bare machine.
func connectOrSkip(t *testing.T) {
	t.Helper()
	if _, _, err := Connect(); err != nil {
		t.Skipf("storage not available: %v", err)
	}
	t.Cleanup(Close)
}

func storageTestSummary() *puzzle.Summary {
	return &puzzle.Summary{
		Width:  2,
		Height: 2,
		Palette: puzzle.Palette{
			{Ch: ".", Name: "white", RGB: [3]byte{255, 255, 255}},
			{Ch: "#", Name: "black", RGB: [3]byte{0, 0, 0}},
		},
		Values: []puzzle.Color{1, 1, 0, 1},
	}
}

func TestPuzzleRoundTrip(t *testing.T) {
	connectOrSkip(t)

	id, err := SavePuzzle("test-corner", storageTestSummary())
	if err != nil {
		t.Fatalf("SavePuzzle failed: %v", err)
	}
	if id == "" {
		t.Fatalf("SavePuzzle returned an empty signature")
	}

	// saving again is a no-op with the same id
	id2, err := SavePuzzle("test-corner", storageTestSummary())
	if err != nil || id2 != id {
		t.Errorf("re-save gave (%q, %v), expected (%q, nil)", id2, err, id)
	}

	loaded, found := LoadPuzzle(id)
	if !found {
		t.Fatalf("saved puzzle not found")
	}
	p1, _ := puzzle.New(storageTestSummary())
	p2, err := puzzle.New(loaded)
	if err != nil {
		t.Fatalf("loaded summary doesn't validate: %v", err)
	}
	if p1.Signature() != p2.Signature() {
		t.Errorf("loaded puzzle has a different signature")
	}

	if _, found := LoadPuzzle("no-such-signature"); found {
		t.Errorf("LoadPuzzle found a puzzle that was never saved")
	}
}

func TestSolveReports(t *testing.T) {
	connectOrSkip(t)

	id, err := SavePuzzle("test-report", storageTestSummary())
	if err != nil {
		t.Fatalf("SavePuzzle failed: %v", err)
	}
	p, _ := puzzle.New(storageTestSummary())
	res := p.Solve(nil)
	SaveReport(id, res)

	report, found := LoadReport(id)
	if !found {
		t.Fatalf("saved report not found")
	}
	if report.Status != res.Status.String() {
		t.Errorf("report status = %q, expected %q", report.Status, res.Status)
	}
	if report.Skims != res.Counters.Skims {
		t.Errorf("report skims = %d, expected %d", report.Skims, res.Counters.Skims)
	}
}

func TestSessionSteps(t *testing.T) {
	connectOrSkip(t)

	id, err := SavePuzzle("test-session", storageTestSummary())
	if err != nil {
		t.Fatalf("SavePuzzle failed: %v", err)
	}

	session := &Session{SID: "test-session-id"}
	if err := session.StartPuzzle(id); err != nil {
		t.Fatalf("StartPuzzle failed: %v", err)
	}
	if session.Step != 1 {
		t.Errorf("fresh session at step %d, expected 1", session.Step)
	}

	// apply an edit and record the step
	edited := storageTestSummary()
	edited.Values[1] = 0
	session.AddStep(edited)
	if session.Step != 2 {
		t.Errorf("session at step %d after an edit, expected 2", session.Step)
	}

	// a fresh lookup sees the edit
	reloaded := &Session{SID: "test-session-id"}
	if !reloaded.Lookup() {
		t.Fatalf("saved session not found")
	}
	reloaded.LoadStep()
	if reloaded.Summary.Values[1] != 0 {
		t.Errorf("reloaded step doesn't carry the edit")
	}

	// undo restores the original grid
	reloaded.RemoveStep()
	if reloaded.Step != 1 {
		t.Errorf("session at step %d after undo, expected 1", reloaded.Step)
	}
	if reloaded.Summary.Values[1] != 1 {
		t.Errorf("undo didn't restore the original grid")
	}

	// a second undo at the first step is a no-op
	reloaded.RemoveStep()
	if reloaded.Step != 1 {
		t.Errorf("undo below step 1 moved to step %d", reloaded.Step)
	}
}
