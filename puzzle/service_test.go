package puzzle

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func postSummary(t *testing.T, s *Summary) *http.Request {
	t.Helper()
	body, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("failed to marshal summary: %v", err)
	}
	return httptest.NewRequest("POST", "/solve", bytes.NewReader(body))
}

func TestSolveHandler(t *testing.T) {
	pal := twoColorPalette()
	w := httptest.NewRecorder()
	res, err := SolveHandler(w, postSummary(t, &Summary{
		Width: 3, Height: 3, Palette: pal,
		Values: []Color{1, 1, 1, 0, 0, 0, 1, 0, 1},
	}))
	if err != nil {
		t.Fatalf("SolveHandler failed: %v", err)
	}
	if res.Status != Solved {
		t.Errorf("handler result status = %v, expected solved", res.Status)
	}
	if w.Code != http.StatusOK {
		t.Errorf("response code = %d, expected 200", w.Code)
	}
	var decoded Result
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response doesn't decode as a Result: %v", err)
	}
	if decoded.Status != Solved {
		t.Errorf("decoded status = %v, expected solved", decoded.Status)
	}
}

func TestSolveHandlerRejectsGarbage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/solve", bytes.NewReader([]byte("not json")))
	if _, err := SolveHandler(w, r); err == nil {
		t.Errorf("SolveHandler accepted a non-JSON body")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("response code = %d, expected 400", w.Code)
	}
}

func TestSolveHandlerRejectsMalformedPuzzle(t *testing.T) {
	pal := twoColorPalette()
	w := httptest.NewRecorder()
	_, err := SolveHandler(w, postSummary(t, &Summary{
		Width: 3, Height: 1, Palette: pal,
		Rows: [][]Clue{{bclue(2), bclue(2)}},
		Cols: [][]Clue{{}, {}, {}},
	}))
	if err == nil {
		t.Errorf("SolveHandler accepted an overflowing clue list")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("response code = %d, expected 400", w.Code)
	}
}

func TestCluesHandler(t *testing.T) {
	pal := twoColorPalette()
	w := httptest.NewRecorder()
	out, err := CluesHandler(w, postSummary(t, &Summary{
		Width: 2, Height: 2, Palette: pal,
		Values: []Color{1, 1, 0, 0},
	}))
	if err != nil {
		t.Fatalf("CluesHandler failed: %v", err)
	}
	if len(out.Rows) != 2 || len(out.Rows[0]) != 1 || out.Rows[0][0].Count != 2 {
		t.Errorf("derived rows = %v, expected [[2b] []]", out.Rows)
	}
	if w.Code != http.StatusOK {
		t.Errorf("response code = %d, expected 200", w.Code)
	}
}

func TestDisambiguateHandler(t *testing.T) {
	pal := twoColorPalette()
	w := httptest.NewRecorder()
	report, err := DisambiguateHandler(w, postSummary(t, &Summary{
		Width: 2, Height: 2, Palette: pal,
		Values: []Color{1, 0, 0, 1},
	}))
	if err != nil {
		t.Fatalf("DisambiguateHandler failed: %v", err)
	}
	if len(report.Edits) == 0 {
		t.Errorf("handler found no edits for an ambiguous puzzle")
	}
	if w.Code != http.StatusOK {
		t.Errorf("response code = %d, expected 200", w.Code)
	}
}
