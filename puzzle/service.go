package puzzle

import (
	"encoding/json"
	"fmt"
	"net/http"
)

/*

RESTful wrappers over the core operations, so it's easy to build
web services over puzzles.  Each handler decodes a JSON-encoded
Summary from the request body, runs the core, and sends the
result back as JSON.

*/

// SolveHandler is a POST handler that solves the posted puzzle
// and responds with the Result (status, counters, unsolved
// cells).  The Result is also returned to the golang caller.
//
// If we can't decode the posted Summary, or the Summary is
// malformed, we send a 400 response and return the error to the
// caller.
func SolveHandler(w http.ResponseWriter, r *http.Request) (*Result, error) {
	p, e := decodePuzzle(w, r)
	if e != nil {
		return nil, e
	}
	res := p.Solve(nil)
	return res, writeJSON(res, http.StatusOK, w, r)
}

// CluesHandler is a POST handler that derives the clue lists
// for a posted solved grid and responds with the clue-list form
// of the Summary.
func CluesHandler(w http.ResponseWriter, r *http.Request) (*Summary, error) {
	s, e := decodeSummary(w, r)
	if e != nil {
		return nil, e
	}
	g, e := NewSolvedGrid(s.Width, s.Height, s.Palette, s.Values)
	if e != nil {
		return nil, writeCoreError(e, w, r)
	}
	rows, cols, e := DeriveClues(g, s.Palette, s.Trianogram)
	if e != nil {
		return nil, writeCoreError(e, w, r)
	}
	out := &Summary{
		Width:      s.Width,
		Height:     s.Height,
		Palette:    s.Palette,
		Rows:       rows,
		Cols:       cols,
		Trianogram: s.Trianogram,
	}
	return out, writeJSON(out, http.StatusOK, w, r)
}

// DisambiguateHandler is a POST handler that runs the
// disambiguator over a posted solved grid and responds with the
// ranked edit report.
func DisambiguateHandler(w http.ResponseWriter, r *http.Request) (*DisambiguateReport, error) {
	s, e := decodeSummary(w, r)
	if e != nil {
		return nil, e
	}
	g, e := NewSolvedGrid(s.Width, s.Height, s.Palette, s.Values)
	if e != nil {
		return nil, writeCoreError(e, w, r)
	}
	report, e := Disambiguate(g, s.Palette, s.Trianogram, nil)
	if e != nil {
		return nil, writeCoreError(e, w, r)
	}
	return report, writeJSON(report, http.StatusOK, w, r)
}

/*

Utilities

*/

// decodeSummary reads the request body as a Summary, reporting
// decode failures to both the client and the caller.
func decodeSummary(w http.ResponseWriter, r *http.Request) (*Summary, error) {
	dec := json.NewDecoder(r.Body)
	var summary Summary
	if e := dec.Decode(&summary); e != nil {
		return nil, writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	return &summary, nil
}

// decodePuzzle reads and validates the request body as a
// puzzle.
func decodePuzzle(w http.ResponseWriter, r *http.Request) (*Puzzle, error) {
	summary, e := decodeSummary(w, r)
	if e != nil {
		return nil, e
	}
	p, e := New(summary)
	if e != nil {
		return nil, writeCoreError(e, w, r)
	}
	return p, nil
}

// writeCoreError sends a core Error as a 400 response.  A
// non-Error error (which shouldn't happen) becomes a 500.
func writeCoreError(e error, w http.ResponseWriter, r *http.Request) error {
	err, ok := e.(Error)
	if !ok {
		return writeError(errorFormatError, ErrorData{"writeCoreError", e.Error()}, w, r)
	}
	err.Message = err.Error()
	return writeJSON(err, http.StatusBadRequest, w, r)
}

type handlerError int

const (
	requestDecodingError handlerError = iota
	responseEncodingError
	errorFormatError
)

// writeError sends back a server error of the given type, sort
// of like http.Error, but it sends the JSON form of an
// appropriate Error.
func writeError(et handlerError, ed ErrorData,
	w http.ResponseWriter, r *http.Request) error {
	var err Error
	var status int
	switch et {
	case requestDecodingError:
		status = http.StatusBadRequest
		err = Error{
			Scope:     RequestScope,
			Structure: AttributeStructure,
			Attribute: DecodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case responseEncodingError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: EncodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case errorFormatError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	default:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values: ErrorData{
				"writeError",
				fmt.Sprintf("Unknown handler error type (%v)", et),
			},
		}
	}
	err.Message = err.Error()
	return writeJSON(err, status, w, r)
}

// writeJSON is called by handlers to encode and send the client
// response.  It returns an appropriate error status for the
// handler to return to its caller, as follows:
//
// 1. If writeJSON encounters an encoding error sending the
// response, it will create an Error object describing the
// failure, encode that Error as a 500-series response to the
// client, and return that Error to the handler.
//
// 2. If no encoding error occurs, but the handler is sending an
// Error object as the response to the client, writeJSON will
// return that same Error to the handler.
//
// 3. If no encoding error occurs, and the handler is sending a
// non-Error object as the response to the client, writeJSON will
// return nil to the handler.
func writeJSON(obj interface{}, status int, w http.ResponseWriter, r *http.Request) error {
	err, isErr := obj.(Error)
	bytes, e := json.Marshal(obj)
	if e != nil {
		if isErr && err.Scope == InternalScope && err.Attribute == EncodeAttribute {
			// We just failed to encode an Encoding error.  This
			// should never happen!!  If it did, it almost
			// certainly means that the JSON encoding system is
			// dead, so pseudo-encode the error by hand by
			// returning the Error's summary as a quoted string.
			status = http.StatusInternalServerError // probably was already!
			bytes = []byte(fmt.Sprintf("%q", err.Error()))
		} else {
			// generate, send, and return an encoding error
			return writeError(responseEncodingError, ErrorData{e.Error()}, w, r)
		}
	}
	hs := w.Header()
	hs.Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
	if isErr {
		return err
	}
	return nil
}
