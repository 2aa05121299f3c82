package format

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/paulstansifer/convert-nonogram/puzzle"
)

/*

Whole-file load and emit dispatchers, for the CLI and the web
service.  "-" means stdin or stdout.

*/

// Load reads a puzzle file in the given format (FormatUnknown
// infers it from the path) and returns its Summary.
func Load(path string, f Format) (*puzzle.Summary, error) {
	if f == FormatUnknown {
		f = InferFormat(path)
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't read %q: %v", path, err)
	}

	switch f {
	case FormatImage:
		return ImportImage(bytes.NewReader(data))
	case FormatWebpbn:
		return ImportWebpbn(data)
	case FormatOlsak:
		return ImportOlsak(string(data))
	case FormatCharGrid:
		return ImportCharGrid(string(data))
	case FormatHTML:
		return nil, fmt.Errorf("html is export-only")
	}
	return nil, fmt.Errorf("can't load format %v", f)
}

// Emit writes a Summary to a path in the given format
// (FormatUnknown infers it from the path).
func Emit(path string, f Format, s *puzzle.Summary) error {
	if f == FormatUnknown {
		f = InferFormat(path)
	}

	var out []byte
	switch f {
	case FormatImage:
		var buf bytes.Buffer
		if err := ExportImage(&buf, s); err != nil {
			return err
		}
		out = buf.Bytes()
	case FormatWebpbn:
		text, err := ExportWebpbn(s)
		if err != nil {
			return err
		}
		out = []byte(text)
	case FormatOlsak:
		text, err := ExportOlsak(s)
		if err != nil {
			return err
		}
		out = []byte(text)
	case FormatCharGrid:
		text, err := ExportCharGrid(s)
		if err != nil {
			return err
		}
		out = []byte(text)
	case FormatHTML:
		text, err := ExportHTML(s)
		if err != nil {
			return err
		}
		out = []byte(text)
	default:
		return fmt.Errorf("can't emit format %v", f)
	}

	if path == "-" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("couldn't write %q: %v", path, err)
	}
	return nil
}
