package format

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulstansifer/convert-nonogram/puzzle"
)

/*

webpbn: the XML format associated with webpbn.com, the most
widely used clue-list interchange format.  It carries colors by
name, clue lists for both dimensions, and no grid, so importing
yields a clue-shape Summary.  webpbn isn't intended to represent
trianogram half-cells.

*/

// XML shapes for the parts of a pbn document we consume.
type webpbnSet struct {
	XMLName xml.Name     `xml:"puzzleset"`
	Puzzle  webpbnPuzzle `xml:"puzzle"`
}

type webpbnPuzzle struct {
	Type         string        `xml:"type,attr"`
	DefaultColor string        `xml:"defaultcolor,attr"`
	Source       string        `xml:"source"`
	Colors       []webpbnColor `xml:"color"`
	Clues        []webpbnClues `xml:"clues"`
}

type webpbnColor struct {
	Name string `xml:"name,attr"`
	Char string `xml:"char,attr"`
	Hex  string `xml:",chardata"`
}

type webpbnClues struct {
	Type  string       `xml:"type,attr"`
	Lines []webpbnLine `xml:"line"`
}

type webpbnLine struct {
	Counts []webpbnCount `xml:"count"`
}

type webpbnCount struct {
	Color string `xml:"color,attr"`
	Count string `xml:",chardata"`
}

// ImportWebpbn parses a pbn document into a clue-shape Summary.
func ImportWebpbn(data []byte) (*puzzle.Summary, error) {
	var doc webpbnSet
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("couldn't parse webpbn XML: %v", err)
	}
	p := doc.Puzzle
	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("webpbn puzzle has no colors")
	}

	// the background goes in palette slot 0; "white" is the
	// conventional name, with the first color as a fallback
	bgName := "white"
	found := false
	for _, c := range p.Colors {
		if c.Name == bgName {
			found = true
			break
		}
	}
	if !found {
		bgName = p.Colors[0].Name
	}

	pal := puzzle.Palette{}
	colorOf := map[string]puzzle.Color{}
	add := func(c webpbnColor) error {
		rgb, err := parseHexColor(c.Hex)
		if err != nil {
			return fmt.Errorf("color %q: %v", c.Name, err)
		}
		colorOf[c.Name] = puzzle.Color(len(pal))
		pal = append(pal, puzzle.ColorInfo{Ch: c.Char, Name: c.Name, RGB: rgb})
		return nil
	}
	for _, c := range p.Colors {
		if c.Name == bgName {
			if err := add(c); err != nil {
				return nil, err
			}
		}
	}
	for _, c := range p.Colors {
		if c.Name != bgName {
			if err := add(c); err != nil {
				return nil, err
			}
		}
	}

	defaultClueColor := p.DefaultColor
	if _, ok := colorOf[defaultClueColor]; !ok {
		defaultClueColor = "black"
	}

	s := &puzzle.Summary{Palette: pal}
	for _, clues := range p.Clues {
		lanes := make([][]puzzle.Clue, len(clues.Lines))
		for i, line := range clues.Lines {
			lanes[i] = []puzzle.Clue{}
			for _, count := range line.Counts {
				name := count.Color
				if name == "" {
					name = defaultClueColor
				}
				color, ok := colorOf[name]
				if !ok {
					return nil, fmt.Errorf("clue color %q is not in the palette", name)
				}
				n, err := strconv.Atoi(strings.TrimSpace(count.Count))
				if err != nil {
					return nil, fmt.Errorf("bad clue count %q: %v", count.Count, err)
				}
				lanes[i] = append(lanes[i], puzzle.Clue{Color: color, Count: n})
			}
		}
		switch clues.Type {
		case "rows":
			s.Rows = lanes
		case "columns":
			s.Cols = lanes
		default:
			return nil, fmt.Errorf("unexpected clues type %q", clues.Type)
		}
	}
	if s.Rows == nil || s.Cols == nil {
		return nil, fmt.Errorf("webpbn puzzle is missing a clue dimension")
	}
	s.Height = len(s.Rows)
	s.Width = len(s.Cols)
	return s, nil
}

// ExportWebpbn renders a Summary as a pbn document.  A
// solved-grid Summary has its clues derived first.
func ExportWebpbn(s *puzzle.Summary) (string, error) {
	rows, cols, err := summaryClues(s)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	// pbnsolve warns if the DOCTYPE is present, so we omit it
	sb.WriteString("<?xml version=\"1.0\"?>\n")
	sb.WriteString("<puzzleset>\n")
	fmt.Fprintf(&sb, "<puzzle type=\"grid\" defaultcolor=%q>\n", s.Palette[puzzle.Background].Name)
	sb.WriteString("<source>convert-nonogram</source>\n")
	for _, ci := range s.Palette {
		fmt.Fprintf(&sb, "<color name=%q char=%q>%02X%02X%02X</color>\n",
			ci.Name, ci.Ch, ci.RGB[0], ci.RGB[1], ci.RGB[2])
	}

	writeClues := func(kind string, lanes [][]puzzle.Clue) {
		fmt.Fprintf(&sb, "<clues type=%q>", kind)
		for _, lane := range lanes {
			sb.WriteString("<line>")
			for _, cl := range lane {
				fmt.Fprintf(&sb, "<count color=%q>%d</count>", s.Palette[cl.Color].Name, cl.Count)
			}
			sb.WriteString("</line>\n")
		}
		sb.WriteString("</clues>\n")
	}
	writeClues("columns", cols)
	writeClues("rows", rows)

	sb.WriteString("</puzzle></puzzleset>\n")
	return sb.String(), nil
}

// summaryClues returns a Summary's clue lists, deriving them
// from the grid when only values are present.
func summaryClues(s *puzzle.Summary) (rows, cols [][]puzzle.Clue, err error) {
	if len(s.Rows) > 0 || len(s.Cols) > 0 {
		return s.Rows, s.Cols, nil
	}
	g, err := puzzle.NewSolvedGrid(s.Width, s.Height, s.Palette, s.Values)
	if err != nil {
		return nil, nil, err
	}
	return puzzle.DeriveClues(g, s.Palette, s.Trianogram)
}

// parseHexColor reads an RRGGBB hex string.
func parseHexColor(hex string) ([3]byte, error) {
	hex = strings.TrimSpace(strings.TrimPrefix(hex, "#"))
	if len(hex) != 6 {
		return [3]byte{}, fmt.Errorf("expected six hex digits, got %q", hex)
	}
	var rgb [3]byte
	for i := 0; i < 3; i++ {
		var v int
		if _, err := fmt.Sscanf(hex[2*i:2*i+2], "%02x", &v); err != nil {
			return [3]byte{}, fmt.Errorf("bad hex digits in %q", hex)
		}
		rgb[i] = byte(v)
	}
	return rgb, nil
}
