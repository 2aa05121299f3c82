package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulstansifer/convert-nonogram/puzzle"
)

/*

The Olšák .g format: a palette stanza introduced by a line
beginning with '#', then one stanza per dimension introduced by
lines beginning with ':' (rows first, then columns).  Palette
lines look like

   a:a   #FF0000   red

and clue lines are space-separated count-glyph pairs like
"3a 2b", with a bare count meaning the default black.  Corner
half-cells appear as palette colors named "white/black" or
"black/white" ('/' for the rising diagonal, '\' for the falling
one).

*/

// olsakNamedColors resolves the color names the format uses in
// the wild.
var olsakNamedColors = map[string][3]byte{
	"white":  {255, 255, 255},
	"black":  {0, 0, 0},
	"red":    {255, 0, 0},
	"green":  {0, 255, 0},
	"blue":   {0, 0, 255},
	"pink":   {255, 128, 128},
	"yellow": {255, 255, 0},
	"r":      {255, 0, 0},
	"g":      {0, 255, 0},
	"b":      {0, 0, 255},
}

// olsakCorner maps a corner color name to its orientation: the
// name gives the fill left and right of the diagonal, and the
// separator gives the diagonal's direction.
func olsakCorner(name string) *puzzle.Corner {
	rising := strings.ContainsRune(name, '/')
	sep := "/"
	if !rising {
		sep = "\\"
	}
	parts := strings.SplitN(name, sep, 2)
	if len(parts) != 2 {
		return nil
	}
	switch {
	case parts[0] == "white" && parts[1] == "black" && rising:
		return &puzzle.Corner{Upper: false, Left: false}
	case parts[0] == "white" && parts[1] == "black" && !rising:
		return &puzzle.Corner{Upper: true, Left: false}
	case parts[0] == "black" && parts[1] == "white" && rising:
		return &puzzle.Corner{Upper: true, Left: true}
	case parts[0] == "black" && parts[1] == "white" && !rising:
		return &puzzle.Corner{Upper: false, Left: true}
	}
	return nil
}

// ImportOlsak parses a .g document into a clue-shape Summary.
func ImportOlsak(text string) (*puzzle.Summary, error) {
	const (
		preamble = iota
		palette
		dimension
	)
	stanza := preamble
	dim := -1

	pal := puzzle.Palette{{Ch: "0", Name: "white", RGB: [3]byte{255, 255, 255}}}
	colorOf := map[string]puzzle.Color{"0": puzzle.Background}
	trianogram := false
	clues := [2][][]puzzle.Clue{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "#"):
			if stanza != preamble {
				return nil, fmt.Errorf("palette initiator must be the first content")
			}
			kind := strings.ToLower(strings.TrimPrefix(line, "#"))
			if strings.HasPrefix(kind, "t") {
				return nil, fmt.Errorf("triddlers are not supported")
			}
			stanza = palette
		case strings.HasPrefix(strings.TrimSpace(line), ":"):
			stanza = dimension
			dim++
			if dim > 1 {
				return nil, fmt.Errorf("too many dimension stanzas")
			}
		case stanza == preamble || strings.TrimSpace(line) == "":
			// comments and blanks
		case stanza == palette:
			fields := strings.Fields(line)
			if len(fields) < 2 || !strings.Contains(fields[0], ":") {
				return nil, fmt.Errorf("malformed palette line %q", line)
			}
			chars := strings.SplitN(fields[0], ":", 2)
			inputCh, uniqueCh := chars[0], chars[1]
			// the color spec is a name, a hex value, or a hex
			// value followed by a name
			name := fields[1]
			rgb, haveRGB := [3]byte{}, false
			if parsed, err := parseHexColor(name); err == nil {
				rgb, haveRGB = parsed, true
				if len(fields) > 2 {
					name = fields[2]
				}
			}
			if inputCh == "0" {
				// the background slot is predeclared; pick up its
				// spelling
				pal[puzzle.Background].Name = name
				if haveRGB {
					pal[puzzle.Background].RGB = rgb
				}
				continue
			}
			corner := olsakCorner(name)
			if corner != nil {
				trianogram = true
			}
			info := puzzle.ColorInfo{Ch: uniqueCh, Name: name, Corner: corner}
			switch {
			case haveRGB:
				info.RGB = rgb
			case olsakNamedColors[name] != [3]byte{} || name == "black":
				info.RGB = olsakNamedColors[name]
			case corner != nil:
				info.RGB = [3]byte{0, 0, 0}
			default:
				info.RGB = [3]byte{128, 128, 128}
			}
			colorOf[inputCh] = puzzle.Color(len(pal))
			pal = append(pal, info)
		case stanza == dimension:
			lane, err := parseOlsakClueLine(line, colorOf, &pal)
			if err != nil {
				return nil, err
			}
			clues[dim] = append(clues[dim], lane)
		}
	}
	if dim < 1 {
		return nil, fmt.Errorf("missing dimension stanzas")
	}
	return &puzzle.Summary{
		Width:      len(clues[1]),
		Height:     len(clues[0]),
		Palette:    pal,
		Rows:       clues[0],
		Cols:       clues[1],
		Trianogram: trianogram,
	}, nil
}

// parseOlsakClueLine reads one line of count-glyph clue tokens.
// A token's trailing non-digit run names the color; a bare count
// means black, declaring it in the palette on first use.
func parseOlsakClueLine(line string, colorOf map[string]puzzle.Color, pal *puzzle.Palette) ([]puzzle.Clue, error) {
	lane := []puzzle.Clue{}
	for _, token := range strings.Fields(line) {
		if token == "0" {
			continue // an explicitly empty lane
		}
		digits := token
		glyph := ""
		for i, r := range token {
			if r < '0' || r > '9' {
				digits, glyph = token[:i], token[i:]
				break
			}
		}
		count, err := strconv.Atoi(digits)
		if err != nil || count < 1 {
			return nil, fmt.Errorf("malformed clue token %q", token)
		}
		if glyph == "" {
			glyph = "1"
		}
		color, ok := colorOf[glyph]
		if !ok {
			if glyph != "1" {
				return nil, fmt.Errorf("clue token %q names an undeclared color", token)
			}
			// black is implicitly declared in black-and-white
			// puzzles
			color = puzzle.Color(len(*pal))
			colorOf[glyph] = color
			*pal = append(*pal, puzzle.ColorInfo{Ch: "#", Name: "black"})
		}
		lane = append(lane, puzzle.Clue{Color: color, Count: count})
	}
	return lane, nil
}

// ExportOlsak renders a Summary as a .g document.  A solved-grid
// Summary has its clues derived first.
func ExportOlsak(s *puzzle.Summary) (string, error) {
	rows, cols, err := summaryClues(s)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("#d\n")
	// Nonny doesn't like it if white isn't the first color in
	// the palette.
	sb.WriteString("   0:   #FFFFFF   white\n")
	for c, ci := range s.Palette {
		if puzzle.Color(c) == puzzle.Background {
			continue
		}
		fmt.Fprintf(&sb, "   %s:%s  #%02X%02X%02X   %s\n",
			ci.Ch, ci.Ch, ci.RGB[0], ci.RGB[1], ci.RGB[2], ci.Name)
	}
	writeLanes := func(header string, lanes [][]puzzle.Clue) {
		sb.WriteString(header)
		for _, lane := range lanes {
			for _, cl := range lane {
				fmt.Fprintf(&sb, "%d%s ", cl.Count, s.Palette[cl.Color].Ch)
			}
			sb.WriteString("\n")
		}
	}
	writeLanes(": rows\n", rows)
	writeLanes(": columns\n", cols)
	return sb.String(), nil
}
