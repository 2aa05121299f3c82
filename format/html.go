package format

import (
	"fmt"
	"html"
	"strings"

	"github.com/paulstansifer/convert-nonogram/puzzle"
)

/*

HTML export: a standalone page with the clue tables laid out
around an empty grid, styled with the palette's colors.  Export
only; nobody should have to parse this back.

*/

// ExportHTML renders a Summary as a printable puzzle page.
func ExportHTML(s *puzzle.Summary) (string, error) {
	rows, cols, err := summaryClues(s)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">\n")
	sb.WriteString("<style>\n")
	sb.WriteString("table { border-collapse: collapse; }\n")
	sb.WriteString("td { border: 1px solid #999; width: 1.4em; height: 1.4em; text-align: center; }\n")
	sb.WriteString("td.clue { border: none; font-family: monospace; }\n")
	for c, ci := range s.Palette {
		fmt.Fprintf(&sb, ".c%d { color: #%02X%02X%02X; font-weight: bold; }\n",
			c, ci.RGB[0], ci.RGB[1], ci.RGB[2])
	}
	sb.WriteString("</style></head><body>\n<table>\n")

	// the column clues occupy a header row, stacked top-down
	maxCol := 0
	for _, lane := range cols {
		if len(lane) > maxCol {
			maxCol = len(lane)
		}
	}
	for level := 0; level < maxCol; level++ {
		sb.WriteString("<tr><td class=\"clue\"></td>")
		for _, lane := range cols {
			pad := maxCol - len(lane)
			if level < pad {
				sb.WriteString("<td class=\"clue\"></td>")
			} else {
				cl := lane[level-pad]
				fmt.Fprintf(&sb, "<td class=\"clue c%d\">%d</td>", cl.Color, cl.Count)
			}
		}
		sb.WriteString("</tr>\n")
	}

	for _, lane := range rows {
		sb.WriteString("<tr>")
		parts := make([]string, len(lane))
		for i, cl := range lane {
			parts[i] = fmt.Sprintf("<span class=\"c%d\">%d</span>", cl.Color, cl.Count)
		}
		fmt.Fprintf(&sb, "<td class=\"clue\">%s</td>", strings.Join(parts, " "))
		for range cols {
			sb.WriteString("<td></td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</table>\n")

	fmt.Fprintf(&sb, "<p>%d×%d, %d colors</p>\n",
		s.Width, s.Height, len(s.Palette))
	for _, ci := range s.Palette {
		fmt.Fprintf(&sb, "<!-- %s -->\n", html.EscapeString(ci.Name))
	}
	sb.WriteString("</body></html>\n")
	return sb.String(), nil
}
