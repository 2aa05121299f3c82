package client

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/paulstansifer/convert-nonogram/puzzle"
)

/*

The workshop page: the designer's view of one puzzle, with the
grid, the clue tables, and the solve report.

*/

// The workshopPageTemplate contains the template for a workshop
// page.  It's initialized when needed.
var workshopPageTemplate *template.Template

// A templateWorkshopPage contains the values to fill the
// workshop page template.
type templateWorkshopPage struct {
	SessionID, PuzzleID string
	Title, TopHead      string
	IconFile            string
	Grid                templateGrid
	RowClues, ColClues  []string
	Status              string
	ApplicationFooter   string
}

// templateGrid is the structure expected by the grid section of
// the workshop page template.
type templateGrid [][]templateCell

// A templateCell carries one cell's display color and glyph.
type templateCell struct {
	Glyph string
	Style template.CSS
}

// findWorkshopPageTemplate parses the workshop page template on
// first use.
func findWorkshopPageTemplate() (*template.Template, error) {
	if workshopPageTemplate != nil {
		return workshopPageTemplate, nil
	}
	fp := filepath.Join(findTemplateDirectory(), "workshop"+templatePageSuffix)
	tmpl, err := template.ParseFiles(fp)
	if err != nil {
		return nil, fmt.Errorf("Couldn't parse template %q: %v", fp, err)
	}
	workshopPageTemplate = tmpl
	return tmpl, nil
}

// WorkshopPage executes the workshop page template over the
// passed session and puzzle state, and returns the page content
// as a string.
func WorkshopPage(sessionID, puzzleID string, s *puzzle.Summary, status string) string {
	tmpl, err := findWorkshopPageTemplate()
	if err != nil {
		return errorPage(err)
	}
	grid, err := summaryTemplateGrid(s)
	if err != nil {
		return errorPage(err)
	}

	p, err := puzzle.New(s)
	if err != nil {
		return errorPage(err)
	}
	rowClues := make([]string, len(p.RowClues()))
	for i, clues := range p.RowClues() {
		rowClues[i] = puzzle.ClueString(s.Palette, clues)
	}
	colClues := make([]string, len(p.ColClues()))
	for i, clues := range p.ColClues() {
		colClues[i] = puzzle.ClueString(s.Palette, clues)
	}

	twp := templateWorkshopPage{
		SessionID:         sessionID,
		PuzzleID:          puzzleID,
		Title:             fmt.Sprintf("%s: Workshop", applicationName),
		TopHead:           "Puzzle Workshop",
		IconFile:          iconPath,
		Grid:              grid,
		RowClues:          rowClues,
		ColClues:          colClues,
		Status:            status,
		ApplicationFooter: applicationFooter(),
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, twp); err != nil {
		return errorPage(err)
	}
	return buf.String()
}

// summaryTemplateGrid builds the grid section values from a
// solved-grid summary.
func summaryTemplateGrid(s *puzzle.Summary) (templateGrid, error) {
	if len(s.Values) != s.Width*s.Height {
		return nil, fmt.Errorf("Workshop page needs a solved grid")
	}
	grid := make(templateGrid, s.Height)
	for r := 0; r < s.Height; r++ {
		grid[r] = make([]templateCell, s.Width)
		for c := 0; c < s.Width; c++ {
			color := s.Values[r*s.Width+c]
			if int(color) >= len(s.Palette) {
				return nil, fmt.Errorf("Cell (%d,%d) color %d is outside the palette", r, c, color)
			}
			ci := s.Palette[color]
			grid[r][c] = templateCell{
				Glyph: ci.Ch,
				Style: template.CSS(fmt.Sprintf("background-color:#%02X%02X%02X",
					ci.RGB[0], ci.RGB[1], ci.RGB[2])),
			}
		}
	}
	return grid, nil
}

/*

error pages

*/

// errorPage - a minimal page for when template machinery itself
// is in trouble.
func errorPage(err error) string {
	return fmt.Sprintf(
		"<html><head><title>%s: Error</title></head>"+
			"<body><h1>Something went wrong</h1><p>%s</p><footer>%s</footer></body></html>",
		applicationName, template.HTMLEscapeString(err.Error()), applicationFooter())
}
