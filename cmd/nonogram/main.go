// Command nonogram converts puzzles between formats, grades
// them by running the line-logic solver, and proposes
// disambiguating edits for puzzles that line logic can't finish.
//
// With one path argument it solves the puzzle and reports the
// difficulty counters; with two it converts the first into the
// second.  Use "-" for stdin or stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/vyevs/ansi"

	"github.com/paulstansifer/convert-nonogram/format"
	"github.com/paulstansifer/convert-nonogram/puzzle"
)

// exit codes, per the CLI contract
const (
	exitOK         = 0
	exitUsage      = 1
	exitUnsolvable = 2
	exitIO         = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	inputFormat := flag.String("input-format", "", "format to expect the input to be in")
	outputFormat := flag.String("output-format", "", "format to emit as output")
	disambiguate := flag.Bool("disambiguate", false, "propose single-cell edits that reduce ambiguity")
	traceSolve := flag.Bool("trace-solve", false, "explain the solve process line by line")
	gui := flag.Bool("gui", false, "print where to find the web workshop editor and exit")
	profileRun := flag.Bool("profile", false, "write a CPU profile for this run")
	flag.Parse()

	if *profileRun {
		defer profile.Start().Stop()
	}

	if flag.NArg() < 1 || flag.NArg() > 2 {
		fmt.Fprintf(os.Stderr, "usage: nonogram [flags] input-path [output-path]\n")
		flag.PrintDefaults()
		return exitUsage
	}
	inPath := flag.Arg(0)

	inFormat := format.FormatUnknown
	if *inputFormat != "" {
		f, err := format.ParseFormat(*inputFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "nonogram: %v\n", err)
			return exitUsage
		}
		inFormat = f
	}
	outFormat := format.FormatUnknown
	if *outputFormat != "" {
		f, err := format.ParseFormat(*outputFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "nonogram: %v\n", err)
			return exitUsage
		}
		outFormat = f
	}

	summary, err := format.Load(inPath, inFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nonogram: %v\n", err)
		return exitIO
	}
	for _, warning := range format.QualityCheck(summary) {
		fmt.Fprintf(os.Stderr, "nonogram: warning: %s\n", warning)
	}

	if *gui {
		fmt.Fprintf(os.Stderr,
			"nonogram: the editor lives in the nonoweb server; run nonoweb and open it in a browser\n")
		return exitUsage
	}

	if flag.NArg() == 2 {
		if err := format.Emit(flag.Arg(1), outFormat, summary); err != nil {
			fmt.Fprintf(os.Stderr, "nonogram: %v\n", err)
			return exitIO
		}
		return exitOK
	}

	return solveAndReport(summary, *disambiguate, *traceSolve)
}

// solveAndReport runs the solver (and optionally the
// disambiguator) and prints the outcome.
func solveAndReport(summary *puzzle.Summary, disambiguate, trace bool) int {
	p, err := puzzle.New(summary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nonogram: %v\n", err)
		return exitUsage
	}

	opts := &puzzle.SolveOptions{}
	if trace {
		opts.Reporter = traceReporter{}
	}
	res := p.Solve(opts)

	printGrid(res.Grid, summary.Palette)
	switch res.Status {
	case puzzle.Solved:
		fmt.Fprintf(os.Stderr, "Solved after %d skims and %d scrubs.\n",
			res.Counters.Skims, res.Counters.Scrubs)
	case puzzle.Ambiguous:
		fmt.Fprintf(os.Stderr, "Unable to solve. Performed %d skims, %d scrubs; %d cells left.\n",
			res.Counters.Skims, res.Counters.Scrubs, len(res.Unsolved))
	case puzzle.Contradiction:
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		return exitUnsolvable
	}

	if res.Status == puzzle.Ambiguous && disambiguate {
		return disambiguateAndReport(summary)
	}
	if res.Status == puzzle.Ambiguous {
		return exitUnsolvable
	}
	return exitOK
}

// disambiguateAndReport searches for single-cell fixes and
// prints the best ones.
func disambiguateAndReport(summary *puzzle.Summary) int {
	if len(summary.Values) != summary.Width*summary.Height {
		fmt.Fprintf(os.Stderr,
			"nonogram: disambiguation needs a solved grid (an image or char-grid input)\n")
		return exitUsage
	}
	g, err := puzzle.NewSolvedGrid(summary.Width, summary.Height, summary.Palette, summary.Values)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nonogram: %v\n", err)
		return exitUsage
	}
	report, err := puzzle.Disambiguate(g, summary.Palette, summary.Trianogram, &puzzle.DisambiguateOptions{MaxEdits: 10})
	if err != nil {
		fmt.Fprintf(os.Stderr, "nonogram: %v\n", err)
		return exitUsage
	}
	if len(report.Edits) == 0 {
		fmt.Fprintf(os.Stderr, "No single-cell edit reduces the ambiguity.\n")
		return exitUnsolvable
	}
	fmt.Fprintf(os.Stderr, "Best edits (%d ambiguous cells, cache hit rate %.0f%%):\n",
		len(report.Unsolved), 100*report.CacheHitRate)
	for _, edit := range report.Edits {
		fmt.Fprintf(os.Stderr, "  recolor (%d,%d) to %s: resolves %d cells\n",
			edit.Row, edit.Col, summary.Palette[edit.Color].Name, edit.Resolved)
	}
	return exitOK
}

// printGrid writes the working grid to stdout, using ANSI colors
// when the palette maps onto the terminal's.
func printGrid(g *puzzle.Grid, pal puzzle.Palette) {
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			color, solved := g.Solved(r, c)
			if !solved {
				fmt.Print("?")
				continue
			}
			ci := pal[color]
			glyph := ci.Ch
			if glyph == "" {
				glyph = "?"
			}
			if name := terminalColorName(ci.RGB); name != "" {
				fmt.Print(ansi.FGColorName(name) + glyph + ansi.Clear)
			} else {
				fmt.Print(glyph)
			}
		}
		fmt.Println()
	}
}

// terminalColorName maps an RGB value onto the nearest basic
// terminal color, or "" when nothing is close enough to be
// honest.
func terminalColorName(rgb [3]byte) string {
	basics := []struct {
		name string
		rgb  [3]byte
	}{
		{"black", [3]byte{0, 0, 0}},
		{"red", [3]byte{255, 0, 0}},
		{"green", [3]byte{0, 255, 0}},
		{"yellow", [3]byte{255, 255, 0}},
		{"blue", [3]byte{0, 0, 255}},
		{"magenta", [3]byte{255, 0, 255}},
		{"cyan", [3]byte{0, 255, 255}},
		{"white", [3]byte{255, 255, 255}},
	}
	bestName, bestDist := "", 1<<31-1
	for _, basic := range basics {
		dist := 0
		for i := 0; i < 3; i++ {
			d := int(rgb[i]) - int(basic.rgb[i])
			dist += d * d
		}
		if dist < bestDist {
			bestName, bestDist = basic.name, dist
		}
	}
	if bestDist > 96*96 {
		return ""
	}
	return bestName
}

// traceReporter narrates the solve to stderr.
type traceReporter struct{}

func (traceReporter) Report(phase string, done, total int) {
	if total > 0 {
		fmt.Fprintf(os.Stderr, "%s %d/%d\n", phase, done, total)
	} else {
		fmt.Fprintf(os.Stderr, "%s %d\n", phase, done)
	}
}
