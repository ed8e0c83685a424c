package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/seitarof/gen-hints/internal/generator"
	"github.com/seitarof/gen-hints/internal/hint"
)

type summary struct {
	roots   int
	visited int
	counts  map[hint.Kind]int
	output  string
	format  string
}

func printSummary(w io.Writer, s summary, noColor bool) {
	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)
	if noColor {
		bold.DisableColor()
		gray.DisableColor()
		green.DisableColor()
	}

	target := s.output
	if target == generator.Stdout {
		target = "stdout"
	}
	bold.Fprintf(w, "gen-hints: %d roots, %d types and annotations visited\n", s.roots, s.visited)
	for _, kind := range []hint.Kind{hint.KindBuildTime, hint.KindResource, hint.KindReflection, hint.KindProxy} {
		gray.Fprintf(w, "  %-15s", kind)
		fmt.Fprintf(w, "%d\n", s.counts[kind])
	}
	green.Fprintf(w, "wrote %s (%s)\n", target, s.format)
}
