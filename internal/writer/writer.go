// Package writer implements the annotation output sinks.
package writer

import (
	"os"

	"github.com/retroenv/retrogolib/set"
	"golang.org/x/term"
)

// Options of the annotation writers.
type Options struct {
	DecoderName string          // protocol identifier printed in text rows
	Width       int             // display width for label selection, 0 = unlimited
	Samplerate  int             // samples per second, enables the time column if > 0
	Time        bool            // prefix rows with a time range instead of sample indices
	Color       bool            // style warning rows with ANSI colors
	Classes     set.Set[string] // class filter, empty = all classes
}

// DetectWidth returns the terminal width when stdout is a terminal, 0
// otherwise. A width of 0 selects the most verbose label variant.
func DetectWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// pickLabel selects the most verbose label variant that fits the available
// width. The label list is ordered from most to least verbose, the last
// variant being a single character, so the last one wins if nothing fits.
func pickLabel(labels []string, width int) string {
	if len(labels) == 0 {
		return ""
	}
	if width <= 0 {
		return labels[0]
	}
	for _, label := range labels {
		if len(label) <= width {
			return label
		}
	}
	return labels[len(labels)-1]
}

// filtered reports whether an annotation class is suppressed by the filter.
func (o Options) filtered(classID string) bool {
	if len(o.Classes) == 0 {
		return false
	}
	_, ok := o.Classes[classID]
	return !ok
}
