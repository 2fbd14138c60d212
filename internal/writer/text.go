package writer

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/retroenv/logicdecode/internal/annotation"
)

// Compile-time check to ensure Text implements annotation.Sink.
var _ annotation.Sink = (*Text)(nil)

// Text writes annotations as plain text rows in the form
// `<start>-<end> <decoder>-1: "<label>"`.
type Text struct {
	writer  io.Writer
	options Options
	profile termenv.Profile
	written int

	// label column budget, derived once from the display width
	labelWidth int
}

// NewText creates a new text annotation writer.
func NewText(writer io.Writer, options Options) *Text {
	t := &Text{
		writer:  writer,
		options: options,
		profile: termenv.Ascii,
	}
	if options.Color {
		t.profile = termenv.ColorProfile()
	}
	if options.Width > 0 {
		// row prefix of sample indices and decoder name, measured generously
		t.labelWidth = options.Width - len(options.DecoderName) - 24
		if t.labelWidth < 1 {
			t.labelWidth = 1
		}
	}
	return t
}

// Put implements the annotation.Sink interface.
func (t *Text) Put(startSample, endSample int, ann annotation.Annotation) error {
	if t.options.filtered(ann.Class.String()) {
		return nil
	}

	label := pickLabel(ann.Labels, t.labelWidth)
	row := fmt.Sprintf("%s %s-1: %q", t.timestamps(startSample, endSample),
		t.options.DecoderName, label)

	if t.options.Color && ann.Class == annotation.Warning {
		row = termenv.String(row).Foreground(t.profile.Color("1")).String()
	}

	if _, err := fmt.Fprintln(t.writer, row); err != nil {
		return fmt.Errorf("writing annotation row: %w", err)
	}
	t.written++
	return nil
}

// Count returns the number of annotation rows written, after class filtering.
func (t *Text) Count() int {
	return t.written
}

// timestamps formats the sample range, as seconds when the time column is
// enabled and the samplerate is known.
func (t *Text) timestamps(startSample, endSample int) string {
	if t.options.Time && t.options.Samplerate > 0 {
		rate := float64(t.options.Samplerate)
		return fmt.Sprintf("%.6f-%.6f", float64(startSample)/rate, float64(endSample)/rate)
	}
	return fmt.Sprintf("%d-%d", startSample, endSample)
}
