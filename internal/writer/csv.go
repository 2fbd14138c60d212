package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/retroenv/logicdecode/internal/annotation"
)

// Compile-time check to ensure CSV implements annotation.Sink.
var _ annotation.Sink = (*CSV)(nil)

// CSV writes annotations as start,end,class,label rows.
type CSV struct {
	writer  *csv.Writer
	options Options
	written int
}

// NewCSV creates a new CSV annotation writer and writes the header row.
func NewCSV(writer io.Writer, options Options) (*CSV, error) {
	c := &CSV{
		writer:  csv.NewWriter(writer),
		options: options,
	}
	if err := c.writer.Write([]string{"start", "end", "class", "label"}); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	return c, nil
}

// Put implements the annotation.Sink interface. The most verbose label
// variant is written, width selection is a text output concern.
func (c *CSV) Put(startSample, endSample int, ann annotation.Annotation) error {
	if c.options.filtered(ann.Class.String()) {
		return nil
	}

	label := ""
	if len(ann.Labels) > 0 {
		label = ann.Labels[0]
	}

	row := []string{
		strconv.Itoa(startSample),
		strconv.Itoa(endSample),
		ann.Class.String(),
		label,
	}
	if err := c.writer.Write(row); err != nil {
		return fmt.Errorf("writing CSV row: %w", err)
	}
	c.written++
	return nil
}

// Count returns the number of annotation rows written, after class filtering.
func (c *CSV) Count() int {
	return c.written
}

// Close flushes buffered rows.
func (c *CSV) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV output: %w", err)
	}
	return nil
}
