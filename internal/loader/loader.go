// Package loader handles capture file loading operations.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/logicdecode/internal/capture"
	"github.com/retroenv/logicdecode/internal/detector"
	"github.com/retroenv/logicdecode/internal/options"
	"github.com/retroenv/logicdecode/internal/session"
	"github.com/retroenv/logicdecode/internal/signal"
)

// defaultChannelCount is the classic full HD44780 hookup: rs, clk, the four
// high data bits, rw and the four low data bits.
const defaultChannelCount = 11

// Loader handles loading capture files from disk.
type Loader struct{}

// New creates a new capture loader.
func New() *Loader {
	return &Loader{}
}

// Load loads and parses a capture file in the given format. Channel names
// and the samplerate are taken from the session when one is present.
func (l *Loader) Load(opts options.Program, format detector.Format, sess *session.Session) (*capture.Capture, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	var capt *capture.Capture
	switch format {
	case detector.CSV:
		capt, err = loadCSV(file)
	default:
		capt, err = loadBinary(file, channelCount(opts, sess))
	}
	if err != nil {
		return nil, fmt.Errorf("loading capture: %w", err)
	}

	applySession(capt, sess)

	if err := capt.Validate(); err != nil {
		return nil, fmt.Errorf("validating capture: %w", err)
	}
	return capt, nil
}

// channelCount resolves the channel count of a raw binary capture, preferring
// an explicit option over the session channel list.
func channelCount(opts options.Program, sess *session.Session) int {
	if opts.Channels > 0 {
		return opts.Channels
	}
	if sess != nil && len(sess.Channels) > 0 {
		return len(sess.Channels)
	}
	return defaultChannelCount
}

// applySession overlays session metadata onto a loaded capture.
func applySession(capt *capture.Capture, sess *session.Session) {
	if sess == nil {
		return
	}
	capt.Samplerate = sess.Samplerate
	for i, name := range sess.Channels {
		if i >= len(capt.Channels) {
			break
		}
		capt.Channels[i].Name = name
	}
}

// loadBinary reads a raw logic capture: fixed-width little-endian frames of
// ceil(channels/8) bytes, one frame per sample point, channel j stored as
// bit j%8 of frame byte j/8.
func loadBinary(r io.Reader, channels int) (*capture.Capture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading capture data: %w", err)
	}

	frameWidth := (channels + 7) / 8
	if len(data)%frameWidth != 0 {
		return nil, fmt.Errorf("capture size %d is not a multiple of the frame width %d",
			len(data), frameWidth)
	}
	sampleCount := len(data) / frameWidth

	capt := &capture.Capture{
		Channels: make([]capture.Channel, channels),
	}
	for j := range capt.Channels {
		capt.Channels[j] = capture.Channel{
			Name:    fmt.Sprintf("ch%d", j),
			Samples: make([]signal.Level, sampleCount),
		}
	}

	for i := 0; i < sampleCount; i++ {
		frame := data[i*frameWidth : (i+1)*frameWidth]
		for j := 0; j < channels; j++ {
			if frame[j/8]&(1<<(j%8)) != 0 {
				capt.Channels[j].Samples[i] = signal.High
			}
		}
	}
	return capt, nil
}

// loadCSV reads a textual capture with one sample row per line. An optional
// header row names the channels. Cells that are not a plain 0 or 1 read as
// indeterminate.
func loadCSV(r io.Reader) (*capture.Capture, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV data: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("capture contains no rows")
	}

	capt := &capture.Capture{
		Channels: make([]capture.Channel, len(rows[0])),
	}

	start := 0
	if isHeaderRow(rows[0]) {
		for j, name := range rows[0] {
			capt.Channels[j].Name = name
		}
		start = 1
	} else {
		for j := range capt.Channels {
			capt.Channels[j].Name = fmt.Sprintf("ch%d", j)
		}
	}

	for i, row := range rows[start:] {
		if len(row) != len(capt.Channels) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d",
				start+i+1, len(row), len(capt.Channels))
		}
		for j, cell := range row {
			capt.Channels[j].Samples = append(capt.Channels[j].Samples, signal.ParseLevel(cell))
		}
	}
	return capt, nil
}

// isHeaderRow reports whether a CSV row holds channel names instead of
// sample levels.
func isHeaderRow(row []string) bool {
	for _, cell := range row {
		switch cell {
		case "0", "1", "x", "X", "-", "":
		default:
			return true
		}
	}
	return false
}
