// Package detector handles capture file format detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/logicdecode/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Format identifies a capture file format.
type Format string

const (
	// Binary is a raw logic capture with fixed-width sample frames.
	Binary Format = "binary"
	// CSV is a textual capture with one sample row per line.
	CSV Format = "csv"
)

// FormatFromString converts an explicit format option value.
func FormatFromString(s string) (Format, bool) {
	switch Format(strings.ToLower(s)) {
	case Binary:
		return Binary, true
	case CSV:
		return CSV, true
	default:
		return "", false
	}
}

// Detector handles capture format detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new capture format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the capture format from options or file auto-detection.
// It first checks if a format is explicitly specified in options, otherwise
// attempts to detect the format from the input filename extension.
func (d *Detector) Detect(opts options.Program) Format {
	format, ok := FormatFromString(opts.Format)
	if !ok {
		format = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected capture format",
			log.String("format", string(format)),
			log.String("file", opts.Input))
	}
	return format
}

// detectFromFile determines the capture format based on file extension.
func (d *Detector) detectFromFile(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return CSV
	default:
		// raw binary for .bin, .raw, .logic and unknown extensions
		return Binary
	}
}
