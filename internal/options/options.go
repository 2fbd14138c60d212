// Package options contains the program options.
package options

import (
	"strings"
)

// Parameters contains file path options.
type Parameters struct {
	Input   string // capture file to decode
	Output  string // output file, stdout if empty
	Batch   string // glob pattern for batch processing
	Session string // session sidecar file describing the capture
}

// Flags contains behavior options.
type Flags struct {
	Format   string // capture file format, auto-detected if empty
	Protocol string // protocol decoder to use
	Mode     string // initial bus width mode: 8bit or 4bit
	Assign   string // channel assignment override, e.g. "rs=0,clk=CLK"
	Channels int    // channel count for raw binary captures
	Classes  string // annotation class filter, comma separated
	Width    int    // display width for label selection, 0 = auto
	Color    string // warning coloring: auto, always, never
	CSVOut   bool   // write annotations as CSV instead of text rows
	Time     bool   // add a time column derived from the samplerate
	Debug    bool   // enable debug logging
	Quiet    bool   // perform operations quietly
}

// Program options of the decoder tool.
type Program struct {
	Parameters
	Flags
}

// Decode defines options to control the protocol decoder.
type Decode struct {
	Protocol string // protocol identifier
	Mode     string // initial bus width mode option value
}

// NewDecode returns a new options instance with default options.
func NewDecode(protocol, mode string) Decode {
	return Decode{
		Protocol: strings.ToLower(protocol),
		Mode:     strings.ToLower(mode),
	}
}
