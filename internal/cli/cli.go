// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/logicdecode/internal/detector"
	"github.com/retroenv/logicdecode/internal/options"
)

// ParseFlags parses command line flags and returns program and decoder options
func ParseFlags() (options.Program, options.Decode, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, options.Decode{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Decode{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Decode{}, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	return opts, options.NewDecode(opts.Protocol, opts.Mode), nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: logicdecode [options] <capture file to decode>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after capture file to decode, please pass the capture file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Protocol = strings.ToLower(opts.Protocol)
	if opts.Protocol != "hd44780" {
		return fmt.Errorf("unsupported protocol: %s. Valid options: hd44780", opts.Protocol)
	}

	opts.Mode = strings.ToLower(opts.Mode)
	if opts.Mode != "" && opts.Mode != "8bit" && opts.Mode != "4bit" {
		return fmt.Errorf("unsupported bus width mode: %s. Valid options: 8bit, 4bit", opts.Mode)
	}

	if opts.Format != "" {
		if _, ok := detector.FormatFromString(opts.Format); !ok {
			return fmt.Errorf("unsupported capture format: %s. Valid options: binary, csv", opts.Format)
		}
	}

	opts.Color = strings.ToLower(opts.Color)
	switch opts.Color {
	case "auto", "always", "never":
		return nil
	}
	return fmt.Errorf("unsupported color setting: %s. Valid options: auto, always, never", opts.Color)
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input capture file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask with automatic output file naming, for example *.csv")
	flags.StringVar(&opts.Session, "session", "", "session file describing the capture, defaults to <input>.yaml if present")
	flags.StringVar(&opts.Protocol, "p", "hd44780", "protocol to decode (hd44780)")
	flags.StringVar(&opts.Mode, "mode", "", "initial bus width mode (8bit/4bit), default 8bit or the session file setting")
	flags.StringVar(&opts.Format, "f", "", "capture file format (binary/csv) - if not auto-detected from file extension")
	flags.StringVar(&opts.Assign, "assign", "", "channel assignment override, for example rs=0,clk=CLK,bit4=2")
	flags.IntVar(&opts.Channels, "channels", 0, "channel count for raw binary captures, taken from the session file if not set")
	flags.StringVar(&opts.Classes, "classes", "", "comma separated annotation classes to output, all if not set")
	flags.IntVar(&opts.Width, "w", 0, "display width for annotation label selection, terminal width if not set")
	flags.StringVar(&opts.Color, "color", "auto", "color warning annotations (auto/always/never)")
	flags.BoolVar(&opts.CSVOut, "csv", false, "write annotations as CSV instead of text rows")
	flags.BoolVar(&opts.Time, "time", false, "show annotation ranges as seconds, requires a samplerate in the session file")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
