// Package signal defines the digital line states and pin vectors of a logic capture.
package signal

// Level is the state of a single digital line at one sample point.
type Level uint8

const (
	// Low is a logical 0.
	Low Level = iota
	// High is a logical 1.
	High
	// Indeterminate marks a line that carries no usable state, for example
	// an unassigned or floating channel.
	Indeterminate
)

// String implements fmt.Stringer, using the common logic analyzer notation.
func (l Level) String() string {
	switch l {
	case Low:
		return "0"
	case High:
		return "1"
	default:
		return "x"
	}
}

// ParseLevel converts a capture file cell into a line level.
// Anything that is not a plain 0 or 1 reads as Indeterminate.
func ParseLevel(s string) Level {
	switch s {
	case "0":
		return Low
	case "1":
		return High
	default:
		return Indeterminate
	}
}

// Sample is the pin vector of an HD44780 style parallel bus at one sample
// point. Lines are named fields instead of positional indices to avoid
// index mixups between capture channel order and bus bit order.
type Sample struct {
	RS    Level // register select: command or memory interface
	Clock Level // enable/clock line, transactions are driven by its edges
	RW    Level // read/write select
	Data  [8]Level
}
