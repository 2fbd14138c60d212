package capture

import (
	"fmt"
	"strconv"
	"strings"
)

// Unassigned marks a bus line role without a capture channel. The source
// reads such lines as indeterminate.
const Unassigned = -1

// Assignment maps the bus line roles of the decoder onto capture channel
// indices. The clock line is mandatory, all other roles are optional.
type Assignment struct {
	RS    int
	Clock int
	RW    int
	Bits  [8]int
}

// roleNames in the classic probe order of HD44780 hookups: the four high
// data bits directly after the control lines, since they are the only data
// lines wired in 4-bit mode setups.
var roleNames = []string{
	"rs", "clk", "bit4", "bit5", "bit6", "bit7", "rw", "bit0", "bit1", "bit2", "bit3",
}

// DefaultAssignment maps capture channels onto roles in the classic probe
// order, leaving roles beyond the available channel count unassigned.
func DefaultAssignment(channelCount int) Assignment {
	assignment := emptyAssignment()
	for i, role := range roleNames {
		if i >= channelCount {
			break
		}
		assignment.set(role, i)
	}
	return assignment
}

// ParseAssignment parses a role to channel mapping of the form
// "rs=0,clk=CLK,bit4=2". Channels are referenced by index or by name.
// Roles not mentioned stay unassigned.
func ParseAssignment(spec string, capture *Capture) (Assignment, error) {
	assignment := emptyAssignment()

	for _, pair := range strings.Split(spec, ",") {
		role, channel, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return assignment, fmt.Errorf("invalid channel assignment '%s'", pair)
		}

		index, err := resolveChannel(channel, capture)
		if err != nil {
			return assignment, err
		}

		if !assignment.set(strings.ToLower(role), index) {
			return assignment, fmt.Errorf("unknown bus line role '%s'", role)
		}
	}

	if assignment.Clock == Unassigned {
		return assignment, fmt.Errorf("channel assignment misses the clk line")
	}
	return assignment, nil
}

// Validate checks that all assigned channels exist in the capture and that
// the mandatory clock line is present.
func (a Assignment) Validate(capture *Capture) error {
	if a.Clock == Unassigned {
		return fmt.Errorf("no channel assigned to the clk line")
	}

	indices := append([]int{a.RS, a.Clock, a.RW}, a.Bits[:]...)
	for _, index := range indices {
		if index == Unassigned {
			continue
		}
		if index < 0 || index >= len(capture.Channels) {
			return fmt.Errorf("channel index %d out of range, capture has %d channels",
				index, len(capture.Channels))
		}
	}
	return nil
}

func emptyAssignment() Assignment {
	assignment := Assignment{
		RS:    Unassigned,
		Clock: Unassigned,
		RW:    Unassigned,
	}
	for i := range assignment.Bits {
		assignment.Bits[i] = Unassigned
	}
	return assignment
}

// set assigns a channel index to a role name, returning false for unknown roles.
func (a *Assignment) set(role string, index int) bool {
	switch role {
	case "rs":
		a.RS = index
	case "clk":
		a.Clock = index
	case "rw":
		a.RW = index
	default:
		if !strings.HasPrefix(role, "bit") {
			return false
		}
		bit, err := strconv.Atoi(role[3:])
		if err != nil || bit < 0 || bit > 7 {
			return false
		}
		a.Bits[bit] = index
	}
	return true
}

func resolveChannel(channel string, capture *Capture) (int, error) {
	if index, err := strconv.Atoi(channel); err == nil {
		return index, nil
	}
	if capture != nil {
		if index, ok := capture.ChannelIndex(channel); ok {
			return index, nil
		}
	}
	return 0, fmt.Errorf("unknown capture channel '%s'", channel)
}
