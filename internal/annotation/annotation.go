// Package annotation defines the classified, timestamped output records of a decoder.
package annotation

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// Class identifies the semantic category of a decoded transaction.
type Class uint8

// Transaction classes of the HD44780 protocol, in the classic annotation
// table order. ControllerState is part of the table but never emitted.
const (
	ClearDisplay Class = iota
	ReturnHome
	EntryModeSet
	DisplayControl
	DisplayShift
	FunctionSet
	SetCGRAMAddress
	SetDDRAMAddress
	ReadBusyFlagAndAddressCounter
	MemoryWrite
	MemoryRead
	ControllerState
	Warning
)

var classIDs = [...]string{
	ClearDisplay:                  "clear",
	ReturnHome:                    "home",
	EntryModeSet:                  "entry_mode",
	DisplayControl:                "display_control",
	DisplayShift:                  "display_shift",
	FunctionSet:                   "function_set",
	SetCGRAMAddress:               "set_cgram_addr",
	SetDDRAMAddress:               "set_ddram_addr",
	ReadBusyFlagAndAddressCounter: "read_bf_ac",
	MemoryWrite:                   "mem_write",
	MemoryRead:                    "mem_read",
	ControllerState:               "state",
	Warning:                       "warning",
}

var classDescriptions = [...]string{
	ClearDisplay:                  "Clear display",
	ReturnHome:                    "Cursor home",
	EntryModeSet:                  "Entry mode",
	DisplayControl:                "Display control",
	DisplayShift:                  "Display shift",
	FunctionSet:                   "Function set",
	SetCGRAMAddress:               "Set CGRAM address",
	SetDDRAMAddress:               "Set DDRAM address",
	ReadBusyFlagAndAddressCounter: "Read busy flag and address counter",
	MemoryWrite:                   "Write to CGRAM or DDRAM",
	MemoryRead:                    "Read from CGRAM or DDRAM",
	ControllerState:               "Controller state",
	Warning:                       "Warning",
}

// String returns the short class identifier used in filters and CSV output.
func (c Class) String() string {
	if int(c) >= len(classIDs) {
		return fmt.Sprintf("class_%d", uint8(c))
	}
	return classIDs[c]
}

// Description returns the human-readable class description. The decoder uses
// it as the most verbose label variant and its first character as the
// single-character variant.
func (c Class) Description() string {
	if int(c) >= len(classDescriptions) {
		return c.String()
	}
	return classDescriptions[c]
}

// Annotation is one classified transaction with its label variants, ordered
// from most to least verbose, the last being a single-character form. A
// downstream renderer picks the variant that fits its display width.
type Annotation struct {
	Class  Class
	Labels []string
}

// Record is an Annotation bound to its sample range.
type Record struct {
	Start int
	End   int
	Annotation
}

// Sink consumes annotations in transaction completion order, which is
// non-decreasing in the start sample index.
type Sink interface {
	Put(startSample, endSample int, ann Annotation) error
}

// Recorder is a Sink that buffers all records in memory.
type Recorder struct {
	Records []Record
}

// Put implements the Sink interface.
func (r *Recorder) Put(startSample, endSample int, ann Annotation) error {
	r.Records = append(r.Records, Record{
		Start:      startSample,
		End:        endSample,
		Annotation: ann,
	})
	return nil
}

// ParseClasses parses a comma-separated list of class identifiers into a
// filter set. An empty input returns an empty set, meaning no filtering.
func ParseClasses(s string) (set.Set[string], error) {
	classes := set.New[string]()
	if s == "" {
		return classes, nil
	}

	for _, id := range strings.Split(s, ",") {
		id = strings.TrimSpace(id)
		if !validClassID(id) {
			return nil, fmt.Errorf("unknown annotation class '%s'", id)
		}
		classes[id] = struct{}{}
	}
	return classes, nil
}

func validClassID(id string) bool {
	for _, known := range classIDs {
		if id == known {
			return true
		}
	}
	return false
}
