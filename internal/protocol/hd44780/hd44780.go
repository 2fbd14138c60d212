// Package hd44780 decodes the parallel bus protocol of Hitachi HD44780 class
// LCD controllers. The controller latches commands and memory accesses on the
// enable line: data lines are stable while the clock is asserted, so the
// decoder samples at the falling edge and closes each transaction at the
// following rising edge. A byte arrives in a single clock cycle in 8-bit mode
// or as two nibbles across two cycles in 4-bit mode.
package hd44780

import (
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/logicdecode/internal/annotation"
	"github.com/retroenv/logicdecode/internal/protocol"
	"github.com/retroenv/logicdecode/internal/signal"
	"github.com/retroenv/retrogolib/log"
)

// Mode is the bus width state of the transaction state machine.
type Mode uint8

const (
	// EightBit transfers a full byte per clock cycle.
	EightBit Mode = iota
	// FourBitFirstNibble awaits the first half of a 4-bit mode transfer.
	FourBitFirstNibble
	// FourBitSecondNibble awaits the second half of a 4-bit mode transfer.
	FourBitSecondNibble
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case EightBit:
		return "8bit"
	case FourBitFirstNibble:
		return "4bit_first_nibble"
	case FourBitSecondNibble:
		return "4bit_second_nibble"
	default:
		return fmt.Sprintf("mode_%d", uint8(m))
	}
}

// ParseMode converts the bus width option value into the initial state.
func ParseMode(option string) (Mode, error) {
	switch option {
	case "8bit":
		return EightBit, nil
	case "4bit":
		return FourBitFirstNibble, nil
	default:
		return 0, fmt.Errorf("unsupported bus width mode '%s'", option)
	}
}

// Compile-time check to ensure Decoder implements protocol.Decoder.
var _ protocol.Decoder = (*Decoder)(nil)

// Decoder is the HD44780 protocol decoder.
type Decoder struct {
	logger      *log.Logger
	initialMode Mode
}

// New creates a new HD44780 decoder starting in the given bus width mode.
func New(logger *log.Logger, initialMode Mode) *Decoder {
	return &Decoder{
		logger:      logger,
		initialMode: initialMode,
	}
}

// Name returns the protocol identifier of the decoder.
func (d *Decoder) Name() string {
	return "hd44780"
}

// Run decodes the full sample stream. Each iteration waits for the clock
// falling edge, advances the bus width state machine and, once a byte is
// complete, classifies it and emits the annotation after the closing rising
// edge. The loop ends when the sample source is exhausted.
func (d *Decoder) Run(src protocol.SampleSource, sink annotation.Sink) error {
	mode := d.initialMode
	var pendingNibble uint8
	var startSample int

	for {
		sample, err := src.WaitClock(protocol.FallingEdge)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("waiting for falling clock edge: %w", err)
		}

		var value uint8
		switch mode {
		case EightBit:
			startSample = src.SampleIndex()
			value = dataByte(sample)

		case FourBitFirstNibble:
			startSample = src.SampleIndex()
			pendingNibble = dataByte(sample) & 0x0f
			mode = FourBitSecondNibble
			if done, err := d.waitRisingEdge(src); done || err != nil {
				return err
			}
			continue

		case FourBitSecondNibble:
			// high nibble of the second sample, combined by addition with
			// the pending low nibble for output compatibility
			value = dataByte(sample)>>4 + pendingNibble
			mode = FourBitFirstNibble

		default:
			if done, err := d.waitRisingEdge(src); done || err != nil {
				return err
			}
			continue
		}

		var ann annotation.Annotation
		ann, mode = d.classify(sample, value, mode)

		if done, err := d.waitRisingEdge(src); done || err != nil {
			return err
		}
		endSample := src.SampleIndex()

		if err := sink.Put(startSample, endSample, ann); err != nil {
			return fmt.Errorf("emitting annotation: %w", err)
		}
	}
}

// waitRisingEdge closes out the current clock cycle. It reports done when the
// sample source is exhausted, which ends the decode loop without an error.
func (d *Decoder) waitRisingEdge(src protocol.SampleSource) (bool, error) {
	if _, err := src.WaitClock(protocol.RisingEdge); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return false, fmt.Errorf("waiting for rising clock edge: %w", err)
	}
	return false, nil
}

// classify selects one of the four transaction categories based on the
// register select and read/write lines of the byte completing sample and
// returns the resulting annotation together with the possibly changed bus
// width state.
func (d *Decoder) classify(sample signal.Sample, value uint8, mode Mode) (annotation.Annotation, Mode) {
	if sample.RS == signal.Low { // command register
		if sample.RW == signal.High { // read
			// busy flag and address counter contents are not decoded
			return basicAnnotation(annotation.ReadBusyFlagAndAddressCounter), mode
		}
		return d.decodeWriteCommand(value, mode)
	}

	if sample.RW == signal.High { // memory read
		return annotation.Annotation{
			Class:  annotation.MemoryRead,
			Labels: []string{"Read: <not implemented>"},
		}, mode
	}

	return annotation.Annotation{
		Class: annotation.MemoryWrite,
		Labels: []string{
			fmt.Sprintf("Write: 0x%x, '%c'", value, value),
			fmt.Sprintf("'%c'", value),
		},
	}, mode
}
