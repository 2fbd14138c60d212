package capture

import (
	"fmt"
	"io"

	"github.com/retroenv/logicdecode/internal/protocol"
	"github.com/retroenv/logicdecode/internal/signal"
)

// Compile-time check to ensure Source implements protocol.SampleSource.
var _ protocol.SampleSource = (*Source)(nil)

// Source feeds a decoder from an in-memory capture, scanning the assigned
// clock channel for edges.
type Source struct {
	capture    *Capture
	assignment Assignment
	pos        int
}

// NewSource creates a sample source over a capture with the given channel
// assignment.
func NewSource(capture *Capture, assignment Assignment) (*Source, error) {
	if err := capture.Validate(); err != nil {
		return nil, fmt.Errorf("validating capture: %w", err)
	}
	if err := assignment.Validate(capture); err != nil {
		return nil, fmt.Errorf("validating channel assignment: %w", err)
	}

	return &Source{
		capture:    capture,
		assignment: assignment,
	}, nil
}

// WaitClock advances to the next matching clock edge and returns the pin
// vector at that sample point. It returns io.EOF once the capture is
// exhausted.
func (s *Source) WaitClock(edge protocol.Edge) (signal.Sample, error) {
	clock := s.capture.Channels[s.assignment.Clock].Samples

	for i := s.pos + 1; i < len(clock); i++ {
		previous, current := clock[i-1], clock[i]

		var match bool
		switch edge {
		case protocol.FallingEdge:
			match = previous == signal.High && current == signal.Low
		case protocol.RisingEdge:
			match = previous == signal.Low && current == signal.High
		}

		if match {
			s.pos = i
			return s.sampleAt(i), nil
		}
	}

	s.pos = len(clock)
	return signal.Sample{}, io.EOF
}

// SampleIndex returns the index of the current sample point.
func (s *Source) SampleIndex() int {
	return s.pos
}

// Reset rewinds the source to the start of the capture.
func (s *Source) Reset() {
	s.pos = 0
}

// sampleAt builds the pin vector at a sample point. Unassigned lines read
// as indeterminate.
func (s *Source) sampleAt(index int) signal.Sample {
	sample := signal.Sample{
		RS:    s.level(s.assignment.RS, index),
		Clock: s.level(s.assignment.Clock, index),
		RW:    s.level(s.assignment.RW, index),
	}
	for bit, channel := range s.assignment.Bits {
		sample.Data[bit] = s.level(channel, index)
	}
	return sample
}

func (s *Source) level(channel, index int) signal.Level {
	if channel == Unassigned {
		return signal.Indeterminate
	}
	return s.capture.Channels[channel].Samples[index]
}
