// Package protocol defines the contracts between a protocol decoder and its
// sample source and annotation sink collaborators.
package protocol

import (
	"github.com/retroenv/logicdecode/internal/annotation"
	"github.com/retroenv/logicdecode/internal/signal"
)

// Edge is a clock line transition direction.
type Edge uint8

const (
	// FallingEdge is a high to low transition.
	FallingEdge Edge = iota
	// RisingEdge is a low to high transition.
	RisingEdge
)

// String implements fmt.Stringer.
func (e Edge) String() string {
	if e == FallingEdge {
		return "falling"
	}
	return "rising"
}

// SampleSource supplies pin vector samples at clock line transitions.
// The blocking wait primitive is the only way a decoder advances through
// the capture; there is no other control path.
type SampleSource interface {
	// WaitClock blocks until the clock line performs a transition matching
	// the requested edge direction and returns the pin vector at that sample
	// point. It returns io.EOF once the capture is exhausted.
	WaitClock(edge Edge) (signal.Sample, error)

	// SampleIndex returns the index of the current sample point. It is
	// monotonically increasing and used for annotation timestamps.
	SampleIndex() int
}

// Decoder decodes a sample stream into annotations.
type Decoder interface {
	// Name returns the protocol identifier of the decoder.
	Name() string

	// Run decodes the full sample stream, emitting one annotation per
	// completed transaction. It returns nil once the source is exhausted.
	Run(src SampleSource, sink annotation.Sink) error
}
