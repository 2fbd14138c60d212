package hd44780

import (
	"io"

	"github.com/retroenv/logicdecode/internal/protocol"
	"github.com/retroenv/logicdecode/internal/signal"
)

// clockStep is one scripted clock transition of the mock sample source.
type clockStep struct {
	edge   protocol.Edge
	index  int
	sample signal.Sample
}

// mockSource replays a scripted sequence of clock transitions.
type mockSource struct {
	steps []clockStep
	pos   int
	index int
}

func newMockSource(steps ...clockStep) *mockSource {
	return &mockSource{steps: steps}
}

func (m *mockSource) WaitClock(edge protocol.Edge) (signal.Sample, error) {
	for m.pos < len(m.steps) {
		step := m.steps[m.pos]
		m.pos++
		m.index = step.index
		if step.edge == edge {
			return step.sample, nil
		}
	}
	return signal.Sample{}, io.EOF
}

func (m *mockSource) SampleIndex() int {
	return m.index
}

func (m *mockSource) reset() {
	m.pos = 0
	m.index = 0
}

// commandSample builds a pin vector holding the given byte on the data lines
// with RS and RW both low.
func commandSample(value uint8) signal.Sample {
	var sample signal.Sample
	for i := 0; i < 8; i++ {
		if value&(1<<i) != 0 {
			sample.Data[i] = signal.High
		}
	}
	return sample
}

// dataSample builds a pin vector addressing the memory interface.
func dataSample(value uint8) signal.Sample {
	sample := commandSample(value)
	sample.RS = signal.High
	return sample
}

// falling and rising build scripted clock transitions.
func falling(index int, sample signal.Sample) clockStep {
	return clockStep{edge: protocol.FallingEdge, index: index, sample: sample}
}

func rising(index int, sample signal.Sample) clockStep {
	return clockStep{edge: protocol.RisingEdge, index: index, sample: sample}
}
