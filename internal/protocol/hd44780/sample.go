package hd44780

import (
	"github.com/retroenv/logicdecode/internal/signal"
)

// dataByte packs the 8 data lines of a pin vector into a byte, reading the
// bits in increasing index order least-significant-bit first. Any line that
// does not carry a defined high level reads as 0.
func dataByte(sample signal.Sample) uint8 {
	var value uint8
	for i, level := range sample.Data {
		if level == signal.High {
			value |= 1 << i
		}
	}
	return value
}
