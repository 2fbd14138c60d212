// Package capture holds in-memory logic analyzer captures and maps their
// channels onto the named bus lines of a protocol decoder.
package capture

import (
	"fmt"

	"github.com/retroenv/logicdecode/internal/signal"
)

// Channel is one named digital line of a capture.
type Channel struct {
	Name    string
	Samples []signal.Level
}

// Capture is a set of digital channels of equal length, sampled at a common
// rate. The samplerate is informational and does not affect decoding.
type Capture struct {
	Channels   []Channel
	Samplerate int
}

// Length returns the number of sample points in the capture.
func (c *Capture) Length() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0].Samples)
}

// Validate checks that the capture has at least one channel and that all
// channels carry the same number of samples.
func (c *Capture) Validate() error {
	if len(c.Channels) == 0 {
		return fmt.Errorf("capture has no channels")
	}

	length := len(c.Channels[0].Samples)
	for _, channel := range c.Channels[1:] {
		if len(channel.Samples) != length {
			return fmt.Errorf("channel '%s' has %d samples, expected %d",
				channel.Name, len(channel.Samples), length)
		}
	}
	return nil
}

// ChannelIndex returns the index of the channel with the given name.
func (c *Capture) ChannelIndex(name string) (int, bool) {
	for i, channel := range c.Channels {
		if channel.Name == name {
			return i, true
		}
	}
	return 0, false
}
