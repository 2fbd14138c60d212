package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/logicdecode/internal/detector"
	"github.com/retroenv/logicdecode/internal/options"
	"github.com/retroenv/logicdecode/internal/session"
	"github.com/retroenv/logicdecode/internal/signal"
	"github.com/retroenv/retrogolib/assert"
)

func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadBinary(t *testing.T) {
	// 3 channels fit into 1-byte frames: ch0 = bit 0, ch1 = bit 1, ch2 = bit 2
	data := []byte{0b00000010, 0b00000101, 0b00000000}
	path := writeTestFile(t, "capture.bin", data)

	opts := options.Program{}
	opts.Input = path
	opts.Channels = 3

	capt, err := New().Load(opts, detector.Binary, nil)
	assert.NoError(t, err)
	assert.Len(t, capt.Channels, 3)
	assert.Equal(t, 3, capt.Length())
	assert.Equal(t, "ch0", capt.Channels[0].Name)

	assert.Equal(t, signal.Low, capt.Channels[0].Samples[0])
	assert.Equal(t, signal.High, capt.Channels[1].Samples[0])
	assert.Equal(t, signal.High, capt.Channels[0].Samples[1])
	assert.Equal(t, signal.High, capt.Channels[2].Samples[1])
	assert.Equal(t, signal.Low, capt.Channels[1].Samples[2])
}

func TestLoadBinaryMultiByteFrames(t *testing.T) {
	// 11 channels use 2-byte little-endian frames, channel 8 = bit 0 of byte 1
	data := []byte{0x01, 0x01, 0x00, 0x04}
	path := writeTestFile(t, "capture.raw", data)

	opts := options.Program{}
	opts.Input = path

	capt, err := New().Load(opts, detector.Binary, nil)
	assert.NoError(t, err)
	assert.Len(t, capt.Channels, 11)
	assert.Equal(t, 2, capt.Length())
	assert.Equal(t, signal.High, capt.Channels[0].Samples[0])
	assert.Equal(t, signal.High, capt.Channels[8].Samples[0])
	assert.Equal(t, signal.Low, capt.Channels[8].Samples[1])
	assert.Equal(t, signal.High, capt.Channels[10].Samples[1])
}

func TestLoadBinaryFrameSizeMismatch(t *testing.T) {
	path := writeTestFile(t, "capture.bin", []byte{0x00, 0x01, 0x02})

	opts := options.Program{}
	opts.Input = path
	opts.Channels = 11 // 2-byte frames, 3 bytes is not a multiple

	_, err := New().Load(opts, detector.Binary, nil)
	assert.ErrorContains(t, err, "not a multiple of the frame width")
}

func TestLoadCSVWithHeader(t *testing.T) {
	content := "RS,CLK,BIT_4\n0,1,1\n0,0,x\n"
	path := writeTestFile(t, "capture.csv", []byte(content))

	opts := options.Program{}
	opts.Input = path

	capt, err := New().Load(opts, detector.CSV, nil)
	assert.NoError(t, err)
	assert.Len(t, capt.Channels, 3)
	assert.Equal(t, "CLK", capt.Channels[1].Name)
	assert.Equal(t, 2, capt.Length())
	assert.Equal(t, signal.High, capt.Channels[1].Samples[0])
	assert.Equal(t, signal.Low, capt.Channels[1].Samples[1])
	assert.Equal(t, signal.Indeterminate, capt.Channels[2].Samples[1])
}

func TestLoadCSVWithoutHeader(t *testing.T) {
	content := "0,1\n1,0\n"
	path := writeTestFile(t, "capture.csv", []byte(content))

	opts := options.Program{}
	opts.Input = path

	capt, err := New().Load(opts, detector.CSV, nil)
	assert.NoError(t, err)
	assert.Len(t, capt.Channels, 2)
	assert.Equal(t, "ch0", capt.Channels[0].Name)
	assert.Equal(t, 2, capt.Length())
}

func TestLoadAppliesSession(t *testing.T) {
	data := []byte{0x00, 0x01}
	path := writeTestFile(t, "capture.bin", data)

	opts := options.Program{}
	opts.Input = path

	sess := &session.Session{
		Channels:   []string{"RS", "CLK"},
		Samplerate: 500000,
	}

	capt, err := New().Load(opts, detector.Binary, sess)
	assert.NoError(t, err)
	assert.Len(t, capt.Channels, 2)
	assert.Equal(t, "RS", capt.Channels[0].Name)
	assert.Equal(t, "CLK", capt.Channels[1].Name)
	assert.Equal(t, 500000, capt.Samplerate)
}

func TestLoadMissingFile(t *testing.T) {
	opts := options.Program{}
	opts.Input = filepath.Join(t.TempDir(), "missing.bin")

	_, err := New().Load(opts, detector.Binary, nil)
	assert.ErrorContains(t, err, "opening file")
}
