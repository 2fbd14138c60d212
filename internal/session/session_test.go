package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

const testSession = `
channels:
  - RS
  - CLK
  - BIT_4
samplerate: 1000000
protocol: hd44780
mode: 4bit
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(testSession), 0o644))

	sess, err := Load(path)
	assert.NoError(t, err)
	assert.Len(t, sess.Channels, 3)
	assert.Equal(t, "CLK", sess.Channels[1])
	assert.Equal(t, 1000000, sess.Samplerate)
	assert.Equal(t, "hd44780", sess.Protocol)
	assert.Equal(t, "4bit", sess.Mode)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading session file")

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("channels: {"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "parsing session file")
}

func TestLoadSidecar(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "capture.bin")

	sess, err := LoadSidecar("", input)
	assert.NoError(t, err)
	assert.Nil(t, sess)

	assert.NoError(t, os.WriteFile(input+".yaml", []byte("mode: 8bit"), 0o644))
	sess, err = LoadSidecar("", input)
	assert.NoError(t, err)
	assert.NotNil(t, sess)
	assert.Equal(t, "8bit", sess.Mode)

	explicit := filepath.Join(dir, "other.yaml")
	assert.NoError(t, os.WriteFile(explicit, []byte("mode: 4bit"), 0o644))
	sess, err = LoadSidecar(explicit, input)
	assert.NoError(t, err)
	assert.Equal(t, "4bit", sess.Mode)
}
