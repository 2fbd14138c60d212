package fileprocessor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/logicdecode/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "capture.annotations.txt", GenerateOutputFilename("capture.bin", false))
	assert.Equal(t, "capture.annotations.csv", GenerateOutputFilename("capture.bin", true))
	assert.Equal(t, "dir/trace.annotations.txt", GenerateOutputFilename("dir/trace.csv", false))
}

func TestGetFilesToProcess(t *testing.T) {
	t.Run("single input file", func(t *testing.T) {
		opts := &options.Program{}
		opts.Input = "capture.csv"

		files, err := GetFilesToProcess(opts)
		assert.NoError(t, err)
		assert.Len(t, files, 1)
		assert.Equal(t, "capture.csv", files[0])
	})

	t.Run("batch pattern", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("0\n"), 0o644))
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("0\n"), 0o644))

		opts := &options.Program{}
		opts.Batch = filepath.Join(dir, "*.csv")

		files, err := GetFilesToProcess(opts)
		assert.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("batch pattern without matches", func(t *testing.T) {
		opts := &options.Program{}
		opts.Batch = filepath.Join(t.TempDir(), "*.csv")

		_, err := GetFilesToProcess(opts)
		assert.ErrorContains(t, err, "no files matched the batch pattern")
	})
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "capture.csv")
	content := "rs,clk,bit0\n0,1,1\n0,0,1\n0,1,1\n"
	assert.NoError(t, os.WriteFile(input, []byte(content), 0o644))

	output := filepath.Join(dir, "out.txt")

	var opts options.Program
	opts.Input = input
	opts.Output = output
	opts.Protocol = "hd44780"
	opts.Assign = "rs=0,clk=1,bit0=2"
	opts.Color = "never"
	opts.Quiet = true

	decodeOpts := options.NewDecode("hd44780", "8bit")
	logger := log.NewTestLogger(t)

	assert.NoError(t, ProcessFile(context.Background(), logger, opts, decodeOpts))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Clear display"))
}
