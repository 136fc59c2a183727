package thumbnail

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"classcast/pkg/logger"

	"github.com/stretchr/testify/assert"
)

// writeStub installs a shell script standing in for the ffmpeg binary.
func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755)
	assert.NoError(t, err)
	return path
}

func TestGenerate_WritesFrame(t *testing.T) {
	// The output path is the last argument
	bin := writeStub(t, `for out in "$@"; do :; done; printf jpeg-data > "$out"`)
	gen := NewFFmpeg(bin, 5*time.Second, logger.New())

	thumbPath := filepath.Join(t.TempDir(), "thumb.jpg")
	err := gen.Generate(context.Background(), "/tmp/video.mp4", thumbPath)

	assert.NoError(t, err)
	data, err := os.ReadFile(thumbPath)
	assert.NoError(t, err)
	assert.Equal(t, "jpeg-data", string(data))
}

func TestGenerate_FallsBackToFirstFrame(t *testing.T) {
	// Fail the seek to t=1s, succeed at t=0, like a sub-second clip would
	bin := writeStub(t, `
at=""
prev=""
out=""
for arg in "$@"; do
  if [ "$prev" = "-ss" ]; then at="$arg"; fi
  prev="$arg"
  out="$arg"
done
if [ "$at" = "00:00:01" ]; then exit 1; fi
printf jpeg-data > "$out"`)
	gen := NewFFmpeg(bin, 5*time.Second, logger.New())

	thumbPath := filepath.Join(t.TempDir(), "thumb.jpg")
	err := gen.Generate(context.Background(), "/tmp/short.mp4", thumbPath)

	assert.NoError(t, err)
	info, err := os.Stat(thumbPath)
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerate_FailsWhenNoFrameProduced(t *testing.T) {
	// Exit 0 without writing anything, like a seek past EOF
	bin := writeStub(t, "exit 0")
	gen := NewFFmpeg(bin, 5*time.Second, logger.New())

	thumbPath := filepath.Join(t.TempDir(), "thumb.jpg")
	err := gen.Generate(context.Background(), "/tmp/video.mp4", thumbPath)

	assert.Error(t, err)
	_, statErr := os.Stat(thumbPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_FailsWhenBinaryMissing(t *testing.T) {
	gen := NewFFmpeg(filepath.Join(t.TempDir(), "no-such-ffmpeg"), time.Second, logger.New())

	err := gen.Generate(context.Background(), "/tmp/video.mp4", filepath.Join(t.TempDir(), "thumb.jpg"))

	assert.Error(t, err)
}
