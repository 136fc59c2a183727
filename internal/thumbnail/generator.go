package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"classcast/pkg/logger"
)

// FFmpeg extracts a single still frame from a video file by shelling out
// to the ffmpeg binary.
type FFmpeg struct {
	binPath string
	timeout time.Duration
	log     *logger.Logger
}

func NewFFmpeg(binPath string, timeout time.Duration, log *logger.Logger) *FFmpeg {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	return &FFmpeg{
		binPath: binPath,
		timeout: timeout,
		log:     log,
	}
}

// Generate writes a JPEG still of videoPath to thumbPath. It tries the
// frame at t=1s first; clips shorter than a second fall back to the first
// frame, mirroring how short uploads would otherwise produce nothing.
func (f *FFmpeg) Generate(ctx context.Context, videoPath, thumbPath string) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	if err := f.extract(ctx, videoPath, thumbPath, "00:00:01"); err == nil {
		return nil
	}

	if err := f.extract(ctx, videoPath, thumbPath, "00:00:00"); err != nil {
		return fmt.Errorf("failed to extract frame from %s: %w", videoPath, err)
	}
	return nil
}

func (f *FFmpeg) extract(ctx context.Context, videoPath, thumbPath, at string) error {
	cmd := exec.CommandContext(ctx, f.binPath,
		"-y",
		"-ss", at,
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "3",
		thumbPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		f.log.Warn("ffmpeg exited with error at t=%s: %v: %s", at, err, stderr.String())
		os.Remove(thumbPath)
		return err
	}

	// ffmpeg can exit 0 without producing output when the seek is past EOF
	info, err := os.Stat(thumbPath)
	if err != nil || info.Size() == 0 {
		os.Remove(thumbPath)
		return fmt.Errorf("no frame written at t=%s", at)
	}

	return nil
}
