// Package ffmpegextract grabs single frames from a video with the external
// ffmpeg tool.
package ffmpegextract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/user/scansheet/pkg/ports"
)

// ErrFFmpegNotFound is returned when no ffmpeg executable can be located.
var ErrFFmpegNotFound = errors.New("ffmpeg not found")

// Extractor implements ports.FrameExtractor by shelling out to ffmpeg,
// seeking to the nearest keyframe and piping one PNG frame to stdout.
type Extractor struct{}

// New creates a new Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Available reports whether ffmpeg can be located on this system.
func (e *Extractor) Available() bool {
	_, err := findFFmpeg()
	return err == nil
}

// Extract grabs one frame at atSec from the given video stream.
func (e *Extractor) Extract(ctx context.Context, path string, atSec, streamIndex int) (image.Image, error) {
	ffmpegPath, err := findFFmpeg()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-ss", secondsToHHMMSS(atSec),
		"-i", path,
		"-map", fmt.Sprintf("0:v:%d", streamIndex),
		"-skip_frame", "nokey",
		"-frames:v", "1",
		"-q:v", "2",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame at %ds: %w: %s", atSec, err, strings.TrimSpace(stderr.String()))
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decode frame at %ds: %w", atSec, err)
	}
	return img, nil
}

var _ ports.FrameExtractor = (*Extractor)(nil)

// secondsToHHMMSS renders a second offset in the H:MM:SS form ffmpeg's -ss
// flag expects.
func secondsToHHMMSS(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// findFFmpeg searches for ffmpeg in PATH and common locations.
func findFFmpeg() (string, error) {
	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}
