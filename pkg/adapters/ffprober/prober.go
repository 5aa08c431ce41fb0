// Package ffprober probes media files with the external ffprobe tool.
package ffprober

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/user/scansheet/pkg/mediainfo"
	"github.com/user/scansheet/pkg/ports"
)

// ErrFFprobeNotFound is returned when no ffprobe executable can be located.
var ErrFFprobeNotFound = errors.New("ffprobe not found")

// Prober implements ports.Prober by shelling out to ffprobe.
type Prober struct {
	fs ports.FileSystem
}

// New creates a new Prober.
func New(fs ports.FileSystem) *Prober {
	return &Prober{fs: fs}
}

// Available reports whether ffprobe can be located on this system.
func (p *Prober) Available() bool {
	_, err := findFFprobe()
	return err == nil
}

// Probe runs ffprobe against the file and resolves its output into a
// mediainfo.Probe.
func (p *Prober) Probe(ctx context.Context, path string) (mediainfo.Probe, error) {
	ffprobePath, err := findFFprobe()
	if err != nil {
		return mediainfo.Probe{}, err
	}

	size, err := p.fs.FileSize(path)
	if err != nil {
		return mediainfo.Probe{}, fmt.Errorf("stat input file: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-i", path,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return mediainfo.Probe{}, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}

	return parseOutput(stdout.Bytes(), filepath.Base(path), path, size)
}

var _ ports.Prober = (*Prober)(nil)

// findFFprobe searches for ffprobe in PATH and common locations.
func findFFprobe() (string, error) {
	execName := "ffprobe"
	if runtime.GOOS == "windows" {
		execName = "ffprobe.exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffprobe.exe`,
			`C:\Program Files\ffmpeg\bin\ffprobe.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffprobe.exe`,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffprobe",
			"/usr/local/bin/ffprobe",
			"/opt/homebrew/bin/ffprobe",
			"/snap/bin/ffprobe",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFprobeNotFound
}

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

type ffprobeStream struct {
	CodecType          string            `json:"codec_type"`
	CodecName          string            `json:"codec_name"`
	Profile            string            `json:"profile"`
	PixFmt             string            `json:"pix_fmt"`
	ColorRange         string            `json:"color_range"`
	ColorSpace         string            `json:"color_space"`
	Width              int               `json:"width"`
	Height             int               `json:"height"`
	SampleAspectRatio  string            `json:"sample_aspect_ratio"`
	DisplayAspectRatio string            `json:"display_aspect_ratio"`
	AvgFrameRate       string            `json:"avg_frame_rate"`
	SampleRate         string            `json:"sample_rate"`
	Channels           int               `json:"channels"`
	ChannelLayout      string            `json:"channel_layout"`
	Tags               map[string]string `json:"tags"`
}

// coverArtCodecs names video codecs that are embedded artwork rather than
// playable streams.
var coverArtCodecs = map[string]bool{"png": true, "jpeg": true, "mjpeg": true}

func parseOutput(data []byte, fileName, filePath string, fileSize int64) (mediainfo.Probe, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return mediainfo.Probe{}, fmt.Errorf("decode ffprobe output: %w", err)
	}

	probe := mediainfo.Probe{
		FileName: fileName,
		FilePath: filePath,
		FileSize: fileSize,
	}
	if duration, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
		probe.Duration = int(duration)
	}
	if bitrate, err := strconv.Atoi(out.Format.BitRate); err == nil {
		probe.Bitrate = bitrate
	}

	for _, stream := range out.Streams {
		switch stream.CodecType {
		case "video":
			if coverArtCodecs[stream.CodecName] {
				continue
			}
			probe.VideoStreams = append(probe.VideoStreams, mediainfo.VideoStream{
				CodecName:  stream.CodecName,
				Profile:    stream.Profile,
				PixFmt:     orNA(stream.PixFmt),
				ColorRange: orNA(stream.ColorRange),
				ColorSpace: orNA(stream.ColorSpace),
				Width:      stream.Width,
				Height:     stream.Height,
				SAR:        stream.SampleAspectRatio,
				DAR:        stream.DisplayAspectRatio,
				FrameRate:  parseFrameRate(stream.AvgFrameRate),
			})
		case "audio":
			probe.AudioStreams = append(probe.AudioStreams, mediainfo.AudioStream{
				CodecName:     orNA(stream.CodecName),
				Language:      orNA(stream.Tags["language"]),
				Title:         orNA(stream.Tags["title"]),
				SampleRate:    formatSampleRate(stream.SampleRate),
				Channels:      formatChannels(stream.Channels),
				ChannelLayout: orNA(stream.ChannelLayout),
			})
		case "subtitle":
			probe.SubtitleStreams = append(probe.SubtitleStreams, mediainfo.SubtitleStream{
				CodecName: orNA(stream.CodecName),
				Language:  orNA(stream.Tags["language"]),
				Title:     orNA(stream.Tags["title"]),
			})
		}
	}

	return probe, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// parseFrameRate resolves ffprobe's "num/den" rational frame rate.
func parseFrameRate(rate string) float64 {
	num, den, ok := strings.Cut(rate, "/")
	if !ok {
		return 0
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

// formatSampleRate turns a sample rate in Hz into the "48 kHz" form shown
// on the sheet.
func formatSampleRate(rate string) string {
	hz, err := strconv.Atoi(rate)
	if err != nil {
		return "N/A"
	}
	return fmt.Sprintf("%d kHz", hz/1000)
}

func formatChannels(channels int) string {
	if channels == 0 {
		return "N/A"
	}
	return strconv.Itoa(channels)
}
