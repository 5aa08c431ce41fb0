package mocks

import (
	"context"
	"sync"

	"github.com/user/scansheet/pkg/mediainfo"
	"github.com/user/scansheet/pkg/ports"
)

// Prober is a mock implementation of ports.Prober.
type Prober struct {
	mu     sync.Mutex
	probed []string

	Result mediainfo.Probe
	Err    error
	// Unavailable makes Available report false.
	Unavailable bool

	ProbeFunc func(ctx context.Context, path string) (mediainfo.Probe, error)
}

// NewProber creates a mock Prober that reports itself available and
// returns the given probe.
func NewProber(result mediainfo.Probe) *Prober {
	return &Prober{Result: result}
}

func (m *Prober) Probe(ctx context.Context, path string) (mediainfo.Probe, error) {
	m.mu.Lock()
	m.probed = append(m.probed, path)
	m.mu.Unlock()

	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	if m.Err != nil {
		return mediainfo.Probe{}, m.Err
	}
	return m.Result, nil
}

func (m *Prober) Available() bool { return !m.Unavailable }

// ProbedPaths returns the paths probed so far (for test verification).
func (m *Prober) ProbedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.probed...)
}

// SampleProbe returns a plausible single-stream probe for tests.
func SampleProbe() mediainfo.Probe {
	return mediainfo.Probe{
		FileName: "sample.mp4",
		FilePath: "/videos/sample.mp4",
		FileSize: 256 << 20,
		Duration: 600,
		Bitrate:  3_000_000,
		VideoStreams: []mediainfo.VideoStream{{
			CodecName:  "h264",
			Profile:    "High",
			PixFmt:     "yuv420p",
			ColorRange: "tv",
			ColorSpace: "bt709",
			Width:      1920,
			Height:     1080,
			SAR:        "1:1",
			DAR:        "16:9",
			FrameRate:  30,
		}},
		AudioStreams: []mediainfo.AudioStream{{
			CodecName:     "aac",
			Language:      "eng",
			Title:         "N/A",
			SampleRate:    "48 kHz",
			Channels:      "2",
			ChannelLayout: "stereo",
		}},
	}
}

var _ ports.Prober = (*Prober)(nil)
