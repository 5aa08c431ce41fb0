// Package smartprober selects a media prober automatically: ffprobe when it
// is installed, the native MP4 parser as a fallback for MP4 input.
package smartprober

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/scansheet/pkg/mediainfo"
	"github.com/user/scansheet/pkg/ports"
)

// Backend names the probing backend in use.
type Backend string

const (
	// BackendFFprobe probes with the external ffprobe tool.
	BackendFFprobe Backend = "ffprobe"
	// BackendMP4 probes MP4 containers natively.
	BackendMP4 Backend = "mp4"
)

// ErrNoProberAvailable is returned when ffprobe is missing and the input is
// not an MP4 container.
var ErrNoProberAvailable = errors.New("smartprober: no prober available for this input")

// mp4Extensions lists container suffixes the native parser understands.
var mp4Extensions = map[string]bool{".mp4": true, ".m4v": true, ".m4a": true, ".mov": true}

// Prober implements ports.Prober by delegating per file.
type Prober struct {
	ffprobe ports.Prober
	mp4     ports.Prober
	logger  ports.Logger
}

// New creates a Prober that prefers the ffprobe backend and falls back to
// the native MP4 backend.
func New(ffprobe, mp4 ports.Prober, logger ports.Logger) *Prober {
	return &Prober{
		ffprobe: ffprobe,
		mp4:     mp4,
		logger:  logger.WithComponent("smartprober"),
	}
}

// Available reports whether any backend can run.
func (p *Prober) Available() bool {
	return p.ffprobe.Available() || p.mp4.Available()
}

// Probe introspects the file with the best available backend.
func (p *Prober) Probe(ctx context.Context, path string) (mediainfo.Probe, error) {
	backend, prober, err := p.selectBackend(path)
	if err != nil {
		return mediainfo.Probe{}, err
	}

	if backend == BackendMP4 {
		p.logger.Warn("ffprobe not found, falling back to MP4 container parsing")
	}
	p.logger.Debug("Using %s backend for %s", backend, path)
	return prober.Probe(ctx, path)
}

func (p *Prober) selectBackend(path string) (Backend, ports.Prober, error) {
	if p.ffprobe.Available() {
		return BackendFFprobe, p.ffprobe, nil
	}
	if mp4Extensions[strings.ToLower(filepath.Ext(path))] {
		return BackendMP4, p.mp4, nil
	}
	return "", nil, fmt.Errorf("%w: %s (install ffprobe for non-MP4 input)", ErrNoProberAvailable, path)
}

var _ ports.Prober = (*Prober)(nil)
