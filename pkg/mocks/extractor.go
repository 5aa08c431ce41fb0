package mocks

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/user/scansheet/pkg/ports"
)

// FrameExtractor is a mock implementation of ports.FrameExtractor. By
// default it returns a solid frame whose top-left pixel encodes the
// requested second, so tests can verify join order.
type FrameExtractor struct {
	mu    sync.Mutex
	calls []int

	Width  int
	Height int
	Err    error

	ExtractFunc func(ctx context.Context, path string, atSec, streamIndex int) (image.Image, error)
}

// NewFrameExtractor creates a mock FrameExtractor producing 16x9 frames.
func NewFrameExtractor() *FrameExtractor {
	return &FrameExtractor{Width: 16, Height: 9}
}

func (m *FrameExtractor) Extract(ctx context.Context, path string, atSec, streamIndex int) (image.Image, error) {
	m.mu.Lock()
	m.calls = append(m.calls, atSec)
	m.mu.Unlock()

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, path, atSec, streamIndex)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	img.SetRGBA(0, 0, color.RGBA{R: uint8(atSec), A: 255})
	return img, nil
}

// ExtractedSeconds returns the requested timestamps in call order (for
// test verification).
func (m *FrameExtractor) ExtractedSeconds() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.calls...)
}

var _ ports.FrameExtractor = (*FrameExtractor)(nil)
