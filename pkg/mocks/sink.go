package mocks

import (
	"image"
	"sync"

	"github.com/user/scansheet/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink that records what
// was saved.
type DebugSink struct {
	mu sync.Mutex

	Disabled bool
	Err      error

	ProbeJSON  []byte
	Header     image.Image
	Thumbnails map[int]image.Image
	Sheet      image.Image
}

// NewDebugSink creates a new recording DebugSink.
func NewDebugSink() *DebugSink {
	return &DebugSink{Thumbnails: make(map[int]image.Image)}
}

func (m *DebugSink) Enabled() bool { return !m.Disabled }

func (m *DebugSink) SaveProbeJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.ProbeJSON = append([]byte(nil), data...)
	return nil
}

func (m *DebugSink) SaveHeader(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Header = img
	return nil
}

func (m *DebugSink) SaveThumbnail(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Thumbnails[index] = img
	return nil
}

func (m *DebugSink) SaveSheet(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sheet = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
