// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/scansheet/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveProbeJSON saves the probed media facts as JSON.
func (s *Sink) SaveProbeJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "probe.json")
	return s.fs.WriteFile(path, data)
}

// SaveHeader saves the rendered header image.
func (s *Sink) SaveHeader(img image.Image) error {
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	path := filepath.Join(s.baseDir, "header.png")
	return s.fs.WriteFile(path, data)
}

// SaveThumbnail saves an extracted thumbnail frame.
func (s *Sink) SaveThumbnail(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "thumbnails")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("thumbnail-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// SaveSheet saves the final composed scan sheet.
func (s *Sink) SaveSheet(img image.Image) error {
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode sheet: %w", err)
	}
	path := filepath.Join(s.baseDir, "sheet.png")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
