// Package ttffont provides a font engine backed by TrueType font files.
package ttffont

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/user/scansheet/pkg/ports"
)

// Font implements ports.Font for a TrueType face loaded at a fixed size.
type Font struct {
	face font.Face
	size float64
}

// Face returns the underlying face used for drawing.
func (f *Font) Face() font.Face { return f.face }

// Size returns the nominal point size the font was loaded at.
func (f *Font) Size() float64 { return f.size }

var _ ports.Font = (*Font)(nil)

// Engine implements ports.FontEngine using github.com/golang/freetype.
// Parsed font files are cached so layouts loading several sizes of one
// face read the file once.
type Engine struct {
	mu     sync.Mutex
	parsed map[string]*truetype.Font
}

// New creates a new Engine.
func New() *Engine {
	return &Engine{parsed: make(map[string]*truetype.Font)}
}

// LoadFont loads a TrueType font file at the given size.
func (e *Engine) LoadFont(path string, size float64) (ports.Font, error) {
	ttf, err := e.parse(path)
	if err != nil {
		return nil, err
	}

	face := truetype.NewFace(ttf, &truetype.Options{Size: size})
	return &Font{face: face, size: size}, nil
}

// Measure returns the metrics of text rendered with the given font.
func (e *Engine) Measure(f ports.Font, text string) ports.TextMetrics {
	face := f.Face()
	metrics := face.Metrics()
	width := font.MeasureString(face, text)

	return ports.TextMetrics{
		Width:   float64(width) / 64,
		Ascent:  float64(metrics.Ascent) / 64,
		Descent: float64(metrics.Descent) / 64,
	}
}

func (e *Engine) parse(path string) (*truetype.Font, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ttf, ok := e.parsed[path]; ok {
		return ttf, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	e.parsed[path] = ttf
	return ttf, nil
}

var _ ports.FontEngine = (*Engine)(nil)
