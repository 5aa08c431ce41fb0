// Package mocks provides hand-written mock implementations of the ports
// interfaces for testing.
package mocks

import (
	"unicode/utf8"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/user/scansheet/pkg/ports"
)

// Font is a fixed-metric font handle for tests.
type Font struct {
	NominalSize float64
}

// Face returns a basic bitmap face so drawing code has something to render with.
func (f *Font) Face() xfont.Face { return basicfont.Face7x13 }

// Size returns the nominal size.
func (f *Font) Size() float64 { return f.NominalSize }

// FontEngine is a mock ports.FontEngine measuring text with a fixed advance
// per rune, which makes layout results exactly predictable in tests.
type FontEngine struct {
	CharWidth float64
	Ascent    float64
	Descent   float64

	LoadFontFunc func(path string, size float64) (ports.Font, error)
}

// NewFontEngine creates a mock engine with the given fixed metrics.
func NewFontEngine(charWidth, ascent, descent float64) *FontEngine {
	return &FontEngine{CharWidth: charWidth, Ascent: ascent, Descent: descent}
}

// LoadFont returns a fixed-metric font regardless of path.
func (e *FontEngine) LoadFont(path string, size float64) (ports.Font, error) {
	if e.LoadFontFunc != nil {
		return e.LoadFontFunc(path, size)
	}
	return &Font{NominalSize: size}, nil
}

// Measure returns CharWidth per rune and the configured vertical metrics.
func (e *FontEngine) Measure(font ports.Font, text string) ports.TextMetrics {
	return ports.TextMetrics{
		Width:   e.CharWidth * float64(utf8.RuneCountInString(text)),
		Ascent:  e.Ascent,
		Descent: e.Descent,
	}
}

// Ensure FontEngine implements ports.FontEngine
var _ ports.FontEngine = (*FontEngine)(nil)
var _ ports.Font = (*Font)(nil)
