package ports

import "golang.org/x/image/font"

// Font is an opaque handle to a typeface loaded at a fixed size.
type Font interface {
	// Face returns the underlying face used for drawing.
	Face() font.Face

	// Size returns the nominal point size the font was loaded at.
	Size() float64
}

// TextMetrics describes the rendered extent of a single line of text.
type TextMetrics struct {
	// Width is the ink width of the text in pixels.
	Width float64

	// Ascent and Descent are the font's vertical metrics in pixels.
	// They do not depend on the measured text.
	Ascent  float64
	Descent float64
}

// LineHeight returns the height of one text line.
func (m TextMetrics) LineHeight() float64 {
	return m.Ascent + m.Descent
}

// FontEngine loads fonts and measures text. Measurements are pure queries
// with no side effects on the font.
type FontEngine interface {
	// LoadFont loads a TrueType font file at the given size.
	LoadFont(path string, size float64) (Font, error)

	// Measure returns the metrics of text rendered with the given font.
	Measure(font Font, text string) TextMetrics
}
