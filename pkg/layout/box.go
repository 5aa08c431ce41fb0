// Package layout implements the box-layout engine used to arrange the scan
// sheet header: a tree of text boxes, image boxes and flex containers is
// measured bottom-up, shrunk top-down to a maximum width, grown into leftover
// space and finally rendered onto a canvas.
package layout

import (
	"github.com/user/scansheet/pkg/ports"
)

// Size is the measured extent of a box in pixels.
type Size struct {
	Width  int
	Height int
}

// Margin holds per-side outer spacing in pixels.
type Margin struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// X returns the total horizontal margin.
func (m Margin) X() int { return m.Left + m.Right }

// Y returns the total vertical margin.
func (m Margin) Y() int { return m.Top + m.Bottom }

// Frame carries the geometry every box shares. Position and resolved size
// are written during the layout phases, once per phase per generation.
type Frame struct {
	X      int
	Y      int
	Width  int
	Height int

	Margin   Margin
	NoShrink bool
	FlexGrow float64
}

// OuterWidth returns the content width plus horizontal margins.
func (f *Frame) OuterWidth() int { return f.Width + f.Margin.X() }

// OuterHeight returns the content height plus vertical margins.
func (f *Frame) OuterHeight() int { return f.Height + f.Margin.Y() }

// Box is any layout participant: it reports an intrinsic size and draws
// itself onto a canvas at its assigned position.
type Box interface {
	// Measure computes the box's intrinsic size from its current content
	// and caches it in the frame.
	Measure() Size

	// Render draws the box onto the canvas at its assigned position.
	Render(canvas ports.Canvas)

	// Frame returns the box's mutable geometry.
	Frame() *Frame
}
