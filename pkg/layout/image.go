package layout

import (
	"image"

	"github.com/user/scansheet/pkg/ports"
)

// ImageBox renders a decoded raster image at its intrinsic pixel size.
// Image boxes do not wrap or truncate; a shrink request leaves them at full
// size and the container degrades visually instead.
type ImageBox struct {
	frame Frame
	image image.Image
}

// NewImageBox creates an image box sized to the image's pixel dimensions.
func NewImageBox(img image.Image) *ImageBox {
	b := &ImageBox{image: img}
	b.Measure()
	return b
}

// Frame returns the box's mutable geometry.
func (b *ImageBox) Frame() *Frame { return &b.frame }

// Image returns the wrapped image.
func (b *ImageBox) Image() image.Image { return b.image }

// Measure mirrors the image's pixel dimensions as the box size.
func (b *ImageBox) Measure() Size {
	bounds := b.image.Bounds()
	b.frame.Width = bounds.Dx()
	b.frame.Height = bounds.Dy()
	return Size{Width: b.frame.Width, Height: b.frame.Height}
}

// Render pastes the image at the box's position inside its margin.
func (b *ImageBox) Render(canvas ports.Canvas) {
	canvas.DrawImage(b.image, b.frame.X+b.frame.Margin.Left, b.frame.Y+b.frame.Margin.Top)
}
