package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image processing operations.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data, auto-detecting the format.
	DecodeImage(data []byte) (image.Image, error)

	// EncodePNG encodes an image as PNG.
	EncodePNG(img image.Image) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides drawing operations for compositing the scan sheet.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawImageScaled draws an image scaled to the specified dimensions.
	DrawImageScaled(img image.Image, x, y, width, height int)

	// DrawRect draws a filled rectangle. Colors with alpha are blended
	// over the existing pixels.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawText draws a single line of text. x and y address the top-left
	// corner of the line box; the implementation converts to its own
	// baseline convention using the font's ascent.
	DrawText(text string, x, y int, font Font, c color.Color)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}
