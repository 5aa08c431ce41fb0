package mocks

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/user/scansheet/pkg/ports"
)

// CanvasOp records one drawing call made against a mock Canvas.
type CanvasOp struct {
	Kind string // "image", "image-scaled", "rect", "text"
	Text string
	X    int
	Y    int
	W    int
	H    int
}

// Canvas is a mock ports.Canvas that records drawing operations.
type Canvas struct {
	Width  int
	Height int
	Ops    []CanvasOp
}

// DrawImage records an image paste.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.Ops = append(c.Ops, CanvasOp{Kind: "image", X: x, Y: y, W: img.Bounds().Dx(), H: img.Bounds().Dy()})
}

// DrawImageScaled records a scaled image paste.
func (c *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	c.Ops = append(c.Ops, CanvasOp{Kind: "image-scaled", X: x, Y: y, W: width, H: height})
}

// DrawRect records a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.Ops = append(c.Ops, CanvasOp{Kind: "rect", X: x, Y: y, W: w, H: h})
}

// DrawText records a text draw.
func (c *Canvas) DrawText(text string, x, y int, font ports.Font, col color.Color) {
	c.Ops = append(c.Ops, CanvasOp{Kind: "text", Text: text, X: x, Y: y})
}

// ToImage returns an empty image of the canvas dimensions.
func (c *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
}

// OpsOfKind returns the recorded operations of one kind, in order.
func (c *Canvas) OpsOfKind(kind string) []CanvasOp {
	var ops []CanvasOp
	for _, op := range c.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

// Renderer is a mock ports.Renderer handing out recording canvases.
type Renderer struct {
	Canvases []*Canvas

	DecodeImageFunc func(data []byte) (image.Image, error)
}

// NewRenderer creates a new mock Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// CreateCanvas returns a recording canvas and remembers it.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	c := &Canvas{Width: width, Height: height}
	r.Canvases = append(r.Canvases, c)
	return c
}

// DecodeImage decodes PNG data unless DecodeImageFunc overrides it.
func (r *Renderer) DecodeImage(data []byte) (image.Image, error) {
	if r.DecodeImageFunc != nil {
		return r.DecodeImageFunc(data)
	}
	return png.Decode(bytes.NewReader(data))
}

// EncodePNG encodes the image as PNG.
func (r *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ResizeImage returns a blank image of the requested dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// Ensure mocks implement the ports interfaces
var _ ports.Renderer = (*Renderer)(nil)
var _ ports.Canvas = (*Canvas)(nil)
