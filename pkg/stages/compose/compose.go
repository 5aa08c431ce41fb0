// Package compose implements the final assembly stage: the laid-out header
// is rendered above a grid of timestamped thumbnails and the whole canvas is
// encoded as PNG.
package compose

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/user/scansheet/pkg/pipeline"
	"github.com/user/scansheet/pkg/ports"
)

// badgeAlpha is the opacity of the timestamp text and its backdrop.
const badgeAlpha = 153 // 60% of 255

// backdropOffsetY shifts the backdrop below the timestamp text so the text
// overlaps the cell border while the backdrop stays inside the cell.
const backdropOffsetY = 14

// Stage composes the scan sheet.
type Stage struct {
	renderer ports.Renderer
	engine   ports.FontEngine
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new compose stage.
func NewStage(renderer ports.Renderer, engine ports.FontEngine, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		engine:   engine,
		sink:     sink,
		logger:   logger.WithComponent("compose"),
	}
}

// Execute renders the header and the thumbnail grid onto a white canvas and
// encodes the result.
func (s *Stage) Execute(ctx context.Context, input pipeline.ComposeInput) (pipeline.ComposeResult, error) {
	result := pipeline.ComposeResult{}

	cols := input.Layout.Columns()
	rows := input.Layout.Rows()
	if len(input.Frames) != cols*rows {
		return result, fmt.Errorf("image count (%d) does not match the grid count (%d)", len(input.Frames), cols*rows)
	}
	if len(input.Times) != len(input.Frames) {
		return result, fmt.Errorf("timestamp count (%d) does not match the image count (%d)", len(input.Times), len(input.Frames))
	}

	canvasWidth := input.Layout.CanvasWidth

	// Cell size follows the first frame's aspect ratio at a column's width.
	first := input.Frames[0].Bounds()
	cellWidth := canvasWidth / cols
	cellHeight := int(math.Floor(float64(first.Dy()) / float64(first.Dx()) * float64(cellWidth)))
	canvasHeight := cellHeight*rows + input.Header.Height

	s.logger.Debug("Composing sheet: %dx%d canvas, %dx%d grid", canvasWidth, canvasHeight, cols, rows)

	canvas := s.renderer.CreateCanvas(canvasWidth, canvasHeight, color.White)
	input.Header.Root.Render(canvas)

	yOffset := input.Header.Height
	for idx, frame := range input.Frames {
		gridX := (idx % cols) * cellWidth
		gridY := (idx/cols)*cellHeight + yOffset

		cell := frame
		if cell.Bounds().Dx() != cellWidth || cell.Bounds().Dy() != cellHeight {
			cell = s.renderer.ResizeImage(cell, cellWidth, cellHeight)
		}
		canvas.DrawImage(cell, gridX, gridY)

		s.drawTimestamp(canvas, input, input.Times[idx], gridX, gridY, cellWidth)
	}

	img := canvas.ToImage()

	if input.ResizeScale > 1 {
		s.logger.Debug("Resizing output to 1/%d", input.ResizeScale)
		img = s.renderer.ResizeImage(img, canvasWidth/input.ResizeScale, canvasHeight/input.ResizeScale)
	}

	if s.sink.Enabled() {
		s.sink.SaveSheet(img)
	}

	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return result, fmt.Errorf("encode sheet: %w", err)
	}

	s.logger.Debug("Sheet composed: %d bytes", len(data))

	result.PNG = data
	result.Width = img.Bounds().Dx()
	result.Height = img.Bounds().Dy()
	return result, nil
}

// drawTimestamp draws a semi-transparent time badge centered over the top
// edge of a grid cell.
func (s *Stage) drawTimestamp(canvas ports.Canvas, input pipeline.ComposeInput, atSec, gridX, gridY, cellWidth int) {
	text := timestampString(atSec)

	m := s.engine.Measure(input.TimeFont, text)
	textWidth := int(math.Ceil(m.Width))
	textHeight := int(math.Ceil(m.Ascent + m.Descent))

	x := gridX + (cellWidth-textWidth)/2
	y := gridY - textHeight/2 + input.Layout.TimestampOffsetY

	canvas.DrawRect(x, y+backdropOffsetY, textWidth, textHeight, color.NRGBA{A: badgeAlpha})
	canvas.DrawText(text, x, y, input.TimeFont, color.NRGBA{R: 255, G: 255, B: 255, A: badgeAlpha})
}

// timestampString formats seconds as H:MM:SS without padding the hours.
func timestampString(sec int) string {
	return fmt.Sprintf("%d:%02d:%02d", sec/3600, sec/60%60, sec%60)
}
