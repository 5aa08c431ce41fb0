// Package header implements the sheet header stage: it resolves the preset's
// text list against the probed metadata, assembles the box tree and runs the
// layout phases against the canvas width.
package header

import (
	"context"
	"fmt"
	"image/color"

	"github.com/user/scansheet/pkg/config"
	"github.com/user/scansheet/pkg/layout"
	"github.com/user/scansheet/pkg/mediainfo"
	"github.com/user/scansheet/pkg/pipeline"
	"github.com/user/scansheet/pkg/ports"
)

// Stage assembles and lays out the header tree.
type Stage struct {
	engine   ports.FontEngine
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new header stage.
func NewStage(engine ports.FontEngine, renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		engine:   engine,
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("header"),
	}
}

// Execute builds the header tree and resolves its geometry. The returned
// height includes the root's outer margins and is the vertical offset at
// which the thumbnail grid starts.
func (s *Stage) Execute(ctx context.Context, input pipeline.HeaderInput) (pipeline.HeaderResult, error) {
	result := pipeline.HeaderResult{}

	s.logger.Debug("Building header")

	rows, err := resolveTextList(input.Layout.TextList, input.Info)
	if err != nil {
		return result, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return result, fmt.Errorf("text list must start with a title row")
	}

	root, err := s.buildTree(input, rows)
	if err != nil {
		return result, err
	}

	// Resolve geometry: measure the intrinsic sizes, shrink into the canvas
	// width, re-measure the refitted text, then grow into the leftover space.
	canvasWidth := input.Layout.CanvasWidth
	root.Measure()
	root.Layout(canvasWidth)
	root.Measure()
	root.Frame().Width = canvasWidth
	root.DistributeGrow()

	height := root.Frame().Height + root.Frame().Margin.Y()

	s.logger.Debug("Header built: %dx%d", canvasWidth, height)

	if s.sink.Enabled() {
		canvas := s.renderer.CreateCanvas(canvasWidth, height, color.White)
		root.Render(canvas)
		s.sink.SaveHeader(canvas.ToImage())
	}

	result.Root = root
	result.Height = height
	return result, nil
}

// buildTree assembles the header box tree: a title and the label/value
// columns on the left, the logo on the right.
func (s *Stage) buildTree(input pipeline.HeaderInput, rows [][]string) (*layout.FlexContainer, error) {
	l := input.Layout

	style := layout.TextStyle{
		Color:       l.TextRGBA(),
		ShadowColor: l.ShadeRGBA(),
		LineSpacing: 4,
		MaxLines:    input.MaxTextLines,
	}
	if len(l.ShadeOffset) == 2 {
		style.ShadowOffsetX = l.ShadeOffset[0]
		style.ShadowOffsetY = l.ShadeOffset[1]
	}

	fontAt := func(row int) (ports.Font, error) {
		if row >= len(l.FontList) {
			return nil, fmt.Errorf("font_list has no entry for text row %d", row)
		}
		idx := l.FontList[row]
		if idx < 0 || idx >= len(input.Fonts) {
			return nil, fmt.Errorf("font index %d out of range", idx)
		}
		return input.Fonts[idx], nil
	}

	root := layout.NewFlexContainer(layout.Row, layout.AlignStart, 10)
	root.Frame().Margin = layout.Margin{Top: 22, Right: 22, Bottom: 100, Left: 22}

	main := layout.NewFlexContainer(layout.Column, layout.AlignStart, l.SpacingTitleToContent)
	main.Frame().FlexGrow = 1
	root.Add(main)

	if input.Logo != nil {
		logo := input.Logo
		if logo.Bounds().Dx() != l.LogoSize || logo.Bounds().Dy() != l.LogoSize {
			logo = s.renderer.ResizeImage(logo, l.LogoSize, l.LogoSize)
		}
		root.Add(layout.NewImageBox(logo))
	}

	titleFont, err := fontAt(0)
	if err != nil {
		return nil, err
	}
	main.Add(layout.NewTextBox(s.engine, titleFont, rows[0][0], style))

	// Remaining rows come in label-row/value-row pairs; each pair forms one
	// metadata column whose entries are label-value rows.
	contents := rows[1:]
	metadata := layout.NewFlexContainer(layout.Row, layout.AlignJustify, l.SpacingColumns)
	for i := 0; i < len(contents)/2; i++ {
		labelFont, err := fontAt(2*i + 1)
		if err != nil {
			return nil, err
		}
		valueFont, err := fontAt(2*i + 2)
		if err != nil {
			return nil, err
		}

		column := layout.NewFlexContainer(layout.Column, layout.AlignStart, l.SpacingInColumn)
		labels := contents[2*i]
		values := contents[2*i+1]
		for j := 0; j < len(labels) && j < len(values); j++ {
			label := layout.NewTextBox(s.engine, labelFont, labels[j], style)
			label.Frame().NoShrink = true
			value := layout.NewTextBox(s.engine, valueFont, values[j], style)

			pair := layout.NewFlexContainer(layout.Row, layout.AlignStart, l.SpacingLabelToValue)
			pair.Add(label)
			pair.Add(value)
			column.Add(pair)
		}
		metadata.Add(column)
	}
	main.Add(metadata)

	return root, nil
}

// resolveTextList turns the preset's literal-or-reference grid into plain
// strings against the probed metadata. An unknown reference is fatal.
func resolveTextList(textList [][]config.TextItem, info *mediainfo.VideoInfo) ([][]string, error) {
	rows := make([][]string, len(textList))
	for i, row := range textList {
		rows[i] = make([]string, len(row))
		for j, item := range row {
			if item.IsReference() {
				value, err := info.Lookup(item.Field, item.Key)
				if err != nil {
					return nil, fmt.Errorf("text list row %d: %w", i, err)
				}
				rows[i][j] = value
			} else {
				rows[i][j] = item.Literal
			}
		}
	}
	return rows, nil
}
