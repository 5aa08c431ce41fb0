package layout

import (
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/user/scansheet/pkg/ports"
)

const ellipsis = "…"

// TextStyle describes how a TextBox paints its lines.
type TextStyle struct {
	Color       color.Color
	ShadowColor color.Color
	// ShadowOffsetX/Y shift the shadow copy of the text. A zero offset
	// disables the shadow.
	ShadowOffsetX int
	ShadowOffsetY int
	// LineSpacing is the extra vertical space between wrapped lines.
	LineSpacing int
	// MaxLines bounds how many lines Fit may produce. Values below 1 are
	// treated as 1.
	MaxLines int
}

// TextBox renders one or more lines of text. The source string is immutable;
// Fit replaces the displayed lines wholesale and never edits them in place.
type TextBox struct {
	frame Frame

	source string
	lines  []string

	engine ports.FontEngine
	font   ports.Font
	style  TextStyle
}

// NewTextBox creates a text box showing text as a single line and measures
// it. The displayed lines are never empty after construction.
func NewTextBox(engine ports.FontEngine, font ports.Font, text string, style TextStyle) *TextBox {
	if style.MaxLines < 1 {
		style.MaxLines = 1
	}
	if style.Color == nil {
		style.Color = color.Black
	}
	b := &TextBox{
		source: text,
		lines:  []string{text},
		engine: engine,
		font:   font,
		style:  style,
	}
	b.Measure()
	return b
}

// Frame returns the box's mutable geometry.
func (b *TextBox) Frame() *Frame { return &b.frame }

// Source returns the original, untruncated text.
func (b *TextBox) Source() string { return b.source }

// Lines returns the currently displayed lines.
func (b *TextBox) Lines() []string { return b.lines }

// Measure computes the box size from the displayed lines: the widest line's
// ink width by the stacked line height plus inter-line spacing.
func (b *TextBox) Measure() Size {
	var width int
	for _, line := range b.lines {
		if w := b.textWidth(line); w > width {
			width = w
		}
	}

	m := b.engine.Measure(b.font, "")
	lineHeight := int(math.Ceil(m.LineHeight()))
	height := len(b.lines)*lineHeight + (len(b.lines)-1)*b.style.LineSpacing

	b.frame.Width = width
	b.frame.Height = height
	return Size{Width: width, Height: height}
}

// Fit wraps and/or truncates the source text so that every displayed line is
// at most maxWidth wide and at most MaxLines lines are shown. Truncation is
// marked with a single ellipsis. Fit always recomputes from the original
// string, so repeated fits never compound.
func (b *TextBox) Fit(maxWidth int) {
	b.lines = fitLines(b.source, maxWidth, b.style.MaxLines, b.textWidth)
	b.Measure()
}

// Render draws the displayed lines top to bottom, shadow first when a shadow
// offset is configured.
func (b *TextBox) Render(canvas ports.Canvas) {
	x := b.frame.X + b.frame.Margin.Left
	y := b.frame.Y + b.frame.Margin.Top

	m := b.engine.Measure(b.font, "")
	lineHeight := int(math.Ceil(m.LineHeight()))

	for _, line := range b.lines {
		if b.style.ShadowOffsetX != 0 || b.style.ShadowOffsetY != 0 {
			canvas.DrawText(line, x+b.style.ShadowOffsetX, y+b.style.ShadowOffsetY, b.font, b.style.ShadowColor)
		}
		canvas.DrawText(line, x, y, b.font, b.style.Color)
		y += lineHeight + b.style.LineSpacing
	}
}

func (b *TextBox) textWidth(s string) int {
	return int(math.Ceil(b.engine.Measure(b.font, s).Width))
}

// fitLines splits source into at most maxLines lines of at most maxWidth
// pixels each, using a greedy single pass over the runes. When the last
// allowed line would overflow, the remainder is dropped and a single ellipsis
// appended. Every iteration consumes exactly one rune or terminates, so the
// scan cannot loop even when maxWidth is narrower than a single character.
// An empty source yields one empty line.
func fitLines(source string, maxWidth, maxLines int, width func(string) int) []string {
	ellipsisWidth := width(ellipsis)

	var lines []string
	cur := ""
	lineIndex := 0
	truncated := false

	for _, r := range source {
		cur += string(r)
		w := width(cur)

		if lineIndex < maxLines-1 && w > maxWidth {
			lines = append(lines, trimLastRune(cur))
			lineIndex++
			cur = string(r)
		} else if lineIndex == maxLines-1 && w+ellipsisWidth > maxWidth {
			lines = append(lines, trimLastRune(cur)+ellipsis)
			truncated = true
			break
		}
	}

	if !truncated {
		lines = append(lines, cur)
	}
	return lines
}

func trimLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
