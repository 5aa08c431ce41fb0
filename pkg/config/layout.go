package config

import (
	"fmt"
	"image/color"

	"gopkg.in/yaml.v3"
)

// Layout is one named presentation preset: canvas geometry, fonts per text
// row, colors and spacing.
type Layout struct {
	CanvasWidth int   `yaml:"canvas_width"`
	GridShape   []int `yaml:"grid_shape"` // [columns, rows]

	FontList []int `yaml:"font_list"` // font index per text_list row
	TimeFont int   `yaml:"time_font"` // font index for timestamp badges

	ShadeOffset []int `yaml:"shade_offset"` // [x, y]
	TextColor   []int `yaml:"text_color"`   // RGB or RGBA, 0..255
	ShadeColor  []int `yaml:"shade_color"`

	TextList [][]TextItem `yaml:"text_list"`

	SpacingTitleToContent int `yaml:"spacing_title_to_content"`
	SpacingLabelToValue   int `yaml:"spacing_label_to_value"`
	SpacingInColumn       int `yaml:"spacing_in_one_metadata_column"`
	SpacingColumns        int `yaml:"spacing_metadata_columns"`

	TimestampOffsetY int `yaml:"timestamp_offset_y"`
	LogoSize         int `yaml:"logo_size"`
}

// LayoutDefaults returns a Layout with default values.
func LayoutDefaults() Layout {
	return Layout{
		CanvasWidth:           3200,
		SpacingTitleToContent: 22,
		SpacingLabelToValue:   6,
		SpacingInColumn:       10,
		SpacingColumns:        25,
		TimestampOffsetY:      10,
		LogoSize:              405,
	}
}

// Columns returns the thumbnail grid column count.
func (l *Layout) Columns() int { return l.GridShape[0] }

// Rows returns the thumbnail grid row count.
func (l *Layout) Rows() int { return l.GridShape[1] }

// TextRGBA returns the text color as color.RGBA.
func (l *Layout) TextRGBA() color.RGBA { return rgbaFromSlice(l.TextColor) }

// ShadeRGBA returns the shadow color as color.RGBA.
func (l *Layout) ShadeRGBA() color.RGBA { return rgbaFromSlice(l.ShadeColor) }

// Validate reports the first shape problem in the preset.
func (l *Layout) Validate() error {
	if l.CanvasWidth < 1200 {
		return fmt.Errorf("canvas_width must be at least 1200, got %d", l.CanvasWidth)
	}
	if len(l.GridShape) != 2 {
		return fmt.Errorf("grid_shape must be [columns, rows], got %d values", len(l.GridShape))
	}
	if l.GridShape[0] < 1 || l.GridShape[1] < 1 {
		return fmt.Errorf("grid_shape values must be at least 1, got %v", l.GridShape)
	}
	if len(l.FontList) == 0 {
		return fmt.Errorf("font_list must list at least one font index")
	}
	if len(l.ShadeOffset) != 2 {
		return fmt.Errorf("shade_offset must be [x, y], got %d values", len(l.ShadeOffset))
	}
	if err := validateColor("text_color", l.TextColor); err != nil {
		return err
	}
	if err := validateColor("shade_color", l.ShadeColor); err != nil {
		return err
	}
	if len(l.TextList) == 0 {
		return fmt.Errorf("text_list must have at least one row")
	}
	if len(l.FontList) != len(l.TextList) {
		return fmt.Errorf("the length of font_list (%d) does not match the number of text_list rows (%d)",
			len(l.FontList), len(l.TextList))
	}
	for i, row := range l.TextList {
		for j, item := range row {
			if err := item.Validate(); err != nil {
				return fmt.Errorf("text_list[%d][%d]: %w", i, j, err)
			}
		}
	}
	for _, spacing := range []struct {
		name  string
		value int
	}{
		{"spacing_title_to_content", l.SpacingTitleToContent},
		{"spacing_label_to_value", l.SpacingLabelToValue},
		{"spacing_in_one_metadata_column", l.SpacingInColumn},
		{"spacing_metadata_columns", l.SpacingColumns},
	} {
		if spacing.value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", spacing.name, spacing.value)
		}
	}
	if l.LogoSize < 1 {
		return fmt.Errorf("logo_size must be at least 1, got %d", l.LogoSize)
	}
	return nil
}

// TextItem is one cell of text_list: either a literal string or a
// {field, key} reference resolved against the probed metadata.
type TextItem struct {
	Literal string
	Field   string
	Key     string
}

// IsReference reports whether the item is a metadata reference rather than
// a literal.
func (t *TextItem) IsReference() bool { return t.Field != "" }

// UnmarshalYAML accepts either a plain scalar (literal) or a mapping with
// field and key.
func (t *TextItem) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		t.Literal = node.Value
		return nil
	case yaml.MappingNode:
		var ref struct {
			Field string `yaml:"field"`
			Key   string `yaml:"key"`
		}
		if err := node.Decode(&ref); err != nil {
			return err
		}
		t.Field = ref.Field
		t.Key = ref.Key
		return nil
	default:
		return fmt.Errorf("text_list items must be strings or {field, key} mappings")
	}
}

// Validate checks a reference item names a known field group and a key.
func (t *TextItem) Validate() error {
	if !t.IsReference() {
		return nil
	}
	switch t.Field {
	case "F", "V", "A", "S":
	default:
		return fmt.Errorf("field must be one of F, V, A, S, got %q", t.Field)
	}
	if t.Key == "" {
		return fmt.Errorf("key is required for field references")
	}
	return nil
}

func validateColor(name string, values []int) error {
	if len(values) != 3 && len(values) != 4 {
		return fmt.Errorf("%s must have 3 or 4 components, got %d", name, len(values))
	}
	for _, v := range values {
		if v < 0 || v > 255 {
			return fmt.Errorf("%s components must be between 0 and 255, got %d", name, v)
		}
	}
	return nil
}

func rgbaFromSlice(values []int) color.RGBA {
	c := color.RGBA{A: 255}
	if len(values) >= 3 {
		c.R = uint8(values[0])
		c.G = uint8(values[1])
		c.B = uint8(values[2])
	}
	if len(values) == 4 {
		c.A = uint8(values[3])
	}
	return c
}
