package layout

import (
	"sort"

	"github.com/user/scansheet/pkg/ports"
)

// Direction is the main axis of a FlexContainer.
type Direction int

const (
	// Row lays children out horizontally.
	Row Direction = iota
	// Column lays children out vertically.
	Column
)

// Alignment controls how children are distributed along the main axis.
type Alignment int

const (
	// AlignStart packs children at the start with the configured spacing.
	AlignStart Alignment = iota
	// AlignJustify spreads children so the leftover main-axis space is
	// split evenly between them.
	AlignJustify
)

// FlexContainer is a composite box arranging an ordered sequence of children
// along one axis. It owns its children; position propagation is strictly
// top-down and children hold no back-references.
type FlexContainer struct {
	frame     Frame
	children  []Box
	direction Direction
	align     Alignment
	spacing   int
}

// NewFlexContainer creates an empty container.
func NewFlexContainer(direction Direction, align Alignment, spacing int) *FlexContainer {
	return &FlexContainer{
		direction: direction,
		align:     align,
		spacing:   spacing,
	}
}

// Frame returns the box's mutable geometry.
func (c *FlexContainer) Frame() *Frame { return &c.frame }

// Add appends a child box.
func (c *FlexContainer) Add(child Box) {
	c.children = append(c.children, child)
}

// Children returns the ordered child boxes.
func (c *FlexContainer) Children() []Box { return c.children }

// Measure recursively measures every child and sets the container size: the
// main-axis sum of outer sizes plus spacing, by the cross-axis maximum.
func (c *FlexContainer) Measure() Size {
	var widths, heights []int
	for _, child := range c.children {
		size := child.Measure()
		frame := child.Frame()
		widths = append(widths, size.Width+frame.Margin.X())
		heights = append(heights, size.Height+frame.Margin.Y())
	}

	gaps := 0
	if n := len(c.children); n > 1 {
		gaps = c.spacing * (n - 1)
	}

	if c.direction == Row {
		c.frame.Width = sum(widths) + gaps
		c.frame.Height = maxOf(heights)
	} else {
		c.frame.Width = maxOf(widths)
		c.frame.Height = sum(heights) + gaps
	}
	return Size{Width: c.frame.Width, Height: c.frame.Height}
}

// Layout resolves width overflow against maxWidth in a single top-down pass.
// Height is never considered; the caller guarantees vertical space. In a row
// the ceil(n/2) widest children absorb the reduction evenly; in a column any
// child wider than the budget is shrunk to it. Shrinking recurses into child
// containers, refits text boxes and leaves image boxes untouched. Content
// that cannot fit even after maximal shrink degrades visually; Layout never
// fails.
//
// Measure must have run before Layout, and again after it whenever displayed
// content changed.
func (c *FlexContainer) Layout(maxWidth int) {
	n := len(c.children)
	if n == 0 {
		return
	}

	outerWidths := make([]int, n)
	for i, child := range c.children {
		outerWidths[i] = child.Frame().OuterWidth()
	}

	var totalWidth int
	if c.direction == Row {
		totalWidth = sum(outerWidths) + c.spacing*(n-1)
	} else {
		totalWidth = maxOf(outerWidths)
	}
	if totalWidth <= maxWidth {
		return
	}

	shrink := make(map[int]bool, n)
	shortenTarget := maxWidth

	if c.direction == Row {
		shrinkCount := (n + 1) / 2

		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		// Widest first; stable sort keeps original order on ties.
		sort.SliceStable(indices, func(a, b int) bool {
			return outerWidths[indices[a]] > outerWidths[indices[b]]
		})

		selectedTotal := 0
		for _, i := range indices[:shrinkCount] {
			shrink[i] = true
			selectedTotal += outerWidths[i]
		}

		excess := totalWidth - maxWidth
		shortenTarget = (selectedTotal - excess) / shrinkCount
	} else {
		for i, w := range outerWidths {
			if w > maxWidth {
				shrink[i] = true
			}
		}
	}

	for i, child := range c.children {
		if !shrink[i] || child.Frame().NoShrink {
			continue
		}

		budget := shortenTarget - child.Frame().Margin.X()
		switch box := child.(type) {
		case *FlexContainer:
			box.Layout(budget)
		case *TextBox:
			box.Fit(budget)
		case *ImageBox:
			// Image shrink is not implemented; the box keeps its
			// intrinsic size.
		}
	}
}

// DistributeGrow allocates leftover main-axis space to children by their
// flex-grow weight and forces every child's cross-axis size to the
// container's. The container's own size must be authoritative before the
// call; Measure afterwards would overwrite the allocation.
func (c *FlexContainer) DistributeGrow() {
	n := len(c.children)
	gaps := 0
	if n > 1 {
		gaps = c.spacing * (n - 1)
	}

	var totalGrow float64
	for _, child := range c.children {
		if !child.Frame().NoShrink {
			totalGrow += child.Frame().FlexGrow
		}
	}

	if c.direction == Row {
		totalExtent := gaps
		for _, child := range c.children {
			totalExtent += child.Frame().OuterWidth()
		}
		leftover := c.frame.Width - totalExtent
		for _, child := range c.children {
			frame := child.Frame()
			if !frame.NoShrink && totalGrow > 1e-5 {
				frame.Width += int(frame.FlexGrow / totalGrow * float64(leftover))
			}
			frame.Height = c.frame.Height
		}
	} else {
		totalExtent := gaps
		for _, child := range c.children {
			totalExtent += child.Frame().OuterHeight()
		}
		leftover := c.frame.Height - totalExtent
		for _, child := range c.children {
			frame := child.Frame()
			if !frame.NoShrink && totalGrow > 1e-5 {
				frame.Height += int(frame.FlexGrow / totalGrow * float64(leftover))
			}
			frame.Width = c.frame.Width
		}
	}

	for _, child := range c.children {
		if sub, ok := child.(*FlexContainer); ok {
			sub.DistributeGrow()
		}
	}
}

// Render assigns each child's position with a cursor walk along the main
// axis and draws it. With AlignJustify and at least two children the
// configured spacing is replaced by the leftover space divided across the
// gaps for this one render call.
func (c *FlexContainer) Render(canvas ports.Canvas) {
	curX := c.frame.X + c.frame.Margin.Left
	curY := c.frame.Y + c.frame.Margin.Top

	spacing := c.spacing
	if c.align == AlignJustify && len(c.children) > 1 {
		used := 0
		for _, child := range c.children {
			if c.direction == Row {
				used += child.Frame().OuterWidth()
			} else {
				used += child.Frame().OuterHeight()
			}
		}

		available := 0
		if c.direction == Row {
			available = c.frame.Width - used
		} else {
			available = c.frame.Height - used
		}
		if available > 0 {
			spacing = available / (len(c.children) - 1)
		} else {
			spacing = 0
		}
	}

	for _, child := range c.children {
		frame := child.Frame()
		frame.X = curX
		frame.Y = curY
		child.Render(canvas)

		if c.direction == Row {
			curX += frame.OuterWidth() + spacing
		} else {
			curY += frame.OuterHeight() + spacing
		}
	}
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func maxOf(values []int) int {
	m := 0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
