package layout

import (
	"reflect"
	"testing"

	"github.com/user/scansheet/pkg/mocks"
)

// newTestBox creates a text box measured with a fixed 10px-per-rune font
// (ascent 8, descent 2, so 10px line height).
func newTestBox(t *testing.T, text string, maxLines, lineSpacing int) *TextBox {
	t.Helper()
	engine := mocks.NewFontEngine(10, 8, 2)
	font, err := engine.LoadFont("test.ttf", 20)
	if err != nil {
		t.Fatalf("load font: %v", err)
	}
	return NewTextBox(engine, font, text, TextStyle{MaxLines: maxLines, LineSpacing: lineSpacing})
}

func TestFit_GreedySplit(t *testing.T) {
	// 10px per rune, 25px budget, 2 lines: "AB" overflows at "C", and the
	// last line truncates once "CD"+ellipsis would exceed the budget.
	box := newTestBox(t, "ABCDEFGHIJ", 2, 0)
	box.Fit(25)

	want := []string{"AB", "C…"}
	if !reflect.DeepEqual(box.Lines(), want) {
		t.Errorf("lines: expected %q, got %q", want, box.Lines())
	}
}

func TestFit_NoOverflowKeepsSingleLine(t *testing.T) {
	box := newTestBox(t, "ABC", 3, 0)
	box.Fit(100)

	want := []string{"ABC"}
	if !reflect.DeepEqual(box.Lines(), want) {
		t.Errorf("lines: expected %q, got %q", want, box.Lines())
	}
}

func TestFit_WrapWithoutEllipsis(t *testing.T) {
	// "AB" then "CD": the final line fills the budget exactly and the
	// scan ends before the ellipsis check can trigger.
	box := newTestBox(t, "ABCD", 3, 0)
	box.Fit(20)

	want := []string{"AB", "CD"}
	if !reflect.DeepEqual(box.Lines(), want) {
		t.Errorf("lines: expected %q, got %q", want, box.Lines())
	}
}

func TestFit_LastLineEllipsis(t *testing.T) {
	// On the last allowed line the ellipsis width counts against the
	// budget, so "EF" (20px) is truncated to "E…" under a 20px budget.
	box := newTestBox(t, "ABCDEF", 3, 0)
	box.Fit(20)

	want := []string{"AB", "CD", "E…"}
	if !reflect.DeepEqual(box.Lines(), want) {
		t.Errorf("lines: expected %q, got %q", want, box.Lines())
	}
}

func TestFit_EmptySource(t *testing.T) {
	box := newTestBox(t, "", 3, 0)
	box.Fit(100)

	if len(box.Lines()) != 1 || box.Lines()[0] != "" {
		t.Errorf("expected one empty line, got %q", box.Lines())
	}
}

func TestFit_BudgetNarrowerThanOneChar(t *testing.T) {
	// Budget below a single character's width must terminate and still
	// produce at most MaxLines lines.
	for _, maxLines := range []int{1, 2, 3} {
		box := newTestBox(t, "ABCDEFGH", maxLines, 0)
		box.Fit(5)

		if n := len(box.Lines()); n < 1 || n > maxLines {
			t.Errorf("maxLines=%d: expected 1..%d lines, got %d (%q)",
				maxLines, maxLines, n, box.Lines())
		}
	}
}

func TestFit_LineCountBounds(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		maxLines int
	}{
		{"long text tight budget", "ABCDEFGHIJKLMNOPQRSTUVWXYZ", 30, 3},
		{"single line budget", "ABCDEFGHIJ", 30, 1},
		{"wide budget", "ABCDE", 1000, 4},
		{"unicode text", "日本語のテキストです", 40, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := newTestBox(t, tt.text, tt.maxLines, 0)
			box.Fit(tt.maxWidth)

			if n := len(box.Lines()); n < 1 || n > tt.maxLines {
				t.Errorf("expected 1..%d lines, got %d", tt.maxLines, n)
			}
			for i, line := range box.Lines() {
				// All but a degenerate first line must fit.
				if w := box.textWidth(line); w > tt.maxWidth && len([]rune(line)) > 1 {
					t.Errorf("line %d %q is %dpx, budget %dpx", i, line, w, tt.maxWidth)
				}
			}
		})
	}
}

func TestFit_Idempotent(t *testing.T) {
	first := newTestBox(t, "ABCDEFGHIJ", 2, 0)
	first.Fit(25)

	// Refit with the same constraints yields the same lines.
	again := newTestBox(t, "ABCDEFGHIJ", 2, 0)
	again.Fit(25)
	again.Fit(25)
	if !reflect.DeepEqual(first.Lines(), again.Lines()) {
		t.Errorf("refit changed output: %q vs %q", first.Lines(), again.Lines())
	}

	// A fit after a tighter fit recomputes from the original string
	// instead of compounding truncations.
	widened := newTestBox(t, "ABCDEFGHIJ", 2, 0)
	widened.Fit(15)
	widened.Fit(25)
	if !reflect.DeepEqual(first.Lines(), widened.Lines()) {
		t.Errorf("fit after tighter fit: expected %q, got %q", first.Lines(), widened.Lines())
	}
}

func TestFit_AtMostOneEllipsis(t *testing.T) {
	box := newTestBox(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ", 3, 0)
	box.Fit(30)

	count := 0
	for _, line := range box.Lines() {
		for _, r := range line {
			if string(r) == ellipsis {
				count++
			}
		}
	}
	if count > 1 {
		t.Errorf("expected at most one ellipsis, got %d in %q", count, box.Lines())
	}
}

func TestTextBox_MeasureMultiline(t *testing.T) {
	box := newTestBox(t, "ABCDEF", 3, 4)
	box.Fit(20)

	// Lines "AB", "CD", "E…": widest is 20px; 3 lines of 10px plus two
	// 4px gaps.
	size := box.Measure()
	if size.Width != 20 {
		t.Errorf("width: expected 20, got %d", size.Width)
	}
	if size.Height != 38 {
		t.Errorf("height: expected 38, got %d", size.Height)
	}
}

func TestTextBox_NeverEmptyLines(t *testing.T) {
	box := newTestBox(t, "", 2, 0)
	if len(box.Lines()) == 0 {
		t.Fatal("displayed lines empty after construction")
	}
	box.Fit(0)
	if len(box.Lines()) == 0 {
		t.Fatal("displayed lines empty after fit")
	}
}
