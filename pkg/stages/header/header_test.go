package header

import (
	"context"
	"image"
	"testing"

	"github.com/user/scansheet/pkg/config"
	"github.com/user/scansheet/pkg/layout"
	"github.com/user/scansheet/pkg/mediainfo"
	"github.com/user/scansheet/pkg/mocks"
	"github.com/user/scansheet/pkg/pipeline"
	"github.com/user/scansheet/pkg/ports"
)

func sampleInfo(t *testing.T) *mediainfo.VideoInfo {
	t.Helper()
	info, err := mediainfo.NewVideoInfo(mocks.SampleProbe())
	if err != nil {
		t.Fatalf("NewVideoInfo failed: %v", err)
	}
	return info
}

func testLayout() config.Layout {
	l := config.LayoutDefaults()
	l.CanvasWidth = 1200
	l.FontList = []int{0, 1, 2}
	l.TextColor = []int{255, 255, 255}
	l.ShadeColor = []int{0, 0, 0}
	l.ShadeOffset = []int{2, 2}
	l.LogoSize = 40
	l.TextList = [][]config.TextItem{
		{{Literal: "My Collection"}},
		{{Literal: "Name"}, {Literal: "Size"}},
		{{Field: "F", Key: "name"}, {Field: "F", Key: "size"}},
	}
	return l
}

func testInput(t *testing.T) pipeline.HeaderInput {
	return pipeline.HeaderInput{
		Info:   sampleInfo(t),
		Layout: testLayout(),
		Fonts: []ports.Font{
			&mocks.Font{NominalSize: 40},
			&mocks.Font{NominalSize: 20},
			&mocks.Font{NominalSize: 20},
		},
		Logo:         image.NewRGBA(image.Rect(0, 0, 40, 40)),
		MaxTextLines: 3,
	}
}

func newTestStage() (*Stage, *mocks.DebugSink) {
	sink := mocks.NewDebugSink()
	return NewStage(mocks.NewFontEngine(10, 11, 2), mocks.NewRenderer(), sink, mocks.NewLogger()), sink
}

func TestExecute_BuildsTree(t *testing.T) {
	stage, _ := newTestStage()

	result, err := stage.Execute(context.Background(), testInput(t))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	root := result.Root
	if root == nil {
		t.Fatal("expected non-nil root")
	}

	// Root holds the main column and the logo.
	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 root children, got %d", len(children))
	}

	main, ok := children[0].(*layout.FlexContainer)
	if !ok {
		t.Fatal("expected first root child to be a container")
	}
	if main.Frame().FlexGrow != 1 {
		t.Errorf("expected main column FlexGrow 1, got %f", main.Frame().FlexGrow)
	}

	if _, ok := children[1].(*layout.ImageBox); !ok {
		t.Error("expected second root child to be the logo image box")
	}

	// Main column holds the title and the metadata row.
	mainChildren := main.Children()
	if len(mainChildren) != 2 {
		t.Fatalf("expected 2 main children, got %d", len(mainChildren))
	}

	title, ok := mainChildren[0].(*layout.TextBox)
	if !ok {
		t.Fatal("expected title text box")
	}
	if title.Source() != "My Collection" {
		t.Errorf("expected title %q, got %q", "My Collection", title.Source())
	}

	metadata, ok := mainChildren[1].(*layout.FlexContainer)
	if !ok {
		t.Fatal("expected metadata container")
	}
	if len(metadata.Children()) != 1 {
		t.Fatalf("expected 1 metadata column, got %d", len(metadata.Children()))
	}

	column := metadata.Children()[0].(*layout.FlexContainer)
	if len(column.Children()) != 2 {
		t.Fatalf("expected 2 label-value pairs, got %d", len(column.Children()))
	}
}

func TestExecute_ResolvesReferences(t *testing.T) {
	stage, _ := newTestStage()

	result, err := stage.Execute(context.Background(), testInput(t))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	main := result.Root.Children()[0].(*layout.FlexContainer)
	metadata := main.Children()[1].(*layout.FlexContainer)
	column := metadata.Children()[0].(*layout.FlexContainer)

	pair := column.Children()[0].(*layout.FlexContainer)
	label := pair.Children()[0].(*layout.TextBox)
	value := pair.Children()[1].(*layout.TextBox)

	if label.Source() != "Name" {
		t.Errorf("expected label Name, got %q", label.Source())
	}
	if value.Source() != "sample.mp4" {
		t.Errorf("expected resolved file name, got %q", value.Source())
	}
	if !label.Frame().NoShrink {
		t.Error("expected label to be marked no-shrink")
	}
	if value.Frame().NoShrink {
		t.Error("expected value to be shrinkable")
	}
}

func TestExecute_MetadataLineSpacing(t *testing.T) {
	stage, _ := newTestStage()

	result, err := stage.Execute(context.Background(), testInput(t))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	main := result.Root.Children()[0].(*layout.FlexContainer)
	metadata := main.Children()[1].(*layout.FlexContainer)
	column := metadata.Children()[0].(*layout.FlexContainer)
	pair := column.Children()[0].(*layout.FlexContainer)
	value := pair.Children()[1].(*layout.TextBox)

	// "sample.mp4" at 10px per rune wraps into two 13px lines under a 60px
	// budget, with 4px between them like every other text box.
	value.Fit(60)
	if len(value.Lines()) != 2 {
		t.Fatalf("expected 2 wrapped lines, got %d", len(value.Lines()))
	}
	if got := value.Frame().Height; got != 2*13+4 {
		t.Errorf("expected wrapped value height %d, got %d", 2*13+4, got)
	}
}

func TestExecute_HeightIncludesRootMargins(t *testing.T) {
	stage, _ := newTestStage()

	result, err := stage.Execute(context.Background(), testInput(t))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	frame := result.Root.Frame()
	want := frame.Height + frame.Margin.Y()
	if result.Height != want {
		t.Errorf("expected height %d, got %d", want, result.Height)
	}
	if frame.Margin.Y() != 122 {
		t.Errorf("expected 122px of vertical margin, got %d", frame.Margin.Y())
	}
	if frame.Width != 1200 {
		t.Errorf("expected root width forced to canvas width, got %d", frame.Width)
	}
}

func TestExecute_UnknownReferenceFails(t *testing.T) {
	stage, _ := newTestStage()

	input := testInput(t)
	input.Layout.TextList[2][0] = config.TextItem{Field: "F", Key: "bogus"}

	if _, err := stage.Execute(context.Background(), input); err == nil {
		t.Error("expected error for unknown metadata reference")
	}
}

func TestExecute_EmptyTextListFails(t *testing.T) {
	stage, _ := newTestStage()

	input := testInput(t)
	input.Layout.TextList = nil

	if _, err := stage.Execute(context.Background(), input); err == nil {
		t.Error("expected error for empty text list")
	}
}

func TestExecute_SavesHeaderImage(t *testing.T) {
	stage, sink := newTestStage()

	result, err := stage.Execute(context.Background(), testInput(t))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if sink.Header == nil {
		t.Fatal("expected header image to be saved")
	}
	bounds := sink.Header.Bounds()
	if bounds.Dx() != 1200 || bounds.Dy() != result.Height {
		t.Errorf("expected %dx%d header image, got %dx%d", 1200, result.Height, bounds.Dx(), bounds.Dy())
	}
}

func TestExecute_ResizesLogo(t *testing.T) {
	stage, _ := newTestStage()

	input := testInput(t)
	input.Logo = image.NewRGBA(image.Rect(0, 0, 10, 10))

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	logo := result.Root.Children()[1].(*layout.ImageBox)
	if logo.Image().Bounds().Dx() != 40 || logo.Image().Bounds().Dy() != 40 {
		t.Errorf("expected 40x40 logo, got %dx%d",
			logo.Image().Bounds().Dx(), logo.Image().Bounds().Dy())
	}
}

func TestResolveTextList_Literals(t *testing.T) {
	rows, err := resolveTextList([][]config.TextItem{
		{{Literal: "a"}, {Literal: "b"}},
	}, sampleInfo(t))
	if err != nil {
		t.Fatalf("resolveTextList failed: %v", err)
	}
	if rows[0][0] != "a" || rows[0][1] != "b" {
		t.Errorf("expected literal passthrough, got %v", rows)
	}
}
