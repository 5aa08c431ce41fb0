package orchestrator

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/scansheet/pkg/config"
	"github.com/user/scansheet/pkg/layout"
	"github.com/user/scansheet/pkg/mediainfo"
	"github.com/user/scansheet/pkg/mocks"
	"github.com/user/scansheet/pkg/pipeline"
)

// mockProbeStage is a mock for the probe stage.
type mockProbeStage struct {
	result pipeline.ProbeResult
	err    error
	input  pipeline.ProbeInput
}

func (m *mockProbeStage) Execute(ctx context.Context, input pipeline.ProbeInput) (pipeline.ProbeResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.ProbeResult{}, m.err
	}
	return m.result, nil
}

// mockSnapshotStage is a mock for the snapshot stage.
type mockSnapshotStage struct {
	result pipeline.SnapshotResult
	err    error
	input  pipeline.SnapshotInput
}

func (m *mockSnapshotStage) Execute(ctx context.Context, input pipeline.SnapshotInput) (pipeline.SnapshotResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.SnapshotResult{}, m.err
	}
	return m.result, nil
}

// mockHeaderStage is a mock for the header stage.
type mockHeaderStage struct {
	result pipeline.HeaderResult
	err    error
	input  pipeline.HeaderInput
}

func (m *mockHeaderStage) Execute(ctx context.Context, input pipeline.HeaderInput) (pipeline.HeaderResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.HeaderResult{}, m.err
	}
	return m.result, nil
}

// mockComposeStage is a mock for the compose stage.
type mockComposeStage struct {
	result pipeline.ComposeResult
	err    error
	input  pipeline.ComposeInput
}

func (m *mockComposeStage) Execute(ctx context.Context, input pipeline.ComposeInput) (pipeline.ComposeResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.ComposeResult{}, m.err
	}
	return m.result, nil
}

type testHarness struct {
	probe    *mockProbeStage
	snapshot *mockSnapshotStage
	header   *mockHeaderStage
	compose  *mockComposeStage
	fs       *mocks.FileSystem
	orch     *Orchestrator
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	info, err := mediainfo.NewVideoInfo(mocks.SampleProbe())
	if err != nil {
		t.Fatalf("NewVideoInfo failed: %v", err)
	}

	frames := make([]image.Image, 4)
	for i := range frames {
		frames[i] = image.NewRGBA(image.Rect(0, 0, 16, 9))
	}

	h := &testHarness{
		probe: &mockProbeStage{result: pipeline.ProbeResult{Info: info}},
		snapshot: &mockSnapshotStage{result: pipeline.SnapshotResult{
			Times:  []int{0, 199, 398, 597},
			Frames: frames,
		}},
		header: &mockHeaderStage{result: pipeline.HeaderResult{
			Root:   layout.NewFlexContainer(layout.Row, layout.AlignStart, 0),
			Height: 100,
		}},
		compose: &mockComposeStage{result: pipeline.ComposeResult{
			PNG:    []byte{0x89, 0x50, 0x4E, 0x47},
			Width:  1200,
			Height: 774,
		}},
		fs: mocks.NewFileSystem(),
	}

	h.fs.WriteFile("logo.png", []byte("logo"))

	renderer := mocks.NewRenderer()
	renderer.DecodeImageFunc = func(data []byte) (image.Image, error) {
		return image.NewRGBA(image.Rect(0, 0, 405, 405)), nil
	}

	h.orch = New(
		h.probe, h.snapshot, h.header, h.compose,
		mocks.NewFontEngine(10, 11, 2), renderer, h.fs, mocks.NewLogger(),
	)
	h.orch.now = func() time.Time {
		return time.Date(2024, 11, 5, 14, 30, 9, 0, time.UTC)
	}
	return h
}

func testRunConfig() RunConfig {
	g := config.GlobalDefaults()
	g.LogoFile = "logo.png"
	g.Fonts = []config.FontSpec{
		{Path: "title.ttf", Size: 40},
		{Path: "label.ttf", Size: 20},
		{Path: "value.ttf", Size: 20},
	}

	l := config.LayoutDefaults()
	l.CanvasWidth = 1200
	l.GridShape = []int{2, 2}
	l.FontList = []int{0, 1, 2}
	l.TimeFont = 1
	l.TextList = [][]config.TextItem{
		{{Literal: "Title"}},
		{{Literal: "Name"}},
		{{Field: "F", Key: "name"}},
	}

	return RunConfig{
		FilePath: "/videos/sample.mp4",
		Global:   g,
		Layout:   l,
	}
}

func TestRun_WritesExpandedOutputName(t *testing.T) {
	h := newHarness(t)

	result, err := h.orch.Run(context.Background(), testRunConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantPath := filepath.Join("scans", "143009.scan.sample.mp4.png")
	if result.OutputPath != wantPath {
		t.Errorf("expected output path %s, got %s", wantPath, result.OutputPath)
	}

	data, ok := h.fs.GetFile(wantPath)
	if !ok {
		t.Fatalf("expected output file at %s", wantPath)
	}
	if len(data) != 4 {
		t.Errorf("expected 4 bytes written, got %d", len(data))
	}

	if result.Width != 1200 || result.Height != 774 {
		t.Errorf("expected 1200x774 result, got %dx%d", result.Width, result.Height)
	}
	if result.FrameCount != 4 {
		t.Errorf("expected 4 frames, got %d", result.FrameCount)
	}
}

func TestRun_ExplicitOutputPathWins(t *testing.T) {
	h := newHarness(t)

	cfg := testRunConfig()
	cfg.OutputPath = filepath.Join("out", "sheet.png")

	result, err := h.orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.OutputPath != cfg.OutputPath {
		t.Errorf("expected output path %s, got %s", cfg.OutputPath, result.OutputPath)
	}
	if _, ok := h.fs.GetFile(cfg.OutputPath); !ok {
		t.Errorf("expected output file at %s", cfg.OutputPath)
	}
}

func TestRun_DerivesSnapshotInput(t *testing.T) {
	h := newHarness(t)

	if _, err := h.orch.Run(context.Background(), testRunConfig()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	input := h.snapshot.input
	if input.Count != 4 {
		t.Errorf("expected 4 frames for a 2x2 grid, got %d", input.Count)
	}
	// 1920x1080 source at a 600px column keeps the aspect ratio.
	if input.TargetWidth != 600 || input.TargetHeight != 337 {
		t.Errorf("expected 600x337 cells, got %dx%d", input.TargetWidth, input.TargetHeight)
	}
	if input.DiscardSecondsFromEnd != 1 {
		t.Errorf("expected default discard of 1s, got %d", input.DiscardSecondsFromEnd)
	}
}

func TestRun_PassesTimeFontToCompose(t *testing.T) {
	h := newHarness(t)

	if _, err := h.orch.Run(context.Background(), testRunConfig()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if h.compose.input.TimeFont == nil {
		t.Fatal("expected a time font")
	}
	if h.compose.input.TimeFont.Size() != 20 {
		t.Errorf("expected the 20pt face for timestamps, got %v", h.compose.input.TimeFont.Size())
	}
}

func TestRun_ProbeErrorPropagates(t *testing.T) {
	h := newHarness(t)
	h.probe.err = errors.New("no such file")

	if _, err := h.orch.Run(context.Background(), testRunConfig()); err == nil {
		t.Error("expected probe error to propagate")
	}
}

func TestRun_MissingLogoFails(t *testing.T) {
	h := newHarness(t)

	cfg := testRunConfig()
	cfg.Global.LogoFile = "missing.png"

	if _, err := h.orch.Run(context.Background(), cfg); err == nil {
		t.Error("expected error for missing logo file")
	}
}
