// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/user/scansheet/pkg/config"
	"github.com/user/scansheet/pkg/mediainfo"
	"github.com/user/scansheet/pkg/pipeline"
	"github.com/user/scansheet/pkg/ports"
)

// RunConfig contains all configuration for one sheet generation run.
type RunConfig struct {
	// Input
	FilePath    string
	StreamIndex int

	// Output. OutputPath wins when set; otherwise the name is expanded from
	// the global format into OutputDir.
	OutputPath string
	OutputDir  string

	Global config.Global
	Layout config.Layout
}

// RunResult summarizes a completed run.
type RunResult struct {
	OutputPath string
	Width      int
	Height     int
	FileSize   int
	FrameCount int
	Info       *mediainfo.VideoInfo
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	probeStage    pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult]
	snapshotStage pipeline.Stage[pipeline.SnapshotInput, pipeline.SnapshotResult]
	headerStage   pipeline.Stage[pipeline.HeaderInput, pipeline.HeaderResult]
	composeStage  pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult]
	engine        ports.FontEngine
	renderer      ports.Renderer
	fs            ports.FileSystem
	logger        ports.Logger

	// now is replaceable for deterministic output names in tests.
	now func() time.Time
}

// New creates a new Orchestrator.
func New(
	probeStage pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult],
	snapshotStage pipeline.Stage[pipeline.SnapshotInput, pipeline.SnapshotResult],
	headerStage pipeline.Stage[pipeline.HeaderInput, pipeline.HeaderResult],
	composeStage pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult],
	engine ports.FontEngine,
	renderer ports.Renderer,
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		probeStage:    probeStage,
		snapshotStage: snapshotStage,
		headerStage:   headerStage,
		composeStage:  composeStage,
		engine:        engine,
		renderer:      renderer,
		fs:            fs,
		logger:        logger,
		now:           time.Now,
	}
}

// Run executes the complete pipeline for one media file.
func (o *Orchestrator) Run(ctx context.Context, cfg RunConfig) (RunResult, error) {
	o.logger.Info(l10n.F("Generating scan sheet for %s", cfg.FilePath))

	// 1. Probe the media file
	info, err := o.probe(ctx, cfg)
	if err != nil {
		o.logger.Error(l10n.F("Failed to probe media: %s", err))
		return RunResult{}, fmt.Errorf("probe stage: %w", err)
	}

	// 2. Load fonts and logo
	fonts, err := o.loadFonts(cfg.Global)
	if err != nil {
		return RunResult{}, err
	}
	logo, err := o.loadLogo(cfg.Global)
	if err != nil {
		return RunResult{}, err
	}

	// 3. Extract thumbnail frames
	snapshot, err := o.snapshotStage.Execute(ctx, o.buildSnapshotInput(cfg, info))
	if err != nil {
		o.logger.Error(l10n.F("Failed to extract frame: %s", err))
		return RunResult{}, fmt.Errorf("snapshot stage: %w", err)
	}

	// 4. Build the header
	header, err := o.headerStage.Execute(ctx, pipeline.HeaderInput{
		Info:         info,
		Layout:       cfg.Layout,
		Fonts:        fonts,
		Logo:         logo,
		MaxTextLines: cfg.Global.MaxTextLines,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("header stage: %w", err)
	}

	// 5. Compose the sheet
	composed, err := o.composeStage.Execute(ctx, pipeline.ComposeInput{
		Header:      header,
		Frames:      snapshot.Frames,
		Times:       snapshot.Times,
		Layout:      cfg.Layout,
		TimeFont:    fonts[cfg.Layout.TimeFont],
		ResizeScale: cfg.Global.ResizeScale,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("compose stage: %w", err)
	}

	// 6. Write the output file
	outputPath, err := o.resolveOutputPath(cfg, info)
	if err != nil {
		return RunResult{}, err
	}
	if err := o.fs.WriteFile(outputPath, composed.PNG); err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		return RunResult{}, fmt.Errorf("write output: %w", err)
	}

	o.logger.Info(l10n.F("Output saved to %s", outputPath))

	return RunResult{
		OutputPath: outputPath,
		Width:      composed.Width,
		Height:     composed.Height,
		FileSize:   len(composed.PNG),
		FrameCount: len(snapshot.Frames),
		Info:       info,
	}, nil
}

func (o *Orchestrator) probe(ctx context.Context, cfg RunConfig) (*mediainfo.VideoInfo, error) {
	result, err := o.probeStage.Execute(ctx, pipeline.ProbeInput{
		FilePath:    cfg.FilePath,
		StreamIndex: cfg.StreamIndex,
	})
	if err != nil {
		return nil, err
	}
	return result.Info, nil
}

// loadFonts loads every configured font face; the layout presets index into
// the returned slice.
func (o *Orchestrator) loadFonts(g config.Global) ([]ports.Font, error) {
	fonts := make([]ports.Font, len(g.Fonts))
	for i, spec := range g.Fonts {
		font, err := o.engine.LoadFont(spec.Path, spec.Size)
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", spec.Path, err)
		}
		fonts[i] = font
	}
	return fonts, nil
}

func (o *Orchestrator) loadLogo(g config.Global) (image.Image, error) {
	data, err := o.fs.ReadFile(g.LogoFile)
	if err != nil {
		return nil, fmt.Errorf("read logo %s: %w", g.LogoFile, err)
	}
	img, err := o.renderer.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("decode logo %s: %w", g.LogoFile, err)
	}
	return img, nil
}

// buildSnapshotInput derives the extraction plan: one frame per grid cell,
// scaled to the cell size the compose stage will use.
func (o *Orchestrator) buildSnapshotInput(cfg RunConfig, info *mediainfo.VideoInfo) pipeline.SnapshotInput {
	cols := cfg.Layout.Columns()
	rows := cfg.Layout.Rows()

	cellWidth := cfg.Layout.CanvasWidth / cols
	cellHeight := 0
	if info.Width() > 0 {
		cellHeight = int(math.Floor(float64(info.Height()) / float64(info.Width()) * float64(cellWidth)))
	}

	return pipeline.SnapshotInput{
		Info:                  info,
		Count:                 cols * rows,
		AvoidLeading:          cfg.Global.AvoidLeading,
		AvoidEnding:           cfg.Global.AvoidEnding,
		SkipSecondsFromHead:   cfg.Global.SkipSecondsFromHead,
		DiscardSecondsFromEnd: cfg.Global.DiscardSecondsFromEnd,
		TargetWidth:           cellWidth,
		TargetHeight:          cellHeight,
		ScaleMethod:           cfg.Global.ScaleMethod,
		Workers:               cfg.Global.Workers,
	}
}

func (o *Orchestrator) resolveOutputPath(cfg RunConfig, info *mediainfo.VideoInfo) (string, error) {
	if cfg.OutputPath != "" {
		return cfg.OutputPath, nil
	}

	name, err := config.ExpandOutputName(cfg.Global.OutputFilenameFormat, info.FileName(), o.now())
	if err != nil {
		return "", fmt.Errorf("expand output name: %w", err)
	}

	dir := cfg.OutputDir
	if dir == "" {
		dir = "scans"
	}
	return filepath.Join(dir, name), nil
}
