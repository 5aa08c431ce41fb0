// Package main provides the CLI entry point for scansheet.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/scansheet/pkg/adapters/ffmpegextract"
	"github.com/user/scansheet/pkg/adapters/ffprober"
	"github.com/user/scansheet/pkg/adapters/filesink"
	"github.com/user/scansheet/pkg/adapters/ggrenderer"
	"github.com/user/scansheet/pkg/adapters/logger"
	"github.com/user/scansheet/pkg/adapters/mp4prober"
	"github.com/user/scansheet/pkg/adapters/nullsink"
	"github.com/user/scansheet/pkg/adapters/osfilesystem"
	"github.com/user/scansheet/pkg/adapters/smartprober"
	"github.com/user/scansheet/pkg/adapters/ttffont"
	"github.com/user/scansheet/pkg/config"
	"github.com/user/scansheet/pkg/orchestrator"
	"github.com/user/scansheet/pkg/ports"
	"github.com/user/scansheet/pkg/stages/compose"
	"github.com/user/scansheet/pkg/stages/header"
	"github.com/user/scansheet/pkg/stages/probe"
	"github.com/user/scansheet/pkg/stages/snapshot"
	"github.com/user/scansheet/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "scansheet",
		Usage:   l10n.T("Generate a video scan sheet with snapshots and metadata overlay"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    l10n.T("Path to the video file"),
			},
			&cli.StringFlag{
				Name:    "layout",
				Aliases: []string{"l"},
				Value:   "zh-CN",
				Usage:   l10n.T("Layout preset to use"),
			},
			&cli.IntFlag{
				Name:    "stream",
				Aliases: []string{"s"},
				Usage:   l10n.T("Index of the video stream to activate"),
			},
			&cli.StringFlag{
				Name:  "config-dir",
				Value: "config",
				Usage: l10n.T("Directory holding global.yaml and layout presets"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   l10n.T("Output PNG file path (default: derived from the filename format)"),
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Value: "scans",
				Usage: l10n.T("Directory for derived output names"),
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: l10n.T("Parallel extraction workers (0 = one per CPU)"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   l10n.T("Save intermediate results for debugging"),
			},
			&cli.StringFlag{
				Name:  "debug-dir",
				Value: "./debug",
				Usage: l10n.T("Directory for debug output"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   l10n.T("Suppress all output"),
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config-dir"), c.String("layout"))
	if err != nil {
		return err
	}
	if c.Int("workers") > 0 {
		cfg.Global.Workers = c.Int("workers")
	}

	// Create logger
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	engine := ttffont.New()
	prober := smartprober.New(ffprober.New(fs), mp4prober.New(fs), log)
	extractor := ffmpegextract.New()

	// Create debug sink
	var sink ports.DebugSink
	if c.Bool("debug") {
		if err := fs.MkdirAll(c.String("debug-dir")); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(c.String("debug-dir"), fs, renderer)
	} else {
		sink = nullsink.New()
	}

	// Create stages
	probeStage := probe.NewStage(prober, sink, log)
	snapshotStage := snapshot.NewStage(extractor, renderer, sink, log)
	headerStage := header.NewStage(engine, renderer, sink, log)
	composeStage := compose.NewStage(renderer, engine, sink, log)

	// Create orchestrator
	orch := orchestrator.New(
		probeStage,
		snapshotStage,
		headerStage,
		composeStage,
		engine,
		renderer,
		fs,
		log,
	)

	result, err := orch.Run(ctx, orchestrator.RunConfig{
		FilePath:    c.String("file"),
		StreamIndex: c.Int("stream"),
		OutputPath:  c.String("output"),
		OutputDir:   c.String("output-dir"),
		Global:      cfg.Global,
		Layout:      cfg.Layout,
	})
	if err != nil {
		return err
	}

	if !c.Bool("quiet") {
		if err := summarizer.New(os.Stdout).WriteSummary(result.Info); err != nil {
			return err
		}
	}
	return nil
}
