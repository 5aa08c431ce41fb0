// Command headertest renders the sheet header at several canvas widths so
// layout presets can be checked without probing a real video.
package main

import (
	"context"
	"fmt"
	"image/color"
	"os"

	"github.com/user/scansheet/pkg/adapters/ggrenderer"
	"github.com/user/scansheet/pkg/adapters/logger"
	"github.com/user/scansheet/pkg/adapters/nullsink"
	"github.com/user/scansheet/pkg/adapters/osfilesystem"
	"github.com/user/scansheet/pkg/adapters/ttffont"
	"github.com/user/scansheet/pkg/config"
	"github.com/user/scansheet/pkg/mediainfo"
	"github.com/user/scansheet/pkg/pipeline"
	"github.com/user/scansheet/pkg/ports"
	"github.com/user/scansheet/pkg/stages/header"
)

func main() {
	cfg, err := config.Load("config", "zh-CN")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	engine := ttffont.New()
	log := logger.NewConsole(ports.LevelDebug)

	fonts := make([]ports.Font, len(cfg.Global.Fonts))
	for i, spec := range cfg.Global.Fonts {
		font, err := engine.LoadFont(spec.Path, spec.Size)
		if err != nil {
			fmt.Printf("Error loading font %s: %v\n", spec.Path, err)
			os.Exit(1)
		}
		fonts[i] = font
	}

	logoData, err := fs.ReadFile(cfg.Global.LogoFile)
	if err != nil {
		fmt.Printf("Error reading logo: %v\n", err)
		os.Exit(1)
	}
	logo, err := renderer.DecodeImage(logoData)
	if err != nil {
		fmt.Printf("Error decoding logo: %v\n", err)
		os.Exit(1)
	}

	info, err := mediainfo.NewVideoInfo(sampleProbe())
	if err != nil {
		fmt.Printf("Error building sample info: %v\n", err)
		os.Exit(1)
	}

	stage := header.NewStage(engine, renderer, nullsink.New(), log)

	widths := []int{1600, 2400, 3200}
	for _, width := range widths {
		preset := cfg.Layout
		preset.CanvasWidth = width

		result, err := stage.Execute(context.Background(), pipeline.HeaderInput{
			Info:         info,
			Layout:       preset,
			Fonts:        fonts,
			Logo:         logo,
			MaxTextLines: cfg.Global.MaxTextLines,
		})
		if err != nil {
			fmt.Printf("Error building header: %v\n", err)
			continue
		}

		canvas := renderer.CreateCanvas(width, result.Height, color.White)
		result.Root.Render(canvas)

		data, err := renderer.EncodePNG(canvas.ToImage())
		if err != nil {
			fmt.Printf("Error encoding PNG: %v\n", err)
			continue
		}

		filename := fmt.Sprintf("tmp/header_%d.png", width)
		if err := fs.WriteFile(filename, data); err != nil {
			fmt.Printf("Error writing file: %v\n", err)
			continue
		}

		fmt.Printf("Generated %s (%dx%d)\n", filename, width, result.Height)
	}
}

// sampleProbe fabricates plausible metadata covering every summary field.
func sampleProbe() mediainfo.Probe {
	return mediainfo.Probe{
		FileName: "[Group] Some Show - 01 [1080p].mkv",
		FilePath: "/videos/sample.mkv",
		FileSize: 1_294_967_296,
		Duration: 1420,
		Bitrate:  7_291_000,
		VideoStreams: []mediainfo.VideoStream{{
			CodecName:  "hevc",
			Profile:    "Main 10",
			PixFmt:     "yuv420p10le",
			ColorRange: "tv",
			ColorSpace: "bt709",
			Width:      1920,
			Height:     1080,
			SAR:        "1:1",
			DAR:        "16:9",
			FrameRate:  23.976,
		}},
		AudioStreams: []mediainfo.AudioStream{{
			CodecName:     "flac",
			Language:      "jpn",
			Title:         "FLAC 2.0",
			SampleRate:    "48 kHz",
			Channels:      "2",
			ChannelLayout: "stereo",
		}},
		SubtitleStreams: []mediainfo.SubtitleStream{{
			CodecName: "ass",
			Language:  "chi",
			Title:     "简体中文",
		}},
	}
}
