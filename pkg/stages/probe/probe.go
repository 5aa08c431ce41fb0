// Package probe implements the media introspection stage.
package probe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/scansheet/pkg/mediainfo"
	"github.com/user/scansheet/pkg/pipeline"
	"github.com/user/scansheet/pkg/ports"
)

// Stage resolves a media file into displayable metadata.
type Stage struct {
	prober ports.Prober
	sink   ports.DebugSink
	logger ports.Logger
}

// NewStage creates a new probe stage.
func NewStage(prober ports.Prober, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		prober: prober,
		sink:   sink,
		logger: logger.WithComponent("probe"),
	}
}

// Execute probes the media file and activates the requested video stream.
func (s *Stage) Execute(ctx context.Context, input pipeline.ProbeInput) (pipeline.ProbeResult, error) {
	result := pipeline.ProbeResult{}

	s.logger.Debug("Probing media file")

	probe, err := s.prober.Probe(ctx, input.FilePath)
	if err != nil {
		return result, fmt.Errorf("probe media: %w", err)
	}

	// Save raw facts to debug sink if enabled
	if s.sink.Enabled() {
		if data, err := json.MarshalIndent(probe, "", "  "); err == nil {
			s.sink.SaveProbeJSON(data)
		}
	}

	info, err := mediainfo.NewVideoInfo(probe)
	if err != nil {
		return result, err
	}
	if input.StreamIndex != 0 {
		if err := info.SetActiveStream(input.StreamIndex); err != nil {
			return result, err
		}
	}

	s.logger.Debug("Media probed: %d video, %d audio, %d subtitle streams",
		len(probe.VideoStreams), len(probe.AudioStreams), len(probe.SubtitleStreams))

	result.Info = info
	return result, nil
}
