// Package snapshot implements the frame extraction stage: it plans evenly
// spaced capture timestamps over the usable part of the video and extracts
// the frames in parallel, scaled to the thumbnail cell size.
package snapshot

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sort"
	"sync"

	"github.com/user/scansheet/pkg/config"
	"github.com/user/scansheet/pkg/pipeline"
	"github.com/user/scansheet/pkg/ports"
)

// Stage extracts thumbnail frames from a video.
type Stage struct {
	extractor ports.FrameExtractor
	renderer  ports.Renderer
	sink      ports.DebugSink
	logger    ports.Logger
}

// NewStage creates a new snapshot stage.
func NewStage(extractor ports.FrameExtractor, renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		extractor: extractor,
		renderer:  renderer,
		sink:      sink,
		logger:    logger.WithComponent("snapshot"),
	}
}

// PlanTimes computes the capture timestamps in seconds. The usable range is
// [skip, duration-discard]; count frames are spread over it at a uniform
// integer interval. With avoidLeading the first grid point is dropped, with
// avoidEnding the last one is, so openings and credits can be excluded
// without changing the frame count.
func PlanTimes(duration, count int, avoidLeading, avoidEnding bool, skip, discard int) ([]int, error) {
	if count < 1 {
		return nil, fmt.Errorf("frame count must be at least 1, got %d", count)
	}

	start := skip
	end := duration - discard
	if end <= start {
		return nil, fmt.Errorf("no usable range: duration %ds, skip %ds, discard %ds", duration, skip, discard)
	}

	intervalCount := count - 1
	if avoidLeading {
		intervalCount++
	}
	if avoidEnding {
		intervalCount++
	}
	if intervalCount == 0 {
		// Single frame at the start of the usable range.
		return []int{start}, nil
	}

	interval := (end - start) / intervalCount

	first := 0
	if avoidLeading {
		first = 1
	}
	last := intervalCount
	if avoidEnding {
		last--
	}

	times := make([]int, 0, count)
	for i := first; i <= last; i++ {
		times = append(times, start+i*interval)
	}
	return times, nil
}

// Execute plans the timestamps and extracts all frames using a worker pool.
// Frames are returned in planning order regardless of completion order.
func (s *Stage) Execute(ctx context.Context, input pipeline.SnapshotInput) (pipeline.SnapshotResult, error) {
	result := pipeline.SnapshotResult{}

	times, err := PlanTimes(
		input.Info.Duration(),
		input.Count,
		input.AvoidLeading,
		input.AvoidEnding,
		input.SkipSecondsFromHead,
		input.DiscardSecondsFromEnd,
	)
	if err != nil {
		return result, err
	}

	numWorkers := input.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(times) {
		numWorkers = len(times)
	}

	s.logger.Debug("Extracting %d frames with %d workers", len(times), numWorkers)

	frames, err := s.extractParallel(ctx, input, times, numWorkers)
	if err != nil {
		return result, err
	}

	s.logger.Debug("Extraction completed")

	result.Times = times
	result.Frames = frames
	return result, nil
}

// indexedFrame holds a frame with its planning index for re-joining.
type indexedFrame struct {
	index int
	frame image.Image
}

// extractParallel runs the extraction jobs over a worker pool and joins the
// results back into planning order.
func (s *Stage) extractParallel(ctx context.Context, input pipeline.SnapshotInput, times []int, numWorkers int) ([]image.Image, error) {
	numFrames := len(times)
	jobs := make(chan int, numFrames)
	results := make(chan indexedFrame, numFrames)
	errChan := make(chan error, numWorkers)

	// Start workers
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, times, jobs, results, errChan)
	}

	// Send jobs
	for i := 0; i < numFrames; i++ {
		jobs <- i
	}
	close(jobs)

	// Wait for workers to finish
	go func() {
		wg.Wait()
		close(results)
		close(errChan)
	}()

	// Collect results
	collected := make([]indexedFrame, 0, numFrames)
	for result := range results {
		collected = append(collected, result)

		if s.sink.Enabled() {
			s.sink.SaveThumbnail(result.index, result.frame)
		}
	}

	// Check for errors
	if err := <-errChan; err != nil {
		return nil, err
	}

	// Re-join by planning index
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	frames := make([]image.Image, len(collected))
	for i, f := range collected {
		frames[i] = f.frame
	}
	return frames, nil
}

// worker processes extraction jobs from the jobs channel.
func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.SnapshotInput,
	times []int,
	jobs <-chan int,
	results chan<- indexedFrame,
	errChan chan<- error,
) {
	defer wg.Done()

	for idx := range jobs {
		select {
		case <-ctx.Done():
			select {
			case errChan <- ctx.Err():
			default:
			}
			return
		default:
		}

		frame, err := s.extractOne(ctx, input, times[idx])
		if err != nil {
			select {
			case errChan <- fmt.Errorf("extract frame %d at %ds: %w", idx, times[idx], err):
			default:
			}
			return
		}

		s.logger.Debug("Extracted frame %d/%d at %s", idx+1, len(times), secondsString(times[idx]))
		results <- indexedFrame{index: idx, frame: frame}
	}
}

// extractOne extracts a single frame and scales it to the target cell size.
func (s *Stage) extractOne(ctx context.Context, input pipeline.SnapshotInput, atSec int) (image.Image, error) {
	img, err := s.extractor.Extract(ctx, input.Info.FilePath(), atSec, input.Info.ActiveStreamIndex())
	if err != nil {
		return nil, err
	}

	if input.TargetWidth <= 0 || input.TargetHeight <= 0 {
		return img, nil
	}
	return s.scale(img, input.TargetWidth, input.TargetHeight, input.ScaleMethod), nil
}

// scale adjusts a frame to the target dimensions according to the configured
// scaling method. fit letterboxes on a black background, stretch ignores the
// aspect ratio and crop covers the target and trims the overflow.
func (s *Stage) scale(img image.Image, targetW, targetH int, method string) image.Image {
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if srcW == targetW && srcH == targetH {
		return img
	}
	if srcW <= 0 || srcH <= 0 {
		return img
	}

	switch method {
	case config.ScaleStretch:
		return s.renderer.ResizeImage(img, targetW, targetH)

	case config.ScaleCrop:
		ratioW := float64(targetW) / float64(srcW)
		ratioH := float64(targetH) / float64(srcH)
		ratio := ratioW
		if ratioH > ratio {
			ratio = ratioH
		}
		w := int(float64(srcW)*ratio + 0.5)
		h := int(float64(srcH)*ratio + 0.5)
		resized := s.renderer.ResizeImage(img, w, h)
		return cropCenter(resized, targetW, targetH)

	default: // config.ScaleFit
		ratioW := float64(targetW) / float64(srcW)
		ratioH := float64(targetH) / float64(srcH)
		ratio := ratioW
		if ratioH < ratio {
			ratio = ratioH
		}
		w := int(float64(srcW) * ratio)
		h := int(float64(srcH) * ratio)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		resized := s.renderer.ResizeImage(img, w, h)
		canvas := s.renderer.CreateCanvas(targetW, targetH, color.Black)
		canvas.DrawImage(resized, (targetW-w)/2, (targetH-h)/2)
		return canvas.ToImage()
	}
}

// cropCenter extracts the centered width x height region of an image.
// The result always has bounds starting at (0,0).
func cropCenter(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()

	x := bounds.Min.X + (bounds.Dx()-width)/2
	y := bounds.Min.Y + (bounds.Dy()-height)/2
	if x < bounds.Min.X {
		x = bounds.Min.X
	}
	if y < bounds.Min.Y {
		y = bounds.Min.Y
	}
	if x+width > bounds.Max.X {
		width = bounds.Max.X - x
	}
	if y+height > bounds.Max.Y {
		height = bounds.Max.Y - y
	}

	result := image.NewRGBA(image.Rect(0, 0, width, height))
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			result.Set(dx, dy, img.At(x+dx, y+dy))
		}
	}
	return result
}

func secondsString(sec int) string {
	return fmt.Sprintf("%d:%02d:%02d", sec/3600, sec/60%60, sec%60)
}
