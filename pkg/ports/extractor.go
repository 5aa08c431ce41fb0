package ports

import (
	"context"
	"image"
)

// FrameExtractor abstracts single-frame extraction from a video file.
type FrameExtractor interface {
	// Extract grabs one frame at the given time (in seconds) from the
	// selected video stream and returns it decoded.
	Extract(ctx context.Context, path string, atSec int, streamIndex int) (image.Image, error)
}
