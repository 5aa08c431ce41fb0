package pipeline

import (
	"image"

	"github.com/user/scansheet/pkg/config"
	"github.com/user/scansheet/pkg/layout"
	"github.com/user/scansheet/pkg/mediainfo"
	"github.com/user/scansheet/pkg/ports"
)

// =============================================================================
// Probe Stage Types
// =============================================================================

// ProbeInput contains parameters for media introspection.
type ProbeInput struct {
	FilePath    string
	StreamIndex int // video stream to activate
}

// ProbeResult contains the resolved metadata.
type ProbeResult struct {
	Info *mediainfo.VideoInfo
}

// =============================================================================
// Snapshot Stage Types
// =============================================================================

// SnapshotInput contains parameters for timestamp planning and frame
// extraction.
type SnapshotInput struct {
	Info  *mediainfo.VideoInfo
	Count int // number of frames, normally grid columns x rows

	AvoidLeading          bool
	AvoidEnding           bool
	SkipSecondsFromHead   int
	DiscardSecondsFromEnd int

	// Target size per frame; zero values keep the source size.
	TargetWidth  int
	TargetHeight int
	ScaleMethod  string

	Workers int // 0 means one worker per CPU
}

// SnapshotResult contains the extracted frames joined back into
// planning order.
type SnapshotResult struct {
	Times  []int // seconds into the video, one per frame
	Frames []image.Image
}

// =============================================================================
// Header Stage Types
// =============================================================================

// HeaderInput contains everything needed to assemble and lay out the sheet
// header tree.
type HeaderInput struct {
	Info         *mediainfo.VideoInfo
	Layout       config.Layout
	Fonts        []ports.Font // loaded faces, indexed by the preset's font_list
	Logo         image.Image
	MaxTextLines int
}

// HeaderResult is the laid-out header tree and its total height including
// the outer margins.
type HeaderResult struct {
	Root   *layout.FlexContainer
	Height int
}

// =============================================================================
// Compose Stage Types
// =============================================================================

// ComposeInput contains the laid-out header and the thumbnail material for
// final canvas assembly.
type ComposeInput struct {
	Header   HeaderResult
	Frames   []image.Image
	Times    []int
	Layout   config.Layout
	TimeFont ports.Font
	// ResizeScale divides the final canvas dimensions (1 keeps full size).
	ResizeScale int
}

// ComposeResult contains the finished sheet.
type ComposeResult struct {
	PNG    []byte
	Width  int
	Height int
}
