package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveProbeJSON saves the probed media facts as JSON.
	SaveProbeJSON(data []byte) error

	// SaveHeader saves the rendered header image.
	SaveHeader(img image.Image) error

	// SaveThumbnail saves an extracted thumbnail frame.
	SaveThumbnail(index int, img image.Image) error

	// SaveSheet saves the final composed scan sheet.
	SaveSheet(img image.Image) error
}
