// Package summarizer writes a human-readable account of the probed metadata.
package summarizer

import (
	"fmt"
	"io"

	"github.com/user/scansheet/pkg/mediainfo"
)

// Summarizer prints probe summaries to a writer.
type Summarizer struct {
	w io.Writer
}

// New creates a Summarizer writing to w.
func New(w io.Writer) *Summarizer {
	return &Summarizer{w: w}
}

// WriteSummary writes one line per metadata field.
func (s *Summarizer) WriteSummary(info *mediainfo.VideoInfo) error {
	for _, line := range info.Summary() {
		if _, err := fmt.Fprintln(s.w, line); err != nil {
			return err
		}
	}
	return nil
}
