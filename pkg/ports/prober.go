package ports

import (
	"context"

	"github.com/user/scansheet/pkg/mediainfo"
)

// Prober abstracts media container introspection.
type Prober interface {
	// Probe inspects the media file at path and returns its format and
	// stream facts.
	Probe(ctx context.Context, path string) (mediainfo.Probe, error)

	// Available reports whether this prober can run in the current
	// environment.
	Available() bool
}
