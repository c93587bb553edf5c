// Package resolver defines the format-resolution boundary: turning a source
// URL into video metadata plus format descriptors, and later into a byte
// stream for one chosen format.
package resolver

import (
	"context"
	"io"

	"github.com/Ryukazi/Render-yt/pkg/models"
)

// Resolution is everything the provider knows about a source at one
// instant. Format order is preserved as the provider reported it.
type Resolution struct {
	Video   models.Video
	Formats []models.Format
}

// Resolver turns source URLs into resolutions and byte streams.
// Stream performs a fresh resolution every time: format selectors handed
// out at analyze time can expire upstream, so analyze-time descriptors are
// used for selection only, never for fetching.
type Resolver interface {
	Resolve(ctx context.Context, sourceURL, platform string) (*Resolution, error)
	Stream(ctx context.Context, sourceURL, formatKey string) (io.ReadCloser, models.Format, error)
}
