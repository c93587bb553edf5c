package mock

import (
	"context"
	"io"
	"strings"

	"github.com/Ryukazi/Render-yt/internal/resolver"
	"github.com/Ryukazi/Render-yt/pkg/models"
)

// MockResolver satisfies resolver.Resolver for testing.
type MockResolver struct {
	ResolveFunc func(ctx context.Context, sourceURL, platform string) (*resolver.Resolution, error)
	StreamFunc  func(ctx context.Context, sourceURL, formatKey string) (io.ReadCloser, models.Format, error)
}

func (m *MockResolver) Resolve(ctx context.Context, sourceURL, platform string) (*resolver.Resolution, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, sourceURL, platform)
	}
	return &resolver.Resolution{}, nil
}

func (m *MockResolver) Stream(ctx context.Context, sourceURL, formatKey string) (io.ReadCloser, models.Format, error) {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, sourceURL, formatKey)
	}
	return io.NopCloser(strings.NewReader("")), models.Format{}, nil
}

// DefaultFormats is the canned format list handed out by NewMockResolver:
// one muxed descriptor, one video-only, one audio-only, and one
// metadata-only entry that analyze is expected to drop.
func DefaultFormats() []models.Format {
	return []models.Format{
		{Itag: "18", MimeType: "video/mp4; codecs=\"avc1.42001E, mp4a.40.2\"", Container: "mp4", QualityLabel: "360p", HasVideo: true, HasAudio: true, ApproxSize: 1 << 20},
		{Itag: "137", MimeType: "video/mp4; codecs=\"avc1.640028\"", Container: "mp4", QualityLabel: "1080p", HasVideo: true, HasAudio: false, ApproxSize: 8 << 20},
		{Itag: "140", MimeType: "audio/mp4; codecs=\"mp4a.40.2\"", Container: "mp4", QualityLabel: "unknown", HasVideo: false, HasAudio: true, ApproxSize: 1 << 19},
		{Itag: "999", MimeType: "text/plain", Container: "plain", QualityLabel: "unknown", HasVideo: false, HasAudio: false},
	}
}

// DefaultVideo is the canned metadata handed out by NewMockResolver.
func DefaultVideo() models.Video {
	return models.Video{
		Title:      "Mock Video Title",
		Author:     "Mock Author",
		Duration:   212,
		Thumbnails: []string{"https://example.com/thumb.jpg"},
	}
}

// NewMockResolver returns a MockResolver with sensible default responses.
// Stream serves StreamBody for any itag in DefaultFormats and
// ErrFormatUnavailable otherwise.
func NewMockResolver() *MockResolver {
	return &MockResolver{
		ResolveFunc: func(_ context.Context, _, _ string) (*resolver.Resolution, error) {
			return &resolver.Resolution{Video: DefaultVideo(), Formats: DefaultFormats()}, nil
		},
		StreamFunc: func(_ context.Context, _, formatKey string) (io.ReadCloser, models.Format, error) {
			for _, f := range DefaultFormats() {
				if f.Itag == formatKey {
					return io.NopCloser(strings.NewReader(StreamBody)), f, nil
				}
			}
			return nil, models.Format{}, resolver.ErrFormatUnavailable
		},
	}
}

// StreamBody is the payload NewMockResolver streams for every format.
const StreamBody = "mock media bytes"

// NewFailingResolver returns a MockResolver whose calls all return err.
func NewFailingResolver(err error) *MockResolver {
	return &MockResolver{
		ResolveFunc: func(_ context.Context, _, _ string) (*resolver.Resolution, error) {
			return nil, err
		},
		StreamFunc: func(_ context.Context, _, _ string) (io.ReadCloser, models.Format, error) {
			return nil, models.Format{}, err
		},
	}
}

// Compile-time check that MockResolver implements Resolver.
var _ resolver.Resolver = (*MockResolver)(nil)
