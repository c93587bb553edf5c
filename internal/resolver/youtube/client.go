// Package youtube adapts kkdai/youtube/v2 to the resolver interface.
package youtube

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/Ryukazi/Render-yt/internal/resolver"
	"github.com/Ryukazi/Render-yt/pkg/models"
)

// Resolver resolves youtube watch URLs and bare video ids.
type Resolver struct {
	client youtube.Client
}

func NewResolver() *Resolver {
	return &Resolver{client: youtube.Client{}}
}

// Resolve fetches metadata and the raw format list for a source. The
// platform hint is accepted for interface compatibility; this provider has
// only one platform and ignores it.
func (r *Resolver) Resolve(ctx context.Context, sourceURL, _ string) (*resolver.Resolution, error) {
	video, err := r.client.GetVideoContext(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", resolver.ErrUnresolvable, err)
	}

	formats := make([]models.Format, 0, len(video.Formats))
	for _, f := range video.Formats {
		formats = append(formats, mapFormat(f))
	}

	return &resolver.Resolution{
		Video:   mapVideo(video),
		Formats: formats,
	}, nil
}

// Stream re-resolves the source and opens the requested format for
// reading. The caller owns the returned ReadCloser.
func (r *Resolver) Stream(ctx context.Context, sourceURL, formatKey string) (io.ReadCloser, models.Format, error) {
	video, err := r.client.GetVideoContext(ctx, sourceURL)
	if err != nil {
		return nil, models.Format{}, fmt.Errorf("%w: %v", resolver.ErrUnresolvable, err)
	}

	itag, err := strconv.Atoi(formatKey)
	if err != nil {
		return nil, models.Format{}, fmt.Errorf("%w: itag %q", resolver.ErrFormatUnavailable, formatKey)
	}
	format := video.Formats.FindByItag(itag)
	if format == nil {
		return nil, models.Format{}, fmt.Errorf("%w: itag %q", resolver.ErrFormatUnavailable, formatKey)
	}

	rc, size, err := r.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, models.Format{}, fmt.Errorf("open stream for itag %s: %w", formatKey, err)
	}

	mf := mapFormat(*format)
	if mf.ApproxSize == 0 && size > 0 {
		mf.ApproxSize = size
	}
	return rc, mf, nil
}

func mapVideo(v *youtube.Video) models.Video {
	thumbs := make([]string, 0, len(v.Thumbnails))
	for _, t := range v.Thumbnails {
		thumbs = append(thumbs, t.URL)
	}
	return models.Video{
		Title:      v.Title,
		Author:     v.Author,
		Duration:   int(v.Duration.Seconds()),
		Thumbnails: thumbs,
	}
}

func mapFormat(f youtube.Format) models.Format {
	mediaType := mediaTypeOf(f.MimeType)
	quality := f.QualityLabel
	if quality == "" {
		quality = f.Quality
	}
	if quality == "" {
		quality = "unknown"
	}
	return models.Format{
		Itag:         strconv.Itoa(f.ItagNo),
		MimeType:     f.MimeType,
		Container:    containerOf(mediaType),
		QualityLabel: quality,
		HasVideo:     strings.HasPrefix(mediaType, "video/"),
		HasAudio:     f.AudioChannels > 0,
		ApproxSize:   f.ContentLength,
	}
}

// mediaTypeOf strips codec parameters: "video/mp4; codecs=..." -> "video/mp4".
func mediaTypeOf(mimeType string) string {
	mediaType, _, _ := strings.Cut(mimeType, ";")
	return strings.TrimSpace(mediaType)
}

func containerOf(mediaType string) string {
	_, subtype, ok := strings.Cut(mediaType, "/")
	if !ok {
		return ""
	}
	return subtype
}

var _ resolver.Resolver = (*Resolver)(nil)
