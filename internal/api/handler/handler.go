// Package handler implements the relay's four operations: analyze a source
// URL into a job, convert a job into a download URL, render a job status
// summary, and stream a chosen format's bytes.
package handler

import (
	"context"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/Ryukazi/Render-yt/internal/resolver"
	"github.com/Ryukazi/Render-yt/pkg/models"
)

// JobStore is the slice of the job store the handlers depend on.
type JobStore interface {
	Put(ctx context.Context, job *models.Job) error
	Get(ctx context.Context, id string) (*models.Job, error)
}

// FormatResolver is the slice of the resolver the handlers depend on.
type FormatResolver interface {
	Resolve(ctx context.Context, sourceURL, platform string) (*resolver.Resolution, error)
	Stream(ctx context.Context, sourceURL, formatKey string) (io.ReadCloser, models.Format, error)
}

var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// validSource reports whether s looks like an http(s) URL or a bare video
// id. Anything else is rejected before touching the resolver.
func validSource(s string) bool {
	if videoIDPattern.MatchString(s) {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// sanitizeFilename restricts a title to a header-safe character set. Runs
// of disallowed characters collapse into a single underscore.
func sanitizeFilename(name string) string {
	var b strings.Builder
	pendingGap := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			pendingGap = false
		default:
			if !pendingGap && b.Len() > 0 {
				b.WriteByte('_')
				pendingGap = true
			}
		}
	}
	s := strings.Trim(b.String(), "._")
	if s == "" {
		return "video"
	}
	return s
}
