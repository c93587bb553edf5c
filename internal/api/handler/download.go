package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ryukazi/Render-yt/internal/resolver"
	"github.com/Ryukazi/Render-yt/internal/store"
)

// NewDownloadHandler returns the handler for GET /download/file. It
// re-resolves the job's source before fetching so the byte stream always
// comes from a fresh resolution; the analyze-time descriptors are never
// used as fetch handles. Errors here are plain text, not JSON: the caller
// is a browser following a download link.
func NewDownloadHandler(st JobStore, res FormatResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		itag := r.URL.Query().Get("itag")
		if id == "" || itag == "" {
			http.Error(w, "id and itag are required", http.StatusBadRequest)
			return
		}

		job, err := st.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "job not found", http.StatusNotFound)
				return
			}
			slog.Error("job lookup failed", "job_id", id, "error", err)
			http.Error(w, "could not load job", http.StatusInternalServerError)
			return
		}

		// The request context cancels the upstream fetch when the client
		// goes away mid-download.
		rc, format, err := res.Stream(r.Context(), job.SourceURL, itag)
		if err != nil {
			switch {
			case errors.Is(err, resolver.ErrFormatUnavailable):
				http.Error(w, "format no longer available", http.StatusNotFound)
			case errors.Is(err, resolver.ErrUnresolvable):
				slog.Error("re-resolve failed", "job_id", id, "error", err)
				http.Error(w, "could not resolve video", http.StatusBadGateway)
			default:
				slog.Error("open stream failed", "job_id", id, "itag", itag, "error", err)
				http.Error(w, "could not open stream", http.StatusBadGateway)
			}
			return
		}
		defer rc.Close()

		ext := format.Container
		if ext == "" {
			ext = "mp4"
		}
		filename := fmt.Sprintf("%s.%s", sanitizeFilename(job.Video.Title), ext)

		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Type", mediaTypeOf(format.MimeType))
		if format.ApproxSize > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(format.ApproxSize, 10))
		}

		// Headers are committed once the first chunk is written; a failure
		// past that point can only terminate the connection.
		if _, err := io.Copy(w, rc); err != nil {
			slog.Warn("download stream aborted", "job_id", id, "itag", itag, "error", err)
		}
	}
}

// mediaTypeOf strips codec parameters from a mime type for use as a
// Content-Type header.
func mediaTypeOf(mimeType string) string {
	mediaType, _, _ := strings.Cut(mimeType, ";")
	mediaType = strings.TrimSpace(mediaType)
	if mediaType == "" {
		return "application/octet-stream"
	}
	return mediaType
}
