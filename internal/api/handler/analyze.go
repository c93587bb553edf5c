package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Ryukazi/Render-yt/internal/api/response"
	"github.com/Ryukazi/Render-yt/internal/resolver"
	"github.com/Ryukazi/Render-yt/pkg/models"
)

type analyzeResponse struct {
	Status  string          `json:"status"`
	ID      string          `json:"id"`
	Video   models.Video    `json:"video"`
	Formats []models.Format `json:"formats"`
}

// NewAnalyzeHandler returns the handler for POST /mates/en/analyze/ajax.
// It resolves the submitted URL, drops metadata-only format descriptors,
// and registers a fresh job. Every call creates a new job, even for a URL
// analyzed moments before.
func NewAnalyzeHandler(st JobStore, res FormatResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL      string `json:"url"`
			Platform string `json:"platform"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Fail(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if req.URL == "" {
			response.Fail(w, http.StatusBadRequest, "url is required")
			return
		}
		if !validSource(req.URL) {
			response.Fail(w, http.StatusBadRequest, "unrecognized url or video id")
			return
		}

		resolution, err := res.Resolve(r.Context(), req.URL, req.Platform)
		if err != nil {
			if errors.Is(err, resolver.ErrInvalidSource) {
				response.Fail(w, http.StatusBadRequest, "unrecognized url or video id")
				return
			}
			slog.Error("resolve failed", "url", req.URL, "error", err)
			response.Fail(w, http.StatusBadGateway, "could not resolve video")
			return
		}

		formats := usableFormats(resolution.Formats)
		if len(formats) == 0 {
			slog.Error("resolution has no downloadable formats", "url", req.URL)
			response.Fail(w, http.StatusBadGateway, "no downloadable formats found")
			return
		}

		job := &models.Job{
			ID:        uuid.NewString(),
			SourceURL: req.URL,
			Video:     resolution.Video,
			Formats:   formats,
			CreatedAt: time.Now(),
		}
		if err := st.Put(r.Context(), job); err != nil {
			slog.Error("store job failed", "job_id", job.ID, "error", err)
			response.Fail(w, http.StatusInternalServerError, "could not store job")
			return
		}

		response.JSON(w, http.StatusOK, analyzeResponse{
			Status:  "ok",
			ID:      job.ID,
			Video:   job.Video,
			Formats: job.Formats,
		})
	}
}

// usableFormats keeps descriptors carrying video, audio, or both, in the
// resolver's reported order.
func usableFormats(formats []models.Format) []models.Format {
	out := make([]models.Format, 0, len(formats))
	for _, f := range formats {
		if f.HasVideo || f.HasAudio {
			out = append(out, f)
		}
	}
	return out
}
