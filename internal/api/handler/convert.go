package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Ryukazi/Render-yt/internal/api/response"
	"github.com/Ryukazi/Render-yt/internal/store"
	"github.com/Ryukazi/Render-yt/pkg/models"
)

type convertResponse struct {
	Status      string `json:"status"`
	DownloadURL string `json:"downloadUrl"`
	Itag        string `json:"itag"`
}

// NewConvertHandler returns the handler for POST /mates/en/convert. It
// commits to a format choice for an analyzed job and hands back a deferred
// download URL; no bytes are fetched here. baseURL overrides the host the
// URL is built against; empty means use the request's Host.
func NewConvertHandler(st JobStore, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID   string `json:"id"`
			URL  string `json:"url"`
			Itag string `json:"itag"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Fail(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if req.ID == "" {
			response.Fail(w, http.StatusBadRequest, "id is required")
			return
		}

		job, err := st.Get(r.Context(), req.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Fail(w, http.StatusNotFound, "job not found")
				return
			}
			slog.Error("job lookup failed", "job_id", req.ID, "error", err)
			response.Fail(w, http.StatusInternalServerError, "could not load job")
			return
		}

		// A convert call carrying a different URL than the one analyzed
		// would silently redirect the job to another video, so it is
		// rejected instead of honored.
		if req.URL != "" && req.URL != job.SourceURL {
			response.Fail(w, http.StatusBadRequest, "url does not match the analyzed job")
			return
		}

		itag := req.Itag
		if itag == "" {
			f, ok := defaultFormat(job.Formats)
			if !ok {
				response.Fail(w, http.StatusNotFound, "no formats available")
				return
			}
			itag = f.Itag
		}

		q := url.Values{}
		q.Set("id", job.ID)
		q.Set("itag", itag)
		downloadURL := resolveBase(baseURL, r) + "/download/file?" + q.Encode()

		response.JSON(w, http.StatusOK, convertResponse{
			Status:      "success",
			DownloadURL: downloadURL,
			Itag:        itag,
		})
	}
}

// defaultFormat picks the first descriptor with both video and audio, in
// stored order; with no combined descriptor it falls back to the first one
// regardless of capability.
func defaultFormat(formats []models.Format) (models.Format, bool) {
	for _, f := range formats {
		if f.HasVideo && f.HasAudio {
			return f, true
		}
	}
	if len(formats) == 0 {
		return models.Format{}, false
	}
	return formats[0], true
}

func resolveBase(baseURL string, r *http.Request) string {
	if baseURL != "" {
		return baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
