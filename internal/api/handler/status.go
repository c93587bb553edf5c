package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Ryukazi/Render-yt/internal/api/response"
	"github.com/Ryukazi/Render-yt/internal/store"
	"github.com/Ryukazi/Render-yt/pkg/models"
)

// maxStatusFormats caps how many descriptors the summary lists.
const maxStatusFormats = 5

// html/template escapes every interpolated field, which is what keeps a
// hostile video title from injecting markup into the rendered summary.
var statusTemplate = template.Must(template.New("status").Parse(strings.TrimSpace(`
<div class="job-status">
<h3>{{.Video.Title}}</h3>
<p>{{.Video.Author}} &middot; {{.Video.Duration}}s</p>
<ul>
{{- range .Formats}}
<li>{{.QualityLabel}} &middot; {{.Container}} &middot; itag {{.Itag}}</li>
{{- end}}
</ul>
</div>
`)))

type statusResponse struct {
	Status string `json:"status"`
	Result string `json:"result"`
}

// NewStatusHandler returns the handler for GET /mates/en/status. An
// unknown or expired job is a soft failure: HTTP 200 with the failure
// envelope, since the caller polls this endpoint for display.
func NewStatusHandler(st JobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			response.Fail(w, http.StatusBadRequest, "id is required")
			return
		}

		job, err := st.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Fail(w, http.StatusOK, "job not found")
				return
			}
			slog.Error("job lookup failed", "job_id", id, "error", err)
			response.Fail(w, http.StatusInternalServerError, "could not load job")
			return
		}

		formats := job.Formats
		if len(formats) > maxStatusFormats {
			formats = formats[:maxStatusFormats]
		}

		var sb strings.Builder
		err = statusTemplate.Execute(&sb, struct {
			Video   models.Video
			Formats []models.Format
		}{job.Video, formats})
		if err != nil {
			slog.Error("render status failed", "job_id", id, "error", err)
			response.Fail(w, http.StatusInternalServerError, "could not render status")
			return
		}

		response.JSON(w, http.StatusOK, statusResponse{
			Status: "success",
			Result: sb.String(),
		})
	}
}
