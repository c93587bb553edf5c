package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/Ryukazi/Render-yt/internal/api/middleware"
)

// Dependencies holds the handlers the router wires up.
type Dependencies struct {
	Liveness http.HandlerFunc
	Analyze  http.HandlerFunc
	Convert  http.HandlerFunc
	Status   http.HandlerFunc
	Download http.HandlerFunc
}

// NewRouter builds the Chi router with the middleware stack and the
// relay's legacy route layout.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/", deps.Liveness)

	r.Post("/mates/en/analyze/ajax", deps.Analyze)
	r.Post("/mates/en/convert", deps.Convert)
	r.Get("/mates/en/status", deps.Status)

	r.Get("/download/file", deps.Download)

	return r
}
