package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ryukazi/Render-yt/internal/api/handler"
	"github.com/Ryukazi/Render-yt/pkg/models"
)

func TestConvertHandler_DefaultPrefersCombinedFormat(t *testing.T) {
	job := mockJob("j1")
	// Combined descriptor deliberately not first in stored order.
	job.Formats = []models.Format{
		{Itag: "137", HasVideo: true, HasAudio: false},
		{Itag: "18", HasVideo: true, HasAudio: true},
		{Itag: "22", HasVideo: true, HasAudio: true},
	}
	h := handler.NewConvertHandler(seededStore(t, job), "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postJSON(t, "/mates/en/convert", map[string]string{"id": "j1"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeJSON(t, rec)
	if body["status"] != "success" {
		t.Errorf("expected status success, got %v", body["status"])
	}
	// First combined descriptor wins, not the later one and not the
	// video-only one listed first.
	if body["itag"] != "18" {
		t.Errorf("expected itag 18, got %v", body["itag"])
	}
}

func TestConvertHandler_DefaultFallsBackToFirstFormat(t *testing.T) {
	job := mockJob("j1")
	job.Formats = []models.Format{
		{Itag: "137", HasVideo: true, HasAudio: false},
		{Itag: "140", HasVideo: false, HasAudio: true},
	}
	h := handler.NewConvertHandler(seededStore(t, job), "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postJSON(t, "/mates/en/convert", map[string]string{"id": "j1"}))

	body := decodeJSON(t, rec)
	if body["itag"] != "137" {
		t.Errorf("expected fallback to first format 137, got %v", body["itag"])
	}
}

func TestConvertHandler_ExplicitItagPassedThrough(t *testing.T) {
	h := handler.NewConvertHandler(seededStore(t, mockJob("j1")), "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postJSON(t, "/mates/en/convert", map[string]string{"id": "j1", "itag": "140"}))

	body := decodeJSON(t, rec)
	if body["itag"] != "140" {
		t.Errorf("expected itag 140, got %v", body["itag"])
	}
}

func TestConvertHandler_DownloadURLFromRequestHost(t *testing.T) {
	h := handler.NewConvertHandler(seededStore(t, mockJob("j1")), "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postJSON(t, "/mates/en/convert", map[string]string{"id": "j1"}))

	body := decodeJSON(t, rec)
	got, _ := body["downloadUrl"].(string)
	want := "http://example.com/download/file?id=j1&itag=18"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvertHandler_DownloadURLFromConfiguredBase(t *testing.T) {
	h := handler.NewConvertHandler(seededStore(t, mockJob("j1")), "https://relay.example.net")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postJSON(t, "/mates/en/convert", map[string]string{"id": "j1"}))

	body := decodeJSON(t, rec)
	got, _ := body["downloadUrl"].(string)
	if !strings.HasPrefix(got, "https://relay.example.net/download/file?") {
		t.Errorf("expected configured base in %q", got)
	}
}

func TestConvertHandler_MissingID(t *testing.T) {
	h := handler.NewConvertHandler(seededStore(t), "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postJSON(t, "/mates/en/convert", map[string]string{}))

	requireFailure(t, rec, http.StatusBadRequest)
}

func TestConvertHandler_UnknownJob(t *testing.T) {
	h := handler.NewConvertHandler(seededStore(t), "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postJSON(t, "/mates/en/convert", map[string]string{"id": "ghost"}))

	msg := requireFailure(t, rec, http.StatusNotFound)
	if msg != "job not found" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestConvertHandler_MismatchedURLRejected(t *testing.T) {
	h := handler.NewConvertHandler(seededStore(t, mockJob("j1")), "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postJSON(t, "/mates/en/convert", map[string]string{
		"id":  "j1",
		"url": "https://example.com/watch?v=zzz99999999",
	}))

	requireFailure(t, rec, http.StatusBadRequest)
}

func TestConvertHandler_MatchingURLAccepted(t *testing.T) {
	job := mockJob("j1")
	h := handler.NewConvertHandler(seededStore(t, job), "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postJSON(t, "/mates/en/convert", map[string]string{
		"id":  "j1",
		"url": job.SourceURL,
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestConvertHandler_MalformedBody(t *testing.T) {
	h := handler.NewConvertHandler(seededStore(t), "")

	r := httptest.NewRequest(http.MethodPost, "/mates/en/convert", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	requireFailure(t, rec, http.StatusBadRequest)
}
