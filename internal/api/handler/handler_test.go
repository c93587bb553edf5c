package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ryukazi/Render-yt/internal/resolver/mock"
	"github.com/Ryukazi/Render-yt/internal/store"
	"github.com/Ryukazi/Render-yt/pkg/models"
)

// --- fixtures ---

// seededStore returns a memory store preloaded with the given jobs.
func seededStore(t *testing.T, jobs ...*models.Job) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore(10 * time.Minute)
	for _, j := range jobs {
		if err := s.Put(context.Background(), j); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	return s
}

// mockJob builds a job matching what analyze would create from the default
// mock resolver (metadata-only descriptor already filtered out).
func mockJob(id string) *models.Job {
	formats := mock.DefaultFormats()
	return &models.Job{
		ID:        id,
		SourceURL: "https://example.com/watch?v=abc12345678",
		Video:     mock.DefaultVideo(),
		Formats:   formats[:3],
		CreatedAt: time.Now(),
	}
}

// --- request/response helpers ---

func postJSON(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

// requireFailure asserts the legacy failure envelope and returns its error
// message.
func requireFailure(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int) string {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("expected %d, got %d: %s", wantStatus, rec.Code, rec.Body.String())
	}
	body := decodeJSON(t, rec)
	if body["status"] != false {
		t.Fatalf("expected status false, got %v", body["status"])
	}
	msg, _ := body["error"].(string)
	if msg == "" {
		t.Fatal("expected a non-empty error message")
	}
	return msg
}
