package models

import "time"

// Video holds the best-effort metadata returned by the format resolver.
// Every field may be empty or zero if the upstream source omits it.
type Video struct {
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Duration   int      `json:"duration"` // seconds
	Thumbnails []string `json:"thumbnails,omitempty"`
}

// Format describes one downloadable encoding of a video. Itag is the opaque
// selector used to fetch this specific encoding later. A descriptor is only
// kept when it carries video, audio, or both; metadata-only entries are
// filtered out at analyze time.
type Format struct {
	Itag         string `json:"itag"`
	MimeType     string `json:"mimeType"`
	Container    string `json:"container"`
	QualityLabel string `json:"qualityLabel"`
	HasVideo     bool   `json:"hasVideo"`
	HasAudio     bool   `json:"hasAudio"`
	ApproxSize   int64  `json:"approxSize,omitempty"`
}

// Job links an opaque id to a resolved video and its format list. Formats
// are a snapshot taken at analyze time; the download handler re-resolves
// the source before fetching bytes, so a snapshot may disagree with what is
// fetchable later. CreatedAt drives expiry only.
type Job struct {
	ID        string    `json:"id"`
	SourceURL string    `json:"source_url"`
	Video     Video     `json:"video"`
	Formats   []Format  `json:"formats"`
	CreatedAt time.Time `json:"created_at"`
}
