// Package response writes the legacy JSON envelopes the relay's clients
// expect. Success shapes differ per endpoint ("ok" for analyze, "success"
// for convert and status), so handlers own their success structs and only
// the failure envelope is shared: {"status": false, "error": "..."}.
package response

import (
	"encoding/json"
	"net/http"
)

type failureEnvelope struct {
	Status bool   `json:"status"`
	Error  string `json:"error"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Fail writes the shared failure envelope. Status is always the JSON
// literal false.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, failureEnvelope{Status: false, Error: message})
}
