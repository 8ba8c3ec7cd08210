package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"

	"thingsd/internal/things"
	"thingsd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}

// writeDeserializeError renders a decode failure. Only parse failures echo
// the body back.
func writeDeserializeError(w http.ResponseWriter, de *things.DeserializeError) {
	if de.Kind == things.KindIO {
		writeJSON(w, de.StatusCode(), types.IOErrorResponse{Error: de.Error()})
		return
	}
	writeJSON(w, de.StatusCode(), types.ParseErrorResponse{Error: de.Error(), Input: de.Input})
}

// writeJSON writes v compactly, without HTML escaping or a trailing newline,
// so echoed input comes back byte for byte.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
