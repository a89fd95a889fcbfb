// Package httpjson holds the small JSON request/response helpers shared by
// all API handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg}. Used for transition acknowledgements.
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"message": msg})
}

// Error writes {"error": msg}. All API error bodies use this shape.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// maxBodyBytes caps JSON request bodies; none of the API payloads are large.
const maxBodyBytes = 1 << 20

// Decode parses the request body into v, rejecting trailing data.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	// A second value means the body held more than one JSON document.
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
