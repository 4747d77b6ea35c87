// Package response holds the JSON request/response helpers shared by the
// feature module routers.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrInvalidBody is returned when a request body cannot be decoded.
var ErrInvalidBody = errors.New("response: invalid request body")

// envelope is the uniform error payload shape.
type envelope struct {
	Error errBody `json:"error"`
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Error writes a uniform JSON error payload.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, envelope{Error: errBody{Code: code, Message: message}})
}

// Decode reads the request body into v, limiting the body to 1 MiB and
// rejecting unknown fields.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	return nil
}
