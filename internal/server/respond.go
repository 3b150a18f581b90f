package server

import (
	"encoding/json"
	"errors"
	"net/http"
)

var errInternal = errors.New("internal server error")

// errorBody is the JSON envelope for every failed request.
type errorBody struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	RequestID  string `json:"request_id,omitempty"`

	// Set for column count mismatches only.
	Line     int `json:"line,omitempty"`
	Expected int `json:"expected,omitempty"`
	Actual   int `json:"actual,omitempty"`
}

// writeJSON writes v as application/json with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error envelope for err.
func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	body := errorBody{
		StatusCode: status,
		Status:     http.StatusText(status),
		Error:      err.Error(),
		RequestID:  RequestID(r.Context()),
	}
	if line, expected, actual, ok := columnDetail(err); ok {
		body.Line, body.Expected, body.Actual = line, expected, actual
	}
	writeJSON(w, status, body)
}
