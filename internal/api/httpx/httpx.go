package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the uniform caller-facing error envelope.
type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type APIError struct {
	Error ErrorBody `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, APIError{Error: ErrorBody{Message: msg, Status: status}})
}
