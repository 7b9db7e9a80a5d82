package response

import (
	"encoding/json"
	"net/http"
	"time"
)

type envelope struct {
	Data any `json:"data"`
}

type metaEnvelope struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Meta describes the snapshot a response was computed from. Query is the
// canonical view query string, set on view-dependent responses.
type Meta struct {
	WindowDays int       `json:"window_days"`
	LoadedAt   time.Time `json:"loaded_at"`
	Query      string    `json:"query,omitempty"`
}

func JSON(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Data: data})
}

func WithMeta(w http.ResponseWriter, data any, meta Meta) {
	writeJSON(w, http.StatusOK, metaEnvelope{Data: data, Meta: meta})
}

func Error(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
