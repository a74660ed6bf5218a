package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/ijfields/IdeaHub-sub002/internal/domain/models"
)

// envelope is the success wire shape shared by all endpoints.
type envelope struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// errorEnvelope is the failure wire shape.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RespondData writes a single-resource success response.
// Payloads are marshaled before any header is written, so an encoding
// failure cannot produce a partial response.
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// RespondList writes a listing success response with pagination metadata.
func RespondList(w http.ResponseWriter, status int, data interface{}, pagination models.Pagination) {
	writeJSON(w, status, envelope{Success: true, Data: data, Pagination: &pagination})
}

// RespondError writes a failure response carrying the machine-readable
// error kind and a human message.
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorEnvelope{Error: kind, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	payload, err := json.Marshal(body)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
