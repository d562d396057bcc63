package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// MessageBody is the response envelope used for every message-only reply.
// Status mirrors the HTTP status code, which the original mobile client
// reads from the body rather than the response line.
type MessageBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondMessage writes a {status, message} envelope with the given status.
func RespondMessage(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, MessageBody{Status: status, Message: message})
}
