package server

import (
	"encoding/json"
	"net/http"
	"time"
)

type successEnvelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func (s *Server) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	env := successEnvelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.log.Error().Err(err).Msg("encoding response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorEnvelope{Error: msg}); err != nil {
		s.log.Error().Err(err).Msg("encoding error response")
	}
}

// respondInternal hides the cause from the client and keeps it in the log.
func (s *Server) respondInternal(w http.ResponseWriter, err error) {
	s.log.Error().Err(err).Msg("internal error")
	s.respondError(w, http.StatusInternalServerError, "internal server error")
}
