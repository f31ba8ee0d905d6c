package mail

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Service is the HTTP surface of the mail endpoint. Exactly two routes:
// POST /api/send-confirmation and GET /api/health.
type Service struct {
	sender Sender
	log    *slog.Logger
}

func NewService(sender Sender, log *slog.Logger) *Service {
	return &Service{sender: sender, log: log}
}

type sendResponse struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Router builds the chi handler for the service.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, sendResponse{OK: false, Error: "Method Not Allowed"})
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, sendResponse{OK: false, Error: "Not Found"})
	})

	r.Post("/api/send-confirmation", s.handleSend)
	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, sendResponse{OK: true})
	})
	return r
}

func (s *Service) handleSend(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, sendResponse{OK: false, Error: "Invalid JSON"})
		return
	}
	if err := msg.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, sendResponse{OK: false, Error: err.Error()})
		return
	}

	id, err := s.sender.Send(&msg)
	if err != nil {
		if IsValidation(err) {
			writeJSON(w, http.StatusBadRequest, sendResponse{OK: false, Error: err.Error()})
			return
		}
		s.log.Error("mail send failed", "to", msg.To, "err", err)
		writeJSON(w, http.StatusInternalServerError, sendResponse{OK: false, Error: "Send failed"})
		return
	}
	writeJSON(w, http.StatusOK, sendResponse{OK: true, ID: id})
}
