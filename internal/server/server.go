// ABOUTME: HTTP API exposing refresh, listing, and read-state operations
// ABOUTME: Thin chi layer over the feed service; maps error kinds to status codes

package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harper/currents/internal/feed"
	"github.com/harper/currents/internal/models"
	"github.com/harper/currents/internal/storage"
)

// Server is the HTTP API server.
type Server struct {
	store   storage.Store
	service *feed.Service
	router  chi.Router
}

// New creates a server over the given store and feed service.
func New(store storage.Store, service *feed.Service) *Server {
	s := &Server{
		store:   store,
		service: service,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health_check", s.handleHealthCheck)
		r.Get("/channels", s.handleListChannels)
		r.Post("/channels", s.handleAddChannel)
		r.Get("/feeds/{channelID}", s.handleListEntries)
		r.Post("/feeds/{channelID}", s.handleRefresh)
		r.Post("/entries/{entryID}/toggle", s.handleToggleRead)
	})

	s.router = r
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until the listener fails.
func (s *Server) Start(addr string) error {
	log.Printf("Server starting on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// --- Handlers ---

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type channelResponse struct {
	ID        string    `json:"id"`
	Link      string    `json:"link"`
	Unread    int       `json:"unread"`
	CreatedAt time.Time `json:"created_at"`
}

func channelToResponse(ch *models.Channel) channelResponse {
	return channelResponse{ID: ch.ID, Link: ch.Link, Unread: ch.Unread, CreatedAt: ch.CreatedAt}
}

func (s *Server) handleListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := s.store.ListChannels()
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]channelResponse, 0, len(channels))
	for _, ch := range channels {
		out = append(out, channelToResponse(ch))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddChannel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Link string `json:"link"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Link == "" {
		http.Error(w, "Invalid request: link required", http.StatusBadRequest)
		return
	}

	ch := models.NewChannel(req.Link)
	if err := s.store.CreateChannel(ch); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, channelToResponse(ch))
}

type entryResponse struct {
	ID          string    `json:"id"`
	ExternalID  string    `json:"entry_id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published"`
	UpdatedAt   time.Time `json:"updated"`
	Read        bool      `json:"read"`
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "channelID")

	entries, err := s.service.ListEntries(channelID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entryResponse{
			ID:          entry.ID,
			ExternalID:  entry.ExternalID,
			Title:       entry.Title,
			Link:        entry.Link,
			PublishedAt: entry.PublishedAt,
			UpdatedAt:   entry.UpdatedAt,
			Read:        entry.Read,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "channelID")

	doc, err := s.service.Refresh(r.Context(), channelID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleToggleRead(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")

	entry, err := s.service.ToggleRead(entryID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":   entry.ID,
		"read": entry.Read,
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeError maps the error taxonomy onto status codes: unknown ids are the
// caller's fault, upstream fetch/parse trouble is a bad gateway, anything
// else is on us.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var fetchErr *feed.FetchError
	var parseErr *feed.ParseError

	switch {
	case errors.Is(err, storage.ErrChannelNotFound), errors.Is(err, storage.ErrEntryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &fetchErr), errors.As(err, &parseErr):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		log.Printf("internal error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
