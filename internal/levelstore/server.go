// Package levelstore serves level documents over HTTP, streams level changes
// over a websocket feed, and provides the matching client and a directory
// importer.
package levelstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/storage"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

const maxBodyBytes = 1 << 20

// Repository is the persistence the server needs. *storage.Store satisfies it.
type Repository interface {
	CreateLevel(d level.Descriptor) (string, error)
	PutLevel(id string, d level.Descriptor) (bool, error)
	Level(id string) (level.Descriptor, error)
	DeleteLevel(id string) error
	LevelIDs() ([]string, error)
}

// Server exposes a Repository as the level API.
type Server struct {
	repo   Repository
	hub    *Hub
	logger *log.Logger
	mux    *http.ServeMux
}

// MessageResponse is the body of successful writes.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer wires the routes. A nil logger discards output.
func NewServer(repo Repository, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		repo:   repo,
		hub:    NewHub(logger),
		logger: logger,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET "+BasePath+"/levels", s.handleList)
	s.mux.HandleFunc("POST "+BasePath+"/levels", s.handleCreate)
	s.mux.Handle("GET "+BasePath+"/events", s.hub)
	s.mux.HandleFunc("GET "+BasePath+"/levels/{id}", s.handleGet)
	s.mux.HandleFunc("PUT "+BasePath+"/levels/{id}", s.handlePut)
	s.mux.HandleFunc("DELETE "+BasePath+"/levels/{id}", s.handleDelete)
	return s
}

// Hub returns the change feed.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Close disconnects feed clients.
func (s *Server) Close() {
	s.hub.Close()
}

// Import upserts d under id and publishes the change. Used by the directory
// importer so file drops reach feed clients too.
func (s *Server) Import(id string, d level.Descriptor) (bool, error) {
	created, err := s.repo.PutLevel(id, d)
	if err != nil {
		return false, err
	}
	s.publish(created, id)
	return created, nil
}

// Remove deletes id and publishes the change.
func (s *Server) Remove(id string) error {
	if err := s.repo.DeleteLevel(id); err != nil {
		return err
	}
	s.hub.Broadcast(Event{Type: EventDeleted, ID: id})
	return nil
}

func (s *Server) publish(created bool, id string) {
	kind := EventUpdated
	if created {
		kind = EventCreated
	}
	s.hub.Broadcast(Event{Type: kind, ID: id})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.repo.LevelIDs()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	d, err := decodeLevel(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	id, err := s.repo.CreateLevel(d)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("level created", "id", id, "elements", len(d.Blocks))
	s.hub.Broadcast(Event{Type: EventCreated, ID: id})
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Level created", ID: id})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	d, err := s.repo.Level(id)
	if errors.Is(err, storage.ErrLevelNotFound) {
		s.fail(w, http.StatusNotFound, fmt.Errorf("level %q not found", id))
		return
	}
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	d.ID = id
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	d, err := decodeLevel(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	created, err := s.repo.PutLevel(id, d)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.publish(created, id)

	if created {
		s.logger.Info("level created", "id", id, "elements", len(d.Blocks))
		writeJSON(w, http.StatusCreated, MessageResponse{Message: "Level created", ID: id})
		return
	}
	s.logger.Info("level updated", "id", id, "elements", len(d.Blocks))
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Level updated", ID: id})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := s.repo.DeleteLevel(id)
	if errors.Is(err, storage.ErrLevelNotFound) {
		s.fail(w, http.StatusNotFound, fmt.Errorf("level %q not found", id))
		return
	}
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("level deleted", "id", id)
	s.hub.Broadcast(Event{Type: EventDeleted, ID: id})
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Level deleted", ID: id})
}

func decodeLevel(r *http.Request) (level.Descriptor, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return level.Descriptor{}, fmt.Errorf("cannot read body: %w", err)
	}
	d, err := level.Parse(body)
	if err != nil {
		return level.Descriptor{}, err
	}
	if err := level.Validate(d); err != nil {
		return level.Descriptor{}, err
	}
	return d, nil
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack hands the connection to the websocket upgrader.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("levelstore: response does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
