// Package server exposes the reference remote item store over HTTP. The
// surface matches what the sync engine's remote client expects: a flat
// /items resource with caller-assigned ids and 404 on unknown ids.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mintmark/mintmark/internal/store"
	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/logging"
)

// Server is the remote store HTTP server.
type Server struct {
	store  *store.Store
	router chi.Router
	log    *zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

// New creates a server over the given item store.
func New(st *store.Store, opts ...Option) *Server {
	s := &Server{
		store: st,
		log:   logging.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Route("/items", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleUpdate)
			r.Delete("/", s.handleDelete)
		})
	})
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, http.StatusOK, items)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, http.StatusOK, item)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var item collection.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		s.detail(w, http.StatusBadRequest, "invalid item payload")
		return
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	if err := s.store.Insert(r.Context(), &item); err != nil {
		s.fail(w, err)
		return
	}

	s.log.Debug().Str("item", item.ID).Msg("Item created")
	s.respond(w, http.StatusCreated, &item)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var item collection.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		s.detail(w, http.StatusBadRequest, "invalid item payload")
		return
	}
	item.ID = chi.URLParam(r, "id")

	if err := s.store.Update(r.Context(), &item); err != nil {
		s.fail(w, err)
		return
	}

	s.log.Debug().Str("item", item.ID).Msg("Item updated")
	s.respond(w, http.StatusOK, &item)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}

	s.log.Debug().Str("item", id).Msg("Item deleted")
	s.respond(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}

func (s *Server) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) detail(w http.ResponseWriter, status int, message string) {
	s.respond(w, status, map[string]string{"detail": message})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.IsNotFound(err) {
		s.detail(w, http.StatusNotFound, "Item not found")
		return
	}
	s.log.Err(err).Msg("Store operation failed")
	s.detail(w, http.StatusInternalServerError, "internal error")
}
