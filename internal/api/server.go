// Package api exposes a small HTTP status surface: current per-output blur
// state plus a websocket stream of state transitions.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ForgottenUmbrella/swayblur/internal/logger"
	"github.com/ForgottenUmbrella/swayblur/internal/manager"
)

// Server represents the HTTP status server.
type Server struct {
	router   *mux.Router
	mgr      *manager.Manager
	upgrader websocket.Upgrader
	log      *zerolog.Logger
}

// NewServer creates a status server over the given manager.
func NewServer(mgr *manager.Manager) *Server {
	s := &Server{
		router: mux.NewRouter(),
		mgr:    mgr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: logger.WithComponent("api"),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/outputs", s.handleGetOutputs).Methods("GET")
	api.HandleFunc("/outputs/stream", s.handleOutputStream)
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Start starts the HTTP server and blocks.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Info().Str("addr", addr).Msg("Status server listening")
	return http.ListenAndServe(addr, s.router)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleGetOutputs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.mgr.Snapshot())
}

// handleOutputStream pushes every output state transition to the client.
func (s *Server) handleOutputStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	updates := s.mgr.Subscribe()
	defer s.mgr.Unsubscribe(updates)

	// Send the current state first so clients need no separate snapshot call.
	for _, status := range s.mgr.Snapshot() {
		if err := conn.WriteJSON(status); err != nil {
			s.log.Debug().Err(err).Msg("WebSocket write failed")
			return
		}
	}

	for {
		select {
		case status, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(status); err != nil {
				s.log.Debug().Err(err).Msg("WebSocket write failed")
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
