package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Server exposes the spectator feed over HTTP.
type Server struct {
	hub      *Hub
	token    string
	http     *http.Server
	listener net.Listener
	logger   zerolog.Logger
}

// NewServer wires the routes. Call Start to begin listening.
func NewServer(addr, token string, hub *Hub, logger zerolog.Logger) *Server {
	s := &Server{
		hub:    hub,
		token:  token,
		logger: logger.With().Str("component", "spectate").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", HandleWebSocket(hub, token))
	mux.HandleFunc("/api/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/status", s.handleStatus)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start binds the listen address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return eris.Wrapf(err, "failed to listen on %s", s.http.Addr)
	}
	s.listener = ln

	s.logger.Info().Str("addr", ln.Addr().String()).Msgf("spectator feed at ws://%s/ws", ln.Addr())
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("spectator server failed")
		}
	}()
	return nil
}

// Addr returns the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.http.Addr
	}
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if err := s.http.Shutdown(ctx); err != nil {
		return eris.Wrap(err, "failed to shut down spectator server")
	}
	return nil
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !Authorize(r, s.token) {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	last := s.hub.Last()
	if last == nil {
		http.Error(w, "No snapshot yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(last)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"watchers": s.hub.Count(),
		"live":     s.hub.Last() != nil,
	})
}
