// Package server exposes the symroot tools over HTTP for agent frameworks.
//
//	POST /tool    execute one tool call
//	GET  /schema  tool schema for agent registration
//	GET  /health  liveness check
//	GET  /ws      websocket; one ToolRequest in, one ToolResponse out
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/njchilds90/symroot"
)

const (
	maxBodyBytes = 1 << 20 // 1 MiB
	wsReadLimit  = maxBodyBytes
	wsIdle       = 60 * time.Second
	wsWriteWait  = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr       string         `mapstructure:"addr" yaml:"addr"`
	MaxClients int            `mapstructure:"max_clients" yaml:"max_clients"`
	Config     symroot.Config `mapstructure:"-" yaml:"-"`
}

// Server handles tool calls. It is safe for concurrent use.
type Server struct {
	opts     Options
	log      *slog.Logger
	upgrader websocket.Upgrader
	clients  atomic.Int64
}

// New returns a server. A nil logger discards output.
func New(opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.MaxClients <= 0 {
		opts.MaxClients = 100
	}
	return &Server{
		opts: opts,
		log:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tool", s.recoverer(s.handleTool))
	mux.HandleFunc("/schema", s.handleSchema)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.recoverer(s.handleWS))
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) recoverer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic", "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req symroot.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}

	start := time.Now()
	resp := symroot.HandleToolCallWith(req, s.opts.Config)
	s.log.Debug("tool call", "tool", req.Tool, "elapsed", time.Since(start), "error", resp.Error)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, symroot.MCPToolSpec())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"clients": s.clients.Load(),
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	// Reserve the slot before the handshake.
	if s.clients.Add(1) > int64(s.opts.MaxClients) {
		s.clients.Add(-1)
		http.Error(w, "maximum clients reached", http.StatusServiceUnavailable)
		return
	}
	defer s.clients.Add(-1)
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdle))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read", "error", err)
			}
			return
		}
		var req symroot.ToolRequest
		resp := symroot.ToolResponse{}
		if err := json.Unmarshal(msg, &req); err != nil {
			resp.Error = err.Error()
		} else {
			resp = symroot.HandleToolCallWith(req, s.opts.Config)
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(resp); err != nil {
			s.log.Warn("websocket write", "error", err)
			return
		}
	}
}
