// Package stream broadcasts engine snapshots to WebSocket viewers. It
// subscribes to the engine and pushes every recorded snapshot to all
// connected clients, so a browser can watch a hand being tracked or
// replayed live.
package stream

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/handtracker/internal/engine"
)

// Message is the wire envelope pushed to viewers.
type Message struct {
	Type     string           `json:"type"`
	Snapshot *engine.Snapshot `json:"snapshot,omitempty"`
}

// Server streams snapshots over WebSocket.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu     sync.Mutex
	conns  map[*websocket.Conn]bool
	latest *engine.Snapshot
}

// NewServer creates a stream server listening on addr.
func NewServer(addr string, logger *log.Logger) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("stream"),
		conns:  make(map[*websocket.Conn]bool),
	}
}

// OnSnapshot broadcasts a recorded snapshot to every connected viewer.
// It implements engine.SnapshotSubscriber.
func (s *Server) OnSnapshot(snap engine.Snapshot) {
	msg := Message{Type: "snapshot", Snapshot: &snap}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = &snap

	for conn := range s.conns {
		if err := conn.WriteJSON(msg); err != nil {
			s.logger.Debug("dropping viewer", "error", err)
			_ = conn.Close()
			delete(s.conns, conn)
		}
	}
}

// Handler returns the HTTP handler serving /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("stream server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.closeAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	s.mu.Lock()
	s.conns[conn] = true
	// Late joiners get the current state immediately.
	if s.latest != nil {
		_ = conn.WriteJSON(Message{Type: "snapshot", Snapshot: s.latest})
	}
	total := len(s.conns)
	s.mu.Unlock()
	s.logger.Info("viewer connected", "total", total)

	// Viewers never send application messages; reading just detects
	// the disconnect.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		s.mu.Lock()
		delete(s.conns, conn)
		total := len(s.conns)
		s.mu.Unlock()
		_ = conn.Close()
		s.logger.Info("viewer disconnected", "total", total)
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
		delete(s.conns, conn)
	}
}
