package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/feather"
	"github.com/feather-dev/feather/pkg/protocol"
)

// Server owns one mounted root and the viewers watching it.
type Server struct {
	// mu guards root, the document, seq, pending and viewers.
	mu      sync.Mutex
	root    *feather.Root
	doc     *dom.Document
	seq     uint64
	pending []protocol.Mutation
	viewers map[*viewer]struct{}
	closed  bool

	nextViewer uint64

	config     *Config
	upgrader   websocket.Upgrader
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// New mounts app into a fresh document and returns a server for it.
// attrs and children are passed to the root as with feather.Mount.
func New(config *Config, app any, attrs any, children ...any) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	config = config.withDefaults()

	s := &Server{
		doc:     dom.NewDocument(),
		viewers: make(map[*viewer]struct{}),
		config:  config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: config.Logger.With("component", "server"),
	}

	s.doc.Observe(func(m dom.Mutation) {
		s.pending = append(s.pending, protocol.FromDOM(m))
	})
	s.root = feather.MountWith(config.Options, s.doc.Body(), app, attrs, children...)
	// Viewers catch up from a replay; the mount itself is never streamed.
	s.pending = nil

	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.router }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Config returns the effective configuration.
func (s *Server) Config() *Config { return s.config }

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger { return s.logger }

// Seq returns the sequence number of the last broadcast batch.
func (s *Server) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Viewers returns the number of connected viewers.
func (s *Server) Viewers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.viewers)
}

// Do runs fn as one batch with exclusive access to the root, then
// broadcasts whatever fn changed.
func (s *Server) Do(fn func(root *feather.Root)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root.Batch(func() { fn(s.root) })
	s.broadcastLocked()
}

// Dispatch delivers an event to node id. It reports whether the node
// exists and whether a handler ran.
func (s *Server) Dispatch(id uint64, typ, value string, data map[string]string) (found, handled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.doc.NodeByID(id)
	if !ok {
		return false, false
	}
	handled = s.root.Dispatch(&dom.Event{Type: typ, Target: target, Value: value, Data: data})
	s.broadcastLocked()
	return true, handled
}

// broadcastLocked sends pending mutations to every viewer as one batch.
func (s *Server) broadcastLocked() {
	if len(s.pending) == 0 {
		return
	}
	s.seq++
	batch := &protocol.Batch{Seq: s.seq, Mutations: s.pending}
	s.pending = nil

	frame := (&protocol.Frame{Type: protocol.FrameMutations, Payload: protocol.EncodeBatch(batch)}).Encode()
	for v := range s.viewers {
		if !v.enqueue(frame) {
			s.logger.Warn("viewer too slow, disconnecting", "viewer", v.id, "seq", s.seq)
			s.dropLocked(v, "slow")
		}
	}
	s.logger.Debug("broadcast", "seq", s.seq, "mutations", len(batch.Mutations), "viewers", len(s.viewers))
}

// Run listens on the configured address until ctx is done, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadTimeout,
		ReadTimeout:       s.config.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return fmt.Errorf("listen %s: %w", s.config.Addr, err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown disconnects all viewers, unmounts the root and stops the HTTP
// server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	if !s.closed {
		s.closed = true
		for v := range s.viewers {
			s.dropLocked(v, "")
		}
		s.root.Unmount()
		s.pending = nil
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

func (s *Server) writeDeadline() time.Time {
	return time.Now().Add(s.config.WriteTimeout)
}
