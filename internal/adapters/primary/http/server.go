// Package http serves a live preview of the deck being built.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// Exporter renders a deck into a downloadable artifact
type Exporter interface {
	Formats() []string
	Render(ctx context.Context, deck *entities.Deck, format string, w io.Writer) error
	MimeType(format string) string
	FileName(base, format string) string
}

// DeckLoader rebuilds the deck from its content source
type DeckLoader func(ctx context.Context) (*entities.Deck, error)

// Server is the preview HTTP server. It holds the current deck and swaps it
// whenever the content file is rebuilt.
type Server struct {
	server   *http.Server
	listener net.Listener
	connMgr  *ConnectionManager
	exporter Exporter
	limiter  *rateLimiter
	config   *entities.ServerConfig
	logger   *slog.Logger

	mu      sync.RWMutex
	deck    *entities.Deck
	running bool
}

// NewServer creates a preview server. config must not be nil.
func NewServer(config *entities.ServerConfig, exporter Exporter, logger *slog.Logger) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "server"))
	return &Server{
		connMgr:  NewConnectionManager(),
		exporter: exporter,
		limiter:  newRateLimiter(100, time.Minute),
		config:   config,
		logger:   logger,
	}
}

// SetDeck replaces the deck being served
func (s *Server) SetDeck(deck *entities.Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = deck
}

// GetDeck returns the deck being served, or nil before the first build
func (s *Server) GetDeck() *entities.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck
}

// Start listens on host:port and serves in the background. Port 0 picks a free port.
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	listener, err := net.Listen("tcp", net.JoinHostPort(host, fmt.Sprint(port)))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go s.connMgr.Run(ctx)

	s.listener = listener
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.GetReadTimeout(),
		WriteTimeout: s.config.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
	s.running = true

	go func() {
		s.logger.Info("preview server listening", slog.String("addr", listener.Addr().String()))
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("preview server error", slog.Any("error", err))
		}
	}()

	return nil
}

// Addr returns the address the server is bound to
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop closes every websocket and shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return errors.New("server not running")
	}
	server := s.server
	s.running = false
	s.listener = nil
	s.mu.Unlock()

	s.connMgr.CloseAll()

	// in-flight handlers read the deck under mu, so shut down unlocked
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// NotifyClients sends an update event to all connected clients
func (s *Server) NotifyClients(event ports.UpdateEvent) error {
	if !s.IsRunning() {
		return errors.New("server not running")
	}
	s.connMgr.Broadcast(event)
	return nil
}

// WatchAndReload rebuilds the deck on every change event and tells clients to
// reload. A failed rebuild keeps the previous deck and broadcasts the error.
// It returns when events is closed or ctx is done.
func (s *Server) WatchAndReload(ctx context.Context, events <-chan ports.FileChangeEvent, load DeckLoader) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			s.reload(ctx, event, load)
		}
	}
}

func (s *Server) reload(ctx context.Context, event ports.FileChangeEvent, load DeckLoader) {
	logger := s.logger.With(slog.String("path", event.Path), slog.String("change", event.Type.String()))

	if event.Type == ports.Deleted {
		logger.Warn("content file removed, keeping last deck")
		s.broadcastError("content file removed")
		return
	}

	deck, err := load(ctx)
	if err != nil {
		logger.Warn("rebuild failed", slog.Any("error", err))
		s.broadcastError(err.Error())
		return
	}

	s.SetDeck(deck)
	logger.Debug("deck rebuilt", slog.Int("slides", deck.SlideCount()))
	s.BroadcastReload()
}

// BroadcastReload tells every client the deck changed
func (s *Server) BroadcastReload() {
	data := map[string]interface{}{"message": "Deck updated"}
	if deck := s.GetDeck(); deck != nil {
		data["slides"] = deck.SlideCount()
	}
	s.connMgr.Broadcast(ports.UpdateEvent{
		Type:      ports.EventTypeReload,
		Timestamp: time.Now(),
		Data:      data,
	})
}

func (s *Server) broadcastError(message string) {
	s.connMgr.Broadcast(ports.UpdateEvent{
		Type:      ports.EventTypeError,
		Timestamp: time.Now(),
		Data:      map[string]string{"message": message},
	})
}

// Handler returns the routed handler with middleware and CORS applied
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/ws", s.handleWebSocket)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/deck", s.handleDeck).Methods(http.MethodGet)
	api.HandleFunc("/slides/{index:[0-9]+}", s.handleSlide).Methods(http.MethodGet)
	api.HandleFunc("/formats", s.handleFormats).Methods(http.MethodGet)
	api.HandleFunc("/export/{format}", s.handleExport).Methods(http.MethodGet)

	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	// security -> rate limiting -> logging -> recovery
	var handler http.Handler = router
	handler = securityHeadersMiddleware(handler)
	handler = rateLimitMiddleware(handler, s.limiter)
	handler = loggingMiddleware(handler, s.logger)
	handler = recoveryMiddleware(handler, s.logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	return c.Handler(handler)
}
