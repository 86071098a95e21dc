// Package web provides an HTTP server for browsing and editing a ledger file.
//
// The server exposes a JSON API for reading and writing the ledger source,
// listing transactions, accounts and balances, and streams reload events
// over Server-Sent Events when the file changes on disk.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
// File access is restricted to the directory of the served file.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/feledger/ast"
	"github.com/robinvdvleuten/feledger/ledger"
	"github.com/robinvdvleuten/feledger/loader"
	"github.com/robinvdvleuten/feledger/parser"
	"github.com/robinvdvleuten/feledger/telemetry"
)

// Server serves a single ledger file.
type Server struct {
	Port         int
	Host         string
	Version      string
	ReadOnly     bool
	WatchEnabled bool

	logger zerolog.Logger

	mu       sync.RWMutex
	ledger   *ledger.Ledger
	tree     *ast.Ledger
	parseErr error  // last parse failure, nil when the file parsed
	rootFile string // Absolute path of the ledger file

	// inputFile is the file path passed to New(), used only for loading.
	inputFile string

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithPort sets the listening port.
func WithPort(port int) Option {
	return func(s *Server) { s.Port = port }
}

// WithHost sets the listening host.
func WithHost(host string) Option {
	return func(s *Server) { s.Host = host }
}

// WithVersion sets the version reported by the server.
func WithVersion(version string) Option {
	return func(s *Server) { s.Version = version }
}

// WithReadOnly rejects every write request with 403.
func WithReadOnly(readOnly bool) Option {
	return func(s *Server) { s.ReadOnly = readOnly }
}

// WithWatch reloads the ledger when the file changes on disk.
func WithWatch(enabled bool) Option {
	return func(s *Server) { s.WatchEnabled = enabled }
}

// WithLogger sets the logger for requests and reload events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a server for ledgerFile. Nothing is loaded until Start or
// Reload is called.
func New(ledgerFile string, opts ...Option) *Server {
	s := &Server{
		Port:       8080,
		Host:       "127.0.0.1",
		logger:     zerolog.Nop(),
		ledger:     ledger.New(),
		tree:       &ast.Ledger{},
		inputFile:  ledgerFile,
		sseClients: make(map[chan string]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the ledger and serves HTTP until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))

	if s.inputFile == "" {
		timer.End()
		return fmt.Errorf("ledger file is required")
	}

	loadTimer := timer.Child(fmt.Sprintf("web.load_ledger %s", filepath.Base(s.inputFile)))
	if err := s.Reload(ctx); err != nil {
		loadTimer.End()
		timer.End()
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	loadTimer.End()

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			timer.End()
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	setupTimer := timer.Child("web.setup_router")
	handler := s.Handler()
	setupTimer.End()
	timer.End()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.Host, s.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().
		Str("addr", srv.Addr).
		Str("file", s.rootFile).
		Bool("read_only", s.ReadOnly).
		Bool("watch", s.WatchEnabled).
		Msg("server started")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the HTTP handler with request logging and panic recovery
// applied.
func (s *Server) Handler() http.Handler {
	logging := newLoggingMiddleware(s.logger)
	return logging.Wrap(recovery(s.logger, s.setupRouter()))
}

func (s *Server) setupRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/source", s.handleGetSource)
	mux.HandleFunc("PUT /api/source", s.requireWritable(s.handlePutSource))
	mux.HandleFunc("GET /api/transactions", s.handleGetTransactions)
	mux.HandleFunc("GET /api/accounts", s.handleGetAccounts)
	mux.HandleFunc("GET /api/balances", s.handleGetBalances)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	return mux
}

// requireWritable is middleware that rejects write requests in read-only mode.
func (s *Server) requireWritable(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.ReadOnly {
			writeError(w, http.StatusForbidden, errors.New("server is in read-only mode"))
			return
		}
		next(w, r)
	}
}

// Reload loads the ledger from disk and swaps it in.
//
// A file that fails to parse is not an error here: the parse error is kept
// and reported by the API next to an empty ledger, so the file can be fixed
// through PUT /api/source. Only I/O failures are returned.
// Caller must NOT hold the mutex.
func (s *Server) Reload(ctx context.Context) error {
	ldr := loader.New()

	l := ledger.New()
	tree := &ast.Ledger{}
	result, err := ldr.Load(ctx, s.inputFile)

	var parseErr error
	var perr *parser.ParseError
	switch {
	case errors.As(err, &perr):
		parseErr = perr
		s.logger.Warn().Err(err).Msg("ledger does not parse")
	case err != nil:
		return err
	default:
		tree = result.Ledger
		if l.Process(ctx, result.Ledger) != nil {
			s.logger.Debug().Int("errors", len(l.Errors())).Msg("ledger has validation errors")
		}
	}

	root, absErr := filepath.Abs(s.inputFile)
	if absErr != nil {
		return absErr
	}

	s.mu.Lock()
	s.ledger = l
	s.tree = tree
	s.rootFile = root
	s.parseErr = parseErr
	s.mu.Unlock()

	s.logger.Info().
		Str("file", root).
		Int("transactions", len(l.Transactions())).
		Msg("ledger loaded")

	return nil
}

// startWatcher watches the ledger file and reloads on change.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	s.mu.RLock()
	root := s.rootFile
	s.mu.RUnlock()

	if err := watcher.Add(root); err != nil {
		s.logger.Warn().Err(err).Str("file", root).Msg("failed to watch file")
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Editors often write files in multiple steps.
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove/Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error().Err(err).Msg("file watcher error")
		}
	}
}

// handleFileChange reloads the ledger, re-arms the watch and notifies
// connected clients.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	if err := s.Reload(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to reload ledger")
		return
	}

	s.mu.RLock()
	root := s.rootFile
	s.mu.RUnlock()

	// Re-add to catch files re-created by atomic saves.
	if err := watcher.Add(root); err != nil {
		s.logger.Warn().Err(err).Str("file", root).Msg("failed to watch file")
	}

	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
