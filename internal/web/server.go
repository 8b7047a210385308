// Package web serves the monitoring dashboard for the simulation
// pipeline.
package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/phase"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/store"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/web/notifier"
)

// StatusScanner reports the aggregate phase status.
type StatusScanner interface {
	Scan(ctx context.Context) phase.Overall
}

// PipelineLauncher starts the simulation pipeline.
type PipelineLauncher interface {
	Launch(ctx context.Context) (int, error)
}

// LaunchLister reads the recorded launch history.
type LaunchLister interface {
	ListLaunches(ctx context.Context, limit int) ([]store.Launch, error)
}

// Config holds configuration for the dashboard server.
type Config struct {
	Host string
	Port int

	// DataDir holds the phase directories whose logs are watched and
	// searched.
	DataDir string
	// PlotDir holds the per-phase thermo figures served at /plot/.
	PlotDir string
	// PipelineLog is the launched pipeline's combined output file.
	PipelineLog string

	// AccessKey protects every page and endpoint except /login.
	AccessKey     string
	SessionSecret string
	// RemoteURL is an externally reachable dashboard URL, display only.
	RemoteURL string

	Scanner  StatusScanner
	Launcher PipelineLauncher
	Probe    phase.ProcessProbe
	Launches LaunchLister

	// Watch enables the log-directory watcher driving SSE refreshes.
	Watch  bool
	Logger *slog.Logger
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg          Config
	keyHash      string
	sessionStore *sessions.CookieStore
	notifier     *notifier.Notifier
	logger       *slog.Logger
}

// NewServer creates a dashboard server instance.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 7) // 7 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	sum := sha256.Sum256([]byte(cfg.AccessKey))

	return &Server{
		cfg:          cfg,
		keyHash:      hex.EncodeToString(sum[:]),
		sessionStore: sessionStore,
		notifier:     notifier.New(),
		logger:       cfg.Logger,
	}
}

// Notifier returns the server's notifier for SSE refreshes.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Serve starts the dashboard server and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	s.logger.Info("starting dashboard", "addr", fmt.Sprintf("http://%s", addr))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.Watch {
		eg.Go(func() error {
			return s.watchLogs(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dashboard...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// routes wires all dashboard endpoints.
func (s *Server) routes() chi.Router {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLoginSubmit)
	r.Get("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/", s.handleDashboard)
		r.Get("/api/status", s.handleStatus)
		r.Post("/api/launch", s.handleLaunch)
		r.Get("/api/launches", s.handleLaunches)
		r.Get("/api/dashboard-url", s.handleDashboardURL)
		r.Get("/api/updates", s.handleUpdates)
		r.Get("/plot/{name}", s.handlePlot)
		r.Get("/log/{name}", s.handleLog)
	})

	return r
}

// watchLogs watches the phase log directories and pings SSE clients on
// changes.
func (s *Server) watchLogs(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.cfg.DataDir); err != nil {
		s.logger.Error("failed to watch data directory", "error", err)
		// Don't fail - the dashboard still works with polling alone
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// New phase or logs directories appear as the pipeline runs.
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						s.logger.Debug("watch new directory", "dir", event.Name, "error", err)
					}
				}
			}

			if !interestingChange(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("log change detected", "file", event.Name)
				s.notifier.Broadcast(time.Now())
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// interestingChange reports whether a changed path should refresh the
// dashboard: phase logs, their completion sentinels, or the pipeline log.
func interestingChange(name string) bool {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	return ext == ".log" || ext == ".gz" || base == "COMPLETE"
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// isAPIPath reports whether a request path expects a JSON response.
func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/log/") ||
		strings.HasPrefix(path, "/plot/")
}
