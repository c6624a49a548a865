// Package app assembles the tracker from configuration: storage backend,
// upload store, activity service, metrics, MCP server and HTTP router.
package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/tracker/internal/config"
	"github.com/rpggio/tracker/internal/domain/activity"
	"github.com/rpggio/tracker/internal/jsonstore"
	"github.com/rpggio/tracker/internal/mcp"
	"github.com/rpggio/tracker/internal/metrics"
	"github.com/rpggio/tracker/internal/repository"
	"github.com/rpggio/tracker/internal/sqlite"
	"github.com/rpggio/tracker/internal/transport"
	"github.com/rpggio/tracker/internal/upload"
)

// formOverheadBytes is the request allowance on top of the upload limit for
// text fields and multipart framing.
const formOverheadBytes = 1 << 20

// App is a fully wired tracker.
type App struct {
	Service *activity.Service
	Uploads *upload.DiskStore
	// Metrics is nil when metrics are disabled.
	Metrics   *metrics.Metrics
	MCPServer *sdkmcp.Server
	Handler   http.Handler

	backend *repository.Backend
}

// New opens storage and wires every component described by cfg.
func New(cfg config.Config, version string, logger *slog.Logger, opts ...activity.Option) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	backend, err := OpenBackend(cfg.Storage)
	if err != nil {
		return nil, err
	}

	uploads := upload.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.MaxBytes)
	if err := uploads.Init(); err != nil {
		_ = backend.Close()
		return nil, err
	}

	a := &App{Uploads: uploads, backend: backend}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		opts = append([]activity.Option{activity.WithRecorder(a.Metrics)}, opts...)
	}

	a.Service = activity.NewService(backend.Activities, backend.Logs, uploads, logger, opts...)
	a.MCPServer = mcp.NewServer(mcp.Config{
		Activities: a.Service,
		Version:    version,
		Logger:     logger,
	})

	httpOpts := transport.Options{
		Service: a.Service,
		Uploads: uploads.FS(),
		Logger:  logger,
	}
	if cfg.Uploads.MaxBytes > 0 {
		httpOpts.MaxRequestBytes = cfg.Uploads.MaxBytes + formOverheadBytes
	}
	if a.Metrics != nil {
		httpOpts.Observer = a.Metrics
		httpOpts.MetricsHandler = a.Metrics.Handler()
	}
	if cfg.MCP.Enabled {
		httpOpts.MCPHandler = mcp.NewHTTPHandler(a.MCPServer)
	}
	a.Handler = transport.NewServer(httpOpts)

	return a, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.backend.Close()
}

// OpenBackend opens the storage driver selected by cfg.
func OpenBackend(cfg config.StorageConfig) (*repository.Backend, error) {
	switch cfg.Driver {
	case config.DriverJSON:
		backend, err := jsonstore.New(cfg.DataFile, cfg.LogsDir)
		if err != nil {
			return nil, fmt.Errorf("opening json storage: %w", err)
		}
		return backend, nil
	case config.DriverSQLite:
		if err := ensureDBDir(cfg.DBPath); err != nil {
			return nil, fmt.Errorf("preparing database path: %w", err)
		}
		backend, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite storage: %w", err)
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("%w: %q", repository.ErrUnknownDriver, cfg.Driver)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
