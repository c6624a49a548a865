package transport

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/tracker/internal/domain/activity"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// ActivityService defines the activity operations served over HTTP.
type ActivityService interface {
	Create(ctx context.Context, req activity.CreateRequest) (*activity.CreateResult, error)
	List(ctx context.Context) ([]activity.Activity, error)
	Get(ctx context.Context, serial int) (*activity.Activity, error)
	Update(ctx context.Context, req activity.UpdateRequest) (*activity.UpdateResult, error)
	Delete(ctx context.Context, serial int) (activity.Outcome, error)
	ViewLogs(ctx context.Context, serial int) ([]activity.LogEntry, error)
}

// RequestObserver records served requests, e.g. as metrics.
type RequestObserver interface {
	ObserveRequest(method, route string, code int, elapsed time.Duration)
}

// Options configures the HTTP server.
type Options struct {
	Service ActivityService
	// Uploads serves stored attachments under /uploads/.
	Uploads fs.FS
	// MaxRequestBytes caps request bodies. Zero means unlimited.
	MaxRequestBytes int64
	Observer        RequestObserver
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
	// MCPHandler is mounted at /mcp when set.
	MCPHandler http.Handler
	Logger     *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	service  ActivityService
	uploads  fs.FS
	maxBytes int64
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger, opts.Observer))
	r.Use(middleware.Recoverer)

	srv := &Server{
		service:  opts.Service,
		uploads:  opts.Uploads,
		maxBytes: opts.MaxRequestBytes,
		logger:   logger,
	}

	r.Get("/", srv.handleIndex)
	r.Get("/add", srv.handleAddForm)
	r.Post("/add", srv.handleAdd)
	r.Get("/update/{sno}", srv.handleUpdateForm)
	r.Post("/update/{sno}", srv.handleUpdate)
	r.Get("/view_logs/{sno}", srv.handleViewLogs)
	r.Post("/delete/{sno}", srv.handleDelete)
	r.Get("/uploads/{filename}", srv.handleUpload)
	r.Get("/health", srv.handleHealth)

	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler)
	}
	if opts.MCPHandler != nil {
		r.Handle("/mcp", opts.MCPHandler)
		r.Handle("/mcp/*", opts.MCPHandler)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
