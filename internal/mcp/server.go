package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/tracker/internal/domain/activity"
)

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Create(ctx context.Context, req activity.CreateRequest) (*activity.CreateResult, error)
	List(ctx context.Context) ([]activity.Activity, error)
	Get(ctx context.Context, serial int) (*activity.Activity, error)
	Update(ctx context.Context, req activity.UpdateRequest) (*activity.UpdateResult, error)
	Delete(ctx context.Context, serial int) (activity.Outcome, error)
	ViewLogs(ctx context.Context, serial int) ([]activity.LogEntry, error)
}

// Config contains server configuration.
type Config struct {
	Activities ActivityService
	Version    string
	Logger     *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "tracker",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Activities)

	return server
}

// NewHTTPHandler serves server over the streamable HTTP transport.
func NewHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)
}
