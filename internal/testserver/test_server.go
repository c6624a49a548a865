package testserver

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/tracker/internal/app"
	"github.com/rpggio/tracker/internal/config"
	"github.com/rpggio/tracker/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

// Clock is the fixed time every TestServer reports.
var Clock = time.Date(2025, 7, 28, 9, 30, 15, 0, time.Local)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Config config.Config
	// Client does not follow redirects.
	Client *http.Client
}

// New starts the full HTTP stack on driver with all state under t.TempDir().
func New(t *testing.T, driver string) *TestServer {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.Driver = driver
	cfg.Storage.DataFile = filepath.Join(dir, "activity_data.json")
	cfg.Storage.LogsDir = filepath.Join(dir, "activity_logs")
	cfg.Storage.DBPath = filepath.Join(dir, "tracker.db")
	cfg.Uploads.Dir = filepath.Join(dir, "uploads")
	cfg.Uploads.MaxBytes = 1 << 20
	require.NoError(t, cfg.Validate())

	a, err := app.New(cfg, "test", nil, activity.WithClock(func() time.Time { return Clock }))
	require.NoError(t, err)

	server := httptest.NewServer(a.Handler)

	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return &TestServer{
		Server: server,
		App:    a,
		Config: cfg,
		Client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// URL joins path onto the server's base URL.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
