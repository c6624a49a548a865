package jsonstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rpggio/tracker/internal/domain/activity"
	"github.com/rpggio/tracker/internal/repository"
)

// LogRepository stores each log collection in its own JSON file.
type LogRepository struct {
	dir string
	mu  sync.RWMutex
}

// NewLogRepository creates a repository rooted at dir.
func NewLogRepository(dir string) *LogRepository {
	return &LogRepository{dir: dir}
}

// Init creates the logs directory.
func (r *LogRepository) Init() error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}
	return nil
}

// Path returns the file holding the log collection for key.
func (r *LogRepository) Path(key string) string {
	return filepath.Join(r.dir, fmt.Sprintf("activity_%s_logs.json", key))
}

// Load returns the collection for key; a missing file yields an empty collection.
func (r *LogRepository) Load(ctx context.Context, key string) ([]activity.LogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := repository.ValidateKey(key); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := []activity.LogEntry{}
	if _, err := readJSON(r.Path(key), &entries); err != nil {
		return nil, fmt.Errorf("failed to load activity log %s: %w", key, err)
	}
	if entries == nil {
		entries = []activity.LogEntry{}
	}
	return entries, nil
}

// Save overwrites the collection for key.
func (r *LogRepository) Save(ctx context.Context, key string, entries []activity.LogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := repository.ValidateKey(key); err != nil {
		return err
	}
	if entries == nil {
		entries = []activity.LogEntry{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeJSON(r.Path(key), entries); err != nil {
		return fmt.Errorf("failed to save activity log %s: %w", key, err)
	}
	return nil
}
