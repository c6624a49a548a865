package jsonstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rpggio/tracker/internal/domain/activity"
)

// ActivityRepository stores the whole activity collection in one JSON file.
type ActivityRepository struct {
	path string
	mu   sync.RWMutex
}

// NewActivityRepository creates a repository backed by path.
func NewActivityRepository(path string) *ActivityRepository {
	return &ActivityRepository{path: path}
}

// Init creates the data file holding an empty collection if it is missing.
func (r *ActivityRepository) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat data file: %w", err)
	}
	return writeJSON(r.path, []activity.Activity{})
}

// Load returns the stored collection, or an empty one if none was saved yet.
func (r *ActivityRepository) Load(ctx context.Context) ([]activity.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	activities := []activity.Activity{}
	if _, err := readJSON(r.path, &activities); err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	if activities == nil {
		activities = []activity.Activity{}
	}
	return activities, nil
}

// Save overwrites the collection with activities.
func (r *ActivityRepository) Save(ctx context.Context, activities []activity.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if activities == nil {
		activities = []activity.Activity{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeJSON(r.path, activities); err != nil {
		return fmt.Errorf("failed to save activities: %w", err)
	}
	return nil
}
