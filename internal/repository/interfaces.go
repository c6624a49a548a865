package repository

import (
	"context"
	"strings"

	"github.com/rpggio/tracker/internal/domain/activity"
)

// ActivityRepository manages the activity collection
type ActivityRepository interface {
	Load(ctx context.Context) ([]activity.Activity, error)
	Save(ctx context.Context, activities []activity.Activity) error
}

// LogRepository manages per-activity log collections
type LogRepository interface {
	Load(ctx context.Context, key string) ([]activity.LogEntry, error)
	Save(ctx context.Context, key string, entries []activity.LogEntry) error
}

// Backend bundles the repositories of one storage driver
type Backend struct {
	Activities ActivityRepository
	Logs       LogRepository
	Close      func() error
}

// ValidateKey rejects keys that could escape a per-key storage unit.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" || key == "." || key == ".." {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
