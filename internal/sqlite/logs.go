package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/tracker/internal/domain/activity"
	"github.com/rpggio/tracker/internal/repository"
)

// LogRepository implements repository.LogRepository for SQLite
type LogRepository struct {
	db *DB
}

// NewLogRepository creates a new LogRepository
func NewLogRepository(db *DB) *LogRepository {
	return &LogRepository{db: db}
}

// Load returns the log collection for key, empty if none was saved
func (r *LogRepository) Load(ctx context.Context, key string) ([]activity.LogEntry, error) {
	if err := repository.ValidateKey(key); err != nil {
		return nil, err
	}

	query := `
		SELECT timestamp, action, details, file
		FROM activity_logs
		WHERE log_key = ?
		ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity log: %w", err)
	}
	defer rows.Close()

	entries := []activity.LogEntry{}
	for rows.Next() {
		var entry activity.LogEntry
		if err := rows.Scan(&entry.Timestamp, &entry.Action, &entry.Details, &entry.File); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log rows: %w", err)
	}

	return entries, nil
}

// Save replaces the log collection for key in one transaction
func (r *LogRepository) Save(ctx context.Context, key string, entries []activity.LogEntry) error {
	if err := repository.ValidateKey(key); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM activity_logs WHERE log_key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear activity log: %w", err)
	}

	query := `
		INSERT INTO activity_logs (log_key, seq, timestamp, action, details, file)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i, entry := range entries {
		if _, err := tx.ExecContext(ctx, query, key, i, entry.Timestamp, entry.Action, entry.Details, entry.File); err != nil {
			return fmt.Errorf("failed to insert log entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activity log: %w", err)
	}
	return nil
}
