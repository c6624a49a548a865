package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/tracker/internal/domain/activity"
)

// ActivityRepository implements repository.ActivityRepository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Load returns the activity collection in stored order
func (r *ActivityRepository) Load(ctx context.Context) ([]activity.Activity, error) {
	query := `
		SELECT
			sno, id, priority, project, line, description,
			start_date, complete_date, status, attachment, remarks
		FROM activities
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	defer rows.Close()

	activities := []activity.Activity{}
	for rows.Next() {
		var act activity.Activity
		if err := rows.Scan(
			&act.Serial,
			&act.ID,
			&act.Priority,
			&act.Project,
			&act.Line,
			&act.Description,
			&act.StartDate,
			&act.CompleteDate,
			&act.Status,
			&act.Attachment,
			&act.Remarks,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, act)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}

// Save replaces the whole collection in one transaction
func (r *ActivityRepository) Save(ctx context.Context, activities []activity.Activity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM activities`); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}

	query := `
		INSERT INTO activities (
			position, sno, id, priority, project, line, description,
			start_date, complete_date, status, attachment, remarks
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, act := range activities {
		if _, err := tx.ExecContext(ctx, query,
			i,
			act.Serial,
			act.ID,
			act.Priority,
			act.Project,
			act.Line,
			act.Description,
			act.StartDate,
			act.CompleteDate,
			act.Status,
			act.Attachment,
			act.Remarks,
		); err != nil {
			return fmt.Errorf("failed to insert activity %d: %w", act.Serial, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activities: %w", err)
	}
	return nil
}
