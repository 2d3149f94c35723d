package repository

import (
	"context"
	"fmt"

	"go-gin-event-rsvp/internal/database"
	"go-gin-event-rsvp/internal/model"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) (*model.ActivityLog, error)
	ListByUserID(ctx context.Context, userID string, limit int) ([]*model.ActivityLog, error)
}

type ActivityLogRepositoryImpl struct {
	db database.Querier
}

func NewActivityLogRepository(db database.Querier) ActivityLogRepository {
	return &ActivityLogRepositoryImpl{
		db: db,
	}
}

const activityLogColumns = `id, user_id, action, metadata, timestamp`

func (r *ActivityLogRepositoryImpl) Create(ctx context.Context, entry *model.ActivityLog) (*model.ActivityLog, error) {
	metadata := entry.Metadata
	if len(metadata) == 0 {
		metadata = []byte(`{}`)
	}

	query := `
		INSERT INTO activity_logs (user_id, action, metadata, timestamp)
		VALUES ($1, $2, $3::jsonb, COALESCE($4, NOW()))
		RETURNING ` + activityLogColumns

	var at any
	if !entry.Timestamp.IsZero() {
		at = entry.Timestamp.UTC()
	}

	var saved model.ActivityLog
	err := r.db.QueryRow(ctx, query, entry.UserID, entry.Action, string(metadata), at).Scan(
		&saved.ID,
		&saved.UserID,
		&saved.Action,
		&saved.Metadata,
		&saved.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity log: %w", err)
	}
	return &saved, nil
}

// ListByUserID returns the newest entries first. A non-positive limit returns everything.
func (r *ActivityLogRepositoryImpl) ListByUserID(ctx context.Context, userID string, limit int) ([]*model.ActivityLog, error) {
	query := `
		SELECT ` + activityLogColumns + `
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*model.ActivityLog, 0)
	for rows.Next() {
		var entry model.ActivityLog
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.Metadata, &entry.Timestamp); err != nil {
			return nil, err
		}
		logs = append(logs, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
