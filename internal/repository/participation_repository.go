package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-gin-event-rsvp/internal/database"
	"go-gin-event-rsvp/internal/model"
	apperrors "go-gin-event-rsvp/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ParticipationRepository interface {
	// Upsert writes the (event, user) row, replacing status and comment when it already exists.
	Upsert(ctx context.Context, p *model.Participation) (*model.Participation, error)
	FindByEventAndUser(ctx context.Context, eventID uuid.UUID, userID string) (*model.Participation, error)
	FindByIDWithEvent(ctx context.Context, id uuid.UUID) (*model.ParticipationWithEvent, error)
	ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Participation, error)
	ListByEventIDs(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]*model.Participation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ParticipationStatus, comment *string) (*model.Participation, error)
	// InsertPending invites userIDs and returns how many rows were new; existing responses are untouched.
	InsertPending(ctx context.Context, eventID uuid.UUID, userIDs []string) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Transaction methods
	CreateTx(ctx context.Context, tx pgx.Tx, p *model.Participation) (*model.Participation, error)
}

type ParticipationRepositoryImpl struct {
	db database.Querier
}

func NewParticipationRepository(db database.Querier) ParticipationRepository {
	return &ParticipationRepositoryImpl{
		db: db,
	}
}

const participationColumns = `id, event_id, user_id, status, comment, created_at, updated_at`

func scanParticipation(row rowScanner) (*model.Participation, error) {
	var p model.Participation
	err := row.Scan(
		&p.ID,
		&p.EventID,
		&p.UserID,
		&p.Status,
		&p.Comment,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParticipationRepositoryImpl) Upsert(ctx context.Context, p *model.Participation) (*model.Participation, error) {
	query := `
		INSERT INTO event_participations (event_id, user_id, status, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, user_id) DO UPDATE
		SET status = EXCLUDED.status,
		    comment = EXCLUDED.comment,
		    updated_at = NOW()
		RETURNING ` + participationColumns

	saved, err := scanParticipation(r.db.QueryRow(ctx, query, p.EventID, p.UserID, p.Status, p.Comment))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert participation: %w", err)
	}
	return saved, nil
}

func (r *ParticipationRepositoryImpl) CreateTx(ctx context.Context, tx pgx.Tx, p *model.Participation) (*model.Participation, error) {
	query := `
		INSERT INTO event_participations (event_id, user_id, status, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + participationColumns

	created, err := scanParticipation(tx.QueryRow(ctx, query, p.EventID, p.UserID, p.Status, p.Comment))
	if err != nil {
		return nil, fmt.Errorf("failed to create participation: %w", err)
	}
	return created, nil
}

func (r *ParticipationRepositoryImpl) FindByEventAndUser(ctx context.Context, eventID uuid.UUID, userID string) (*model.Participation, error) {
	query := `
		SELECT ` + participationColumns + `
		FROM event_participations
		WHERE event_id = $1 AND user_id = $2
	`

	p, err := scanParticipation(r.db.QueryRow(ctx, query, eventID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipationNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ParticipationRepositoryImpl) FindByIDWithEvent(ctx context.Context, id uuid.UUID) (*model.ParticipationWithEvent, error) {
	query := `
		SELECT p.id, p.event_id, p.user_id, p.status, p.comment, p.created_at, p.updated_at,
		       e.created_by_id
		FROM event_participations p
		JOIN events e ON e.id = p.event_id
		WHERE p.id = $1
	`

	var pe model.ParticipationWithEvent
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pe.ID,
		&pe.EventID,
		&pe.UserID,
		&pe.Status,
		&pe.Comment,
		&pe.CreatedAt,
		&pe.UpdatedAt,
		&pe.EventCreatedByID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipationNotFound
		}
		return nil, err
	}
	return &pe, nil
}

func (r *ParticipationRepositoryImpl) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Participation, error) {
	grouped, err := r.ListByEventIDs(ctx, []uuid.UUID{eventID})
	if err != nil {
		return nil, err
	}
	if list, ok := grouped[eventID]; ok {
		return list, nil
	}
	return make([]*model.Participation, 0), nil
}

func (r *ParticipationRepositoryImpl) ListByEventIDs(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]*model.Participation, error) {
	grouped := make(map[uuid.UUID][]*model.Participation, len(eventIDs))
	if len(eventIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT p.id, p.event_id, p.user_id, p.status, p.comment, p.created_at, p.updated_at,
		       u.id, u.display_name, u.avatar_url, u.created_at, u.updated_at
		FROM event_participations p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.event_id = ANY($1)
		ORDER BY p.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, eventIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p         model.Participation
			userID    *string
			name      *string
			avatarURL *string
			createdAt *time.Time
			updatedAt *time.Time
		)
		err := rows.Scan(
			&p.ID,
			&p.EventID,
			&p.UserID,
			&p.Status,
			&p.Comment,
			&p.CreatedAt,
			&p.UpdatedAt,
			&userID,
			&name,
			&avatarURL,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}
		// the user row may not be synced yet
		if userID != nil {
			p.User = &model.User{
				ID:          *userID,
				DisplayName: deref(name),
				AvatarURL:   avatarURL,
				CreatedAt:   derefTime(createdAt),
				UpdatedAt:   derefTime(updatedAt),
			}
		}
		grouped[p.EventID] = append(grouped[p.EventID], &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grouped, nil
}

func (r *ParticipationRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ParticipationStatus, comment *string) (*model.Participation, error) {
	query := `
		UPDATE event_participations
		SET status = $1, comment = $2, updated_at = $3
		WHERE id = $4
		RETURNING ` + participationColumns

	p, err := scanParticipation(r.db.QueryRow(ctx, query, status, comment, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipationNotFound
		}
		return nil, fmt.Errorf("failed to update participation status: %w", err)
	}
	return p, nil
}

func (r *ParticipationRepositoryImpl) InsertPending(ctx context.Context, eventID uuid.UUID, userIDs []string) (int, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO event_participations (event_id, user_id, status)
		SELECT $1::uuid, invitee, $2::text
		FROM unnest($3::text[]) AS invitee
		ON CONFLICT (event_id, user_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, eventID, model.ParticipationStatusPending, userIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to invite participants: %w", err)
	}
	return int(result.RowsAffected()), nil
}

func (r *ParticipationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM event_participations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrParticipationNotFound
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
