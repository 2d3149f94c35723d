package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-event-rsvp/internal/database"
	"go-gin-event-rsvp/internal/model"
	apperrors "go-gin-event-rsvp/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EventRepository interface {
	// Create inserts the event inside tx so the creator's participation can join the same unit of work.
	Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	// List returns the events visible to filter.UserID, already sorted.
	List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)
}

type EventRepositoryImpl struct {
	db database.Querier
}

func NewEventRepository(db database.Querier) EventRepository {
	return &EventRepositoryImpl{
		db: db,
	}
}

const eventColumns = `id, title, description, date, end_date, start_time, end_time, location,
	hide_participants, archived, created_by_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.EndDate,
		&event.StartTime,
		&event.EndTime,
		&event.Location,
		&event.HideParticipants,
		&event.Archived,
		&event.CreatedByID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	query := `
		INSERT INTO events (
			id, title, description, date, end_date, start_time, end_time, location,
			hide_participants, archived, created_by_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + eventColumns

	created, err := scanEvent(tx.QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date.UTC(),
		event.EndDate,
		event.StartTime,
		event.EndTime,
		event.Location,
		event.HideParticipants,
		event.Archived,
		event.CreatedByID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Title != nil {
		set("title", *params.Title)
	}
	if params.Description != nil {
		set("description", *params.Description)
	}
	if params.Date != nil {
		set("date", params.Date.UTC())
	}
	if params.EndDate != nil {
		set("end_date", params.EndDate.UTC())
	}
	if params.StartTime != nil {
		set("start_time", *params.StartTime)
	}
	if params.EndTime != nil {
		set("end_time", *params.EndTime)
	}
	if params.Location != nil {
		set("location", *params.Location)
	}
	if params.HideParticipants != nil {
		set("hide_participants", *params.HideParticipants)
	}
	if params.Archived != nil {
		set("archived", *params.Archived)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	set("updated_at", time.Now().UTC())

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	event, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	query, args := buildEventListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// buildEventListQuery turns filter into SQL. Membership is "created by the user
// OR has any participation row"; every other filter is ANDed on top of it.
func buildEventListQuery(filter model.EventFilter) (string, []any) {
	args := []any{filter.UserID}
	where := []string{
		`(e.created_by_id = $1 OR EXISTS (
			SELECT 1 FROM event_participations p WHERE p.event_id = e.id AND p.user_id = $1
		))`,
	}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		where = append(where, "e.title ILIKE "+arg("%"+escapeLike(search)+"%"))
	}
	if filter.From != nil {
		where = append(where, "e.date >= "+arg(filter.From.UTC()))
	}
	if filter.To != nil {
		where = append(where, "e.date <= "+arg(filter.To.UTC()))
	}

	switch filter.Status {
	case model.EventStatusAll:
	case model.EventStatusPast:
		where = append(where, "e.archived = FALSE", "e.date < "+arg(filter.Now.UTC()))
	default:
		where = append(where, "e.archived = FALSE", "e.date >= "+arg(filter.Now.UTC()))
	}

	query := `SELECT ` + prefixColumns("e", eventColumns) + `
		FROM events e
		WHERE ` + strings.Join(where, "\n\t\t  AND ") + `
		ORDER BY e.archived ASC, e.date DESC, e.start_time DESC NULLS LAST, e.created_at DESC`

	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
