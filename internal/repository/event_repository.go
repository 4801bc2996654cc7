package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventcal/internal/hooks"
	"eventcal/internal/model"
	apperrors "eventcal/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, event_id, title, slug, description, status,
		start_date, end_date, start_time, end_time, all_day,
		location_name, location_address, latitude, longitude, price,
		created_at, updated_at`

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	FindBySlug(ctx context.Context, slug string) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error)
	ListByScope(ctx context.Context, scope Scope, today model.Date) ([]*model.Event, error)
	ListUpcoming(ctx context.Context, from model.Date, limit int) ([]*model.Event, error)
	ListPublished(ctx context.Context) ([]*model.Event, error)
	FindForCalendar(ctx context.Context, monthStart, nextMonthStart model.Date) ([]*model.Event, error)
	MinMaxDates(ctx context.Context) (min, max model.Date, err error)
}

type EventRepositoryImpl struct {
	pool  *pgxpool.Pool
	hooks *hooks.Registry
}

func NewEventRepository(pool *pgxpool.Pool, registry *hooks.Registry) EventRepository {
	return &EventRepositoryImpl{
		pool:  pool,
		hooks: registry,
	}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (event_id, title, slug, description, status,
			start_date, end_date, start_time, end_time, all_day,
			location_name, location_address, latitude, longitude, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + eventColumns

	row := r.pool.QueryRow(ctx, query,
		event.EventID, event.Title, event.Slug, event.Description, event.Status,
		event.StartDate.Ymd(), event.EndDate.Ymd(), event.StartTime, event.EndTime, event.AllDay,
		event.LocationName, event.LocationAddress, event.Latitude, event.Longitude, event.Price,
	)

	return scanEvent(row)
}

func (r *EventRepositoryImpl) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE event_id = $1`, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, eventID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*model.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE slug = $1`, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.Status != nil {
		add("status", *params.Status)
	}
	if params.StartDate != nil {
		add("start_date", params.StartDate.Ymd())
	}
	if params.EndDate != nil {
		add("end_date", params.EndDate.Ymd())
	}
	if params.StartTime != nil {
		add("start_time", *params.StartTime)
	}
	if params.EndTime != nil {
		add("end_time", *params.EndTime)
	}
	if params.AllDay != nil {
		add("all_day", *params.AllDay)
	}
	if params.LocationName != nil {
		add("location_name", *params.LocationName)
	}
	if params.LocationAddress != nil {
		add("location_address", *params.LocationAddress)
	}
	if params.Latitude != nil {
		add("latitude", *params.Latitude)
	}
	if params.Longitude != nil {
		add("longitude", *params.Longitude)
	}
	if params.Price != nil {
		add("price", *params.Price)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	add("updated_at", time.Now().UTC())

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

// ListByScope runs the archive listing for the requested period. Scoped
// listings order descending by start date, the unscoped index keeps only
// upcoming events in ascending order.
func (r *EventRepositoryImpl) ListByScope(ctx context.Context, scope Scope, today model.Date) ([]*model.Event, error) {
	where, order, args := scopeFilter(scope, today, 2)

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE status = $1 AND %s
		%s
	`, eventColumns, where, order)

	queryArgs := append([]any{model.StatusPublish}, args...)

	rows, err := r.pool.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *EventRepositoryImpl) ListUpcoming(ctx context.Context, from model.Date, limit int) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE status = $1 AND start_date >= $2
		ORDER BY start_date ASC
		LIMIT $3
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query, model.StatusPublish, from.Ymd(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *EventRepositoryImpl) ListPublished(ctx context.Context) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE status = $1
		ORDER BY start_date ASC
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query, model.StatusPublish)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// FindForCalendar fetches the superset of events relevant to one displayed
// month: events starting inside it, plus events that started earlier and
// are still ongoing at its first day. Exact per-day membership is decided
// by the grid builder.
func (r *EventRepositoryImpl) FindForCalendar(ctx context.Context, monthStart, nextMonthStart model.Date) ([]*model.Event, error) {
	where := `status = $1 AND
		((start_date < $3 AND start_date >= $2)
		OR (start_date < $2 AND end_date >= $2))`

	if r.hooks != nil {
		where = r.hooks.String(hooks.CalendarWhere, where)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE %s
		ORDER BY start_date ASC
	`, eventColumns, where)

	rows, err := r.pool.Query(ctx, query, model.StatusPublish, monthStart.Ymd(), nextMonthStart.Ymd())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// MinMaxDates returns the earliest start date and the latest end date over
// all published events. Zero dates mean no events exist.
func (r *EventRepositoryImpl) MinMaxDates(ctx context.Context) (model.Date, model.Date, error) {
	query := `
		SELECT COALESCE(MIN(start_date), ''), COALESCE(MAX(end_date), '')
		FROM events
		WHERE status = $1
	`

	var minYmd, maxYmd string
	err := r.pool.QueryRow(ctx, query, model.StatusPublish).Scan(&minYmd, &maxYmd)
	if err != nil {
		return model.Date{}, model.Date{}, err
	}

	var min, max model.Date

	if d, err := model.ParseYmd(minYmd); err == nil {
		min = d
	}
	if d, err := model.ParseYmd(maxYmd); err == nil {
		max = d
	}

	return min, max, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var event model.Event
	var startYmd, endYmd string

	err := row.Scan(
		&event.ID,
		&event.EventID,
		&event.Title,
		&event.Slug,
		&event.Description,
		&event.Status,
		&startYmd,
		&endYmd,
		&event.StartTime,
		&event.EndTime,
		&event.AllDay,
		&event.LocationName,
		&event.LocationAddress,
		&event.Latitude,
		&event.Longitude,
		&event.Price,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if d, err := model.ParseYmd(startYmd); err == nil {
		event.StartDate = d
	}
	if d, err := model.ParseYmd(endYmd); err == nil {
		event.EndDate = d
	}

	return &event, nil
}

func scanEvents(rows pgx.Rows) ([]*model.Event, error) {
	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
