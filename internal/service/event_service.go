package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"eventcal/internal/calendar"
	"eventcal/internal/hooks"
	"eventcal/internal/model"
	"eventcal/internal/repository"
	"eventcal/internal/settings"
	apperrors "eventcal/pkg/app_errors"

	"github.com/google/uuid"
)

// ArchiveEntry summarises one month touched by at least one event.
type ArchiveEntry struct {
	Date  model.Date `json:"date"`
	Link  string     `json:"link"`
	Count int        `json:"count"`
}

// ArchiveIndex maps year -> month -> summary, for archive navigation
// widgets.
type ArchiveIndex map[int]map[int]ArchiveEntry

// UpcomingEvent is an event annotated with its formatted date and time
// ranges for listing widgets.
type UpcomingEvent struct {
	*model.Event
	DateRange string `json:"date_range"`
	TimeRange string `json:"time_range"`
}

type EventService interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	UpdateByEventID(ctx context.Context, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	ListByScope(ctx context.Context, scope repository.Scope) ([]*model.Event, error)
	Published(ctx context.Context) ([]*model.Event, error)
	Upcoming(ctx context.Context, limit int) ([]UpcomingEvent, error)
	Archive(ctx context.Context) (ArchiveIndex, error)
}

type EventServiceImpl struct {
	repo  repository.EventRepository
	store *settings.Store
	hooks *hooks.Registry
}

func NewEventService(repo repository.EventRepository, store *settings.Store, registry *hooks.Registry) EventService {
	return &EventServiceImpl{repo: repo, store: store, hooks: registry}
}

func (s *EventServiceImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if !event.StartDate.Valid() {
		return nil, apperrors.ErrInvalidDate
	}
	if !event.EndDate.IsZero() && !event.EndDate.Valid() {
		return nil, apperrors.ErrInvalidDate
	}

	event.Normalize()

	if event.EndDate.Before(event.StartDate) {
		return nil, apperrors.ErrInvalidInput
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Slug == "" {
		event.Slug = Slugify(event.Title)
	}

	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	return s.repo.FindByEventID(ctx, eventID)
}

// UpdateByEventID applies a partial update. The merged record goes through
// the same normalization as a create: a blank end date falls back to the
// effective start date, and an inverted date interval is rejected.
func (s *EventServiceImpl) UpdateByEventID(ctx context.Context, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	start := event.StartDate
	end := event.EndDate

	if params.StartDate != nil {
		if !params.StartDate.Valid() {
			return nil, apperrors.ErrInvalidDate
		}
		start = *params.StartDate
	}

	if params.EndDate != nil {
		if params.EndDate.IsZero() {
			params.EndDate = &start
		} else if !params.EndDate.Valid() {
			return nil, apperrors.ErrInvalidDate
		}
		end = *params.EndDate
	}

	if end.Before(start) {
		return nil, apperrors.ErrInvalidInput
	}

	return s.repo.Update(ctx, event.ID, params)
}

func (s *EventServiceImpl) ListByScope(ctx context.Context, scope repository.Scope) ([]*model.Event, error) {
	return s.repo.ListByScope(ctx, scope, model.Today())
}

func (s *EventServiceImpl) Published(ctx context.Context) ([]*model.Event, error) {
	return s.repo.ListPublished(ctx)
}

func (s *EventServiceImpl) Upcoming(ctx context.Context, limit int) ([]UpcomingEvent, error) {
	events, err := s.repo.ListUpcoming(ctx, model.Today(), limit)
	if err != nil {
		return nil, err
	}

	opts := s.store.Load(ctx)

	upcoming := make([]UpcomingEvent, 0, len(events))
	for _, event := range events {
		upcoming = append(upcoming, UpcomingEvent{
			Event:     event,
			DateRange: calendar.EventDateRange(event, opts, s.hooks),
			TimeRange: calendar.EventTimeRange(event, opts, s.hooks),
		})
	}

	return upcoming, nil
}

// Archive scans every published event and expands multi-month events into
// one entry per spanned month.
func (s *EventServiceImpl) Archive(ctx context.Context) (ArchiveIndex, error) {
	events, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	opts := s.store.Load(ctx)
	index := make(ArchiveIndex)

	for _, event := range events {
		last := event.EndDate.MonthStart()

		for month := event.StartDate.MonthStart(); !month.After(last); month = month.NextMonthStart() {
			if _, ok := index[month.Year]; !ok {
				index[month.Year] = make(map[int]ArchiveEntry)
			}

			entry, ok := index[month.Year][month.Month]
			if !ok {
				entry = ArchiveEntry{
					Date: month,
					Link: fmt.Sprintf("%s/%04d/%02d/", opts.ArchiveBase, month.Year, month.Month),
				}
			}

			entry.Count++
			index[month.Year][month.Month] = entry
		}
	}

	return index, nil
}

// Slugify reduces a title to a URL-safe slug.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}
