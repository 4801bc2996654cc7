package service

import (
	"context"

	"eventcal/internal/calendar"
	"eventcal/internal/hooks"
	"eventcal/internal/model"
	"eventcal/internal/repository"
	"eventcal/internal/settings"
)

type CalendarService interface {
	// Build assembles the calendar for one month. Invalid year/month input
	// silently falls back to the current date.
	Build(ctx context.Context, year, month int, full bool) (*calendar.Calendar, error)
}

type CalendarServiceImpl struct {
	repo  repository.EventRepository
	store *settings.Store
	hooks *hooks.Registry
}

func NewCalendarService(repo repository.EventRepository, store *settings.Store, registry *hooks.Registry) CalendarService {
	return &CalendarServiceImpl{repo: repo, store: store, hooks: registry}
}

func (s *CalendarServiceImpl) Build(ctx context.Context, year, month int, full bool) (*calendar.Calendar, error) {
	opts := s.store.Load(ctx)
	today := model.Today()

	if !model.NewDate(year, month, 1).Valid() {
		year = today.Year
		month = today.Month
	}

	min, max, err := s.repo.MinMaxDates(ctx)
	if err != nil {
		return nil, err
	}

	// With no events at all the calendar still renders, pinned to today.
	if min.IsZero() {
		min = today
	}
	if max.IsZero() {
		max = today
	}

	monthStart := model.NewDate(year, month, 1)

	events, err := s.repo.FindForCalendar(ctx, monthStart, monthStart.NextMonthStart())
	if err != nil {
		return nil, err
	}

	days := calendar.BuildGrid(year, month, today, events, opts, s.hooks)

	return calendar.New(year, month, full, min, max, days, opts, s.hooks), nil
}
