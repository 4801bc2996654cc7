package service

import (
	"context"
	"testing"

	"eventcal/config"
	"eventcal/internal/hooks"
	"eventcal/internal/model"
	"eventcal/internal/repository"
	repoMocks "eventcal/internal/repository/mocks"
	"eventcal/internal/settings"
	apperrors "eventcal/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*repoMocks.EventRepositoryMock, EventService) {
	t.Helper()
	repo := repoMocks.NewEventRepositoryMock()
	defaults := settings.Defaults(config.CalendarConfig{WeekStart: "Monday", ArchiveBase: "/events"})
	store := settings.NewStore(nil, defaults, hooks.New())
	return repo, NewEventService(repo, store, hooks.New())
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, svc := setupService(t)

		event := &model.Event{
			Title:     "Launch Party",
			StartDate: model.NewDate(2024, 3, 5),
		}
		repo.On("Create", mock.Anything, event).Return(event, nil).Once()

		created, err := svc.Create(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, model.NewDate(2024, 3, 5), created.EndDate, "blank end date defaults to start")
		assert.Equal(t, model.StatusDraft, created.Status)
		assert.Equal(t, "launch-party", created.Slug)
		assert.NotEqual(t, uuid.Nil, created.EventID)

		repo.AssertExpectations(t)
	})

	t.Run("Failed - invalid start date", func(t *testing.T) {
		repo, svc := setupService(t)

		_, err := svc.Create(ctx, &model.Event{Title: "Bad", StartDate: model.NewDate(2024, 2, 31)})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - end before start", func(t *testing.T) {
		repo, svc := setupService(t)

		_, err := svc.Create(ctx, &model.Event{
			Title:     "Backwards",
			StartDate: model.NewDate(2024, 3, 5),
			EndDate:   model.NewDate(2024, 3, 1),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestEventService_UpdateByEventID(t *testing.T) {
	ctx := context.Background()
	eventID := uuid.New()

	existing := func() *model.Event {
		return &model.Event{
			ID:        7,
			EventID:   eventID,
			Title:     "Launch Party",
			Status:    model.StatusPublish,
			StartDate: model.NewDate(2024, 3, 5),
			EndDate:   model.NewDate(2024, 3, 7),
		}
	}

	t.Run("Success - blank end date falls back to effective start", func(t *testing.T) {
		repo, svc := setupService(t)

		repo.On("FindByEventID", mock.Anything, eventID).Return(existing(), nil).Once()

		var captured model.UpdateEventParams
		repo.On("Update", mock.Anything, 7, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(2).(model.UpdateEventParams)
			}).
			Return(existing(), nil).Once()

		newStart := model.NewDate(2024, 4, 1)
		blankEnd := model.Date{}
		_, err := svc.UpdateByEventID(ctx, eventID, model.UpdateEventParams{
			StartDate: &newStart,
			EndDate:   &blankEnd,
		})

		require.NoError(t, err)
		require.NotNil(t, captured.EndDate)
		assert.True(t, captured.EndDate.Equal(newStart))

		repo.AssertExpectations(t)
	})

	t.Run("Failed - inverted interval", func(t *testing.T) {
		repo, svc := setupService(t)

		repo.On("FindByEventID", mock.Anything, eventID).Return(existing(), nil).Once()

		badEnd := model.NewDate(2024, 3, 1)
		_, err := svc.UpdateByEventID(ctx, eventID, model.UpdateEventParams{EndDate: &badEnd})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("Failed - event not found", func(t *testing.T) {
		repo, svc := setupService(t)

		repo.On("FindByEventID", mock.Anything, eventID).Return(nil, apperrors.ErrEventNotFound).Once()

		_, err := svc.UpdateByEventID(ctx, eventID, model.UpdateEventParams{})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestEventService_ListByScope(t *testing.T) {
	ctx := context.Background()
	repo, svc := setupService(t)

	scope := repository.Scope{Year: 2024, Month: 2}
	events := []*model.Event{{ID: 1}, {ID: 2}}
	repo.On("ListByScope", mock.Anything, scope, mock.Anything).Return(events, nil).Once()

	got, err := svc.ListByScope(ctx, scope)

	require.NoError(t, err)
	assert.Equal(t, events, got)
	repo.AssertExpectations(t)
}

func TestEventService_Upcoming(t *testing.T) {
	ctx := context.Background()
	repo, svc := setupService(t)

	day := model.NewDate(2024, 3, 5)
	events := []*model.Event{
		{ID: 1, Title: "Talk", StartDate: day, EndDate: day, StartTime: "09:00", EndTime: "17:00"},
		{ID: 2, Title: "Fair", StartDate: day, EndDate: day.AddDays(2), AllDay: true},
	}
	repo.On("ListUpcoming", mock.Anything, mock.Anything, 2).Return(events, nil).Once()

	got, err := svc.Upcoming(ctx, 2)

	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "5 March 2024", got[0].DateRange)
	assert.Equal(t, "9:00am–5:00pm", got[0].TimeRange)

	assert.Equal(t, "5–7 March 2024", got[1].DateRange)
	assert.Equal(t, "All day", got[1].TimeRange)

	repo.AssertExpectations(t)
}

func TestEventService_Archive(t *testing.T) {
	ctx := context.Background()
	repo, svc := setupService(t)

	events := []*model.Event{
		{ID: 1, StartDate: model.NewDate(2024, 11, 20), EndDate: model.NewDate(2025, 1, 5)},
		{ID: 2, StartDate: model.NewDate(2024, 12, 10), EndDate: model.NewDate(2024, 12, 11)},
	}
	repo.On("ListPublished", mock.Anything).Return(events, nil).Once()

	index, err := svc.Archive(ctx)

	require.NoError(t, err)

	// The spanning event contributes one entry per month it touches.
	require.Contains(t, index, 2024)
	require.Contains(t, index, 2025)
	assert.Len(t, index[2024], 2)
	assert.Len(t, index[2025], 1)

	assert.Equal(t, 1, index[2024][11].Count)
	assert.Equal(t, 2, index[2024][12].Count)
	assert.Equal(t, 1, index[2025][1].Count)

	assert.Equal(t, "/events/2024/11/", index[2024][11].Link)
	assert.Equal(t, model.NewDate(2024, 11, 1), index[2024][11].Date)

	repo.AssertExpectations(t)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Launch Party", want: "launch-party"},
		{in: "Hello, World!", want: "hello-world"},
		{in: "  spaced   out  ", want: "spaced-out"},
		{in: "2024 New Year's Eve", want: "2024-new-year-s-eve"},
		{in: "---", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
