package mocks

import (
	"context"

	"eventcal/internal/calendar"

	"github.com/stretchr/testify/mock"
)

type CalendarServiceMock struct {
	mock.Mock
}

func NewCalendarServiceMock() *CalendarServiceMock {
	return &CalendarServiceMock{}
}

func (m *CalendarServiceMock) Build(ctx context.Context, year, month int, full bool) (*calendar.Calendar, error) {
	args := m.Called(ctx, year, month, full)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Calendar), args.Error(1)
}
