package calendar

import (
	"testing"

	"eventcal/internal/hooks"
	"eventcal/internal/model"
	"eventcal/internal/settings"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateRange(t *testing.T) {
	opts := testOptions()

	tests := []struct {
		name  string
		start model.Date
		end   model.Date
		want  string
	}{
		{
			name:  "same day collapses to a single date",
			start: model.NewDate(2024, 3, 5),
			end:   model.NewDate(2024, 3, 5),
			want:  "5 March 2024",
		},
		{
			name:  "same month drops the shared parts from the start side",
			start: model.NewDate(2024, 3, 10),
			end:   model.NewDate(2024, 3, 15),
			want:  "10–15 March 2024",
		},
		{
			name:  "different month keeps both month names",
			start: model.NewDate(2024, 1, 30),
			end:   model.NewDate(2024, 2, 2),
			want:  "30 January–2 February 2024",
		},
		{
			name:  "different year keeps both full dates",
			start: model.NewDate(2024, 12, 30),
			end:   model.NewDate(2025, 1, 2),
			want:  "30 December 2024–2 January 2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateRange(tt.start, tt.end, opts.Ranges, opts.Dash))
		})
	}
}

func TestEventDateRange(t *testing.T) {
	opts := testOptions()

	t.Run("invalid boundary yields empty", func(t *testing.T) {
		e := &model.Event{StartDate: model.NewDate(2024, 3, 5)}
		assert.Empty(t, EventDateRange(e, opts, nil))
		assert.Empty(t, EventDateRange(nil, opts, nil))
	})

	t.Run("formats filter takes precedence", func(t *testing.T) {
		e := &model.Event{StartDate: model.NewDate(2024, 3, 5), EndDate: model.NewDate(2024, 3, 5)}

		reg := hooks.New()
		reg.Add(hooks.DateRangeFormats, func(v any) any {
			f := v.(settings.RangeFormats)
			f.DMY = "2006-01-02"
			return f
		})

		assert.Equal(t, "2024-03-05", EventDateRange(e, opts, reg))
	})
}

func TestFormatTimeRange(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{name: "plain range", start: "09:00", end: "17:30", want: "9:00am–5:30pm"},
		{name: "blank end collapses", start: "09:00", end: "", want: "9:00am"},
		{name: "equal sides collapse", start: "09:00", end: "09:00", want: "9:00am"},
		{name: "unparseable side kept raw", start: "soon", end: "17:30", want: "soon–5:30pm"},
		{name: "both blank", start: "", end: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeRange(tt.start, tt.end, "3:04pm", "–"))
		})
	}
}

func TestEventTimeRange(t *testing.T) {
	opts := testOptions()

	t.Run("all day", func(t *testing.T) {
		e := &model.Event{AllDay: true, StartTime: "09:00", EndTime: "17:00"}
		assert.Equal(t, "All day", EventTimeRange(e, opts, nil))
	})

	t.Run("timed", func(t *testing.T) {
		e := &model.Event{StartTime: "09:00", EndTime: "17:00"}
		assert.Equal(t, "9:00am–5:00pm", EventTimeRange(e, opts, nil))
	})

	t.Run("all day label filter", func(t *testing.T) {
		reg := hooks.New()
		reg.Add(hooks.AllDayLabel, func(v any) any { return "Whole day" })

		e := &model.Event{AllDay: true}
		assert.Equal(t, "Whole day", EventTimeRange(e, opts, reg))
	})
}

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "3:04pm", want: "15:04"},
		{in: "3:04 PM", want: "15:04"},
		{in: "9pm", want: "21:00"},
		{in: "15:04", want: "15:04"},
		{in: "noonish", want: "noonish"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, To24Hour(tt.in))
		})
	}
}

func TestArchiveTitle(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		day   int
		want  string
	}{
		{name: "unscoped", want: "Events"},
		{name: "year", year: 2024, want: "Events - 2024"},
		{name: "month", year: 2024, month: 3, want: "Events - March 2024"},
		{name: "day", year: 2024, month: 3, day: 5, want: "Events - 5 March 2024"},
		{name: "impossible day falls back", year: 2024, month: 2, day: 31, want: "Events"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArchiveTitle("Events", " - ", tt.year, tt.month, tt.day))
		})
	}
}
