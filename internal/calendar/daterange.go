package calendar

import (
	"time"

	"eventcal/internal/hooks"
	"eventcal/internal/model"
	"eventcal/internal/settings"
)

const timeInputLayout = "15:04"

// FormatDateRange collapses a start/end date pair into the shortest
// unambiguous range string. Components are compared coarse to fine: a
// differing year keeps both full dates, a shared year drops it from the
// start side, and so on down to a single date.
func FormatDateRange(start, end model.Date, formats settings.RangeFormats, dash string) string {
	if start.Year != end.Year {
		return start.Format(formats.DMY) + dash + end.Format(formats.DMY)
	}

	if start.Month != end.Month {
		return start.Format(formats.DM) + dash + end.Format(formats.DMY)
	}

	if start.Day != end.Day {
		return start.Format(formats.D) + dash + end.Format(formats.DMY)
	}

	return start.Format(formats.DMY)
}

// EventDateRange returns the formatted date range for an event, or an empty
// string when either boundary is not a real date.
func EventDateRange(e *model.Event, opts settings.Options, reg *hooks.Registry) string {
	if e == nil || !e.StartDate.Valid() || !e.EndDate.Valid() {
		return ""
	}

	formats := opts.Ranges
	if reg != nil {
		if f, ok := reg.Apply(hooks.DateRangeFormats, formats).(settings.RangeFormats); ok {
			formats = f
		}
	}

	return FormatDateRange(e.StartDate, e.EndDate, formats, dashFor(opts, reg))
}

// EventTimeRange returns the formatted time range for an event. All-day
// events get the configured label. A side that fails to parse keeps its raw
// stored string.
func EventTimeRange(e *model.Event, opts settings.Options, reg *hooks.Registry) string {
	if e == nil {
		return ""
	}

	if e.AllDay {
		return applyString(reg, hooks.AllDayLabel, opts.AllDayLabel)
	}

	layout := applyString(reg, hooks.TimeFormat, opts.TimeFormat)

	return FormatTimeRange(e.StartTime, e.EndTime, layout, dashFor(opts, reg))
}

// FormatTimeRange formats a start/end time pair. A blank end is treated as
// equal to the start, and equal formatted sides collapse to one.
func FormatTimeRange(start, end, layout, dash string) string {
	if end == "" {
		end = start
	}

	startOut := start
	endOut := end

	if t, err := time.Parse(timeInputLayout, start); err == nil {
		startOut = t.Format(layout)
	}

	if t, err := time.Parse(timeInputLayout, end); err == nil {
		endOut = t.Format(layout)
	}

	if endOut == "" || startOut == endOut {
		return startOut
	}

	return startOut + dash + endOut
}

// To24Hour converts a 12-hour time string into HH:MM. Strings that fail to
// parse are returned unchanged.
func To24Hour(s string) string {
	for _, layout := range []string{"3:04pm", "3:04 pm", "3:04PM", "3:04 PM", "3pm", "3PM", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(timeInputLayout)
		}
	}
	return s
}

// ArchiveTitle builds a heading for a date-scoped archive page. Zero month
// and day values widen the scope.
func ArchiveTitle(title, separator string, year, month, day int) string {
	if year <= 0 {
		return title
	}

	switch {
	case month > 0 && day > 0:
		d := model.NewDate(year, month, day)
		if !d.Valid() {
			return title
		}
		return title + separator + d.Format("2 January 2006")
	case month > 0:
		return title + separator + model.NewDate(year, month, 1).Format("January 2006")
	default:
		return title + separator + model.NewDate(year, 1, 1).Format("2006")
	}
}

func dashFor(opts settings.Options, reg *hooks.Registry) string {
	return applyString(reg, hooks.Dash, opts.Dash)
}

func applyString(reg *hooks.Registry, name, v string) string {
	if reg == nil {
		return v
	}
	return reg.String(name, v)
}

func applyInt(reg *hooks.Registry, name string, v int) int {
	if reg == nil {
		return v
	}
	return reg.Int(name, v)
}
