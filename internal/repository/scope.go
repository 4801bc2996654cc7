package repository

import (
	"fmt"

	"eventcal/internal/model"
)

// ScopeKind is the granularity of a date-filtered listing request.
type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeYear
	ScopeMonth
	ScopeDay
)

// Scope is a requested archive period. Zero components widen the scope:
// {2024, 0, 0} is the whole of 2024, {0, 0, 0} is the upcoming index.
type Scope struct {
	Year  int
	Month int
	Day   int
}

func (s Scope) Kind() ScopeKind {
	switch {
	case s.Year > 0 && s.Month > 0 && s.Day > 0:
		return ScopeDay
	case s.Year > 0 && s.Month > 0:
		return ScopeMonth
	case s.Year > 0:
		return ScopeYear
	default:
		return ScopeNone
	}
}

// scopeFilter builds the WHERE fragment selecting events whose
// [start_date, end_date] interval intersects the requested period, plus the
// matching ORDER BY clause. Placeholders start at argPos. The filter is
// built from the event date columns only, so the publish timestamp never
// participates in date-scoped listings.
func scopeFilter(s Scope, today model.Date, argPos int) (where string, order string, args []any) {
	switch s.Kind() {
	case ScopeDay:
		day := model.NewDate(s.Year, s.Month, s.Day).Ymd()
		where = fmt.Sprintf("start_date <= $%d AND end_date >= $%d", argPos, argPos+1)
		order = "ORDER BY start_date DESC"
		args = []any{day, day}

	case ScopeMonth:
		start := model.NewDate(s.Year, s.Month, 1)
		where, args = intervalFilter(start.Ymd(), start.MonthEnd().Ymd(), argPos)
		order = "ORDER BY start_date DESC"

	case ScopeYear:
		where, args = intervalFilter(
			model.NewDate(s.Year, 1, 1).Ymd(),
			model.NewDate(s.Year, 12, 31).Ymd(),
			argPos,
		)
		order = "ORDER BY start_date DESC"

	default:
		// No scope: upcoming events only, nearest first.
		where = fmt.Sprintf("start_date >= $%d", argPos)
		order = "ORDER BY start_date ASC"
		args = []any{today.Ymd()}
	}

	return where, order, args
}

// intervalFilter covers events starting in the period, ending in the
// period, or spanning straight through it.
func intervalFilter(lo, hi string, argPos int) (string, []any) {
	where := fmt.Sprintf(
		"((start_date BETWEEN $%d AND $%d) OR (end_date BETWEEN $%d AND $%d) OR (start_date < $%d AND end_date > $%d))",
		argPos, argPos+1, argPos+2, argPos+3, argPos+4, argPos+5,
	)
	return where, []any{lo, hi, lo, hi, lo, hi}
}
