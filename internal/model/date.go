package model

import (
	"fmt"
	"strings"
	"time"

	apperrors "eventcal/pkg/app_errors"
)

// Date is a plain calendar date with no time zone or clock component. It is
// the single internal representation of event dates; the YYYYMMDD string used
// by the database and the legacy DD/MM/YYYY form only exist at the I/O
// boundary. JSON encoding uses ISO 8601 (YYYY-MM-DD).
type Date struct {
	Year  int
	Month int
	Day   int
}

func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func Today() Date {
	return DateOf(time.Now())
}

func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseYmd parses the sortable YYYYMMDD key used in the database.
func ParseYmd(s string) (Date, error) {
	if len(s) != 8 {
		return Date{}, apperrors.ErrInvalidDate
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return Date{}, apperrors.ErrInvalidDate
	}
	return DateOf(t), nil
}

// ParseLegacy parses the DD/MM/YYYY display form still produced by older
// clients.
func ParseLegacy(s string) (Date, error) {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return Date{}, apperrors.ErrInvalidDate
	}
	return DateOf(t), nil
}

// ParseDate accepts any supported encoding: ISO 8601, YYYYMMDD or the
// legacy DD/MM/YYYY form.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return DateOf(t), nil
	}
	if d, err := ParseYmd(s); err == nil {
		return d, nil
	}
	return ParseLegacy(s)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Valid reports whether the date is a real calendar date.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= daysInMonth(d.Year, d.Month)
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Ymd renders the lexically sortable key used for all database comparisons.
func (d Date) Ymd() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Comparisons operate on the Ymd encoding so they stay in step with the
// ordering the database sees.
func (d Date) Equal(o Date) bool   { return d.Ymd() == o.Ymd() }
func (d Date) Before(o Date) bool  { return d.Ymd() < o.Ymd() }
func (d Date) After(o Date) bool   { return d.Ymd() > o.Ymd() }
func (d Date) SameMonth(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month
}

// MonthStart returns the first day of the date's month.
func (d Date) MonthStart() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// MonthEnd returns the last day of the date's month.
func (d Date) MonthEnd() Date {
	return Date{Year: d.Year, Month: d.Month, Day: daysInMonth(d.Year, d.Month)}
}

// NextMonthStart returns the first day of the following month.
func (d Date) NextMonthStart() Date {
	t := time.Date(d.Year, time.Month(d.Month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return DateOf(t)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return apperrors.ErrInvalidDate
	}

	*d = DateOf(t)
	return nil
}
