package settings

import (
	"context"
	"strconv"
	"strings"
	"time"

	"eventcal/config"
	"eventcal/internal/hooks"
	"eventcal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisKey is the hash holding persisted display settings, the analogue of
// the plugin options the admin screen used to write.
const redisKey = "events:settings"

// RangeFormats is the format table used by the date-range formatter, keyed
// by the component granularity of each side of the range.
type RangeFormats struct {
	Y   string `json:"y"`
	M   string `json:"m"`
	D   string `json:"d"`
	DM  string `json:"dm"`
	MY  string `json:"my"`
	DMY string `json:"dmy"`
}

// Options carries every configurable display setting. It is loaded once per
// request and passed explicitly to the calendar and formatting code.
type Options struct {
	ClassPrefix        string       `json:"class_prefix"`
	DayFormat          string       `json:"day_format"`
	CurrentMonthFormat string       `json:"current_month_format"`
	NextYearGlyph      string       `json:"next_year_glyph"`
	PrevYearGlyph      string       `json:"prev_year_glyph"`
	NextMonthGlyph     string       `json:"next_month_glyph"`
	PrevMonthGlyph     string       `json:"prev_month_glyph"`
	Dash               string       `json:"dash"`
	AllDayLabel        string       `json:"all_day_label"`
	TimeFormat         string       `json:"time_format"`
	MaxItems           int          `json:"max_items"`
	PlusNText          string       `json:"plus_n_text"`
	Plus1Text          string       `json:"plus_1_text"`
	WeekStart          time.Weekday `json:"week_start"`
	ArchiveBase        string       `json:"archive_base"`
	Ranges             RangeFormats `json:"range_formats"`
}

// Defaults returns the built-in option values. Date and time formats are Go
// reference layouts.
func Defaults(cal config.CalendarConfig) Options {
	weekStart := time.Monday
	if wd, ok := ParseWeekday(cal.WeekStart); ok {
		weekStart = wd
	}

	return Options{
		ClassPrefix:        "events-",
		DayFormat:          "2",
		CurrentMonthFormat: "Jan 2006",
		NextYearGlyph:      "»",
		PrevYearGlyph:      "«",
		NextMonthGlyph:     "›",
		PrevMonthGlyph:     "‹",
		Dash:               "–",
		AllDayLabel:        "All day",
		TimeFormat:         "3:04pm",
		MaxItems:           3,
		PlusNText:          "+ %d events",
		Plus1Text:          "+ 1 event",
		WeekStart:          weekStart,
		ArchiveBase:        cal.ArchiveBase,
		Ranges: RangeFormats{
			Y:   "2006",
			M:   "January",
			D:   "2",
			DM:  "2 January",
			MY:  "January 2006",
			DMY: "2 January 2006",
		},
	}
}

func ParseWeekday(s string) (time.Weekday, bool) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(wd.String(), s) {
			return wd, true
		}
	}
	return time.Sunday, false
}

// Store reads and writes persisted settings. A registered options filter
// takes precedence over stored values, mirroring the old behaviour where a
// code-level override disabled the settings screen.
type Store struct {
	rdb      *redis.Client
	defaults Options
	hooks    *hooks.Registry
}

func NewStore(rdb *redis.Client, defaults Options, registry *hooks.Registry) *Store {
	return &Store{rdb: rdb, defaults: defaults, hooks: registry}
}

// Load returns the effective options: defaults overlaid with any persisted
// values, unless an options filter is registered, in which case the filter
// output wins. Storage failures fall back to defaults rather than erroring.
func (s *Store) Load(ctx context.Context) Options {
	if s.hooks != nil && s.hooks.Has(hooks.Options) {
		if o, ok := s.hooks.Apply(hooks.Options, s.defaults).(Options); ok {
			return o
		}
		return s.defaults
	}

	opts := s.defaults

	if s.rdb == nil {
		return opts
	}

	stored, err := s.rdb.HGetAll(ctx, redisKey).Result()
	if err != nil {
		logger.WithComponent("settings").Warn("failed to read stored settings", zap.Error(err))
		return opts
	}

	opts.apply(stored)
	return opts
}

// Save persists the given option fields. Unknown fields are ignored on the
// way back out of Load.
func (s *Store) Save(ctx context.Context, fields map[string]string) error {
	if len(fields) == 0 || s.rdb == nil {
		return nil
	}
	return s.rdb.HSet(ctx, redisKey, fields).Err()
}

func (o *Options) apply(stored map[string]string) {
	set := func(key string, dst *string) {
		if v, ok := stored[key]; ok && v != "" {
			*dst = v
		}
	}

	set("class_prefix", &o.ClassPrefix)
	set("day_format", &o.DayFormat)
	set("current_month_format", &o.CurrentMonthFormat)
	set("next_year_glyph", &o.NextYearGlyph)
	set("prev_year_glyph", &o.PrevYearGlyph)
	set("next_month_glyph", &o.NextMonthGlyph)
	set("prev_month_glyph", &o.PrevMonthGlyph)
	set("dash", &o.Dash)
	set("all_day_label", &o.AllDayLabel)
	set("time_format", &o.TimeFormat)
	set("plus_n_text", &o.PlusNText)
	set("plus_1_text", &o.Plus1Text)

	if v, ok := stored["max_items"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			o.MaxItems = n
		}
	}

	if v, ok := stored["week_start"]; ok {
		if wd, ok := ParseWeekday(v); ok {
			o.WeekStart = wd
		}
	}

	set("range_format_y", &o.Ranges.Y)
	set("range_format_m", &o.Ranges.M)
	set("range_format_d", &o.Ranges.D)
	set("range_format_dm", &o.Ranges.DM)
	set("range_format_my", &o.Ranges.MY)
	set("range_format_dmy", &o.Ranges.DMY)
}
