package hooks

import "sync"

// Extension point names. Every format string, label, link and generated
// filter fragment passes through one of these before use, so deployments can
// override presentation and query behaviour without patching the code that
// produces it.
const (
	DayFormat          = "calendar_day_format"
	ClassPrefix        = "calendar_class_prefix"
	CurrentMonthFormat = "calendar_current_month_format"
	NextYearGlyph      = "calendar_next_year_glyph"
	PrevYearGlyph      = "calendar_prev_year_glyph"
	NextMonthGlyph     = "calendar_next_month_glyph"
	PrevMonthGlyph     = "calendar_prev_month_glyph"
	Dash               = "date_range_dash"
	DateRangeFormats   = "date_range_formats"
	TimeFormat         = "time_format"
	AllDayLabel        = "all_day_label"
	MaxItems           = "calendar_max_items"
	PlusNEvents        = "calendar_plus_n_events"
	Plus1Event         = "calendar_plus_1_event"
	Options            = "events_options"
	CalendarWhere      = "calendar_sql_where"
	CurrentMonthLink   = "calendar_current_month_link"
	DayLink            = "calendar_day_link"
	EventLink          = "calendar_event_link"
)

// Filter transforms a value at an extension point. Filters registered under
// the same name run in registration order, each receiving the previous
// result.
type Filter func(v any) any

// Registry maps extension point names to ordered filter chains. It replaces
// ambient filter dispatch with an explicit object passed to every consumer.
type Registry struct {
	mu      sync.RWMutex
	filters map[string][]Filter
}

func New() *Registry {
	return &Registry{filters: make(map[string][]Filter)}
}

func (r *Registry) Add(name string, f Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[name] = append(r.filters[name], f)
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filters[name]) > 0
}

func (r *Registry) Apply(name string, v any) any {
	r.mu.RLock()
	chain := r.filters[name]
	r.mu.RUnlock()

	for _, f := range chain {
		v = f(v)
	}
	return v
}

// String applies the chain and keeps the original value if a filter returns
// something that is not a string.
func (r *Registry) String(name, v string) string {
	if s, ok := r.Apply(name, v).(string); ok {
		return s
	}
	return v
}

func (r *Registry) Int(name string, v int) int {
	if n, ok := r.Apply(name, v).(int); ok {
		return n
	}
	return v
}
