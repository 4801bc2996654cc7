package calendar

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"eventcal/internal/hooks"
	"eventcal/internal/model"
	"eventcal/internal/settings"
)

// Calendar is one month of computed grid data ready for rendering, bounded
// by the earliest and latest event dates known at build time. Instances are
// created per request and discarded after the response.
type Calendar struct {
	Year  int
	Month int
	Full  bool
	Min   model.Date
	Max   model.Date
	Days  []Day

	opts settings.Options
	reg  *hooks.Registry
}

// Payload is the refresh response body. Compact mode carries the day cells,
// full mode carries a replacement table body.
type Payload struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Current string `json:"current"`
	Days    []Day  `json:"days,omitempty"`
	Body    string `json:"body,omitempty"`
}

func New(year, month int, full bool, min, max model.Date, days []Day, opts settings.Options, reg *hooks.Registry) *Calendar {
	return &Calendar{
		Year:  year,
		Month: month,
		Full:  full,
		Min:   min,
		Max:   max,
		Days:  days,
		opts:  opts,
		reg:   reg,
	}
}

// Render produces the calendar table fragment. Data attributes carry the
// displayed period and the navigable bounds for the client-side controller.
func (c *Calendar) Render() string {
	var b strings.Builder

	class := c.class("ca")
	if c.Full {
		class += " " + c.classPrefix() + "calendar-full"
	}

	fmt.Fprintf(&b, "<table class=%q", class)
	fmt.Fprintf(&b, " data-events-min-year=%q", fmt.Sprintf("%d", c.Min.Year))
	fmt.Fprintf(&b, " data-events-min-month=%q", fmt.Sprintf("%d", c.Min.Month))
	fmt.Fprintf(&b, " data-events-max-year=%q", fmt.Sprintf("%d", c.Max.Year))
	fmt.Fprintf(&b, " data-events-max-month=%q", fmt.Sprintf("%d", c.Max.Month))
	fmt.Fprintf(&b, " data-events-archive-base=%q", c.opts.ArchiveBase)
	fmt.Fprintf(&b, " data-events-year=%q", fmt.Sprintf("%d", c.Year))
	fmt.Fprintf(&b, " data-events-month=%q>\n", fmt.Sprintf("%d", c.Month))

	b.WriteString(c.header())

	if c.Full {
		b.WriteString(c.fullBody())
	} else {
		b.WriteString(c.daysBody())
	}

	b.WriteString("</table>")

	return b.String()
}

// header renders the navigation row and the weekday row. Arrows are only
// emitted when the target period stays inside the min/max bounds.
func (c *Calendar) header() string {
	var b strings.Builder

	current := Period{Year: c.Year, Month: c.Month}
	min := Period{Year: c.Min.Year, Month: c.Min.Month}
	max := Period{Year: c.Max.Year, Month: c.Max.Month}

	b.WriteString("<thead>\n<tr>\n")

	prevYear, prevYearOK := Navigate(current, -1, 0, min, max)
	c.control(&b, "py", prevYear, prevYearOK)

	prevMonth, prevMonthOK := Navigate(current, 0, -1, min, max)
	c.control(&b, "pm", prevMonth, prevMonthOK)

	monthStart := model.NewDate(c.Year, c.Month, 1)
	label := monthStart.Format(applyString(c.reg, hooks.CurrentMonthFormat, c.opts.CurrentMonthFormat))
	link := applyString(c.reg, hooks.CurrentMonthLink,
		fmt.Sprintf("%s/%04d/%02d", c.opts.ArchiveBase, c.Year, c.Month))

	fmt.Fprintf(&b, "<th colspan=\"3\" class=%q><a href=%q><span>%s</span></a></th>\n",
		c.class("cu"), html.EscapeString(link), html.EscapeString(label))

	nextMonth, nextMonthOK := Navigate(current, 0, 1, min, max)
	c.control(&b, "nm", nextMonth, nextMonthOK)

	nextYear, nextYearOK := Navigate(current, 1, 0, min, max)
	c.control(&b, "ny", nextYear, nextYearOK)

	b.WriteString("</tr>\n<tr>\n")

	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(c.opts.WeekStart) + i) % 7)
		fmt.Fprintf(&b, "<th class=%q><span>%s</span></th>\n", c.class("wd"), wd.String()[:2])
	}

	b.WriteString("</tr>\n</thead>\n")

	return b.String()
}

func (c *Calendar) control(b *strings.Builder, key string, target Period, ok bool) {
	glyphs := map[string]string{
		"py": applyString(c.reg, hooks.PrevYearGlyph, c.opts.PrevYearGlyph),
		"pm": applyString(c.reg, hooks.PrevMonthGlyph, c.opts.PrevMonthGlyph),
		"nm": applyString(c.reg, hooks.NextMonthGlyph, c.opts.NextMonthGlyph),
		"ny": applyString(c.reg, hooks.NextYearGlyph, c.opts.NextYearGlyph),
	}

	fmt.Fprintf(b, "<th class=%q>", c.class("co,"+key))
	if ok {
		fmt.Fprintf(b, "<a href=\"?year=%d&amp;month=%d\"><span>%s</span></a>",
			target.Year, target.Month, glyphs[key])
	}
	b.WriteString("</th>\n")
}

// daysBody renders the compact grid: one cell per day with a link to the
// single event, the day archive when several events share the day, or no
// link at all.
func (c *Calendar) daysBody() string {
	var b strings.Builder

	b.WriteString("<tbody>\n")

	for i, day := range c.Days {
		if i%7 == 0 {
			b.WriteString("<tr>\n")
		}

		fmt.Fprintf(&b, "<td class=%q><a", day.Class)

		if len(day.Events) > 0 {
			link := day.Link
			if len(day.Events) == 1 {
				link = day.Events[0].Permalink
			}
			fmt.Fprintf(&b, " href=%q", html.EscapeString(link))
		}

		fmt.Fprintf(&b, ">%s</a></td>\n", html.EscapeString(day.Label))

		if i%7 == 6 {
			b.WriteString("</tr>\n")
		}
	}

	b.WriteString("</tbody>\n")

	return b.String()
}

// fullBody renders the table body with inline event listings: per day, the
// events sorted by start time with all-day entries first, capped at the
// configured maximum with an overflow link to the day archive.
func (c *Calendar) fullBody() string {
	var b strings.Builder

	prefix := c.classPrefix()
	max := applyInt(c.reg, hooks.MaxItems, c.opts.MaxItems)
	plusN := applyString(c.reg, hooks.PlusNEvents, c.opts.PlusNText)
	plus1 := applyString(c.reg, hooks.Plus1Event, c.opts.Plus1Text)
	timeLayout := applyString(c.reg, hooks.TimeFormat, c.opts.TimeFormat)

	b.WriteString("<tbody>\n")

	for i, day := range c.Days {
		if i%7 == 0 {
			b.WriteString("<tr>\n")
		}

		events := make([]EventRef, len(day.Events))
		copy(events, day.Events)

		// All-day events carry no start time and sort first.
		sort.SliceStable(events, func(a, z int) bool {
			return sortTime(events[a]) < sortTime(events[z])
		})

		var moreTitle, moreURL string

		if len(events) > max {
			diff := len(events) - max

			if diff == 1 {
				moreTitle = plus1
			} else {
				moreTitle = fmt.Sprintf(plusN, diff)
			}

			moreURL = fmt.Sprintf("%s/%04d/%02d/%s/", c.opts.ArchiveBase, c.Year, c.Month, day.Label)
			events = events[:max]
		}

		fmt.Fprintf(&b, "<td class=%q>\n", day.Class)
		fmt.Fprintf(&b, "<div class=%q>%s</div>\n", prefix+"day-date", html.EscapeString(day.Label))

		for _, event := range events {
			var timeLabel string

			if !event.AllDay && event.StartTime != "" {
				if t, err := time.Parse(timeInputLayout, event.StartTime); err == nil {
					timeLabel = t.Format(timeLayout)
				}
			}

			fmt.Fprintf(&b, "<a href=%q class=%q>", html.EscapeString(event.Permalink), prefix+"day-event")

			if timeLabel != "" {
				fmt.Fprintf(&b, "<span class=%q>%s</span>", prefix+"day-event-time", html.EscapeString(timeLabel))
			}

			fmt.Fprintf(&b, "<span class=%q>%s</span></a>\n", prefix+"day-event-text", html.EscapeString(event.Title))
		}

		if moreTitle != "" && moreURL != "" {
			fmt.Fprintf(&b, "<a href=%q class=%q>%s</a>\n",
				html.EscapeString(moreURL), prefix+"day-more", html.EscapeString(moreTitle))
		}

		b.WriteString("</td>\n")

		if i%7 == 6 {
			b.WriteString("</tr>\n")
		}
	}

	b.WriteString("</tbody>\n")

	return b.String()
}

// Payload assembles the refresh response for the asynchronous controller.
func (c *Calendar) Payload() Payload {
	monthStart := model.NewDate(c.Year, c.Month, 1)

	p := Payload{
		Year:    c.Year,
		Month:   c.Month,
		Current: monthStart.Format(applyString(c.reg, hooks.CurrentMonthFormat, c.opts.CurrentMonthFormat)),
	}

	if c.Full {
		p.Body = c.fullBody()
	} else {
		p.Days = c.Days
	}

	return p
}

func (c *Calendar) class(keys string) string {
	return cKeys(c.opts, c.reg, keys)
}

func (c *Calendar) classPrefix() string {
	return applyString(c.reg, hooks.ClassPrefix, c.opts.ClassPrefix)
}

func sortTime(e EventRef) string {
	if e.AllDay {
		return ""
	}
	return e.StartTime
}
