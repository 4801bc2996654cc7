package calendar

// Period is a year/month pair used for calendar navigation.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (p Period) index() int {
	return p.Year*12 + p.Month - 1
}

// NormalizePeriod folds a single month of overflow back into the year, the
// way the navigation arrows produce it: month 13 becomes January of the next
// year and month 0 becomes December of the previous one.
func NormalizePeriod(p Period) Period {
	if p.Month > 12 {
		p.Month = 1
		p.Year++
	} else if p.Month < 1 {
		p.Month = 12
		p.Year--
	}
	return p
}

// ClampPeriod reports whether the period lies within the navigable bounds.
// Out-of-bounds periods are suppressed rather than wrapped.
func ClampPeriod(p, min, max Period) (Period, bool) {
	if p.index() < min.index() || p.index() > max.index() {
		return p, false
	}
	return p, true
}

// Navigate applies a year/month delta to the current period, normalizes the
// overflow and clamps against the navigable range. The boolean is false when
// the move must be suppressed.
func Navigate(current Period, deltaYear, deltaMonth int, min, max Period) (Period, bool) {
	candidate := NormalizePeriod(Period{
		Year:  current.Year + deltaYear,
		Month: current.Month + deltaMonth,
	})
	return ClampPeriod(candidate, min, max)
}
