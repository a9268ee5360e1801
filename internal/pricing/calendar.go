package pricing

import "time"

// Calendar classifies instants into weekday or holiday. Saturdays, Sundays
// and dates in the explicit holiday set count as holidays. Dates are compared
// by calendar day in the calendar's location, not by instant.
type Calendar struct {
	loc      *time.Location
	holidays map[string]struct{}
}

// NewCalendar builds a Calendar for the given location. Holiday dates are
// YYYY-MM-DD strings; unknown formats are kept as-is and simply never match.
func NewCalendar(loc *time.Location, holidayDates []string) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	set := make(map[string]struct{}, len(holidayDates))
	for _, d := range holidayDates {
		set[d] = struct{}{}
	}
	return &Calendar{loc: loc, holidays: set}
}

// Classify returns the day type for t.
func (c *Calendar) Classify(t time.Time) DayType {
	local := t.In(c.loc)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return DayHoliday
	}
	if _, ok := c.holidays[local.Format("2006-01-02")]; ok {
		return DayHoliday
	}
	return DayWeekday
}
