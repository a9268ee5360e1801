package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalendarClassifyWeekend(t *testing.T) {
	cal := NewCalendar(time.UTC, nil)

	// 2025-06-07 is a Saturday, 2025-06-08 a Sunday.
	sat := time.Date(2025, 6, 7, 14, 30, 0, 0, time.UTC)
	sun := time.Date(2025, 6, 8, 9, 0, 0, 0, time.UTC)
	mon := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, DayHoliday, cal.Classify(sat))
	assert.Equal(t, DayHoliday, cal.Classify(sun))
	assert.Equal(t, DayWeekday, cal.Classify(mon))
}

func TestCalendarClassifyHolidayList(t *testing.T) {
	cal := NewCalendar(time.UTC, []string{"2025-01-01", "2025-02-28"})

	assert.Equal(t, DayHoliday, cal.Classify(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, DayHoliday, cal.Classify(time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, DayWeekday, cal.Classify(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestCalendarClassifyByCivilDayNotInstant(t *testing.T) {
	// UTC+8: an instant late on Friday UTC is already Saturday locally.
	taipei := time.FixedZone("UTC+8", 8*3600)
	cal := NewCalendar(taipei, nil)

	// 2025-06-06 23:00 UTC == 2025-06-07 07:00 in UTC+8 (Saturday).
	fridayUTC := time.Date(2025, 6, 6, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, DayHoliday, cal.Classify(fridayUTC))
}

func TestCalendarHolidayDateMatchesLocalDate(t *testing.T) {
	taipei := time.FixedZone("UTC+8", 8*3600)
	cal := NewCalendar(taipei, []string{"2025-06-10"})

	// 2025-06-09 20:00 UTC is 2025-06-10 04:00 in UTC+8.
	at := time.Date(2025, 6, 9, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, DayHoliday, cal.Classify(at))
}
