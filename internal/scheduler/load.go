package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
)

// NominalWorkdayHours is the baseline a day's booked hours are measured
// against when no other value is configured.
const NominalWorkdayHours = 8.0

// DailyLoad computes, for every UTC calendar day from from's date to to's
// date inclusive, the sum over assignments of
// overlapHours / workdayHours * allocation / 100. Load is capped at 1.0.
// Days without bookings are present with zero load.
func DailyLoad(assignments []domain.Assignment, from, to time.Time, workdayHours float64) []app.DayLoad {
	if workdayHours <= 0 {
		workdayHours = NominalWorkdayHours
	}
	first := startOfDay(from)
	last := startOfDay(to)

	var days []app.DayLoad
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		day := domain.Window{Start: d, End: d.AddDate(0, 0, 1)}
		var raw float64
		for _, a := range assignments {
			overlap, ok := a.Window().Intersect(day)
			if !ok {
				continue
			}
			raw += overlap.Duration().Hours() / workdayHours * a.AllocationPct / 100
		}
		days = append(days, app.DayLoad{
			Date: d.Format(app.DateLayout),
			Load: math.Min(raw, 1.0),
			Raw:  raw,
		})
	}
	return days
}

// LoadMap flattens DailyLoad output into date -> capped load.
func LoadMap(days []app.DayLoad) map[string]float64 {
	out := make(map[string]float64, len(days))
	for _, d := range days {
		out[d.Date] = d.Load
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
