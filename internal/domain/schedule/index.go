package schedule

import (
	"sort"
	"time"

	"github.com/candraczapansky/software-sub012/internal/models"
)

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r TimeRange) Overlaps(start, end time.Time) bool {
	return start.Before(r.End) && r.Start.Before(end)
}

// Windows is the effective availability of one staff member on one date:
// open ranges are additive, blocked ranges subtractive. A one-time override
// (rule pinned to a single date) lands in the same lists; it does not shadow
// recurring rules automatically.
type Windows struct {
	Open    []TimeRange
	Blocked []TimeRange
}

// EffectiveWindows filters rules down to the given date and location and
// partitions them into open and blocked ranges. locationID zero matches any
// location. day is interpreted in its own location; rule times-of-day are
// projected onto that date.
func EffectiveWindows(
	rules []models.StaffSchedule,
	day time.Time,
	locationID uint,
) Windows {

	var w Windows

	for _, rule := range rules {
		if !ruleCoversDate(rule, day, locationID) {
			continue
		}

		r := TimeRange{
			Start: atTimeOfDay(day, rule.StartTime),
			End:   atTimeOfDay(day, rule.EndTime),
		}
		if !r.Start.Before(r.End) {
			continue
		}

		if rule.IsBlocked {
			w.Blocked = append(w.Blocked, r)
		} else {
			w.Open = append(w.Open, r)
		}
	}

	sortRanges(w.Open)
	sortRanges(w.Blocked)
	return w
}

func ruleCoversDate(rule models.StaffSchedule, day time.Time, locationID uint) bool {
	if rule.Weekday != int(day.Weekday()) {
		return false
	}
	if locationID != 0 && rule.LocationID != 0 && rule.LocationID != locationID {
		return false
	}

	date := dateOnly(day)
	if dateOnly(rule.StartDate).After(date) {
		return false
	}
	if rule.EndDate != nil && dateOnly(*rule.EndDate).Before(date) {
		return false
	}
	return true
}

// atTimeOfDay projects an HH:MM rule time onto the target date, in the
// date's location.
func atTimeOfDay(day time.Time, hm string) time.Time {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sortRanges(rs []TimeRange) {
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].Start.Before(rs[j].Start)
	})
}
