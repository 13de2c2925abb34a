package schedule

import (
	"testing"
	"time"

	"github.com/candraczapansky/software-sub012/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// Tuesday
var tue = date(2026, time.March, 10)

func TestEffectiveWindows_RecurringRule(t *testing.T) {
	rules := []models.StaffSchedule{
		{
			Weekday:   int(time.Tuesday),
			StartTime: "09:00",
			EndTime:   "17:00",
			StartDate: date(2026, time.January, 1),
		},
	}

	w := EffectiveWindows(rules, tue, 0)

	if len(w.Open) != 1 || len(w.Blocked) != 0 {
		t.Fatalf("expected 1 open / 0 blocked, got %d / %d", len(w.Open), len(w.Blocked))
	}
	if got := w.Open[0].Start.Format("15:04"); got != "09:00" {
		t.Errorf("open start = %s, want 09:00", got)
	}
	if got := w.Open[0].End.Format("15:04"); got != "17:00" {
		t.Errorf("open end = %s, want 17:00", got)
	}
}

func TestEffectiveWindows_Filtering(t *testing.T) {
	cases := []struct {
		name    string
		rule    models.StaffSchedule
		matches bool
	}{
		{
			name: "wrong weekday",
			rule: models.StaffSchedule{
				Weekday: int(time.Monday), StartTime: "09:00", EndTime: "17:00",
				StartDate: date(2026, time.January, 1),
			},
			matches: false,
		},
		{
			name: "starts after the date",
			rule: models.StaffSchedule{
				Weekday: int(time.Tuesday), StartTime: "09:00", EndTime: "17:00",
				StartDate: date(2026, time.April, 1),
			},
			matches: false,
		},
		{
			name: "ended before the date",
			rule: models.StaffSchedule{
				Weekday: int(time.Tuesday), StartTime: "09:00", EndTime: "17:00",
				StartDate: date(2026, time.January, 1),
				EndDate:   datePtr(2026, time.February, 1),
			},
			matches: false,
		},
		{
			name: "end date on the date itself",
			rule: models.StaffSchedule{
				Weekday: int(time.Tuesday), StartTime: "09:00", EndTime: "17:00",
				StartDate: date(2026, time.January, 1),
				EndDate:   datePtr(2026, time.March, 10),
			},
			matches: true,
		},
		{
			name: "other location",
			rule: models.StaffSchedule{
				Weekday: int(time.Tuesday), StartTime: "09:00", EndTime: "17:00",
				StartDate: date(2026, time.January, 1), LocationID: 2,
			},
			matches: false,
		},
		{
			name: "open-ended recurring",
			rule: models.StaffSchedule{
				Weekday: int(time.Tuesday), StartTime: "09:00", EndTime: "17:00",
				StartDate: date(2026, time.January, 1), LocationID: 1,
			},
			matches: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := EffectiveWindows([]models.StaffSchedule{c.rule}, tue, 1)
			got := len(w.Open) == 1
			if got != c.matches {
				t.Errorf("rule matched = %v, want %v", got, c.matches)
			}
		})
	}
}

func TestEffectiveWindows_OneTimeOverrideAndBlock(t *testing.T) {
	rules := []models.StaffSchedule{
		// recurring Tuesday hours
		{
			Weekday: int(time.Tuesday), StartTime: "09:00", EndTime: "17:00",
			StartDate: date(2026, time.January, 1),
		},
		// one-time extra evening pinned to this date
		{
			Weekday: int(time.Tuesday), StartTime: "18:00", EndTime: "20:00",
			StartDate: date(2026, time.March, 10),
			EndDate:   datePtr(2026, time.March, 10),
		},
		// one-time lunch block on the same date
		{
			Weekday: int(time.Tuesday), StartTime: "12:00", EndTime: "13:00",
			StartDate: date(2026, time.March, 10),
			EndDate:   datePtr(2026, time.March, 10),
			IsBlocked: true, BlockReason: "lunch",
		},
	}

	w := EffectiveWindows(rules, tue, 0)

	if len(w.Open) != 2 {
		t.Fatalf("expected 2 open ranges (override is additive), got %d", len(w.Open))
	}
	if len(w.Blocked) != 1 {
		t.Fatalf("expected 1 blocked range, got %d", len(w.Blocked))
	}
	// sorted by start
	if w.Open[0].Start.After(w.Open[1].Start) {
		t.Error("open ranges not sorted by start time")
	}
}

func TestTimeRange_Contains(t *testing.T) {
	r := TimeRange{
		Start: atTimeOfDay(tue, "09:00"),
		End:   atTimeOfDay(tue, "17:00"),
	}

	if !r.Contains(atTimeOfDay(tue, "09:00")) {
		t.Error("start boundary should be contained (half-open)")
	}
	if r.Contains(atTimeOfDay(tue, "17:00")) {
		t.Error("end boundary should not be contained (half-open)")
	}
	if !r.Contains(atTimeOfDay(tue, "16:59")) {
		t.Error("16:59 should be contained")
	}
}
