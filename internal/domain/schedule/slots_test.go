package schedule

import (
	"testing"

	"github.com/candraczapansky/software-sub012/internal/models"
)

func openAllDay() Windows {
	return Windows{
		Open: []TimeRange{{
			Start: atTimeOfDay(tue, "09:00"),
			End:   atTimeOfDay(tue, "17:00"),
		}},
	}
}

func apt(id uint, start, end string) models.Appointment {
	return models.Appointment{
		ID:        id,
		StartTime: atTimeOfDay(tue, start),
		EndTime:   atTimeOfDay(tue, end),
	}
}

func hasSlot(slots []Slot, start string) bool {
	for _, s := range slots {
		if s.Start == start {
			return true
		}
	}
	return false
}

func TestAvailableSlots_NoService_WindowFilterOnly(t *testing.T) {
	w := openAllDay()
	w.Blocked = []TimeRange{{
		Start: atTimeOfDay(tue, "12:00"),
		End:   atTimeOfDay(tue, "13:00"),
	}}

	slots := AvailableSlots(SlotInput{Day: tue, Windows: w})

	cases := []struct {
		start string
		want  bool
	}{
		{"08:45", false}, // before opening
		{"09:00", true},
		{"11:45", true},
		{"12:00", false}, // inside block
		{"12:45", false},
		{"13:00", true}, // block is half-open
		{"16:45", true},
		{"17:00", false}, // open range is half-open
	}
	for _, c := range cases {
		if got := hasSlot(slots, c.start); got != c.want {
			t.Errorf("slot %s: available = %v, want %v", c.start, got, c.want)
		}
	}
}

func TestAvailableSlots_ServiceIntervalVsBlock(t *testing.T) {
	// 30 min service: a start at 11:45 would run into the 12:00 block.
	svc := &models.Service{DurationMin: 30}

	w := openAllDay()
	w.Blocked = []TimeRange{{
		Start: atTimeOfDay(tue, "12:00"),
		End:   atTimeOfDay(tue, "13:00"),
	}}

	slots := AvailableSlots(SlotInput{Day: tue, Windows: w, Service: svc})

	if hasSlot(slots, "11:45") {
		t.Error("11:45 should be rejected: 30 min service overlaps the block")
	}
	if !hasSlot(slots, "11:30") {
		t.Error("11:30 should survive: service ends exactly at block start")
	}
	if !hasSlot(slots, "13:00") {
		t.Error("13:00 should survive after the block")
	}
}

func TestAvailableSlots_BufferRespect(t *testing.T) {
	// duration 30 + buffer 10 before + 5 after = 45 occupied minutes
	svc := &models.Service{DurationMin: 30, BufferBeforeMin: 10, BufferAfterMin: 5}

	appointments := []models.Appointment{apt(1, "11:00", "12:00")}

	slots := AvailableSlots(SlotInput{
		Day:          tue,
		Windows:      openAllDay(),
		Service:      svc,
		Appointments: appointments,
	})

	// starts less than 45 minutes before 11:00 must not be offered
	if hasSlot(slots, "10:30") {
		t.Error("10:30 should be rejected: 45 min occupied interval hits 11:00 booking")
	}
	if !hasSlot(slots, "10:15") {
		t.Error("10:15 should be offered: ends 11:00, touching endpoints don't conflict")
	}
	if !hasSlot(slots, "12:00") {
		t.Error("12:00 should be offered right after the booking ends")
	}
	if hasSlot(slots, "11:30") {
		t.Error("11:30 starts inside the existing booking")
	}
}

func TestAvailableSlots_EditExcludesSelf(t *testing.T) {
	svc := &models.Service{DurationMin: 60}

	appointments := []models.Appointment{apt(7, "10:00", "11:00")}

	without := AvailableSlots(SlotInput{
		Day: tue, Windows: openAllDay(), Service: svc,
		Appointments: appointments,
	})
	if hasSlot(without, "10:00") {
		t.Fatal("10:00 should conflict when not editing")
	}

	editing := AvailableSlots(SlotInput{
		Day: tue, Windows: openAllDay(), Service: svc,
		Appointments:         appointments,
		ExcludeAppointmentID: 7,
	})
	if !hasSlot(editing, "10:00") {
		t.Error("10:00 should be offered again when re-slotting appointment 7")
	}
}

func TestAvailableSlots_EmptyWindows(t *testing.T) {
	slots := AvailableSlots(SlotInput{Day: tue})
	if len(slots) != 0 {
		t.Fatalf("no schedule means no slots, got %d", len(slots))
	}
}

func TestAvailableSlots_SlotEndUsesOccupiedTime(t *testing.T) {
	svc := &models.Service{DurationMin: 60, BufferAfterMin: 15}

	slots := AvailableSlots(SlotInput{Day: tue, Windows: openAllDay(), Service: svc})

	for _, s := range slots {
		if s.Start == "09:00" {
			if s.End != "10:15" {
				t.Errorf("slot end = %s, want 10:15 (duration + buffer)", s.End)
			}
			return
		}
	}
	t.Fatal("expected a 09:00 slot")
}
