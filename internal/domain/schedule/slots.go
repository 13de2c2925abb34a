package schedule

import (
	"time"

	"github.com/candraczapansky/software-sub012/internal/models"
)

// Booking grid: candidate start times every 15 minutes from 08:00 through
// the 22:00 hour.
const (
	gridFirstHour   = 8
	gridLastHour    = 22
	gridStepMinutes = 15
)

type Slot struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`
}

type SlotInput struct {
	Day     time.Time
	Windows Windows

	// Service is optional: without one, only window and block filtering
	// applies (browsing availability before choosing a service).
	Service *models.Service

	// Appointments are the staff member's bookings on Day. Cancelled ones
	// must already be excluded by the caller.
	Appointments []models.Appointment

	// ExcludeAppointmentID skips one appointment when re-slotting an edit.
	ExcludeAppointmentID uint
}

// AvailableSlots walks the grid and keeps every start time that survives all
// rejection rules. O(slots x appointments) is fine at salon scale.
func AvailableSlots(in SlotInput) []Slot {
	slots := make([]Slot, 0, 16)

	occupied := time.Duration(0)
	if in.Service != nil {
		occupied = time.Duration(in.Service.OccupiedMinutes()) * time.Minute
	}

	for hour := gridFirstHour; hour <= gridLastHour; hour++ {
		for minute := 0; minute < 60; minute += gridStepMinutes {
			start := time.Date(
				in.Day.Year(), in.Day.Month(), in.Day.Day(),
				hour, minute, 0, 0,
				in.Day.Location(),
			)

			if !slotBookable(in, start, occupied) {
				continue
			}

			end := start
			if occupied > 0 {
				end = start.Add(occupied)
			}
			slots = append(slots, Slot{
				Start: start.Format("15:04"),
				End:   end.Format("15:04"),
			})
		}
	}

	return slots
}

// Bookable reports whether a single start time (not necessarily on the grid)
// survives the same rejection rules the grid walk applies.
func Bookable(in SlotInput, start time.Time) bool {
	occupied := time.Duration(0)
	if in.Service != nil {
		occupied = time.Duration(in.Service.OccupiedMinutes()) * time.Minute
	}
	return slotBookable(in, start, occupied)
}

func slotBookable(in SlotInput, start time.Time, occupied time.Duration) bool {
	// 1. must start inside an open range
	inOpen := false
	for _, open := range in.Windows.Open {
		if open.Contains(start) {
			inOpen = true
			break
		}
	}
	if !inOpen {
		return false
	}

	// 2. must not start inside a blocked range
	for _, blocked := range in.Windows.Blocked {
		if blocked.Contains(start) {
			return false
		}
	}

	if in.Service == nil {
		return true
	}

	end := start.Add(occupied)

	// 3. the full occupied interval must clear every blocked range
	for _, blocked := range in.Windows.Blocked {
		if blocked.Overlaps(start, end) {
			return false
		}
	}

	// 4. and every existing appointment, except the one being edited
	for _, ap := range in.Appointments {
		if in.ExcludeAppointmentID != 0 && ap.ID == in.ExcludeAppointmentID {
			continue
		}
		if start.Before(ap.EndTime) && ap.StartTime.Before(end) {
			return false
		}
	}

	return true
}
