package appointment

import (
	"time"

	"github.com/candraczapansky/software-sub012/internal/models"
)

// Overlaps is the pairwise interval test for half-open [start, end)
// intervals. Touching endpoints do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflicts returns the active appointments whose interval overlaps
// [start, end), skipping excludeID when re-validating an edit. This is the
// client-facing pre-check; the repository re-runs the same test inside the
// write transaction.
func FindConflicts(
	appointments []models.Appointment,
	start, end time.Time,
	excludeID uint,
) []models.Appointment {

	var conflicts []models.Appointment
	for _, ap := range appointments {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if !IsActive(ap.Status) {
			continue
		}
		if Overlaps(start, end, ap.StartTime, ap.EndTime) {
			conflicts = append(conflicts, ap)
		}
	}
	return conflicts
}
