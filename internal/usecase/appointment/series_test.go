package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candraczapansky/software-sub012/internal/httperr"
)

func TestCreateRecurringWeekly(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	uc := NewCreateRecurringSeries(repo, nil)

	date, hm := futureBooking("10:00")
	res, err := uc.Execute(context.Background(), CreateRecurringInput{
		BookingInput: BookingInput{
			ClientID: 1, StaffID: 1, ServiceID: 1, LocationID: 1,
			Date: date, Time: hm, Notes: "standing facial",
		},
		Frequency: "weekly",
		Count:     4,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.CreatedCount)
	assert.Equal(t, 0, res.FailedCount)
	assert.NotEmpty(t, res.GroupID)
	require.Len(t, res.Created, 4)

	// occurrences land exactly one week apart, same time of day
	for i := 1; i < 4; i++ {
		gap := res.Created[i].StartTime.Sub(res.Created[i-1].StartTime)
		assert.Equal(t, 7*24*time.Hour, gap)
	}

	assert.Equal(t, "standing facial (Recurring 1/4)", res.Created[0].Notes)
	assert.Equal(t, "standing facial (Recurring 4/4)", res.Created[3].Notes)

	for _, ap := range res.Created {
		require.NotNil(t, ap.RecurringGroupID)
		assert.Equal(t, res.GroupID, *ap.RecurringGroupID)
	}
}

func TestCreateRecurringPartialFailure(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	date, hm := futureBooking("10:00")

	// pre-book the second occurrence's slot
	create := NewCreateAppointment(repo, nil)
	base, err := create.Execute(context.Background(), BookingInput{
		ClientID: 1, StaffID: 1, ServiceID: 1, LocationID: 1,
		Date: date, Time: hm,
	})
	require.NoError(t, err)

	blocker := *base
	blocker.ID = 0
	blocker.StartTime = base.StartTime.AddDate(0, 0, 7)
	blocker.EndTime = base.EndTime.AddDate(0, 0, 7)
	require.NoError(t, repo.CreateAppointment(context.Background(), &blocker))

	// free the base slot again so only occurrence 2 collides
	cancelled, err := NewCancelAppointment(repo, nil).Execute(context.Background(), base.ID)
	require.NoError(t, err)
	require.Equal(t, "cancelled", cancelled.Status)

	uc := NewCreateRecurringSeries(repo, nil)
	res, err := uc.Execute(context.Background(), CreateRecurringInput{
		BookingInput: BookingInput{
			ClientID: 1, StaffID: 1, ServiceID: 1, LocationID: 1,
			Date: date, Time: hm,
		},
		Frequency: "weekly",
		Count:     3,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.CreatedCount)
	assert.Equal(t, 1, res.FailedCount)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 1, res.Failures[0].Index)
	assert.Equal(t, "time_conflict", res.Failures[0].Reason)
}

func TestCreateRecurringIndefiniteCap(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	uc := NewCreateRecurringSeries(repo, nil)

	date, hm := futureBooking("09:00")
	res, err := uc.Execute(context.Background(), CreateRecurringInput{
		BookingInput: BookingInput{
			ClientID: 1, StaffID: 1, ServiceID: 1, LocationID: 1,
			Date: date, Time: hm,
		},
		Frequency: "monthly",
		Count:     0, // indefinite
	})
	require.NoError(t, err)
	assert.Equal(t, 12, res.CreatedCount+res.FailedCount)
}

func TestCreateRecurringRejectsBadInput(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	uc := NewCreateRecurringSeries(repo, nil)

	date, hm := futureBooking("10:00")
	base := BookingInput{
		ClientID: 1, StaffID: 1, ServiceID: 1, LocationID: 1,
		Date: date, Time: hm,
	}

	_, err := uc.Execute(context.Background(), CreateRecurringInput{
		BookingInput: base, Frequency: "daily", Count: 4,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_frequency"))

	_, err = uc.Execute(context.Background(), CreateRecurringInput{
		BookingInput: base, Frequency: "weekly", Count: 1,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_occurrence_count"))

	_, err = uc.Execute(context.Background(), CreateRecurringInput{
		BookingInput: base, Frequency: "weekly", Count: 53,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_occurrence_count"))
}

func TestCancelSeriesSkipsPaidAndPast(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	date, hm := futureBooking("10:00")
	res, err := NewCreateRecurringSeries(repo, nil).Execute(context.Background(), CreateRecurringInput{
		BookingInput: BookingInput{
			ClientID: 1, StaffID: 1, ServiceID: 1, LocationID: 1,
			Date: date, Time: hm,
		},
		Frequency: "weekly",
		Count:     3,
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.CreatedCount)

	// mark the second occurrence paid; cancel must leave it alone
	paid := res.Created[1]
	paid.PaymentStatus = "paid"
	require.NoError(t, repo.UpdateAppointment(context.Background(), &paid, false))

	out, err := NewCancelSeries(repo, nil).Execute(context.Background(), res.GroupID)
	require.NoError(t, err)

	assert.Equal(t, 2, out.CancelledCount)
	assert.Equal(t, 1, out.SkippedCount)

	remaining, err := repo.ListSeries(context.Background(), res.GroupID)
	require.NoError(t, err)
	var active int
	for _, ap := range remaining {
		if ap.Status != "cancelled" {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestUpdateDetachesFromSeries(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	date, hm := futureBooking("10:00")
	res, err := NewCreateRecurringSeries(repo, nil).Execute(context.Background(), CreateRecurringInput{
		BookingInput: BookingInput{
			ClientID: 1, StaffID: 1, ServiceID: 1, LocationID: 1,
			Date: date, Time: hm,
		},
		Frequency: "weekly",
		Count:     3,
	})
	require.NoError(t, err)

	target := res.Created[1]
	ap, err := NewUpdateAppointment(repo, nil).Execute(context.Background(), UpdateInput{
		AppointmentID:    target.ID,
		Time:             "14:00",
		DetachFromSeries: true,
	})
	require.NoError(t, err)

	assert.Nil(t, ap.RecurringGroupID)
	assert.Equal(t, 14, ap.StartTime.Hour())

	// the series now has two members
	left, err := repo.ListSeries(context.Background(), res.GroupID)
	require.NoError(t, err)
	assert.Len(t, left, 2)
}

func TestUpdateSeriesShiftsFutureOccurrences(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	date, hm := futureBooking("10:00")
	res, err := NewCreateRecurringSeries(repo, nil).Execute(context.Background(), CreateRecurringInput{
		BookingInput: BookingInput{
			ClientID: 1, StaffID: 1, ServiceID: 1, LocationID: 1,
			Date: date, Time: hm,
		},
		Frequency: "weekly",
		Count:     3,
	})
	require.NoError(t, err)

	out, err := NewUpdateSeries(repo, nil).Execute(context.Background(), UpdateSeriesInput{
		GroupID: res.GroupID,
		Time:    "15:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.UpdatedCount)
	assert.Equal(t, 0, out.FailedCount)

	series, err := repo.ListSeries(context.Background(), res.GroupID)
	require.NoError(t, err)
	for _, ap := range series {
		assert.Equal(t, 15, ap.StartTime.Hour())
	}
}

func TestUpdateRejectsTerminalStates(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	date, hm := futureBooking("10:00")
	ap, err := NewCreateAppointment(repo, nil).Execute(context.Background(), BookingInput{
		ClientID: 1, StaffID: 1, ServiceID: 1, LocationID: 1,
		Date: date, Time: hm,
	})
	require.NoError(t, err)

	done := *ap
	done.Status = "completed"
	now := time.Now()
	done.CompletedAt = &now
	require.NoError(t, repo.UpdateAppointment(context.Background(), &done, false))

	_, err = NewUpdateAppointment(repo, nil).Execute(context.Background(), UpdateInput{
		AppointmentID: ap.ID,
		Time:          "12:00",
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_completed"))

	// notes-only edits still go through on a completed appointment
	notes := "client loved the new serum"
	upd, err := NewUpdateAppointment(repo, nil).Execute(context.Background(), UpdateInput{
		AppointmentID: ap.ID,
		Notes:         &notes,
		HasNotes:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, notes, upd.Notes)
}
