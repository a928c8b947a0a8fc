package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldesk/internal/domain/availability"
	"hoteldesk/internal/domain/booking"
	"hoteldesk/internal/domain/shared/daterange"
	"hoteldesk/internal/infra/storage/memory"
)

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func interval(t *testing.T, from, to int) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(day(from), day(to))
	require.NoError(t, err)
	return dr
}

func seedBooking(t *testing.T, repo *memory.BookingRepository, id string, resources []string, from, to int) *booking.Booking {
	t.Helper()
	b, err := booking.New(booking.CreateParams{
		ID:          booking.BookingID(id),
		Kind:        booking.KindReservation,
		ResourceIDs: resources,
		GuestName:   "guest",
		Range:       interval(t, from, to),
		CreatedAt:   day(1),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), b))
	return b
}

func TestHasConflictSameDayTurnoverIsFree(t *testing.T) {
	repo := memory.NewBookingRepository()
	checker := availability.NewChecker(repo)
	ctx := context.Background()
	seedBooking(t, repo, "b1", []string{"room-101"}, 1, 5)

	// new stay starting on the checkout day does not conflict
	conflict, err := checker.HasConflict(ctx, "room-101", interval(t, 5, 8), "")
	require.NoError(t, err)
	assert.False(t, conflict)

	// one shared night does
	conflict, err = checker.HasConflict(ctx, "room-101", interval(t, 4, 6), "")
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflictIgnoresOtherResources(t *testing.T) {
	repo := memory.NewBookingRepository()
	checker := availability.NewChecker(repo)
	seedBooking(t, repo, "b1", []string{"room-101"}, 1, 5)

	conflict, err := checker.HasConflict(context.Background(), "room-102", interval(t, 2, 4), "")
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflictRejectsInvalidIntervalBeforeLookup(t *testing.T) {
	repo := memory.NewBookingRepository()
	checker := availability.NewChecker(repo)

	_, err := checker.HasConflict(context.Background(), "room-101", daterange.DateRange{CheckIn: day(5), CheckOut: day(5)}, "")
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)

	_, _, err = checker.HasAnyConflict(context.Background(), []string{"room-101"}, daterange.DateRange{CheckIn: day(5), CheckOut: day(1)}, "")
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}

func TestHasConflictExcludesBookingUnderEdit(t *testing.T) {
	repo := memory.NewBookingRepository()
	checker := availability.NewChecker(repo)
	ctx := context.Background()
	b := seedBooking(t, repo, "b1", []string{"room-101"}, 1, 5)

	// extending the stay overlaps itself unless excluded
	conflict, err := checker.HasConflict(ctx, "room-101", interval(t, 1, 8), b.ID)
	require.NoError(t, err)
	assert.False(t, conflict)

	conflict, err = checker.HasConflict(ctx, "room-101", interval(t, 1, 8), "")
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflictNonBlockingStatuses(t *testing.T) {
	repo := memory.NewBookingRepository()
	checker := availability.NewChecker(repo)
	ctx := context.Background()

	cancelled := seedBooking(t, repo, "b1", []string{"room-101"}, 1, 5)
	require.NoError(t, cancelled.Cancel("plans changed", day(2)))
	require.NoError(t, repo.Save(ctx, cancelled))

	checkedOut := seedBooking(t, repo, "b2", []string{"room-102"}, 1, 5)
	require.NoError(t, checkedOut.CheckIn(day(1)))
	require.NoError(t, checkedOut.CheckOut(day(3)))
	require.NoError(t, repo.Save(ctx, checkedOut))

	conflict, err := checker.HasConflict(ctx, "room-101", interval(t, 2, 4), "")
	require.NoError(t, err)
	assert.False(t, conflict)

	conflict, err = checker.HasConflict(ctx, "room-102", interval(t, 2, 4), "")
	require.NoError(t, err)
	assert.False(t, conflict)
}

// A hall event holds several halls at once; one busy hall blocks the event
// everywhere.
func TestHasAnyConflictAcrossHalls(t *testing.T) {
	repo := memory.NewBookingRepository()
	checker := availability.NewChecker(repo)
	ctx := context.Background()
	seedBooking(t, repo, "wedding", []string{"hall-a", "hall-b"}, 10, 12)

	conflict, blocked, err := checker.HasAnyConflict(ctx, []string{"hall-c", "hall-b"}, interval(t, 11, 13), "")
	require.NoError(t, err)
	assert.True(t, conflict)
	assert.Equal(t, "hall-b", blocked)

	conflict, _, err = checker.HasAnyConflict(ctx, []string{"hall-c", "hall-d"}, interval(t, 11, 13), "")
	require.NoError(t, err)
	assert.False(t, conflict)

	// touching intervals stay free across the whole set
	conflict, _, err = checker.HasAnyConflict(ctx, []string{"hall-a", "hall-b"}, interval(t, 12, 14), "")
	require.NoError(t, err)
	assert.False(t, conflict)
}
