package availability

import (
	"context"

	"hoteldesk/internal/domain/booking"
	"hoteldesk/internal/domain/shared/daterange"
)

// Checker decides whether a resource (room or event hall) is free for a
// requested half-open interval. It reads bookings and never mutates them.
type Checker struct {
	Bookings booking.Repository
}

func NewChecker(bookings booking.Repository) *Checker {
	return &Checker{Bookings: bookings}
}

// HasConflict reports whether any blocking booking on the resource overlaps
// the interval. An invalid interval is rejected before any lookup runs, not
// treated as "no conflict". Pass excludeID when re-checking a booking that
// is being edited or extended.
func (c *Checker) HasConflict(ctx context.Context, resourceID string, dr daterange.DateRange, excludeID booking.BookingID) (bool, error) {
	if err := dr.Validate(); err != nil {
		return false, err
	}
	existing, err := c.Bookings.ForResource(ctx, resourceID)
	if err != nil {
		return false, err
	}
	for _, b := range existing {
		if b.ID == excludeID || !b.Blocking() {
			continue
		}
		if b.Range.Overlaps(dr) {
			return true, nil
		}
	}
	return false, nil
}

// HasAnyConflict runs the check across a set of resources, as a hall event
// occupying several halls does. A conflict on any one resource blocks the
// whole request; the first blocked resource id is returned.
func (c *Checker) HasAnyConflict(ctx context.Context, resourceIDs []string, dr daterange.DateRange, excludeID booking.BookingID) (bool, string, error) {
	if err := dr.Validate(); err != nil {
		return false, "", err
	}
	for _, id := range resourceIDs {
		conflict, err := c.HasConflict(ctx, id, dr, excludeID)
		if err != nil {
			return false, "", err
		}
		if conflict {
			return true, id, nil
		}
	}
	return false, "", nil
}
