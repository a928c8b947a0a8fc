package booking

import (
	"context"
	"errors"
	"time"

	"hoteldesk/internal/domain/shared/daterange"
	"hoteldesk/internal/domain/shared/events"
)

var (
	ErrBookingNotFound = errors.New("booking: not found")
	ErrInvalidState    = errors.New("booking: invalid state transition")
	ErrNoResources     = errors.New("booking: at least one resource id required")
)

type BookingID string

type Kind string

const (
	KindReservation Kind = "RESERVATION"
	KindHallEvent   Kind = "HALL_EVENT"
)

type Status string

const (
	StatusConfirmed  Status = "CONFIRMED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Booking is a room reservation or a hall event. A reservation occupies one
// room; an event can occupy several halls at once.
type Booking struct {
	ID          BookingID
	Kind        Kind
	ResourceIDs []string
	GuestName   string
	Range       daterange.DateRange
	Status      Status
	TotalAmount float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	// ForResource returns every booking that occupies the resource,
	// regardless of status; the conflict resolver filters blocking ones.
	ForResource(ctx context.Context, resourceID string) ([]*Booking, error)
	List(ctx context.Context) ([]*Booking, error)
	Save(ctx context.Context, b *Booking) error
}

type CreateParams struct {
	ID          BookingID
	Kind        Kind
	ResourceIDs []string
	GuestName   string
	Range       daterange.DateRange
	TotalAmount float64
	CreatedAt   time.Time
}

func New(params CreateParams) (*Booking, error) {
	if len(params.ResourceIDs) == 0 {
		return nil, ErrNoResources
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:          params.ID,
		Kind:        params.Kind,
		ResourceIDs: append([]string(nil), params.ResourceIDs...),
		GuestName:   params.GuestName,
		Range:       params.Range,
		Status:      StatusConfirmed,
		TotalAmount: params.TotalAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.Record(BookingConfirmed{
		BaseEvent:   events.BaseEvent{Name: "booking.confirmed", Aggregate: string(b.ID), Time: now},
		Kind:        string(b.Kind),
		ResourceIDs: b.ResourceIDs,
		CheckIn:     b.Range.CheckIn,
		CheckOut:    b.Range.CheckOut,
	})
	return b, nil
}

// Blocking reports whether the booking occupies its resources for conflict
// purposes. Cancelled bookings never block; checked-out and completed ones
// keep their history but no longer block future intervals.
func (b *Booking) Blocking() bool {
	switch b.Status {
	case StatusCancelled, StatusCheckedOut, StatusCompleted:
		return false
	default:
		return true
	}
}

func (b *Booking) Occupies(resourceID string) bool {
	for _, id := range b.ResourceIDs {
		if id == resourceID {
			return true
		}
	}
	return false
}

func (b *Booking) CheckIn(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidState
	}
	b.Status = StatusCheckedIn
	b.UpdatedAt = now.UTC()
	return nil
}

func (b *Booking) CheckOut(now time.Time) error {
	if b.Status != StatusCheckedIn {
		return ErrInvalidState
	}
	b.Status = StatusCheckedOut
	b.UpdatedAt = now.UTC()
	b.Record(BookingCheckedOut{
		BaseEvent: events.BaseEvent{Name: "booking.checked_out", Aggregate: string(b.ID), Time: b.UpdatedAt},
	})
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	switch b.Status {
	case StatusConfirmed, StatusCheckedIn:
	default:
		return ErrInvalidState
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{
		BaseEvent: events.BaseEvent{Name: "booking.cancelled", Aggregate: string(b.ID), Time: b.UpdatedAt},
		Reason:    reason,
	})
	return nil
}

// Extend moves the checkout date. The caller re-runs the conflict check with
// this booking excluded before calling.
func (b *Booking) Extend(newCheckOut time.Time, now time.Time) error {
	switch b.Status {
	case StatusConfirmed, StatusCheckedIn:
	default:
		return ErrInvalidState
	}
	extended, err := b.Range.Extend(newCheckOut)
	if err != nil {
		return err
	}
	previous := b.Range.CheckOut
	b.Range = extended
	b.UpdatedAt = now.UTC()
	b.Record(StayExtended{
		BaseEvent:   events.BaseEvent{Name: "booking.extended", Aggregate: string(b.ID), Time: b.UpdatedAt},
		PreviousEnd: previous,
		NewEnd:      extended.CheckOut,
	})
	return nil
}
