package bookings

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	appoutbox "hoteldesk/internal/app/outbox"
	"hoteldesk/internal/domain/availability"
	"hoteldesk/internal/domain/booking"
	"hoteldesk/internal/domain/pricing"
	"hoteldesk/internal/domain/rooms"
	"hoteldesk/internal/domain/shared/daterange"
	"hoteldesk/internal/domain/shared/events"
)

var (
	ErrResourceConflict  = errors.New("bookings: resource is not available for the requested interval")
	ErrGuestRequired     = errors.New("bookings: guest name is required")
	ErrHallsRequired     = errors.New("bookings: at least one hall is required")
	ErrEventNameRequired = errors.New("bookings: event name is required")
)

// Service coordinates reservations and hall events. Every write goes through
// the conflict checker first; a blocked request never reaches the repository.
type Service struct {
	Bookings booking.Repository
	Rooms    rooms.Repository
	Checker  *availability.Checker
	Engine   *pricing.Engine
	Outbox   appoutbox.Outbox
	Logger   *slog.Logger
	Now      func() time.Time
}

type ReservationRequest struct {
	RoomID        string
	GuestName     string
	CheckIn       time.Time
	CheckOut      time.Time
	MealPlanCode  string
	MainChannelID string
	SubChannelID  string
}

type HallEventRequest struct {
	HallIDs   []string
	EventName string
	Start     time.Time
	End       time.Time
}

// CreateReservation books one room for the interval after the conflict check
// passes, pricing the stay with the current policy state.
func (s *Service) CreateReservation(ctx context.Context, req ReservationRequest) (*booking.Booking, error) {
	if req.GuestName == "" {
		return nil, ErrGuestRequired
	}
	room, err := s.Rooms.ByID(ctx, rooms.RoomID(req.RoomID))
	if err != nil {
		return nil, err
	}
	dr, err := daterange.New(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	conflict, err := s.Checker.HasConflict(ctx, req.RoomID, dr, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, s.rejectConflict(ctx, req.RoomID, dr)
	}
	total := 0.0
	if s.Engine != nil {
		breakdown, err := s.Engine.ComputeRate(ctx, pricing.QuoteInput{
			Room:          room,
			Range:         dr,
			MealPlanCode:  req.MealPlanCode,
			MainChannelID: req.MainChannelID,
			SubChannelID:  req.SubChannelID,
		})
		if err != nil {
			return nil, err
		}
		total = breakdown.Rounded().TotalAmount
	}
	b, err := booking.New(booking.CreateParams{
		ID:          booking.BookingID(uuid.NewString()),
		Kind:        booking.KindReservation,
		ResourceIDs: []string{req.RoomID},
		GuestName:   req.GuestName,
		Range:       dr,
		TotalAmount: total,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, b); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("reservation created", "booking_id", b.ID, "room_id", req.RoomID, "nights", dr.Nights())
	}
	return b, nil
}

// ScheduleHallEvent books one or more halls at once. A single conflicting
// hall rejects the whole request; partial holds are never created.
func (s *Service) ScheduleHallEvent(ctx context.Context, req HallEventRequest) (*booking.Booking, error) {
	if len(req.HallIDs) == 0 {
		return nil, ErrHallsRequired
	}
	if req.EventName == "" {
		return nil, ErrEventNameRequired
	}
	dr, err := daterange.New(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	conflict, blockedID, err := s.Checker.HasAnyConflict(ctx, req.HallIDs, dr, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, s.rejectConflict(ctx, blockedID, dr)
	}
	b, err := booking.New(booking.CreateParams{
		ID:          booking.BookingID(uuid.NewString()),
		Kind:        booking.KindHallEvent,
		ResourceIDs: req.HallIDs,
		GuestName:   req.EventName,
		Range:       dr,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, b); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("hall event scheduled", "booking_id", b.ID, "halls", len(req.HallIDs))
	}
	return b, nil
}

// ExtendStay pushes the checkout date later. The conflict check covers the
// whole new interval but excludes the booking itself, so the nights it
// already holds never count against it.
func (s *Service) ExtendStay(ctx context.Context, id booking.BookingID, newCheckOut time.Time) (*booking.Booking, error) {
	b, err := s.Bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	extended, err := b.Range.Extend(newCheckOut)
	if err != nil {
		return nil, err
	}
	conflict, blockedID, err := s.Checker.HasAnyConflict(ctx, b.ResourceIDs, extended, b.ID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, s.rejectConflict(ctx, blockedID, extended)
	}
	if err := b.Extend(newCheckOut, s.now()); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) CheckIn(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	return s.transition(ctx, id, func(b *booking.Booking) error {
		return b.CheckIn(s.now())
	})
}

func (s *Service) CheckOut(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	return s.transition(ctx, id, func(b *booking.Booking) error {
		return b.CheckOut(s.now())
	})
}

func (s *Service) Cancel(ctx context.Context, id booking.BookingID, reason string) (*booking.Booking, error) {
	return s.transition(ctx, id, func(b *booking.Booking) error {
		return b.Cancel(reason, s.now())
	})
}

// CheckAvailability answers the read-only availability question for one
// resource, optionally ignoring a booking under edit.
func (s *Service) CheckAvailability(ctx context.Context, resourceID string, start, end time.Time, excludeID booking.BookingID) (bool, error) {
	dr, err := daterange.New(start, end)
	if err != nil {
		return false, err
	}
	conflict, err := s.Checker.HasConflict(ctx, resourceID, dr, excludeID)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

func (s *Service) List(ctx context.Context) ([]*booking.Booking, error) {
	return s.Bookings.List(ctx)
}

func (s *Service) transition(ctx context.Context, id booking.BookingID, apply func(*booking.Booking) error) (*booking.Booking, error) {
	b, err := s.Bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(b); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) persist(ctx context.Context, b *booking.Booking) error {
	if err := s.Bookings.Save(ctx, b); err != nil {
		return err
	}
	if err := appoutbox.RecordDomainEvents(ctx, s.Outbox, nil, b.PendingEvents()); err != nil {
		return err
	}
	b.ClearEvents()
	return nil
}

// rejectConflict records the prevented double-booking for the audit trail
// downstream and returns the sentinel the transport maps to 409.
func (s *Service) rejectConflict(ctx context.Context, resourceID string, dr daterange.DateRange) error {
	ev := booking.OverbookingPrevented{
		BaseEvent: events.BaseEvent{
			Name:      "booking.overbooking_prevented",
			Aggregate: resourceID,
			Time:      s.now().UTC(),
		},
		ResourceID: resourceID,
		CheckIn:    dr.CheckIn,
		CheckOut:   dr.CheckOut,
	}
	if err := appoutbox.RecordDomainEvents(ctx, s.Outbox, nil, []events.DomainEvent{ev}); err != nil && s.Logger != nil {
		s.Logger.Warn("overbooking event not recorded", "error", err)
	}
	if s.Logger != nil {
		s.Logger.Warn("overbooking prevented", "resource_id", resourceID)
	}
	return ErrResourceConflict
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
