package booking

import (
	"time"

	"hoteldesk/internal/domain/shared/events"
)

type BookingConfirmed struct {
	events.BaseEvent
	Kind        string    `json:"kind"`
	ResourceIDs []string  `json:"resource_ids"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
}

type BookingCheckedOut struct {
	events.BaseEvent
}

type BookingCancelled struct {
	events.BaseEvent
	Reason string `json:"reason"`
}

type StayExtended struct {
	events.BaseEvent
	PreviousEnd time.Time `json:"previous_end"`
	NewEnd      time.Time `json:"new_end"`
}

// OverbookingPrevented is raised by the orchestration layer when a conflict
// check blocks a requested interval.
type OverbookingPrevented struct {
	events.BaseEvent
	ResourceID string    `json:"resource_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
}
