package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrRoomNotFound = errors.New("rooms: room not found")

type RoomID string

// Room is a bookable physical room. Price is the base nightly rate that
// anchors every downstream adjustment.
type Room struct {
	ID           RoomID
	Number       string
	Type         string
	Capacity     int
	Price        float64
	MealPlanCode string
	ViewType     string
}

type Repository interface {
	ByID(ctx context.Context, id RoomID) (*Room, error)
	ByType(ctx context.Context, roomType string) ([]*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Save(ctx context.Context, room *Room) error
}

// StayType is the composite key "{roomType} – {mealPlanCode}" used to address
// seasonal overrides and bulk rate edits at finer granularity than room type.
type StayType struct {
	RoomType     string
	MealPlanCode string
}

func NewStayType(roomType, mealPlanCode string) StayType {
	return StayType{RoomType: roomType, MealPlanCode: mealPlanCode}
}

// Label renders the display form used across grids and override views.
func (s StayType) Label() string {
	return fmt.Sprintf("%s – %s", s.RoomType, s.MealPlanCode)
}

func (s StayType) IsZero() bool {
	return s.RoomType == "" && s.MealPlanCode == ""
}

func (s StayType) String() string { return s.Label() }

// ParseStayType inverts Label. It reports false for labels that do not split
// cleanly, which guards against keys built through ad-hoc formatting.
func ParseStayType(label string) (StayType, bool) {
	parts := strings.SplitN(label, " – ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return StayType{}, false
	}
	return StayType{RoomType: parts[0], MealPlanCode: parts[1]}, true
}
