package policy

import (
	"context"
	"errors"
)

var (
	ErrMealPlanNotFound  = errors.New("policy: meal plan not found")
	ErrDuplicatePlanCode = errors.New("policy: meal plan code already in use")
)

// MarkupKind discriminates how a meal plan uplifts the room rate.
type MarkupKind string

const (
	MarkupFlat       MarkupKind = "FLAT"
	MarkupPercentage MarkupKind = "PERCENTAGE"
)

// DefaultPlanCode is reported on breakdowns when a reservation references a
// plan code that no longer resolves; the stay still prices with zero uplift.
const DefaultPlanCode = "RO"

// MealPlan is a named board arrangement (room only, bed & breakfast, ...)
// with exactly one markup rule. Codes are stable, globally unique identifiers
// shared by reservations, rooms and invoices.
type MealPlan struct {
	Code             string
	Name             string
	MarkupKind       MarkupKind
	MarkupValue      float64
	Active           bool
	DefaultRoomTypes []string
}

type MealPlanRepository interface {
	ByCode(ctx context.Context, code string) (*MealPlan, error)
	List(ctx context.Context) ([]*MealPlan, error)
	Save(ctx context.Context, plan *MealPlan) error
	Delete(ctx context.Context, code string) error
}

// Markup computes the per-stay uplift for a plan. Percentage markups apply to
// the stay subtotal; flat markups are per-night and scale with the night
// count regardless of rate. The caller therefore passes both the subtotal and
// the nights.
func (p *MealPlan) Markup(staySubtotal float64, nights int) float64 {
	if p == nil {
		return 0
	}
	switch p.MarkupKind {
	case MarkupPercentage:
		return staySubtotal * p.MarkupValue / 100
	case MarkupFlat:
		return p.MarkupValue * float64(nights)
	default:
		return 0
	}
}
