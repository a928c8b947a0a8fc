package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkupFlatScalesWithNightsOnly(t *testing.T) {
	plan := &MealPlan{Code: "BB", MarkupKind: MarkupFlat, MarkupValue: 15}

	// 2 nights at any rate cost the same flat markup
	assert.InDelta(t, 30, plan.Markup(300, 2), 1e-9)
	assert.InDelta(t, 30, plan.Markup(400, 2), 1e-9)
	assert.InDelta(t, 75, plan.Markup(300, 5), 1e-9)
}

func TestMarkupPercentageScalesWithSubtotal(t *testing.T) {
	plan := &MealPlan{Code: "HB", MarkupKind: MarkupPercentage, MarkupValue: 15}

	assert.InDelta(t, 45, plan.Markup(300, 2), 1e-9)
	assert.InDelta(t, 60, plan.Markup(400, 2), 1e-9)
}

// The two kinds diverge once the nightly rate moves away from 100: a 15%
// markup on a 200/night stay doubles the flat 15-per-night markup.
func TestMarkupKindsDivergeOnExpensiveRooms(t *testing.T) {
	flat := &MealPlan{MarkupKind: MarkupFlat, MarkupValue: 15}
	pct := &MealPlan{MarkupKind: MarkupPercentage, MarkupValue: 15}

	subtotal := 200.0 * 2 // 2 nights at 200

	assert.InDelta(t, 30, flat.Markup(subtotal, 2), 1e-9)
	assert.InDelta(t, 60, pct.Markup(subtotal, 2), 1e-9)
}

func TestMarkupNilPlanIsZero(t *testing.T) {
	var plan *MealPlan
	assert.Zero(t, plan.Markup(300, 2))
}
