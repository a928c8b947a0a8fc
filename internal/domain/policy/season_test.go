package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func seasonDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeasonContainsIsInclusiveOnBothEnds(t *testing.T) {
	s := &Season{StartDate: seasonDay(2026, 6, 15), EndDate: seasonDay(2026, 9, 15)}

	assert.True(t, s.Contains(seasonDay(2026, 6, 15)))
	assert.True(t, s.Contains(seasonDay(2026, 9, 15)))
	assert.True(t, s.Contains(seasonDay(2026, 7, 20)))
	assert.False(t, s.Contains(seasonDay(2026, 6, 14)))
	assert.False(t, s.Contains(seasonDay(2026, 9, 16)))
}

func TestAdjustmentForStacksAllMatchingBuckets(t *testing.T) {
	s := &Season{
		AdjustmentValue:     10,
		RoomTypeAdjustments: map[string]float64{"Suite": 5},
		MealPlanAdjustments: map[string]float64{"BB": 2},
		StayTypeAdjustments: map[string]float64{"Suite – BB": 1},
	}

	// every matching bucket adds on top of the global value
	assert.InDelta(t, 18, s.AdjustmentFor("Suite", "BB", "Suite – BB"), 1e-9)
	// only the global value for an unlisted room type
	assert.InDelta(t, 10, s.AdjustmentFor("Standard", "RO", "Standard – RO"), 1e-9)
	// partial matches stack partially
	assert.InDelta(t, 15, s.AdjustmentFor("Suite", "RO", "Suite – RO"), 1e-9)
}

func TestSeasonalAdjustmentFirstActiveMatchWins(t *testing.T) {
	date := seasonDay(2026, 7, 1)
	first := &Season{
		Name: "Early Summer", Active: true,
		StartDate: seasonDay(2026, 6, 1), EndDate: seasonDay(2026, 7, 15),
		AdjustmentValue: 5,
	}
	second := &Season{
		Name: "High Summer", Active: true,
		StartDate: seasonDay(2026, 6, 15), EndDate: seasonDay(2026, 9, 15),
		AdjustmentValue: 12,
	}

	got := SeasonalAdjustment([]*Season{first, second}, date, "Standard", "RO", "Standard – RO")
	assert.InDelta(t, 5, got, 1e-9)

	// reversing the list order flips the winner
	got = SeasonalAdjustment([]*Season{second, first}, date, "Standard", "RO", "Standard – RO")
	assert.InDelta(t, 12, got, 1e-9)
}

func TestSeasonalAdjustmentSkipsInactiveAndMissing(t *testing.T) {
	date := seasonDay(2026, 7, 1)
	inactive := &Season{
		Active:    false,
		StartDate: seasonDay(2026, 6, 1), EndDate: seasonDay(2026, 9, 1),
		AdjustmentValue: 50,
	}
	outside := &Season{
		Active:    true,
		StartDate: seasonDay(2026, 12, 1), EndDate: seasonDay(2026, 12, 31),
		AdjustmentValue: 20,
	}

	assert.Zero(t, SeasonalAdjustment([]*Season{inactive, outside}, date, "Standard", "RO", ""))
	assert.Zero(t, SeasonalAdjustment(nil, date, "Standard", "RO", ""))
}
