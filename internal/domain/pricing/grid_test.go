package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldesk/internal/domain/policy"
	"hoteldesk/internal/domain/rooms"
)

func TestMonthGridRowsAreTypeTimesActivePlans(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.rooms.Save(ctx, &rooms.Room{ID: "s1", Type: "Standard", Price: 120}))
	require.NoError(t, fx.rooms.Save(ctx, &rooms.Room{ID: "s2", Type: "Standard", Price: 110}))
	require.NoError(t, fx.rooms.Save(ctx, &rooms.Room{ID: "d1", Type: "Deluxe", Price: 150}))
	require.NoError(t, fx.plans.Save(ctx, &policy.MealPlan{Code: "RO", Name: "Room Only", MarkupKind: policy.MarkupFlat, Active: true}))
	require.NoError(t, fx.plans.Save(ctx, &policy.MealPlan{Code: "BB", Name: "Breakfast", MarkupKind: policy.MarkupFlat, MarkupValue: 15, Active: true}))
	require.NoError(t, fx.plans.Save(ctx, &policy.MealPlan{Code: "AI", Name: "All Inclusive", MarkupKind: policy.MarkupPercentage, MarkupValue: 40, Active: false}))

	grid, err := fx.engine.MonthGrid(ctx, 2026, time.June)
	require.NoError(t, err)

	// 2 room types x 2 active plans, inactive AI plan contributes no row
	require.Len(t, grid, 4)
	labels := make([]string, 0, len(grid))
	for _, row := range grid {
		labels = append(labels, row.Label)
		assert.Len(t, row.Rates, 30)
	}
	assert.Equal(t, []string{"Deluxe – BB", "Deluxe – RO", "Standard – BB", "Standard – RO"}, labels)
}

// The cheapest room of a type anchors its rows.
func TestMonthGridUsesCheapestRoomPerType(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.rooms.Save(ctx, &rooms.Room{ID: "s1", Type: "Standard", Price: 120}))
	require.NoError(t, fx.rooms.Save(ctx, &rooms.Room{ID: "s2", Type: "Standard", Price: 110}))
	require.NoError(t, fx.plans.Save(ctx, &policy.MealPlan{Code: "RO", Name: "Room Only", MarkupKind: policy.MarkupFlat, Active: true}))

	grid, err := fx.engine.MonthGrid(ctx, 2026, time.January)
	require.NoError(t, err)
	require.Len(t, grid, 1)
	assert.InDelta(t, 110, grid[0].Rates[0], 1e-9)
}

func TestRowForStayTypeUnknownRoomType(t *testing.T) {
	fx := newEngineFixture(t)
	fx.seedCatalogue(t)

	_, err := fx.engine.RowForStayType(context.Background(), rooms.NewStayType("Penthouse", "BB"), 2026, time.June)
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
}

func TestMonthGridFebruaryLengths(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.rooms.Save(ctx, &rooms.Room{ID: "s1", Type: "Standard", Price: 100}))
	require.NoError(t, fx.plans.Save(ctx, &policy.MealPlan{Code: "RO", Name: "Room Only", MarkupKind: policy.MarkupFlat, Active: true}))

	grid, err := fx.engine.MonthGrid(ctx, 2028, time.February) // leap year
	require.NoError(t, err)
	require.Len(t, grid, 1)
	assert.Len(t, grid[0].Rates, 29)

	grid, err = fx.engine.MonthGrid(ctx, 2026, time.February)
	require.NoError(t, err)
	assert.Len(t, grid[0].Rates, 28)
}
