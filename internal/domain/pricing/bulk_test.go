package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldesk/internal/domain/policy"
	"hoteldesk/internal/domain/pricing"
	"hoteldesk/internal/domain/rooms"
)

func TestBulkPreviewStagesWithoutPersisting(t *testing.T) {
	fx := newEngineFixture(t)
	fx.seedCatalogue(t)
	ctx := context.Background()
	session := pricing.NewBulkSession(fx.engine, 2026, time.January)

	preview, err := session.Preview(ctx, rooms.NewStayType("Deluxe", "BB"), pricing.BulkAdjustment{
		Kind: policy.AdjustmentPercentage, Value: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, pricing.BulkPreviewing, session.State())
	require.Len(t, preview, 31)
	assert.InDelta(t, 181.5, preview[10], 1e-9) // (150+15) * 1.10

	// nothing was written to the override map
	stored, err := fx.overrides.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)

	// the live grid still shows the unadjusted rate
	rate, err := fx.engine.DayRate(ctx, mustRoom(t, fx, "room-201"), "BB", day(2026, 1, 10))
	require.NoError(t, err)
	assert.InDelta(t, 165, rate, 1e-9)
}

func TestBulkPreviewFlatAmount(t *testing.T) {
	fx := newEngineFixture(t)
	fx.seedCatalogue(t)
	session := pricing.NewBulkSession(fx.engine, 2026, time.January)

	preview, err := session.Preview(context.Background(), rooms.NewStayType("Deluxe", "BB"), pricing.BulkAdjustment{
		Kind: policy.AdjustmentAmount, Value: -20,
	})
	require.NoError(t, err)
	assert.InDelta(t, 145, preview[5], 1e-9)
}

func TestBulkSecondPreviewRejectedWhileStaged(t *testing.T) {
	fx := newEngineFixture(t)
	fx.seedCatalogue(t)
	ctx := context.Background()
	session := pricing.NewBulkSession(fx.engine, 2026, time.January)

	_, err := session.Preview(ctx, rooms.NewStayType("Deluxe", "BB"), pricing.BulkAdjustment{Kind: policy.AdjustmentAmount, Value: 5})
	require.NoError(t, err)

	_, err = session.Preview(ctx, rooms.NewStayType("Deluxe", "BB"), pricing.BulkAdjustment{Kind: policy.AdjustmentAmount, Value: 9})
	assert.ErrorIs(t, err, pricing.ErrAlreadyPreviewing)
}

func TestBulkPreviewRequiresStayType(t *testing.T) {
	fx := newEngineFixture(t)
	fx.seedCatalogue(t)
	session := pricing.NewBulkSession(fx.engine, 2026, time.January)

	_, err := session.Preview(context.Background(), rooms.StayType{}, pricing.BulkAdjustment{Kind: policy.AdjustmentAmount, Value: 5})
	assert.ErrorIs(t, err, pricing.ErrStayTypeRequired)
}

func TestBulkCommitProducesOverridesAndResets(t *testing.T) {
	fx := newEngineFixture(t)
	fx.seedCatalogue(t)
	ctx := context.Background()
	session := pricing.NewBulkSession(fx.engine, 2026, time.January)
	stayType := rooms.NewStayType("Deluxe", "BB")

	preview, err := session.Preview(ctx, stayType, pricing.BulkAdjustment{Kind: policy.AdjustmentPercentage, Value: 10})
	require.NoError(t, err)

	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	overrides, adj, err := session.Commit("manager", now)
	require.NoError(t, err)
	assert.Equal(t, pricing.BulkIdle, session.State())
	assert.Equal(t, policy.AdjustmentPercentage, adj.Kind)
	require.Len(t, overrides, len(preview))
	for _, ov := range overrides {
		assert.Equal(t, stayType, ov.Key.StayType)
		assert.InDelta(t, preview[ov.Key.Day], ov.Amount, 1e-9)
		assert.Equal(t, "manager", ov.Actor)
		assert.Equal(t, now, ov.UpdatedAt)
	}

	events := session.PendingEvents()
	require.Len(t, events, 1)
	committed, ok := events[0].(pricing.BulkRateCommitted)
	require.True(t, ok)
	assert.Equal(t, "rates.bulk_committed", committed.EventName())
	assert.Equal(t, "Deluxe – BB", committed.StayTypeLabel)
	assert.Equal(t, len(overrides), committed.Days)

	// committing again without a fresh preview fails
	_, _, err = session.Commit("manager", now)
	assert.ErrorIs(t, err, pricing.ErrNotPreviewing)
}

func TestBulkDiscardDropsPreview(t *testing.T) {
	fx := newEngineFixture(t)
	fx.seedCatalogue(t)
	ctx := context.Background()
	session := pricing.NewBulkSession(fx.engine, 2026, time.January)

	assert.ErrorIs(t, session.Discard(), pricing.ErrNotPreviewing)

	_, err := session.Preview(ctx, rooms.NewStayType("Deluxe", "BB"), pricing.BulkAdjustment{Kind: policy.AdjustmentAmount, Value: 5})
	require.NoError(t, err)
	require.NoError(t, session.Discard())
	assert.Equal(t, pricing.BulkIdle, session.State())

	_, _, staged := session.StagedPreview()
	assert.False(t, staged)
}

func mustRoom(t *testing.T, fx engineFixture, id rooms.RoomID) *rooms.Room {
	t.Helper()
	room, err := fx.rooms.ByID(context.Background(), id)
	require.NoError(t, err)
	return room
}
