package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChannelAdjustmentCombinesMainAndOwnedSub(t *testing.T) {
	main := &MainChannel{ID: "ota", AdjustmentPercentage: 10}
	sub := &SubChannel{ID: "ota-mobile", MainChannelID: "ota", AdditionalAdjustmentPct: 5}

	assert.InDelta(t, 15, ChannelAdjustment(main, sub), 1e-9)
	assert.InDelta(t, 10, ChannelAdjustment(main, nil), 1e-9)
}

func TestChannelAdjustmentIgnoresForeignSub(t *testing.T) {
	main := &MainChannel{ID: "ota", AdjustmentPercentage: 10}
	foreign := &SubChannel{ID: "walkin-desk", MainChannelID: "walkin", AdditionalAdjustmentPct: 50}

	assert.InDelta(t, 10, ChannelAdjustment(main, foreign), 1e-9)
}

func TestChannelAdjustmentNoMainIsZero(t *testing.T) {
	sub := &SubChannel{ID: "s", MainChannelID: "m", AdditionalAdjustmentPct: 5}
	assert.Zero(t, ChannelAdjustment(nil, sub))
}

func TestPricingRuleCollides(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }
	base := &ChannelPricingRule{
		RoomType: "Deluxe", MainChannelID: "ota", Active: true,
		ValidFrom: day(1), ValidTo: day(10),
	}

	overlapping := &ChannelPricingRule{
		RoomType: "Deluxe", MainChannelID: "ota", Active: true,
		ValidFrom: day(10), ValidTo: day(20),
	}
	// windows are inclusive of ValidTo, so sharing a boundary day collides
	assert.True(t, base.Collides(overlapping))

	disjoint := &ChannelPricingRule{
		RoomType: "Deluxe", MainChannelID: "ota", Active: true,
		ValidFrom: day(11), ValidTo: day(20),
	}
	assert.False(t, base.Collides(disjoint))

	otherRoom := &ChannelPricingRule{
		RoomType: "Suite", MainChannelID: "ota", Active: true,
		ValidFrom: day(5), ValidTo: day(15),
	}
	assert.False(t, base.Collides(otherRoom))

	otherChannel := &ChannelPricingRule{
		RoomType: "Deluxe", MainChannelID: "direct", Active: true,
		ValidFrom: day(5), ValidTo: day(15),
	}
	assert.False(t, base.Collides(otherChannel))
}
