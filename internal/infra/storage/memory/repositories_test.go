package memory

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

func ruleDay(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestSeasonListKeepsCreationOrder(t *testing.T) {
	repo := NewSeasonRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &policy.Season{ID: "b", Name: "second"}))
	require.NoError(t, repo.Save(ctx, &policy.Season{ID: "a", Name: "first"}))
	require.NoError(t, repo.Save(ctx, &policy.Season{ID: "c", Name: "third"}))

	// updating in place must not move a season to the back
	require.NoError(t, repo.Save(ctx, &policy.Season{ID: "b", Name: "second edited"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestSaveRuleDeactivatesCollidingActiveRules(t *testing.T) {
	repo := NewChannelRepository()
	ctx := context.Background()
	require.NoError(t, repo.SaveMain(ctx, &policy.MainChannel{ID: "ota", Name: "OTA", Active: true}))

	first := &policy.ChannelPricingRule{
		ID: "r1", RoomType: "Deluxe", MainChannelID: "ota", NightlyRate: 99,
		ValidFrom: ruleDay(1), ValidTo: ruleDay(15), Active: true,
	}
	require.NoError(t, repo.SaveRule(ctx, first))

	second := &policy.ChannelPricingRule{
		ID: "r2", RoomType: "Deluxe", MainChannelID: "ota", NightlyRate: 89,
		ValidFrom: ruleDay(10), ValidTo: ruleDay(25), Active: true,
	}
	require.NoError(t, repo.SaveRule(ctx, second))

	rules, err := repo.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.False(t, rules[0].Active, "colliding earlier rule must be deactivated")
	assert.True(t, rules[1].Active)

	// a rule for a different room type does not disturb anything
	third := &policy.ChannelPricingRule{
		ID: "r3", RoomType: "Suite", MainChannelID: "ota", NightlyRate: 120,
		ValidFrom: ruleDay(10), ValidTo: ruleDay(25), Active: true,
	}
	require.NoError(t, repo.SaveRule(ctx, third))
	rules, err = repo.ListRules(ctx)
	require.NoError(t, err)
	assert.True(t, rules[1].Active)
	assert.True(t, rules[2].Active)
}

func TestDeleteMainCascadesToSubChannels(t *testing.T) {
	repo := NewChannelRepository()
	ctx := context.Background()
	require.NoError(t, repo.SaveMain(ctx, &policy.MainChannel{ID: "ota", Name: "OTA"}))
	require.NoError(t, repo.SaveMain(ctx, &policy.MainChannel{ID: "direct", Name: "Direct"}))
	require.NoError(t, repo.SaveSub(ctx, &policy.SubChannel{ID: "ota-web", MainChannelID: "ota"}))
	require.NoError(t, repo.SaveSub(ctx, &policy.SubChannel{ID: "ota-mobile", MainChannelID: "ota"}))
	require.NoError(t, repo.SaveSub(ctx, &policy.SubChannel{ID: "walk-in", MainChannelID: "direct"}))

	require.NoError(t, repo.DeleteMain(ctx, "ota"))

	_, err := repo.MainByID(ctx, "ota")
	assert.ErrorIs(t, err, policy.ErrChannelNotFound)
	_, err = repo.SubByID(ctx, "ota-web")
	assert.ErrorIs(t, err, policy.ErrSubChannelNotFound)
	_, err = repo.SubByID(ctx, "ota-mobile")
	assert.ErrorIs(t, err, policy.ErrSubChannelNotFound)

	// the other channel's sub-channel survives
	sub, err := repo.SubByID(ctx, "walk-in")
	require.NoError(t, err)
	assert.Equal(t, "direct", sub.MainChannelID)
}

func TestSaveSubRequiresExistingMain(t *testing.T) {
	repo := NewChannelRepository()
	err := repo.SaveSub(context.Background(), &policy.SubChannel{ID: "orphan", MainChannelID: "ghost"})
	assert.ErrorIs(t, err, policy.ErrChannelNotFound)
}

func TestOverrideRepositoryMissIsNil(t *testing.T) {
	repo := NewOverrideRepository()
	ctx := context.Background()

	got, err := repo.Get(ctx, pricing.OverrideKey{StayType: rooms.NewStayType("Deluxe", "BB"), Day: 5})
	require.NoError(t, err)
	assert.Nil(t, got)

	ov := &pricing.RateOverride{
		Key:    pricing.OverrideKey{StayType: rooms.NewStayType("Deluxe", "BB"), Day: 5},
		Amount: 180,
	}
	require.NoError(t, repo.Put(ctx, ov))
	got, err = repo.Get(ctx, ov.Key)
	require.NoError(t, err)
	assert.Equal(t, ov, got)
}

func TestRoomRepositoryByType(t *testing.T) {
	repo := NewRoomRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &rooms.Room{ID: "r1", Type: "Standard", Price: 110}))
	require.NoError(t, repo.Save(ctx, &rooms.Room{ID: "r2", Type: "Deluxe", Price: 150}))
	require.NoError(t, repo.Save(ctx, &rooms.Room{ID: "r3", Type: "Standard", Price: 120}))

	standards, err := repo.ByType(ctx, "Standard")
	require.NoError(t, err)
	assert.Len(t, standards, 2)

	_, err = repo.ByID(ctx, "missing")
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
}
