package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"hoteldesk/internal/domain/policy"
	"hoteldesk/internal/domain/rooms"
)

type hotelFixtures struct {
	Rooms     []roomFixture     `json:"rooms"`
	MealPlans []mealPlanFixture `json:"meal_plans"`
	Seasons   []seasonFixture   `json:"seasons"`
	Channels  []channelFixture  `json:"channels"`
}

type roomFixture struct {
	ID           string  `json:"id"`
	Number       string  `json:"number"`
	Type         string  `json:"type"`
	Capacity     int     `json:"capacity"`
	Price        float64 `json:"price"`
	MealPlanCode string  `json:"meal_plan_code"`
	ViewType     string  `json:"view_type"`
}

type mealPlanFixture struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	MarkupKind  string  `json:"markup_kind"`
	MarkupValue float64 `json:"markup_value"`
	Active      bool    `json:"active"`
}

type seasonFixture struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	StartDate           string             `json:"start_date"`
	EndDate             string             `json:"end_date"`
	AdjustmentValue     float64            `json:"adjustment_value"`
	Active              bool               `json:"active"`
	RoomTypeAdjustments map[string]float64 `json:"room_type_adjustments"`
	MealPlanAdjustments map[string]float64 `json:"meal_plan_adjustments"`
	StayTypeAdjustments map[string]float64 `json:"stay_type_adjustments"`
}

type channelFixture struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name"`
	AdjustmentPercentage float64             `json:"adjustment_percentage"`
	Active               bool                `json:"active"`
	SubChannels          []subChannelFixture `json:"sub_channels"`
}

type subChannelFixture struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	AdditionalAdjustmentPct float64 `json:"additional_adjustment_pct"`
	Active                  bool    `json:"active"`
}

// loadFixtures seeds the in-memory catalogue from a JSON file. A missing
// file is not an error; the API then starts empty.
func (a *application) loadFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("fixtures file not found, starting empty", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	var fx hotelFixtures
	if err := json.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now().UTC()
	for _, r := range fx.Rooms {
		room := &rooms.Room{
			ID:           rooms.RoomID(r.ID),
			Number:       r.Number,
			Type:         r.Type,
			Capacity:     r.Capacity,
			Price:        r.Price,
			MealPlanCode: r.MealPlanCode,
			ViewType:     r.ViewType,
		}
		if err := a.rooms.Save(ctx, room); err != nil {
			logger.Error("cannot store fixture room", "room_id", r.ID, "error", err)
		}
	}
	for _, p := range fx.MealPlans {
		plan := &policy.MealPlan{
			Code:        p.Code,
			Name:        p.Name,
			MarkupKind:  policy.MarkupKind(p.MarkupKind),
			MarkupValue: p.MarkupValue,
			Active:      p.Active,
		}
		if err := a.mealPlans.Save(ctx, plan); err != nil {
			logger.Error("cannot store fixture meal plan", "code", p.Code, "error", err)
		}
	}
	for _, sf := range fx.Seasons {
		start, ok := parseFixtureDate(sf.StartDate)
		if !ok {
			logger.Error("fixture season has invalid start_date", "season_id", sf.ID)
			continue
		}
		end, ok := parseFixtureDate(sf.EndDate)
		if !ok {
			logger.Error("fixture season has invalid end_date", "season_id", sf.ID)
			continue
		}
		season := &policy.Season{
			ID:                  sf.ID,
			Name:                sf.Name,
			StartDate:           start,
			EndDate:             end,
			AdjustmentValue:     sf.AdjustmentValue,
			Active:              sf.Active,
			RoomTypeAdjustments: sf.RoomTypeAdjustments,
			MealPlanAdjustments: sf.MealPlanAdjustments,
			StayTypeAdjustments: sf.StayTypeAdjustments,
			CreatedAt:           now,
		}
		if err := a.seasons.Save(ctx, season); err != nil {
			logger.Error("cannot store fixture season", "season_id", sf.ID, "error", err)
		}
	}
	for _, cf := range fx.Channels {
		main := &policy.MainChannel{
			ID:                   cf.ID,
			Name:                 cf.Name,
			AdjustmentPercentage: cf.AdjustmentPercentage,
			Active:               cf.Active,
		}
		if err := a.channels.SaveMain(ctx, main); err != nil {
			logger.Error("cannot store fixture channel", "channel_id", cf.ID, "error", err)
			continue
		}
		for _, sf := range cf.SubChannels {
			sub := &policy.SubChannel{
				ID:                      sf.ID,
				MainChannelID:           cf.ID,
				Name:                    sf.Name,
				AdditionalAdjustmentPct: sf.AdditionalAdjustmentPct,
				Active:                  sf.Active,
			}
			if err := a.channels.SaveSub(ctx, sub); err != nil {
				logger.Error("cannot store fixture sub-channel", "subchannel_id", sf.ID, "error", err)
			}
		}
	}

	logger.Info("fixtures imported",
		"rooms", len(fx.Rooms),
		"meal_plans", len(fx.MealPlans),
		"seasons", len(fx.Seasons),
		"channels", len(fx.Channels),
	)
	return nil
}

func parseFixtureDate(raw string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

func defaultFixturesPath() string {
	candidates := []string{
		filepath.Join("data", "hotel.json"),
		filepath.Join("backend", "data", "hotel.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}
