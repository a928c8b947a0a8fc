package policy

import (
	"context"
	"errors"
	"time"
)

var ErrSeasonNotFound = errors.New("policy: season not found")

// AdjustmentKind discriminates absolute versus percentage adjustments. It is
// shared by seasons, manual overrides and bulk updates.
type AdjustmentKind string

const (
	AdjustmentAmount     AdjustmentKind = "AMOUNT"
	AdjustmentPercentage AdjustmentKind = "PERCENTAGE"
)

// Season is a date-ranged pricing adjustment. Dates are inclusive on both
// ends. The global percentage applies to every stay inside the range; the
// three override maps stack additively on top of it for matching room types,
// meal plans and stay-type labels.
type Season struct {
	ID                  string
	Name                string
	StartDate           time.Time
	EndDate             time.Time
	AdjustmentValue     float64
	Active              bool
	RoomTypeAdjustments map[string]float64
	MealPlanAdjustments map[string]float64
	StayTypeAdjustments map[string]float64
	CreatedAt           time.Time
}

type SeasonRepository interface {
	ByID(ctx context.Context, id string) (*Season, error)
	// List returns seasons in creation order. Resolution is first match wins,
	// so a deterministic order here is what keeps overlapping configurations
	// repeatable.
	List(ctx context.Context) ([]*Season, error)
	Save(ctx context.Context, season *Season) error
	Delete(ctx context.Context, id string) error
}

// Contains reports whether the date falls inside the inclusive season range.
func (s *Season) Contains(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(s.StartDate)) && !d.After(dateOnly(s.EndDate))
}

// AdjustmentFor sums the season's global percentage with every matching
// override bucket. All applicable buckets stack; none replaces another.
func (s *Season) AdjustmentFor(roomType, mealPlanCode, stayTypeLabel string) float64 {
	pct := s.AdjustmentValue
	if roomType != "" {
		if v, ok := s.RoomTypeAdjustments[roomType]; ok {
			pct += v
		}
	}
	if mealPlanCode != "" {
		if v, ok := s.MealPlanAdjustments[mealPlanCode]; ok {
			pct += v
		}
	}
	if stayTypeLabel != "" {
		if v, ok := s.StayTypeAdjustments[stayTypeLabel]; ok {
			pct += v
		}
	}
	return pct
}

// SeasonalAdjustment finds the first active season containing date and
// returns its stacked percentage, or 0 when no season applies. Overlapping
// active seasons are a configuration hazard; the first one in list order
// wins.
func SeasonalAdjustment(seasons []*Season, date time.Time, roomType, mealPlanCode, stayTypeLabel string) float64 {
	for _, season := range seasons {
		if season == nil || !season.Active {
			continue
		}
		if season.Contains(date) {
			return season.AdjustmentFor(roomType, mealPlanCode, stayTypeLabel)
		}
	}
	return 0
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
