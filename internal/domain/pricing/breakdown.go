package pricing

import (
	"hoteldesk/internal/domain/rooms"
	"hoteldesk/internal/domain/shared/money"
)

// RateBreakdown is the itemized result of one rate composition. Amounts keep
// full precision; Rounded produces the two-decimal display form.
type RateBreakdown struct {
	StayType           rooms.StayType `json:"-"`
	StayTypeLabel      string         `json:"stay_type"`
	Nights             int            `json:"nights"`
	BaseRate           float64        `json:"base_rate"`
	MealPlanCode       string         `json:"meal_plan_code"`
	MealPlanMarkup     float64        `json:"meal_plan_markup"`
	SeasonalPercent    float64        `json:"seasonal_percent"`
	SeasonalAdjustment float64        `json:"seasonal_adjustment"`
	ChannelPercent     float64        `json:"channel_percent"`
	ChannelAdjustment  float64        `json:"channel_adjustment"`
	OverrideApplied    bool           `json:"override_applied"`
	ManualAdjustment   float64        `json:"manual_adjustment"`
	Subtotal           float64        `json:"subtotal"`
	Tax                float64        `json:"tax"`
	TotalAmount        float64        `json:"total_amount"`
	Currency           string         `json:"currency"`
}

// Rounded returns a copy with every monetary field rounded to two decimals.
// Rounding happens only here, never between composition steps.
func (b RateBreakdown) Rounded() RateBreakdown {
	out := b
	out.BaseRate = money.Round2(b.BaseRate)
	out.MealPlanMarkup = money.Round2(b.MealPlanMarkup)
	out.SeasonalAdjustment = money.Round2(b.SeasonalAdjustment)
	out.ChannelAdjustment = money.Round2(b.ChannelAdjustment)
	out.ManualAdjustment = money.Round2(b.ManualAdjustment)
	out.Subtotal = money.Round2(b.Subtotal)
	out.Tax = money.Round2(b.Tax)
	out.TotalAmount = money.Round2(b.TotalAmount)
	return out
}
