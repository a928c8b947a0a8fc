package pricing

import (
	"context"
	"errors"
	"time"

	"hoteldesk/internal/domain/policy"
	"hoteldesk/internal/domain/rooms"
	"hoteldesk/internal/domain/shared/daterange"
	"hoteldesk/internal/domain/shared/money"
)

var (
	ErrRoomRequired = errors.New("pricing: room is required")
	ErrInvalidStay  = errors.New("pricing: checkout must be after checkin")
)

// ManualOverride is the optional final adjustment layer before tax: an
// absolute amount added to the subtotal, or a percentage applied to it.
type ManualOverride struct {
	Kind  policy.AdjustmentKind
	Value float64
}

// QuoteInput carries everything a rate composition depends on. The engine is
// a pure function of this input plus repository state; repeated calls with
// the same state return the same breakdown.
type QuoteInput struct {
	Room            *rooms.Room
	Range           daterange.DateRange
	MealPlanCode    string
	MainChannelID   string
	SubChannelID    string
	ManualOverride  *ManualOverride
	DisplayCurrency string
}

// Engine composes the base room rate with meal-plan, seasonal and channel
// adjustments, committed overrides, tax and optional display-currency
// conversion. Repositories are injected so the engine carries no global
// state and unit-tests run on fixtures.
type Engine struct {
	Rooms          rooms.Repository
	MealPlans      policy.MealPlanRepository
	Seasons        policy.SeasonRepository
	Channels       policy.ChannelRepository
	Overrides      OverrideRepository
	TaxRatePercent float64
	Converter      *money.Converter
}

// ComputeRate produces the final chargeable amount for one stay.
//
// The order is fixed: base, meal markup, seasonal percentage on the running
// subtotal, channel percentage on the seasonal result, manual override, tax,
// display conversion. Percentages compound on progressively adjusted bases.
func (e *Engine) ComputeRate(ctx context.Context, input QuoteInput) (RateBreakdown, error) {
	if input.Room == nil {
		return RateBreakdown{}, ErrRoomRequired
	}
	if err := input.Range.Validate(); err != nil {
		return RateBreakdown{}, ErrInvalidStay
	}
	nights := input.Range.Nights()
	if nights <= 0 {
		return RateBreakdown{}, ErrInvalidStay
	}

	planCode, plan, err := e.resolvePlan(ctx, input.MealPlanCode)
	if err != nil {
		return RateBreakdown{}, err
	}
	stayType := rooms.NewStayType(input.Room.Type, planCode)

	b := RateBreakdown{
		StayType:      stayType,
		StayTypeLabel: stayType.Label(),
		Nights:        nights,
		BaseRate:      input.Room.Price * float64(nights),
		MealPlanCode:  planCode,
	}

	override, err := e.overrideFor(ctx, stayType, input.Range.CheckIn)
	if err != nil {
		return RateBreakdown{}, err
	}

	var subtotal float64
	if override != nil {
		// A committed cell always wins over recomputation, so none of the
		// policy layers contribute.
		b.OverrideApplied = true
		subtotal = override.Amount * float64(nights)
	} else {
		subtotal = b.BaseRate

		b.MealPlanMarkup = plan.Markup(b.BaseRate, nights)
		subtotal += b.MealPlanMarkup

		seasonalPct, err := e.seasonalPercent(ctx, input.Range.CheckIn, stayType)
		if err != nil {
			return RateBreakdown{}, err
		}
		b.SeasonalPercent = seasonalPct
		b.SeasonalAdjustment = subtotal * seasonalPct / 100
		subtotal += b.SeasonalAdjustment

		channelPct, err := e.channelPercent(ctx, input.MainChannelID, input.SubChannelID)
		if err != nil {
			return RateBreakdown{}, err
		}
		b.ChannelPercent = channelPct
		b.ChannelAdjustment = subtotal * channelPct / 100
		subtotal += b.ChannelAdjustment
	}

	if mo := input.ManualOverride; mo != nil {
		switch mo.Kind {
		case policy.AdjustmentAmount:
			b.ManualAdjustment = mo.Value
		case policy.AdjustmentPercentage:
			b.ManualAdjustment = subtotal * mo.Value / 100
		}
		subtotal += b.ManualAdjustment
	}

	b.Subtotal = subtotal
	b.Tax = subtotal * e.TaxRatePercent / 100
	b.TotalAmount = subtotal + b.Tax

	return e.convert(b, input.DisplayCurrency)
}

// DayRate returns the pre-tax nightly rate for one calendar day: the value a
// monthly grid cell shows. A committed override for the cell replaces the
// composed rate.
func (e *Engine) DayRate(ctx context.Context, room *rooms.Room, mealPlanCode string, date time.Time) (float64, error) {
	if room == nil {
		return 0, ErrRoomRequired
	}
	planCode, plan, err := e.resolvePlan(ctx, mealPlanCode)
	if err != nil {
		return 0, err
	}
	stayType := rooms.NewStayType(room.Type, planCode)

	override, err := e.overrideFor(ctx, stayType, date)
	if err != nil {
		return 0, err
	}
	if override != nil {
		return override.Amount, nil
	}

	rate := room.Price + plan.Markup(room.Price, 1)
	seasonalPct, err := e.seasonalPercent(ctx, date, stayType)
	if err != nil {
		return 0, err
	}
	rate *= 1 + seasonalPct/100
	return rate, nil
}

// resolvePlan looks up the meal plan, degrading to a zero-markup default
// when the code is unknown so a stay always produces some total. The
// returned code is what breakdowns display.
func (e *Engine) resolvePlan(ctx context.Context, code string) (string, *policy.MealPlan, error) {
	if code == "" {
		return policy.DefaultPlanCode, nil, nil
	}
	plan, err := e.MealPlans.ByCode(ctx, code)
	if err != nil {
		if errors.Is(err, policy.ErrMealPlanNotFound) {
			return policy.DefaultPlanCode, nil, nil
		}
		return "", nil, err
	}
	return plan.Code, plan, nil
}

func (e *Engine) seasonalPercent(ctx context.Context, date time.Time, stayType rooms.StayType) (float64, error) {
	seasons, err := e.Seasons.List(ctx)
	if err != nil {
		return 0, err
	}
	return policy.SeasonalAdjustment(seasons, date, stayType.RoomType, stayType.MealPlanCode, stayType.Label()), nil
}

// channelPercent resolves the combined channel adjustment. Unknown channel
// ids degrade to zero; a sub-channel of a different main channel is ignored.
func (e *Engine) channelPercent(ctx context.Context, mainID, subID string) (float64, error) {
	if mainID == "" {
		return 0, nil
	}
	main, err := e.Channels.MainByID(ctx, mainID)
	if err != nil {
		if errors.Is(err, policy.ErrChannelNotFound) {
			return 0, nil
		}
		return 0, err
	}
	var sub *policy.SubChannel
	if subID != "" {
		sub, err = e.Channels.SubByID(ctx, subID)
		if err != nil && !errors.Is(err, policy.ErrSubChannelNotFound) {
			return 0, err
		}
	}
	return policy.ChannelAdjustment(main, sub), nil
}

func (e *Engine) overrideFor(ctx context.Context, stayType rooms.StayType, date time.Time) (*RateOverride, error) {
	if e.Overrides == nil {
		return nil, nil
	}
	return e.Overrides.Get(ctx, OverrideKey{StayType: stayType, Day: date.UTC().Day()})
}

func (e *Engine) convert(b RateBreakdown, currency string) (RateBreakdown, error) {
	if e.Converter == nil || currency == "" {
		if e.Converter != nil {
			b.Currency = e.Converter.Base
		}
		return b, nil
	}
	fields := []*float64{
		&b.BaseRate, &b.MealPlanMarkup, &b.SeasonalAdjustment,
		&b.ChannelAdjustment, &b.ManualAdjustment, &b.Subtotal, &b.Tax, &b.TotalAmount,
	}
	for _, f := range fields {
		v, err := e.Converter.Convert(*f, currency)
		if err != nil {
			return RateBreakdown{}, err
		}
		*f = v
	}
	b.Currency = currency
	return b, nil
}
