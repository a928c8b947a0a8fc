package pricing

import (
	"context"
	"sort"
	"time"

	"hoteldesk/internal/domain/rooms"
)

// GridRow is one stay-type row of the monthly rate grid. Rates is indexed by
// day-1, so Rates[0] is the first of the month.
type GridRow struct {
	StayType rooms.StayType
	Label    string
	Rates    []float64
}

// MonthGrid computes the stay-type × day-of-month grid of pre-tax nightly
// rates for a calendar month. Each distinct room type pairs with every
// active meal plan; the cheapest room of the type anchors the base price.
// Committed overrides show through in their cells.
func (e *Engine) MonthGrid(ctx context.Context, year int, month time.Month) ([]GridRow, error) {
	anchors, err := e.typeAnchors(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := e.MealPlans.List(ctx)
	if err != nil {
		return nil, err
	}

	days := daysInMonth(year, month)
	var grid []GridRow
	for _, anchor := range anchors {
		for _, plan := range plans {
			if !plan.Active {
				continue
			}
			row := GridRow{
				StayType: rooms.NewStayType(anchor.Type, plan.Code),
				Rates:    make([]float64, days),
			}
			row.Label = row.StayType.Label()
			for day := 1; day <= days; day++ {
				date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				rate, err := e.DayRate(ctx, anchor, plan.Code, date)
				if err != nil {
					return nil, err
				}
				row.Rates[day-1] = rate
			}
			grid = append(grid, row)
		}
	}
	sort.Slice(grid, func(i, j int) bool { return grid[i].Label < grid[j].Label })
	return grid, nil
}

// RowForStayType computes a single grid row, the unit the bulk preview works
// on.
func (e *Engine) RowForStayType(ctx context.Context, stayType rooms.StayType, year int, month time.Month) (GridRow, error) {
	anchor, err := e.anchorForType(ctx, stayType.RoomType)
	if err != nil {
		return GridRow{}, err
	}
	days := daysInMonth(year, month)
	row := GridRow{StayType: stayType, Label: stayType.Label(), Rates: make([]float64, days)}
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		rate, err := e.DayRate(ctx, anchor, stayType.MealPlanCode, date)
		if err != nil {
			return GridRow{}, err
		}
		row.Rates[day-1] = rate
	}
	return row, nil
}

// typeAnchors picks one representative room per type, cheapest first so the
// grid shows the entry rate of the category.
func (e *Engine) typeAnchors(ctx context.Context) ([]*rooms.Room, error) {
	all, err := e.Rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	byType := map[string]*rooms.Room{}
	for _, room := range all {
		current, ok := byType[room.Type]
		if !ok || room.Price < current.Price {
			byType[room.Type] = room
		}
	}
	anchors := make([]*rooms.Room, 0, len(byType))
	for _, room := range byType {
		anchors = append(anchors, room)
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i].Type < anchors[j].Type })
	return anchors, nil
}

func (e *Engine) anchorForType(ctx context.Context, roomType string) (*rooms.Room, error) {
	anchors, err := e.typeAnchors(ctx)
	if err != nil {
		return nil, err
	}
	for _, anchor := range anchors {
		if anchor.Type == roomType {
			return anchor, nil
		}
	}
	return nil, rooms.ErrRoomNotFound
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
