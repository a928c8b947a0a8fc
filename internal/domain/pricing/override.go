package pricing

import (
	"context"
	"time"

	"hoteldesk/internal/domain/rooms"
)

// OverrideKey addresses one cell of the monthly rate grid. A typed key keeps
// bulk edits and manual edits from colliding through string formatting
// differences.
type OverrideKey struct {
	StayType rooms.StayType
	Day      int // day of month, 1-based
}

// RateOverride is a committed absolute nightly rate for one grid cell. It
// wins over recomputation until explicitly overwritten; overrides never
// expire on their own.
type RateOverride struct {
	Key       OverrideKey
	Amount    float64
	Actor     string
	UpdatedAt time.Time
}

type OverrideRepository interface {
	Get(ctx context.Context, key OverrideKey) (*RateOverride, error)
	List(ctx context.Context) ([]*RateOverride, error)
	// Put upserts the cell; a later write replaces an earlier one.
	Put(ctx context.Context, override *RateOverride) error
}
