package policy

import (
	"context"
	"errors"
	"time"

	"hoteldesk/internal/domain/shared/daterange"
)

var (
	ErrChannelNotFound    = errors.New("policy: channel not found")
	ErrSubChannelNotFound = errors.New("policy: sub-channel not found")
)

// MainChannel is the top level of the two-level sales-channel hierarchy.
// It owns zero or more sub-channels; deleting it cascades to them.
type MainChannel struct {
	ID                   string
	Name                 string
	AdjustmentPercentage float64
	Active               bool
}

// SubChannel always belongs to exactly one main channel and contributes an
// additional percentage on top of its parent's.
type SubChannel struct {
	ID                      string
	MainChannelID           string
	Name                    string
	AdditionalAdjustmentPct float64
	Active                  bool
}

// ChannelPricingRule is an explicit ad-hoc override keyed by room type,
// channel and validity window. At most one active rule may exist per
// (room type, channel) pair with overlapping windows; saving a new active
// rule deactivates colliding ones.
type ChannelPricingRule struct {
	ID            string
	RoomType      string
	MainChannelID string
	NightlyRate   float64
	ValidFrom     time.Time
	ValidTo       time.Time
	Active        bool
	CreatedAt     time.Time
}

// Window returns the rule validity as a half-open range covering every day
// from ValidFrom through ValidTo inclusive.
func (r *ChannelPricingRule) Window() daterange.DateRange {
	return daterange.DateRange{CheckIn: r.ValidFrom.UTC(), CheckOut: r.ValidTo.UTC().Add(24 * time.Hour)}
}

// Collides reports whether two rules target the same (room type, channel)
// pair with overlapping active windows.
func (r *ChannelPricingRule) Collides(other *ChannelPricingRule) bool {
	if r.RoomType != other.RoomType || r.MainChannelID != other.MainChannelID {
		return false
	}
	return r.Window().Overlaps(other.Window())
}

type ChannelRepository interface {
	MainByID(ctx context.Context, id string) (*MainChannel, error)
	SubByID(ctx context.Context, id string) (*SubChannel, error)
	ListMain(ctx context.Context) ([]*MainChannel, error)
	ListSub(ctx context.Context, mainChannelID string) ([]*SubChannel, error)
	SaveMain(ctx context.Context, ch *MainChannel) error
	SaveSub(ctx context.Context, sub *SubChannel) error
	// DeleteMain removes a main channel and cascades to its sub-channels.
	DeleteMain(ctx context.Context, id string) error
	DeleteSub(ctx context.Context, id string) error

	ListRules(ctx context.Context) ([]*ChannelPricingRule, error)
	// SaveRule persists the rule; when the rule is active, every colliding
	// active rule is deactivated in the same call.
	SaveRule(ctx context.Context, rule *ChannelPricingRule) error
}

// ChannelAdjustment combines a main channel with an optional sub-channel into
// one percentage. A sub-channel that does not belong to the given main
// channel is ignored rather than failing the computation.
func ChannelAdjustment(main *MainChannel, sub *SubChannel) float64 {
	if main == nil {
		return 0
	}
	pct := main.AdjustmentPercentage
	if sub != nil && sub.MainChannelID == main.ID {
		pct += sub.AdditionalAdjustmentPct
	}
	return pct
}
