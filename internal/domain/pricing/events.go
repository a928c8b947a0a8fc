package pricing

import "hoteldesk/internal/domain/shared/events"

// BulkRateCommitted is raised once per committed bulk update.
type BulkRateCommitted struct {
	events.BaseEvent
	StayTypeLabel  string  `json:"stay_type"`
	AdjustmentKind string  `json:"adjustment_kind"`
	Value          float64 `json:"value"`
	Days           int     `json:"days"`
	Actor          string  `json:"actor"`
}
