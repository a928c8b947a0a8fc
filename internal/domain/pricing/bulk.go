package pricing

import (
	"context"
	"errors"
	"time"

	"hoteldesk/internal/domain/policy"
	"hoteldesk/internal/domain/rooms"
	"hoteldesk/internal/domain/shared/events"
)

var (
	ErrNotPreviewing     = errors.New("pricing: no staged bulk preview")
	ErrAlreadyPreviewing = errors.New("pricing: a bulk preview is already staged")
	ErrStayTypeRequired  = errors.New("pricing: stay type is required")
)

type BulkState string

const (
	BulkIdle       BulkState = "IDLE"
	BulkPreviewing BulkState = "PREVIEWING"
)

// BulkAdjustment is the staged hypothetical change: a flat amount added to
// each day rate or a percentage applied to it.
type BulkAdjustment struct {
	Kind  policy.AdjustmentKind
	Value float64
}

// BulkSession is the two-state preview/commit machine over one calendar
// month of the rate grid. A preview recomputes a single stay-type row on a
// copy; nothing persists until Commit turns the previewed cells into
// override values.
type BulkSession struct {
	events.EventRecorder

	engine *Engine
	year   int
	month  time.Month

	state      BulkState
	stagedType rooms.StayType
	stagedAdj  BulkAdjustment
	preview    map[int]float64
}

func NewBulkSession(engine *Engine, year int, month time.Month) *BulkSession {
	return &BulkSession{engine: engine, year: year, month: month, state: BulkIdle}
}

func (s *BulkSession) State() BulkState { return s.state }

func (s *BulkSession) Year() int         { return s.year }
func (s *BulkSession) Month() time.Month { return s.month }

// Preview stages the adjustment against one stay-type row and returns the
// recomputed day-by-day rates. Other rows are untouched.
func (s *BulkSession) Preview(ctx context.Context, stayType rooms.StayType, adj BulkAdjustment) (map[int]float64, error) {
	if s.state == BulkPreviewing {
		return nil, ErrAlreadyPreviewing
	}
	if stayType.IsZero() {
		return nil, ErrStayTypeRequired
	}
	row, err := s.engine.RowForStayType(ctx, stayType, s.year, s.month)
	if err != nil {
		return nil, err
	}
	preview := make(map[int]float64, len(row.Rates))
	for i, rate := range row.Rates {
		preview[i+1] = applyBulkAdjustment(rate, adj)
	}
	s.state = BulkPreviewing
	s.stagedType = stayType
	s.stagedAdj = adj
	s.preview = preview
	return clone(preview), nil
}

// Commit returns the override cells the staged preview produces and resets
// the session. Persisting them, and recording the audit entry, is the
// orchestration layer's job so the math here stays free of storage.
func (s *BulkSession) Commit(actor string, now time.Time) ([]*RateOverride, BulkAdjustment, error) {
	if s.state != BulkPreviewing {
		return nil, BulkAdjustment{}, ErrNotPreviewing
	}
	overrides := make([]*RateOverride, 0, len(s.preview))
	for day, amount := range s.preview {
		overrides = append(overrides, &RateOverride{
			Key:       OverrideKey{StayType: s.stagedType, Day: day},
			Amount:    amount,
			Actor:     actor,
			UpdatedAt: now.UTC(),
		})
	}
	adj := s.stagedAdj
	s.Record(BulkRateCommitted{
		BaseEvent: events.BaseEvent{
			Name:      "rates.bulk_committed",
			Aggregate: s.stagedType.Label(),
			Time:      now.UTC(),
		},
		StayTypeLabel:  s.stagedType.Label(),
		AdjustmentKind: string(adj.Kind),
		Value:          adj.Value,
		Days:           len(overrides),
		Actor:          actor,
	})
	s.reset()
	return overrides, adj, nil
}

// Discard drops the staged preview without touching the override map.
func (s *BulkSession) Discard() error {
	if s.state != BulkPreviewing {
		return ErrNotPreviewing
	}
	s.reset()
	return nil
}

// StagedPreview exposes a copy of the current preview for display.
func (s *BulkSession) StagedPreview() (rooms.StayType, map[int]float64, bool) {
	if s.state != BulkPreviewing {
		return rooms.StayType{}, nil, false
	}
	return s.stagedType, clone(s.preview), true
}

func (s *BulkSession) reset() {
	s.state = BulkIdle
	s.stagedType = rooms.StayType{}
	s.stagedAdj = BulkAdjustment{}
	s.preview = nil
}

func applyBulkAdjustment(rate float64, adj BulkAdjustment) float64 {
	switch adj.Kind {
	case policy.AdjustmentPercentage:
		return rate * (1 + adj.Value/100)
	case policy.AdjustmentAmount:
		return rate + adj.Value
	default:
		return rate
	}
}

func clone(m map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
