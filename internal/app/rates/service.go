package rates

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	appoutbox "hoteldesk/internal/app/outbox"
	"hoteldesk/internal/domain/audit"
	"hoteldesk/internal/domain/pricing"
	"hoteldesk/internal/domain/rooms"
	"hoteldesk/internal/domain/shared/daterange"
	"hoteldesk/internal/infra/export"
	"hoteldesk/internal/infra/storage/s3"
)

var (
	ErrEngineRequired  = errors.New("rates: pricing engine is required")
	ErrBadStayType     = errors.New("rates: stay type label must be '<room type> – <meal plan>'")
	ErrSessionMismatch = errors.New("rates: another month's session is still previewing")
)

// Service is the back-office rate surface: on-demand quotes, the monthly
// grid, the bulk preview/commit workflow and the spreadsheet export. It owns
// at most one bulk session at a time, guarded for concurrent handlers.
type Service struct {
	Engine    *pricing.Engine
	Rooms     rooms.Repository
	Overrides pricing.OverrideRepository
	Audit     audit.Log
	Outbox    appoutbox.Outbox
	Uploader  s3.Uploader
	Logger    *slog.Logger
	Now       func() time.Time

	mu      sync.Mutex
	session *pricing.BulkSession
}

type QuoteRequest struct {
	RoomID          string
	CheckIn         time.Time
	CheckOut        time.Time
	MealPlanCode    string
	MainChannelID   string
	SubChannelID    string
	ManualOverride  *pricing.ManualOverride
	DisplayCurrency string
}

// Quote resolves the room, validates the stay interval and runs one rate
// composition. The returned breakdown is already rounded for display.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (pricing.RateBreakdown, error) {
	if err := s.ensureDependencies(); err != nil {
		return pricing.RateBreakdown{}, err
	}
	room, err := s.Rooms.ByID(ctx, rooms.RoomID(req.RoomID))
	if err != nil {
		return pricing.RateBreakdown{}, err
	}
	dr, err := daterange.New(req.CheckIn, req.CheckOut)
	if err != nil {
		return pricing.RateBreakdown{}, pricing.ErrInvalidStay
	}
	breakdown, err := s.Engine.ComputeRate(ctx, pricing.QuoteInput{
		Room:            room,
		Range:           dr,
		MealPlanCode:    req.MealPlanCode,
		MainChannelID:   req.MainChannelID,
		SubChannelID:    req.SubChannelID,
		ManualOverride:  req.ManualOverride,
		DisplayCurrency: req.DisplayCurrency,
	})
	if err != nil {
		return pricing.RateBreakdown{}, err
	}
	return breakdown.Rounded(), nil
}

// MonthGrid renders the full stay-type × day matrix for one month.
func (s *Service) MonthGrid(ctx context.Context, year int, month time.Month) ([]pricing.GridRow, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	return s.Engine.MonthGrid(ctx, year, month)
}

// PreviewBulkUpdate stages an adjustment against one grid row. The label
// comes straight from the grid UI, so it is parsed rather than trusted.
func (s *Service) PreviewBulkUpdate(ctx context.Context, year int, month time.Month, stayTypeLabel string, adj pricing.BulkAdjustment) (map[int]float64, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	stayType, ok := rooms.ParseStayType(stayTypeLabel)
	if !ok {
		return nil, ErrBadStayType
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil && (s.session.Year() != year || s.session.Month() != month) {
		if s.session.State() == pricing.BulkPreviewing {
			return nil, ErrSessionMismatch
		}
		s.session = nil
	}
	if s.session == nil {
		s.session = pricing.NewBulkSession(s.Engine, year, month)
	}
	return s.session.Preview(ctx, stayType, adj)
}

// CommitBulkUpdate persists the staged preview as committed overrides,
// appends one audit entry and queues the domain event for publication.
func (s *Service) CommitBulkUpdate(ctx context.Context, actor string) ([]*pricing.RateOverride, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, pricing.ErrNotPreviewing
	}
	now := s.now()
	overrides, adj, err := s.session.Commit(actor, now)
	if err != nil {
		return nil, err
	}
	for _, ov := range overrides {
		if err := s.Overrides.Put(ctx, ov); err != nil {
			return nil, err
		}
	}
	if s.Audit != nil && len(overrides) > 0 {
		entry := audit.Entry{
			ID:     uuid.NewString(),
			Actor:  actor,
			Action: "rates.bulk_commit",
			Details: map[string]string{
				"stay_type": overrides[0].Key.StayType.Label(),
				"kind":      string(adj.Kind),
				"value":     strconv.FormatFloat(adj.Value, 'f', -1, 64),
				"days":      strconv.Itoa(len(overrides)),
			},
			CreatedAt: now,
		}
		if err := s.Audit.Append(ctx, entry); err != nil {
			return nil, err
		}
	}
	if err := appoutbox.RecordDomainEvents(ctx, s.Outbox, nil, s.session.PendingEvents()); err != nil {
		return nil, err
	}
	s.session.ClearEvents()
	if s.Logger != nil {
		s.Logger.Info("bulk rate update committed", "actor", actor, "days", len(overrides))
	}
	return overrides, nil
}

// DiscardBulkUpdate drops the staged preview without side effects.
func (s *Service) DiscardBulkUpdate(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return pricing.ErrNotPreviewing
	}
	return s.session.Discard()
}

// BulkState reports the current session state for the grid UI.
func (s *Service) BulkState() pricing.BulkState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return pricing.BulkIdle
	}
	return s.session.State()
}

type ExportResult struct {
	FileName string
	Data     []byte
	// PublicURL is set only when an object store is configured.
	PublicURL string
}

// ExportRateSheet renders the month grid as a spreadsheet and, when an
// uploader is wired, pushes it to object storage.
func (s *Service) ExportRateSheet(ctx context.Context, year int, month time.Month, upload bool) (*ExportResult, error) {
	grid, err := s.MonthGrid(ctx, year, month)
	if err != nil {
		return nil, err
	}
	data, err := export.RateSheet(year, month, grid)
	if err != nil {
		return nil, err
	}
	result := &ExportResult{
		FileName: fmt.Sprintf("ratesheet-%04d-%02d.xlsx", year, int(month)),
		Data:     data,
	}
	if upload && s.Uploader != nil {
		key := fmt.Sprintf("ratesheets/%s", result.FileName)
		url, err := s.Uploader.Upload(ctx, key, bytes.NewReader(data), "")
		if err != nil {
			return nil, err
		}
		result.PublicURL = url
		if s.Logger != nil {
			s.Logger.Info("rate sheet uploaded", "key", key)
		}
	}
	return result, nil
}

func (s *Service) ensureDependencies() error {
	if s.Engine == nil || s.Rooms == nil || s.Overrides == nil {
		return ErrEngineRequired
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
