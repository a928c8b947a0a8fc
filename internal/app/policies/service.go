package policies

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"hoteldesk/internal/domain/audit"
	"hoteldesk/internal/domain/policy"
)

var (
	ErrNameRequired = errors.New("policies: name is required")
	ErrCodeRequired = errors.New("policies: meal plan code is required")
)

// Service is the admin surface for the pricing policy catalogue: meal plans,
// seasons and the two-level channel hierarchy. Every mutation lands one
// audit entry.
type Service struct {
	MealPlans policy.MealPlanRepository
	Seasons   policy.SeasonRepository
	Channels  policy.ChannelRepository
	Audit     audit.Log
	Logger    *slog.Logger
	Now       func() time.Time
}

// CreateMealPlan enforces code uniqueness before saving. Codes identify the
// plan everywhere downstream, so a duplicate is rejected outright.
func (s *Service) CreateMealPlan(ctx context.Context, plan *policy.MealPlan) error {
	if plan.Code == "" {
		return ErrCodeRequired
	}
	if plan.Name == "" {
		return ErrNameRequired
	}
	existing, err := s.MealPlans.ByCode(ctx, plan.Code)
	if err != nil && !errors.Is(err, policy.ErrMealPlanNotFound) {
		return err
	}
	if existing != nil {
		return policy.ErrDuplicatePlanCode
	}
	if err := s.MealPlans.Save(ctx, plan); err != nil {
		return err
	}
	s.record(ctx, "policy.mealplan_created", map[string]string{"code": plan.Code, "name": plan.Name})
	return nil
}

// UpdateMealPlan replaces an existing plan in place. The code is the
// identity and cannot be changed here.
func (s *Service) UpdateMealPlan(ctx context.Context, plan *policy.MealPlan) error {
	if plan.Code == "" {
		return ErrCodeRequired
	}
	if _, err := s.MealPlans.ByCode(ctx, plan.Code); err != nil {
		return err
	}
	if err := s.MealPlans.Save(ctx, plan); err != nil {
		return err
	}
	s.record(ctx, "policy.mealplan_updated", map[string]string{"code": plan.Code})
	return nil
}

func (s *Service) DeleteMealPlan(ctx context.Context, code string) error {
	if err := s.MealPlans.Delete(ctx, code); err != nil {
		return err
	}
	s.record(ctx, "policy.mealplan_deleted", map[string]string{"code": code})
	return nil
}

func (s *Service) ListMealPlans(ctx context.Context) ([]*policy.MealPlan, error) {
	return s.MealPlans.List(ctx)
}

// CreateSeason assigns the identity and creation timestamp that keep the
// first-match resolution order stable across restarts.
func (s *Service) CreateSeason(ctx context.Context, season *policy.Season) error {
	if season.Name == "" {
		return ErrNameRequired
	}
	if season.ID == "" {
		season.ID = uuid.NewString()
	}
	if season.CreatedAt.IsZero() {
		season.CreatedAt = s.now()
	}
	if err := s.Seasons.Save(ctx, season); err != nil {
		return err
	}
	s.record(ctx, "policy.season_created", map[string]string{"season_id": season.ID, "name": season.Name})
	return nil
}

func (s *Service) UpdateSeason(ctx context.Context, season *policy.Season) error {
	current, err := s.Seasons.ByID(ctx, season.ID)
	if err != nil {
		return err
	}
	season.CreatedAt = current.CreatedAt
	if err := s.Seasons.Save(ctx, season); err != nil {
		return err
	}
	s.record(ctx, "policy.season_updated", map[string]string{"season_id": season.ID})
	return nil
}

func (s *Service) DeleteSeason(ctx context.Context, id string) error {
	if err := s.Seasons.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "policy.season_deleted", map[string]string{"season_id": id})
	return nil
}

func (s *Service) ListSeasons(ctx context.Context) ([]*policy.Season, error) {
	return s.Seasons.List(ctx)
}

func (s *Service) CreateMainChannel(ctx context.Context, ch *policy.MainChannel) error {
	if ch.Name == "" {
		return ErrNameRequired
	}
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	if err := s.Channels.SaveMain(ctx, ch); err != nil {
		return err
	}
	s.record(ctx, "policy.channel_created", map[string]string{"channel_id": ch.ID, "name": ch.Name})
	return nil
}

// CreateSubChannel verifies the parent exists first; an orphaned sub-channel
// would silently contribute nothing to any rate.
func (s *Service) CreateSubChannel(ctx context.Context, sub *policy.SubChannel) error {
	if sub.Name == "" {
		return ErrNameRequired
	}
	if _, err := s.Channels.MainByID(ctx, sub.MainChannelID); err != nil {
		return err
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if err := s.Channels.SaveSub(ctx, sub); err != nil {
		return err
	}
	s.record(ctx, "policy.subchannel_created", map[string]string{
		"subchannel_id": sub.ID,
		"channel_id":    sub.MainChannelID,
	})
	return nil
}

// DeleteMainChannel cascades to the channel's sub-channels in one call.
func (s *Service) DeleteMainChannel(ctx context.Context, id string) error {
	if err := s.Channels.DeleteMain(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "policy.channel_deleted", map[string]string{"channel_id": id})
	return nil
}

func (s *Service) DeleteSubChannel(ctx context.Context, id string) error {
	if err := s.Channels.DeleteSub(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "policy.subchannel_deleted", map[string]string{"subchannel_id": id})
	return nil
}

func (s *Service) ListMainChannels(ctx context.Context) ([]*policy.MainChannel, error) {
	return s.Channels.ListMain(ctx)
}

func (s *Service) ListSubChannels(ctx context.Context, mainChannelID string) ([]*policy.SubChannel, error) {
	return s.Channels.ListSub(ctx, mainChannelID)
}

// CreatePricingRule saves an ad-hoc channel rule. The repository deactivates
// colliding active rules, so the single-active-rule invariant holds without
// a read-modify-write here.
func (s *Service) CreatePricingRule(ctx context.Context, rule *policy.ChannelPricingRule) error {
	if _, err := s.Channels.MainByID(ctx, rule.MainChannelID); err != nil {
		return err
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = s.now()
	}
	if err := s.Channels.SaveRule(ctx, rule); err != nil {
		return err
	}
	s.record(ctx, "policy.rule_created", map[string]string{
		"rule_id":    rule.ID,
		"channel_id": rule.MainChannelID,
		"room_type":  rule.RoomType,
		"rate":       strconv.FormatFloat(rule.NightlyRate, 'f', -1, 64),
	})
	return nil
}

func (s *Service) ListPricingRules(ctx context.Context) ([]*policy.ChannelPricingRule, error) {
	return s.Channels.ListRules(ctx)
}

func (s *Service) record(ctx context.Context, action string, details map[string]string) {
	if s.Audit == nil {
		return
	}
	entry := audit.Entry{
		ID:        uuid.NewString(),
		Actor:     actorFrom(ctx),
		Action:    action,
		Details:   details,
		CreatedAt: s.now(),
	}
	if err := s.Audit.Append(ctx, entry); err != nil && s.Logger != nil {
		s.Logger.Warn("audit entry not recorded", "action", action, "error", err)
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type actorKey struct{}

// WithActor stamps the acting back-office user onto the context so audit
// entries name who changed what.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func actorFrom(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return "system"
}
