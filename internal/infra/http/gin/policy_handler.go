package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	policyapp "hoteldesk/internal/app/policies"
	"hoteldesk/internal/domain/policy"
)

// PolicyHandler is the admin surface for meal plans, seasons and channels.
type PolicyHandler struct {
	Service *policyapp.Service
	Logger  *slog.Logger
}

type mealPlanRequest struct {
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	MarkupKind       string   `json:"markup_kind"`
	MarkupValue      float64  `json:"markup_value"`
	Active           *bool    `json:"active"`
	DefaultRoomTypes []string `json:"default_room_types"`
}

func (r mealPlanRequest) toDomain() *policy.MealPlan {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &policy.MealPlan{
		Code:             r.Code,
		Name:             r.Name,
		MarkupKind:       policy.MarkupKind(r.MarkupKind),
		MarkupValue:      r.MarkupValue,
		Active:           active,
		DefaultRoomTypes: r.DefaultRoomTypes,
	}
}

func (h PolicyHandler) ListMealPlans(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	plans, err := h.Service.ListMealPlans(c.Request.Context())
	if err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

func (h PolicyHandler) CreateMealPlan(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	plan := req.toDomain()
	if err := h.Service.CreateMealPlan(policyapp.WithActor(c.Request.Context(), actorFrom(c)), plan); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h PolicyHandler) UpdateMealPlan(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	plan := req.toDomain()
	plan.Code = c.Param("code")
	if err := h.Service.UpdateMealPlan(policyapp.WithActor(c.Request.Context(), actorFrom(c)), plan); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h PolicyHandler) DeleteMealPlan(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	if err := h.Service.DeleteMealPlan(policyapp.WithActor(c.Request.Context(), actorFrom(c)), c.Param("code")); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type seasonRequest struct {
	Name                string             `json:"name"`
	StartDate           string             `json:"start_date"`
	EndDate             string             `json:"end_date"`
	AdjustmentValue     float64            `json:"adjustment_value"`
	Active              *bool              `json:"active"`
	RoomTypeAdjustments map[string]float64 `json:"room_type_adjustments"`
	MealPlanAdjustments map[string]float64 `json:"meal_plan_adjustments"`
	StayTypeAdjustments map[string]float64 `json:"stay_type_adjustments"`
}

func (r seasonRequest) toDomain() (*policy.Season, bool) {
	start, ok := parseDate(r.StartDate)
	if !ok {
		return nil, false
	}
	end, ok := parseDate(r.EndDate)
	if !ok {
		return nil, false
	}
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &policy.Season{
		Name:                r.Name,
		StartDate:           start,
		EndDate:             end,
		AdjustmentValue:     r.AdjustmentValue,
		Active:              active,
		RoomTypeAdjustments: r.RoomTypeAdjustments,
		MealPlanAdjustments: r.MealPlanAdjustments,
		StayTypeAdjustments: r.StayTypeAdjustments,
	}, true
}

func (h PolicyHandler) ListSeasons(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	seasons, err := h.Service.ListSeasons(c.Request.Context())
	if err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seasons": seasons})
}

func (h PolicyHandler) CreateSeason(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	var req seasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	season, ok := req.toDomain()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date must be YYYY-MM-DD"})
		return
	}
	if err := h.Service.CreateSeason(policyapp.WithActor(c.Request.Context(), actorFrom(c)), season); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, season)
}

func (h PolicyHandler) UpdateSeason(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	var req seasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	season, ok := req.toDomain()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date must be YYYY-MM-DD"})
		return
	}
	season.ID = c.Param("id")
	if err := h.Service.UpdateSeason(policyapp.WithActor(c.Request.Context(), actorFrom(c)), season); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusOK, season)
}

func (h PolicyHandler) DeleteSeason(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	if err := h.Service.DeleteSeason(policyapp.WithActor(c.Request.Context(), actorFrom(c)), c.Param("id")); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type mainChannelRequest struct {
	Name                 string  `json:"name"`
	AdjustmentPercentage float64 `json:"adjustment_percentage"`
	Active               *bool   `json:"active"`
}

func (h PolicyHandler) ListChannels(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	channels, err := h.Service.ListMainChannels(c.Request.Context())
	if err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

func (h PolicyHandler) CreateChannel(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	var req mainChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	ch := &policy.MainChannel{
		Name:                 req.Name,
		AdjustmentPercentage: req.AdjustmentPercentage,
		Active:               active,
	}
	if err := h.Service.CreateMainChannel(policyapp.WithActor(c.Request.Context(), actorFrom(c)), ch); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

func (h PolicyHandler) DeleteChannel(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	if err := h.Service.DeleteMainChannel(policyapp.WithActor(c.Request.Context(), actorFrom(c)), c.Param("id")); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type subChannelRequest struct {
	Name                    string  `json:"name"`
	AdditionalAdjustmentPct float64 `json:"additional_adjustment_pct"`
	Active                  *bool   `json:"active"`
}

func (h PolicyHandler) ListSubChannels(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	subs, err := h.Service.ListSubChannels(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sub_channels": subs})
}

func (h PolicyHandler) CreateSubChannel(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	var req subChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	sub := &policy.SubChannel{
		MainChannelID:           c.Param("id"),
		Name:                    req.Name,
		AdditionalAdjustmentPct: req.AdditionalAdjustmentPct,
		Active:                  active,
	}
	if err := h.Service.CreateSubChannel(policyapp.WithActor(c.Request.Context(), actorFrom(c)), sub); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h PolicyHandler) DeleteSubChannel(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	if err := h.Service.DeleteSubChannel(policyapp.WithActor(c.Request.Context(), actorFrom(c)), c.Param("id")); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type ruleRequest struct {
	RoomType      string  `json:"room_type"`
	MainChannelID string  `json:"main_channel_id"`
	NightlyRate   float64 `json:"nightly_rate"`
	ValidFrom     string  `json:"valid_from"`
	ValidTo       string  `json:"valid_to"`
	Active        *bool   `json:"active"`
}

func (h PolicyHandler) ListRules(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	rules, err := h.Service.ListPricingRules(c.Request.Context())
	if err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (h PolicyHandler) CreateRule(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "policy service unavailable"})
		return
	}
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	validFrom, ok := parseDate(req.ValidFrom)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid_from must be YYYY-MM-DD"})
		return
	}
	validTo, ok := parseDate(req.ValidTo)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid_to must be YYYY-MM-DD"})
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	rule := &policy.ChannelPricingRule{
		RoomType:      req.RoomType,
		MainChannelID: req.MainChannelID,
		NightlyRate:   req.NightlyRate,
		ValidFrom:     validFrom,
		ValidTo:       validTo,
		Active:        active,
	}
	if err := h.Service.CreatePricingRule(policyapp.WithActor(c.Request.Context(), actorFrom(c)), rule); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (h PolicyHandler) respondPolicyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrMealPlanNotFound),
		errors.Is(err, policy.ErrSeasonNotFound),
		errors.Is(err, policy.ErrChannelNotFound),
		errors.Is(err, policy.ErrSubChannelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, policy.ErrDuplicatePlanCode):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, policyapp.ErrNameRequired),
		errors.Is(err, policyapp.ErrCodeRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("policy request failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ PolicyHTTP = PolicyHandler{}
