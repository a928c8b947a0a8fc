package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	ratesapp "hoteldesk/internal/app/rates"
	"hoteldesk/internal/domain/policy"
	"hoteldesk/internal/domain/pricing"
)

// BulkHandler exposes the preview/commit workflow over the rate grid.
type BulkHandler struct {
	Service *ratesapp.Service
	Logger  *slog.Logger
}

type bulkPreviewRequest struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	StayType string  `json:"stay_type"`
	Kind     string  `json:"kind"`
	Value    float64 `json:"value"`
}

func (h BulkHandler) Preview(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rates service unavailable"})
		return
	}
	var req bulkPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Year <= 0 || req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month are required"})
		return
	}
	preview, err := h.Service.PreviewBulkUpdate(
		c.Request.Context(),
		req.Year, time.Month(req.Month),
		req.StayType,
		pricing.BulkAdjustment{Kind: policy.AdjustmentKind(req.Kind), Value: req.Value},
	)
	if err != nil {
		h.respondBulkError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stay_type": req.StayType, "preview": preview})
}

func (h BulkHandler) Commit(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rates service unavailable"})
		return
	}
	overrides, err := h.Service.CommitBulkUpdate(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.respondBulkError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"committed_days": len(overrides)})
}

func (h BulkHandler) Discard(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rates service unavailable"})
		return
	}
	if err := h.Service.DiscardBulkUpdate(c.Request.Context()); err != nil {
		h.respondBulkError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h BulkHandler) State(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rates service unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.Service.BulkState()})
}

func (h BulkHandler) respondBulkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrAlreadyPreviewing),
		errors.Is(err, ratesapp.ErrSessionMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrNotPreviewing),
		errors.Is(err, pricing.ErrStayTypeRequired),
		errors.Is(err, ratesapp.ErrBadStayType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("bulk request failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ BulkHTTP = BulkHandler{}
