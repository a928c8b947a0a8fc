package ginserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	ratesapp "hoteldesk/internal/app/rates"
	"hoteldesk/internal/domain/policy"
	"hoteldesk/internal/domain/pricing"
	"hoteldesk/internal/domain/rooms"
)

// RatesHandler wires rate quoting, the month grid and the spreadsheet
// export to HTTP.
type RatesHandler struct {
	Service *ratesapp.Service
	Logger  *slog.Logger
}

type quoteRequest struct {
	RoomID          string  `json:"room_id"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	MealPlanCode    string  `json:"meal_plan_code"`
	MainChannelID   string  `json:"main_channel_id"`
	SubChannelID    string  `json:"sub_channel_id"`
	OverrideKind    string  `json:"override_kind"`
	OverrideValue   float64 `json:"override_value"`
	DisplayCurrency string  `json:"display_currency"`
}

func (h RatesHandler) Quote(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rates service unavailable"})
		return
	}
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	checkIn, ok := parseDate(req.CheckIn)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be YYYY-MM-DD"})
		return
	}
	checkOut, ok := parseDate(req.CheckOut)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be YYYY-MM-DD"})
		return
	}
	var manual *pricing.ManualOverride
	if req.OverrideKind != "" {
		manual = &pricing.ManualOverride{
			Kind:  policy.AdjustmentKind(req.OverrideKind),
			Value: req.OverrideValue,
		}
	}
	breakdown, err := h.Service.Quote(c.Request.Context(), ratesapp.QuoteRequest{
		RoomID:          req.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		MealPlanCode:    req.MealPlanCode,
		MainChannelID:   req.MainChannelID,
		SubChannelID:    req.SubChannelID,
		ManualOverride:  manual,
		DisplayCurrency: req.DisplayCurrency,
	})
	if err != nil {
		h.respondRatesError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

type gridRowResponse struct {
	StayType string    `json:"stay_type"`
	Rates    []float64 `json:"rates"`
}

func (h RatesHandler) Grid(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rates service unavailable"})
		return
	}
	year, month := parseYearMonth(c)
	grid, err := h.Service.MonthGrid(c.Request.Context(), year, month)
	if err != nil {
		h.respondRatesError(c, err)
		return
	}
	rows := make([]gridRowResponse, 0, len(grid))
	for _, row := range grid {
		rows = append(rows, gridRowResponse{StayType: row.Label, Rates: row.Rates})
	}
	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": int(month),
		"rows":  rows,
	})
}

// Export streams the month's rate sheet as an xlsx attachment. With
// ?upload=true the sheet also lands in object storage and the public URL is
// returned instead of the file.
func (h RatesHandler) Export(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rates service unavailable"})
		return
	}
	year, month := parseYearMonth(c)
	upload := c.Query("upload") == "true"
	result, err := h.Service.ExportRateSheet(c.Request.Context(), year, month, upload)
	if err != nil {
		h.respondRatesError(c, err)
		return
	}
	if upload && result.PublicURL != "" {
		c.JSON(http.StatusOK, gin.H{"url": result.PublicURL, "file_name": result.FileName})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Data)
}

func (h RatesHandler) respondRatesError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rooms.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrInvalidStay),
		errors.Is(err, pricing.ErrRoomRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("rates request failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ RatesHTTP = RatesHandler{}
