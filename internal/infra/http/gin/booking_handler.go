package ginserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	bookingapp "hoteldesk/internal/app/bookings"
	domainbooking "hoteldesk/internal/domain/booking"
	"hoteldesk/internal/domain/rooms"
	"hoteldesk/internal/domain/shared/daterange"
)

// BookingHandler wires reservations and hall events to HTTP.
type BookingHandler struct {
	Service *bookingapp.Service
	Logger  *slog.Logger
}

type reservationRequest struct {
	RoomID        string `json:"room_id"`
	GuestName     string `json:"guest_name"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	MealPlanCode  string `json:"meal_plan_code"`
	MainChannelID string `json:"main_channel_id"`
	SubChannelID  string `json:"sub_channel_id"`
}

type hallEventRequest struct {
	HallIDs   []string `json:"hall_ids"`
	EventName string   `json:"event_name"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
}

type bookingResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	ResourceIDs []string  `json:"resource_ids"`
	GuestName   string    `json:"guest_name"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

func newBookingResponse(b *domainbooking.Booking) bookingResponse {
	return bookingResponse{
		ID:          string(b.ID),
		Kind:        string(b.Kind),
		ResourceIDs: b.ResourceIDs,
		GuestName:   b.GuestName,
		CheckIn:     b.Range.CheckIn,
		CheckOut:    b.Range.CheckOut,
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt,
	}
}

func (h BookingHandler) CreateReservation(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking service unavailable"})
		return
	}
	var req reservationRequest
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
	b, err := h.Service.CreateReservation(c.Request.Context(), bookingapp.ReservationRequest{
		RoomID:        req.RoomID,
		GuestName:     req.GuestName,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		MealPlanCode:  req.MealPlanCode,
		MainChannelID: req.MainChannelID,
		SubChannelID:  req.SubChannelID,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBookingResponse(b))
}

func (h BookingHandler) ScheduleEvent(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking service unavailable"})
		return
	}
	var req hallEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	start, ok := parseDate(req.Start)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
		return
	}
	end, ok := parseDate(req.End)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be YYYY-MM-DD"})
		return
	}
	b, err := h.Service.ScheduleHallEvent(c.Request.Context(), bookingapp.HallEventRequest{
		HallIDs:   req.HallIDs,
		EventName: req.EventName,
		Start:     start,
		End:       end,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBookingResponse(b))
}

func (h BookingHandler) List(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking service unavailable"})
		return
	}
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, newBookingResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

type extendRequest struct {
	NewCheckOut string `json:"new_check_out"`
}

func (h BookingHandler) Extend(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking service unavailable"})
		return
	}
	var req extendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	newCheckOut, ok := parseDate(req.NewCheckOut)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_check_out must be YYYY-MM-DD"})
		return
	}
	b, err := h.Service.ExtendStay(c.Request.Context(), domainbooking.BookingID(c.Param("id")), newCheckOut)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}

func (h BookingHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.Service.CheckIn)
}

func (h BookingHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.Service.CheckOut)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h BookingHandler) Cancel(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking service unavailable"})
		return
	}
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	b, err := h.Service.Cancel(c.Request.Context(), domainbooking.BookingID(c.Param("id")), req.Reason)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}

func (h BookingHandler) transition(c *gin.Context, apply func(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error)) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking service unavailable"})
		return
	}
	b, err := apply(c.Request.Context(), domainbooking.BookingID(c.Param("id")))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}

func (h BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainbooking.ErrBookingNotFound),
		errors.Is(err, rooms.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, bookingapp.ErrResourceConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, domainbooking.ErrInvalidState),
		errors.Is(err, domainbooking.ErrNoResources),
		errors.Is(err, bookingapp.ErrGuestRequired),
		errors.Is(err, bookingapp.ErrHallsRequired),
		errors.Is(err, bookingapp.ErrEventNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("booking request failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ BookingHTTP = BookingHandler{}
