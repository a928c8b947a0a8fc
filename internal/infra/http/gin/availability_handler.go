package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	bookingapp "hoteldesk/internal/app/bookings"
	domainbooking "hoteldesk/internal/domain/booking"
	"hoteldesk/internal/domain/shared/daterange"
)

// AvailabilityHandler answers the read-only "is this resource free" question
// the booking form asks before submitting.
type AvailabilityHandler struct {
	Service *bookingapp.Service
	Logger  *slog.Logger
}

func (h AvailabilityHandler) Check(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking service unavailable"})
		return
	}
	resourceID := c.Query("resource_id")
	if resourceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource_id is required"})
		return
	}
	start, ok := parseDate(c.Query("start"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
		return
	}
	end, ok := parseDate(c.Query("end"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be YYYY-MM-DD"})
		return
	}
	excludeID := domainbooking.BookingID(c.Query("exclude_booking_id"))
	available, err := h.Service.CheckAvailability(c.Request.Context(), resourceID, start, end, excludeID)
	if err != nil {
		if errors.Is(err, daterange.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.Logger != nil {
			h.Logger.Error("availability check failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"resource_id": resourceID,
		"available":   available,
	})
}

var _ AvailabilityHTTP = AvailabilityHandler{}
