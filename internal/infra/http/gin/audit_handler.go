package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"hoteldesk/internal/domain/audit"
)

// AuditHandler exposes the append-only change log for back-office review.
type AuditHandler struct {
	Log    audit.Log
	Logger *slog.Logger
}

func (h AuditHandler) List(c *gin.Context) {
	if h.Log == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit log unavailable"})
		return
	}
	entries, err := h.Log.List(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("audit list failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

var _ AuditHTTP = AuditHandler{}
