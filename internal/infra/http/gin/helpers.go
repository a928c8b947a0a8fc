package ginserver

import (
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// parseYearMonth resolves the grid month from query params, defaulting to
// the current calendar month.
func parseYearMonth(c *gin.Context) (int, time.Month) {
	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()
	if raw := c.Query("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			year = v
		}
	}
	if raw := c.Query("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= 12 {
			month = time.Month(v)
		}
	}
	return year, month
}

// actorFrom identifies the back-office user for audit trails. There is no
// auth layer in front of this API; the desk frontend sends the operator name.
func actorFrom(c *gin.Context) string {
	if actor := strings.TrimSpace(c.GetHeader("X-Actor")); actor != "" {
		return actor
	}
	return "system"
}
