package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"hoteldesk/internal/infra/config"
	"hoteldesk/internal/infra/obs"
)

type RatesHTTP interface {
	Quote(c *gin.Context)
	Grid(c *gin.Context)
	Export(c *gin.Context)
}

type BulkHTTP interface {
	Preview(c *gin.Context)
	Commit(c *gin.Context)
	Discard(c *gin.Context)
	State(c *gin.Context)
}

type BookingHTTP interface {
	CreateReservation(c *gin.Context)
	ScheduleEvent(c *gin.Context)
	List(c *gin.Context)
	Extend(c *gin.Context)
	CheckIn(c *gin.Context)
	CheckOut(c *gin.Context)
	Cancel(c *gin.Context)
}

type AvailabilityHTTP interface {
	Check(c *gin.Context)
}

type PolicyHTTP interface {
	ListMealPlans(c *gin.Context)
	CreateMealPlan(c *gin.Context)
	UpdateMealPlan(c *gin.Context)
	DeleteMealPlan(c *gin.Context)
	ListSeasons(c *gin.Context)
	CreateSeason(c *gin.Context)
	UpdateSeason(c *gin.Context)
	DeleteSeason(c *gin.Context)
	ListChannels(c *gin.Context)
	CreateChannel(c *gin.Context)
	DeleteChannel(c *gin.Context)
	ListSubChannels(c *gin.Context)
	CreateSubChannel(c *gin.Context)
	DeleteSubChannel(c *gin.Context)
	ListRules(c *gin.Context)
	CreateRule(c *gin.Context)
}

type AuditHTTP interface {
	List(c *gin.Context)
}

type Handlers struct {
	Rates        RatesHTTP
	Bulk         BulkHTTP
	Booking      BookingHTTP
	Availability AvailabilityHTTP
	Policy       PolicyHTTP
	Audit        AuditHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Actor"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"Content-Disposition",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Rates != nil {
		api.POST("/rates/quote", h.Rates.Quote)
		api.GET("/rates/grid", h.Rates.Grid)
		api.GET("/rates/export", h.Rates.Export)
	}
	if h.Bulk != nil {
		bulkGroup := api.Group("/rates/bulk")
		bulkGroup.GET("", h.Bulk.State)
		bulkGroup.POST("/preview", h.Bulk.Preview)
		bulkGroup.POST("/commit", h.Bulk.Commit)
		bulkGroup.POST("/discard", h.Bulk.Discard)
	}
	if h.Booking != nil {
		api.GET("/bookings", h.Booking.List)
		api.POST("/bookings", h.Booking.CreateReservation)
		api.POST("/events", h.Booking.ScheduleEvent)
		api.POST("/bookings/:id/extend", h.Booking.Extend)
		api.POST("/bookings/:id/check-in", h.Booking.CheckIn)
		api.POST("/bookings/:id/check-out", h.Booking.CheckOut)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
	}
	if h.Availability != nil {
		api.GET("/availability", h.Availability.Check)
	}
	if h.Policy != nil {
		policyGroup := api.Group("/policies")
		policyGroup.GET("/meal-plans", h.Policy.ListMealPlans)
		policyGroup.POST("/meal-plans", h.Policy.CreateMealPlan)
		policyGroup.PUT("/meal-plans/:code", h.Policy.UpdateMealPlan)
		policyGroup.DELETE("/meal-plans/:code", h.Policy.DeleteMealPlan)
		policyGroup.GET("/seasons", h.Policy.ListSeasons)
		policyGroup.POST("/seasons", h.Policy.CreateSeason)
		policyGroup.PUT("/seasons/:id", h.Policy.UpdateSeason)
		policyGroup.DELETE("/seasons/:id", h.Policy.DeleteSeason)
		policyGroup.GET("/channels", h.Policy.ListChannels)
		policyGroup.POST("/channels", h.Policy.CreateChannel)
		policyGroup.DELETE("/channels/:id", h.Policy.DeleteChannel)
		policyGroup.GET("/channels/:id/sub-channels", h.Policy.ListSubChannels)
		policyGroup.POST("/channels/:id/sub-channels", h.Policy.CreateSubChannel)
		policyGroup.DELETE("/sub-channels/:id", h.Policy.DeleteSubChannel)
		policyGroup.GET("/rules", h.Policy.ListRules)
		policyGroup.POST("/rules", h.Policy.CreateRule)
	}
	if h.Audit != nil {
		api.GET("/audit", h.Audit.List)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
