package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hivewatch/internal/config"
	"hivewatch/internal/logging"
	"hivewatch/internal/ws"
)

func NewRouter(store Store, hub *ws.Hub, logger *logging.Logger, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	h := NewHandler(store, hub, logger)
	api := r.Group(cfg.API.BasePath)
	{
		// Notifications
		api.GET("/notifications/user/:user_id", h.GetNotificationsByUserID)
		api.PUT("/notifications/:id/read", h.MarkNotificationRead)
		api.PUT("/notifications/user/:user_id/read-all", h.MarkAllNotificationsRead)
		api.DELETE("/notifications/:id", h.DeleteNotification)

		// Hives
		api.POST("/hives", h.CreateHive)
		api.GET("/hives", h.GetAllHives)
		api.GET("/hives/pending", h.GetPendingHives)
		api.GET("/hives/user/:user_id", h.GetHivesByUserID)
		api.GET("/hives/:id", h.GetHive)
		api.PUT("/hives/:id", h.UpdateHive)
		api.PUT("/hives/:id/approve", h.ApproveHive)
		api.DELETE("/hives/:id", h.DeleteHive)

		// Trainings
		api.POST("/trainings", h.CreateTraining)
		api.GET("/trainings", h.GetAllTrainings)
		api.GET("/trainings/:id", h.GetTraining)
		api.PUT("/trainings/:id", h.UpdateTraining)
		api.DELETE("/trainings/:id", h.DeleteTraining)

		// Tips
		api.POST("/tips", h.CreateTip)
		api.GET("/tips", h.GetAllTips)
		api.DELETE("/tips/:id", h.DeleteTip)

		// Marketplace
		api.POST("/listings", h.CreateListing)
		api.GET("/listings/active", h.GetActiveListings)
		api.GET("/listings/user/:user_id", h.GetListingsByUserID)
		api.PUT("/listings/:id/status", h.UpdateListingStatus)
		api.DELETE("/listings/:id", h.DeleteListing)

		// Telemetry history
		api.GET("/telemetry/:hive_id/history", h.GetTelemetryHistory)
	}

	// Live event feed
	r.GET("/ws/:user_id", h.ServeWS)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
