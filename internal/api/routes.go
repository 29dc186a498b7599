package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the HTTP API on the given engine.
func SetupRoutes(router *gin.Engine, h *Handler) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     h.cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/meta", h.GetMeta)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	protected := api.Group("")
	protected.Use(h.RequireAuth())
	{
		protected.GET("/account", h.GetAccount)
		protected.PUT("/account", h.UpdateAccount)
		protected.PUT("/account/password", h.UpdatePassword)

		protected.GET("/houses", h.ListHouses)
		protected.POST("/houses", h.CreateHouse)
		protected.GET("/houses/map", h.GetHousesMap)
		protected.GET("/houses/:id", h.GetHouse)
		protected.PUT("/houses/:id", h.UpdateHouse)
		protected.DELETE("/houses/:id", h.DeleteHouse)
		protected.GET("/houses/:id/summary", h.GetHouseSummary)
		protected.GET("/houses/:id/activity", h.GetActivity)

		protected.GET("/houses/:id/rooms", h.ListRooms)
		protected.POST("/houses/:id/rooms", h.CreateRoom)
		protected.PUT("/rooms/:id", h.UpdateRoom)
		protected.DELETE("/rooms/:id", h.DeleteRoom)
		protected.DELETE("/rooms/:id/permanent", h.PermanentDeleteRoom)

		protected.GET("/houses/:id/appliances", h.ListAppliances)
		protected.POST("/houses/:id/appliances", h.CreateAppliance)
		protected.GET("/appliances/:id", h.GetAppliance)
		protected.PUT("/appliances/:id", h.UpdateAppliance)
		protected.DELETE("/appliances/:id", h.DeleteAppliance)
		protected.DELETE("/appliances/:id/permanent", h.PermanentDeleteAppliance)

		protected.GET("/appliances/:id/repairs", h.ListRepairs)
		protected.POST("/appliances/:id/repairs", h.CreateRepair)
		protected.PUT("/repairs/:id", h.UpdateRepair)
		protected.DELETE("/repairs/:id", h.DeleteRepair)

		protected.GET("/appliances/:id/attachments", h.ListAttachments)
		protected.POST("/appliances/:id/attachments", h.CreateAttachment)
		protected.DELETE("/attachments/:id", h.DeleteAttachment)

		protected.GET("/houses/:id/exterior/features", h.ListExteriorFeatures)
		protected.POST("/houses/:id/exterior/features", h.CreateExteriorFeature)
		protected.PUT("/exterior/features/:id", h.UpdateExteriorFeature)
		protected.DELETE("/exterior/features/:id", h.DeleteExteriorFeature)

		protected.GET("/houses/:id/exterior/maintenance", h.ListExteriorMaintenance)
		protected.POST("/houses/:id/exterior/maintenance", h.CreateExteriorMaintenance)
		protected.PUT("/exterior/maintenance/:id", h.UpdateExteriorMaintenance)
		protected.DELETE("/exterior/maintenance/:id", h.DeleteExteriorMaintenance)
	}
}
