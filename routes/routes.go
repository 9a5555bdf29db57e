package routes

import (
	"net/http"
	"time"

	"seatwise/handlers"
	"seatwise/middleware"
	"seatwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers unit management and the public status view.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		// Public status view: anyone picking a seat can read it.
		api.GET("/:providerID/status", hb.GetUnitStatusesHandler)

		// Unit management requires a provider token.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthProviderMiddleware())
		protected.POST("/units", hb.CreateUnitHandler)
		protected.GET("/units", hb.ListUnitsHandler)
		protected.PATCH("/units/:unitID", hb.UpdateUnitHandler)
		protected.DELETE("/units/:unitID", hb.DeleteUnitHandler)
	}
}

// RegisterReservationRoutes registers the request and approval endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		requester := api.Group("")
		requester.Use(middleware.JWTAuthUserMiddleware())
		requester.POST("", hb.CreateReservationHandler)
		requester.GET("/mine", hb.ListMyReservationsHandler)
		requester.GET("/:id", hb.GetReservationHandler)
		requester.PUT("/:id/payment-ref", hb.AttachPaymentRefHandler)

		provider := api.Group("/provider")
		provider.Use(middleware.JWTAuthProviderMiddleware())
		provider.GET("/incoming", hb.ListProviderReservationsHandler)
		provider.GET("/:id", hb.GetReservationHandler)
		provider.PUT("/:id/decision", hb.DecideReservationHandler)
	}
}

// RegisterEventRoutes registers the change stream endpoint.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.GET("/:providerID", hb.StreamEventsHandler)
	}
}

// RegisterDeviceRoutes registers push token endpoints.
func RegisterDeviceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/devices")
	{
		user := api.Group("/user")
		user.Use(middleware.JWTAuthUserMiddleware())
		user.PUT("/push-token", hb.UpdateUserPushTokenHandler)

		provider := api.Group("/provider")
		provider.Use(middleware.JWTAuthProviderMiddleware())
		provider.PUT("/push-token", hb.UpdateProviderPushTokenHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCatalogRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterDeviceRoutes(r, hb)
	RegisterHealthRoute(r)
}
