package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	// Каталог залов
	gyms := protected.Group("/gyms")
	{
		gyms.POST("", h.createGym)
		gyms.GET("/nearby", h.nearbyGyms)
		gyms.GET("/:id", h.getGym)
	}

	// Чекины и привязка постов
	checkins := protected.Group("/checkins")
	{
		checkins.POST("", h.createCheckin)
		checkins.GET("", h.listCheckins)
	}
	protected.POST("/posts/verification", h.verifyPost)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
