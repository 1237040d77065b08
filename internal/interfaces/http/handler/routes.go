package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/a7delivery/backend/internal/interfaces/http/middleware"
)

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
	}
}

// RegisterRoutes registers order lifecycle routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/stats", h.Stats)
		orders.GET("/:id", h.Get)
		orders.PATCH("/:id", h.Update)
		orders.POST("/sync", h.Sync)
		orders.POST("/dispatch", h.Dispatch)
	}
}

// RegisterRoutes registers tenant settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings")
	{
		settings.GET("", h.Get)
		settings.PUT("", h.Update)
		settings.POST("/test-source", h.TestSource)
		settings.POST("/test-delivery", h.TestDelivery)
	}
}

// RegisterRoutes registers admin-only account routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", middleware.RequireAdmin())
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.DELETE("/:id", h.Delete)
		users.POST("/:id/toggle-active", h.ToggleActive)
	}
}
