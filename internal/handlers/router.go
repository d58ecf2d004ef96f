package handlers

import (
	"net/http"

	"cartmart-be/internal/logger"
	"cartmart-be/internal/middleware"
	"cartmart-be/internal/user"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Product   *ProductHandler
	Order     *OrderHandler
	Dashboard *DashboardHandler
}

// NewRouter wires the full REST surface under /api.
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())
	r.Use(middleware.Authenticate())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth", middleware.RateLimit(middleware.TierStrict))
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	users := api.Group("/users")
	{
		users.GET("/me", middleware.RequireAuth(), h.User.Me)
		users.GET("", middleware.RequireRole(), h.User.List)
		users.PATCH("/:id/active", middleware.RequireRole(), h.User.SetActive)
	}

	products := api.Group("/products", middleware.RateLimit(middleware.TierFrontend))
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", middleware.RequireRole(user.RoleSeller), h.Product.Create)
		products.PATCH("/:id", middleware.RequireRole(user.RoleSeller), h.Product.Update)
		products.DELETE("/:id", middleware.RequireRole(user.RoleSeller), h.Product.Disable)
	}

	orders := api.Group("/orders", middleware.RequireAuth(), middleware.RateLimit(middleware.TierGeneral))
	{
		orders.POST("", middleware.RateLimit(middleware.TierStrict), h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/:id/payment", h.Order.GetPayment)
		orders.PATCH("/:id/status", middleware.RequireRole(), h.Order.UpdateStatus)
	}

	dashboards := api.Group("/dashboard", middleware.RequireAuth())
	{
		dashboards.GET("/stats", middleware.RequireRole(), h.Dashboard.AdminStats)
		dashboards.GET("/seller", middleware.RequireRole(user.RoleSeller), h.Dashboard.SellerOverview)
	}

	return r
}
