// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fullapp/internal/delivery/api/middleware"
	"fullapp/internal/delivery/api/router/handler"
	"fullapp/internal/domain/entity"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echoprometheus.NewHandler())

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.GET("/me", r.userHandler.Me, r.authMiddleware.Authenticate)
	}

	productsGroup := api.Group("/products")
	{
		productsGroup.GET("", r.productHandler.List)
		productsGroup.GET("/:id", r.productHandler.Get)
		productsGroup.POST("", r.productHandler.Create, r.authMiddleware.Authenticate)
		productsGroup.PUT("/:id", r.productHandler.Update, r.authMiddleware.Authenticate)
		productsGroup.DELETE("/:id", r.productHandler.Delete,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleAdmin),
		)
	}
}
