// Package router wires handlers to routes.  Public endpoints live
// directly under /api, member endpoints require a MEMBER or ADMIN
// token and admin endpoints require ADMIN.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/handler"
)

// RegisterRoutes registers endpoints that need no authentication: the
// health check, session management and the registration flow (a
// prospect has no account yet).
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, reg *handler.RegistrationHandler) {
	e.GET("/healthz", handler.Health)

	auth := e.Group("/api/auth")
	auth.POST("/login", a.Login)
	auth.POST("/refresh", a.Refresh)
	auth.POST("/logout", a.Logout)

	flow := e.Group("/api/registration")
	flow.POST("/start", reg.Start)
	flow.GET("/:id", reg.Get)
	flow.POST("/:id/answers", reg.Answers)
	flow.POST("/:id/package", reg.Package)
	flow.POST("/:id/register", reg.Register)
	flow.POST("/:id/payment", reg.Payment)
}
