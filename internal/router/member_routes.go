package router

import (
	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/handler"
	"github.com/toptiermen/platform/internal/middleware"
)

// MemberHandlers groups the handlers behind the member routes.
type MemberHandlers struct {
	Auth      *handler.AuthHandler
	Missions  *handler.MissionHandler
	Dashboard *handler.DashboardHandler
	Badges    *handler.BadgeHandler
	Referrals *handler.ReferralHandler
}

// RegisterMember registers member-scoped endpoints under /api.  Every
// route requires a valid JWT; admins may call member endpoints too.
func RegisterMember(e *echo.Echo, h MemberHandlers, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MEMBER", "ADMIN"),
	)
	g.Use(extra...)

	g.GET("/auth/me", h.Auth.Me)
	g.POST("/auth/logout-all", h.Auth.LogoutAll)
	g.POST("/onboarding/complete", h.Auth.CompleteOnboarding)

	g.GET("/missions", h.Missions.List)
	g.POST("/missions", h.Missions.Create)
	g.POST("/missions/:id/toggle", h.Missions.Toggle)
	g.DELETE("/missions/:id", h.Missions.Delete)

	g.GET("/dashboard", h.Dashboard.Get)
	g.GET("/badges", h.Badges.List)
	g.GET("/referrals", h.Referrals.Get)
}
