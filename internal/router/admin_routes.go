package router

import (
	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/handler"
	"github.com/toptiermen/platform/internal/middleware"
)

// AdminHandlers groups the handlers behind the admin routes.
type AdminHandlers struct {
	Stats  *handler.StatsHandler
	Bugs   *handler.BugNotificationHandler
	Emails *handler.EmailLogHandler
	Ads    *handler.AdsHandler
	Badges *handler.BadgeHandler
	XP     *handler.XPGrantHandler
}

// RegisterAdmin registers admin-scoped endpoints under /api/admin.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.Use(extra...)

	g.GET("/dashboard/stats", h.Stats.Get)

	g.POST("/bug-notifications", h.Bugs.Create)
	g.GET("/bug-notifications", h.Bugs.List)
	g.PATCH("/bug-notifications/:id/read", h.Bugs.MarkRead)

	g.GET("/email-logs", h.Emails.List)
	g.GET("/email-logs/stats", h.Emails.Stats)

	g.POST("/ads/campaigns", h.Ads.CreateCampaign)
	g.GET("/ads/campaigns/:id/insights", h.Ads.Insights)

	g.POST("/badges/:id/grant", h.Badges.Grant)
	g.POST("/xp/grant", h.XP.Grant)
}
