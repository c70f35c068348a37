package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/repository"
)

// StatsHandler serves the admin dashboard snapshot.  The repository
// applies a per-metric fallback, so this endpoint always answers 200
// even when every underlying count query errors.
type StatsHandler struct {
	Stats *repository.StatsRepo
}

func NewStatsHandler(s *repository.StatsRepo) *StatsHandler { return &StatsHandler{Stats: s} }

func (h *StatsHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	return respondOK(c, http.StatusOK, h.Stats.Snapshot(ctx))
}
