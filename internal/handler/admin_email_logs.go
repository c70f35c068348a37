package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/repository"
)

type EmailLogHandler struct {
	Logs *repository.EmailLogRepo
}

func NewEmailLogHandler(r *repository.EmailLogRepo) *EmailLogHandler {
	return &EmailLogHandler{Logs: r}
}

// List returns email log rows, newest first.  Optional filters:
// ?status=sent|failed|queued and ?recipient=substring.
func (h *EmailLogHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Logs.List(ctx, c.QueryParam("status"), c.QueryParam("recipient"), limit)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "load email logs failed")
	}
	return respondOK(c, http.StatusOK, list)
}

// Stats aggregates sends per status.  ?days=N restricts the window;
// the default covers all history.
func (h *EmailLogHandler) Stats(c echo.Context) error {
	var since time.Time
	if days, err := strconv.Atoi(c.QueryParam("days")); err == nil && days > 0 {
		since = time.Now().UTC().AddDate(0, 0, -days)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	counts, err := h.Logs.CountsByStatus(ctx, since)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "load email stats failed")
	}
	return respondOK(c, http.StatusOK, counts)
}
