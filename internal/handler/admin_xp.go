package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/repository"
)

// XPGrantHandler lets admins award or deduct XP outside the mission
// path, for example as a prize correction or a manual penalty.
type XPGrantHandler struct {
	XP *repository.XPRepo
}

func NewXPGrantHandler(r *repository.XPRepo) *XPGrantHandler {
	return &XPGrantHandler{XP: r}
}

type grantXPReq struct {
	UserID    uint64 `json:"userId"`
	Amount    int    `json:"amount"`
	Reason    string `json:"reason"`
	Reference string `json:"reference"`
}

// Grant applies a signed XP delta to a member.  userId, a non-zero
// amount and a reason are required; validation happens before any
// database work.
func (h *XPGrantHandler) Grant(c echo.Context) error {
	var req grantXPReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	req.Reason = strings.TrimSpace(req.Reason)
	req.Reference = strings.TrimSpace(req.Reference)
	if req.UserID == 0 || req.Amount == 0 || req.Reason == "" {
		return respondErr(c, http.StatusBadRequest, "userId, amount and reason are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.XP.Grant(ctx, req.UserID, req.Amount, req.Reason, req.Reference); err != nil {
		return respondErr(c, http.StatusInternalServerError, "grant failed")
	}
	return respondOK(c, http.StatusCreated, echo.Map{"userId": req.UserID, "amount": req.Amount})
}
