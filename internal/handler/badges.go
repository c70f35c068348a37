package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/repository"
)

type BadgeHandler struct {
	Badges *repository.BadgeRepo
}

func NewBadgeHandler(b *repository.BadgeRepo) *BadgeHandler { return &BadgeHandler{Badges: b} }

type badgeResp struct {
	ID          uint64 `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url,omitempty"`
	Earned      bool   `json:"earned"`
}

// List returns the badge catalog annotated with which badges the
// member holds.
func (h *BadgeHandler) List(c echo.Context) error {
	uid := currentUserID(c)
	if uid == 0 {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	catalog, err := h.Badges.Catalog(ctx)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "load badges failed")
	}
	held, err := h.Badges.HeldBy(ctx, uid)
	if err != nil {
		held = map[uint64]bool{}
	}
	out := make([]badgeResp, 0, len(catalog))
	for _, b := range catalog {
		out = append(out, badgeResp{
			ID: b.ID, Slug: b.Slug, Title: b.Title,
			Description: b.Description, IconURL: b.IconURL, Earned: held[b.ID],
		})
	}
	return respondOK(c, http.StatusOK, out)
}

type grantBadgeReq struct {
	UserID uint64 `json:"userId"`
}

// Grant gives a badge to a member (admin only).
func (h *BadgeHandler) Grant(c echo.Context) error {
	badgeID, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid badge id")
	}
	var req grantBadgeReq
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return respondErr(c, http.StatusBadRequest, "userId required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Badges.Grant(ctx, req.UserID, badgeID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return respondErr(c, http.StatusConflict, "badge already granted")
		}
		return respondErr(c, http.StatusInternalServerError, "grant failed")
	}
	return respondOK(c, http.StatusCreated, echo.Map{"badge_id": badgeID, "user_id": req.UserID})
}
