package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/repository"
)

// ReferralHandler reports a member's real referral record: every user
// who signed up with their code.  Nothing here is synthesized; a
// member with no referrals sees zeros.
type ReferralHandler struct {
	Users     *repository.UserRepo
	Referrals *repository.ReferralRepo
}

func NewReferralHandler(u *repository.UserRepo, r *repository.ReferralRepo) *ReferralHandler {
	return &ReferralHandler{Users: u, Referrals: r}
}

type referralResp struct {
	ReferralCode string                    `json:"referral_code"`
	Total        int                       `json:"total"`
	Completed    int                       `json:"completed_onboarding"`
	Referred     []repository.ReferredUser `json:"referred"`
}

func (h *ReferralHandler) Get(c echo.Context) error {
	uid := currentUserID(c)
	if uid == 0 {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "load user failed")
	}

	resp := referralResp{ReferralCode: u.ReferralCode, Referred: []repository.ReferredUser{}}
	if total, completed, err := h.Referrals.CountByCode(ctx, u.ReferralCode); err == nil {
		resp.Total = total
		resp.Completed = completed
	}
	if list, err := h.Referrals.ListByCode(ctx, u.ReferralCode); err == nil {
		resp.Referred = list
	}
	return respondOK(c, http.StatusOK, resp)
}
