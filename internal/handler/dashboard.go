package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/missions"
	"github.com/toptiermen/platform/internal/model"
	"github.com/toptiermen/platform/internal/repository"
)

// DashboardHandler assembles the member home screen: missions due
// today, XP balance, badge count and recent XP history.  Optional
// sub-metrics degrade to zero instead of failing the whole response.
type DashboardHandler struct {
	Missions missions.Store
	XP       *repository.XPRepo
	Badges   *repository.BadgeRepo
}

func NewDashboardHandler(store missions.Store, xp *repository.XPRepo, badges *repository.BadgeRepo) *DashboardHandler {
	return &DashboardHandler{Missions: store, XP: xp, Badges: badges}
}

type dashboardResp struct {
	Missions    []missionResp       `json:"missions"`
	MissionsDue int                 `json:"missions_due"`
	TotalXP     int                 `json:"total_xp"`
	BadgeCount  int                 `json:"badge_count"`
	RecentXP    []xpTransactionResp `json:"recent_xp"`
}

type xpTransactionResp struct {
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *DashboardHandler) Get(c echo.Context) error {
	uid := currentUserID(c)
	if uid == 0 {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var resp dashboardResp
	today := missions.Today()

	list, err := h.Missions.List(ctx, uid)
	if err != nil {
		list = nil // missions are optional on the dashboard
	}
	resp.Missions = make([]missionResp, 0, len(list))
	for _, m := range list {
		mr := toMissionResp(m, today)
		resp.Missions = append(resp.Missions, mr)
		if !mr.Completed && m.FrequencyType == model.FrequencyDaily {
			resp.MissionsDue++
		}
	}

	if total, err := h.XP.Balance(ctx, uid); err == nil {
		resp.TotalXP = total
	}
	if n, err := h.Badges.CountForUser(ctx, uid); err == nil {
		resp.BadgeCount = n
	}
	if txs, err := h.XP.RecentTransactions(ctx, uid, 10); err == nil {
		resp.RecentXP = make([]xpTransactionResp, 0, len(txs))
		for _, t := range txs {
			resp.RecentXP = append(resp.RecentXP, xpTransactionResp{
				Amount: t.Amount, Reason: t.Reason, Reference: t.Reference, CreatedAt: t.CreatedAt,
			})
		}
	}
	return respondOK(c, http.StatusOK, resp)
}
