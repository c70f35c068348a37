package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/missions"
	"github.com/toptiermen/platform/internal/model"
)

// MissionHandler serves the member mission endpoints on top of the
// store chain (SQL first, file fallback).
type MissionHandler struct {
	Store missions.Store
}

func NewMissionHandler(store missions.Store) *MissionHandler {
	return &MissionHandler{Store: store}
}

type missionResp struct {
	ID                 uint64 `json:"id"`
	Title              string `json:"title"`
	FrequencyType      string `json:"frequency_type"`
	LastCompletionDate string `json:"last_completion_date,omitempty"`
	XPReward           int    `json:"xp_reward"`
	Progress           int    `json:"progress"`
	Completed          bool   `json:"completed"`
}

func toMissionResp(m model.Mission, today string) missionResp {
	return missionResp{
		ID:                 m.ID,
		Title:              m.Title,
		FrequencyType:      m.FrequencyType,
		LastCompletionDate: m.LastCompletionDate,
		XPReward:           m.XPReward,
		Progress:           m.Progress,
		Completed:          missions.IsCompleted(m, today),
	}
}

// List returns the member's missions with their current completion
// state relative to today.
func (h *MissionHandler) List(c echo.Context) error {
	uid := currentUserID(c)
	if uid == 0 {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Store.List(ctx, uid)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "load missions failed")
	}
	today := missions.Today()
	out := make([]missionResp, 0, len(list))
	for _, m := range list {
		out = append(out, toMissionResp(m, today))
	}
	return respondOK(c, http.StatusOK, out)
}

type createMissionReq struct {
	Title         string `json:"title"`
	FrequencyType string `json:"frequency_type"`
	XPReward      int    `json:"xp_reward"`
}

// Create adds a mission for the member.
func (h *MissionHandler) Create(c echo.Context) error {
	uid := currentUserID(c)
	if uid == 0 {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	var req createMissionReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return respondErr(c, http.StatusBadRequest, "title required")
	}
	switch req.FrequencyType {
	case "", model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyMonthly:
	default:
		return respondErr(c, http.StatusBadRequest, "invalid frequency_type")
	}
	if req.XPReward <= 0 {
		req.XPReward = 10
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Store.Create(ctx, model.Mission{
		UserID:        uid,
		Title:         req.Title,
		FrequencyType: req.FrequencyType,
		XPReward:      req.XPReward,
	})
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "create mission failed")
	}
	return respondOK(c, http.StatusCreated, toMissionResp(m, missions.Today()))
}

// Toggle flips a mission's completion state and reports the signed XP
// delta.  A daily mission completed today toggles back to incomplete
// with the reward deducted.
func (h *MissionHandler) Toggle(c echo.Context) error {
	uid := currentUserID(c)
	if uid == 0 {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid mission id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Store.Toggle(ctx, uid, id)
	if err != nil {
		if errors.Is(err, missions.ErrNotFound) {
			return respondErr(c, http.StatusNotFound, "mission not found")
		}
		return respondErr(c, http.StatusInternalServerError, "toggle failed")
	}
	return respondOK(c, http.StatusOK, echo.Map{
		"mission":   toMissionResp(res.Mission, missions.Today()),
		"completed": res.Completed,
		"xpEarned":  res.XPEarned,
	})
}

// Delete removes a mission.
func (h *MissionHandler) Delete(c echo.Context) error {
	uid := currentUserID(c)
	if uid == 0 {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid mission id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Delete(ctx, uid, id); err != nil {
		if errors.Is(err, missions.ErrNotFound) {
			return respondErr(c, http.StatusNotFound, "mission not found")
		}
		return respondErr(c, http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}
