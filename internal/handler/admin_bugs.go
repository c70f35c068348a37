package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/model"
	"github.com/toptiermen/platform/internal/repository"
)

type BugNotificationHandler struct {
	Notifications *repository.BugNotificationRepo
}

func NewBugNotificationHandler(r *repository.BugNotificationRepo) *BugNotificationHandler {
	return &BugNotificationHandler{Notifications: r}
}

type createBugNotificationReq struct {
	UserID      uint64          `json:"userId"`
	BugReportID uint64          `json:"bugReportId"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Message     string          `json:"message"`
	Metadata    json.RawMessage `json:"metadata"`
}

// Create inserts a bug notification.  All five core fields are
// required; validation happens before any database work.
func (h *BugNotificationHandler) Create(c echo.Context) error {
	var req createBugNotificationReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	req.Type = strings.TrimSpace(req.Type)
	req.Title = strings.TrimSpace(req.Title)
	req.Message = strings.TrimSpace(req.Message)
	if req.UserID == 0 || req.BugReportID == 0 || req.Type == "" || req.Title == "" || req.Message == "" {
		return respondErr(c, http.StatusBadRequest, "userId, bugReportId, type, title and message are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Notifications.Create(ctx, model.BugNotification{
		UserID:      req.UserID,
		BugReportID: req.BugReportID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Metadata:    string(req.Metadata),
	})
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "create notification failed")
	}
	return respondOK(c, http.StatusCreated, echo.Map{"id": id})
}

// List returns a user's notifications plus their unread count.  The
// user is selected with the ?userId query parameter.
func (h *BugNotificationHandler) List(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("userId"), 10, 64)
	if err != nil || userID == 0 {
		return respondErr(c, http.StatusBadRequest, "userId query parameter required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Notifications.ListForUser(ctx, userID, limit)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "load notifications failed")
	}
	unread, err := h.Notifications.UnreadCount(ctx, userID)
	if err != nil {
		unread = 0 // unread count is decorative; do not fail the list
	}
	return respondOK(c, http.StatusOK, echo.Map{"notifications": list, "unread": unread})
}

// MarkRead flips a notification's read flag.
func (h *BugNotificationHandler) MarkRead(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid notification id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return respondErr(c, http.StatusNotFound, "notification not found")
		}
		return respondErr(c, http.StatusInternalServerError, "update failed")
	}
	return respondOK(c, http.StatusOK, echo.Map{"id": id, "read": true})
}
