package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/config"
	"github.com/toptiermen/platform/internal/model"
	"github.com/toptiermen/platform/internal/onboarding"
	"github.com/toptiermen/platform/internal/payment"
	"github.com/toptiermen/platform/internal/queue"
	"github.com/toptiermen/platform/internal/repository"
	queue_publisher "github.com/toptiermen/platform/internal/service"
)

// RegistrationHandler drives the persisted registration flow.  Each
// endpoint performs one guarded transition; requests arriving out of
// order answer 409 instead of silently skipping steps.
type RegistrationHandler struct {
	Cfg      config.Config
	Flows    *repository.FlowRepo
	Users    *repository.UserRepo
	Payments *payment.Client
}

func NewRegistrationHandler(cfg config.Config, f *repository.FlowRepo, u *repository.UserRepo, p *payment.Client) *RegistrationHandler {
	return &RegistrationHandler{Cfg: cfg, Flows: f, Users: u, Payments: p}
}

type flowResp struct {
	ID          string `json:"id"`
	CurrentStep string `json:"current_step"`
	Score       int    `json:"score"`
	PackageID   string `json:"package_id,omitempty"`
	PaymentURL  string `json:"payment_url,omitempty"`
}

func toFlowResp(f model.RegistrationFlow) flowResp {
	return flowResp{
		ID:          f.ID,
		CurrentStep: f.CurrentStep,
		Score:       f.Score,
		PackageID:   f.PackageID,
		PaymentURL:  f.PaymentURL,
	}
}

// Start creates a flow and returns it along with the questionnaire
// and the package catalog so the client can render everything ahead.
func (h *RegistrationHandler) Start(c echo.Context) error {
	f := onboarding.New()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Flows.Create(ctx, f); err != nil {
		return respondErr(c, http.StatusInternalServerError, "start registration failed")
	}
	return respondOK(c, http.StatusCreated, echo.Map{
		"flow":      toFlowResp(f),
		"questions": onboarding.Questions,
		"packages":  onboarding.Packages,
	})
}

// Get returns the current flow state so a reloaded client can resume.
func (h *RegistrationHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Flows.Get(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return respondErr(c, http.StatusNotFound, "flow not found")
		}
		return respondErr(c, http.StatusInternalServerError, "load flow failed")
	}
	return respondOK(c, http.StatusOK, toFlowResp(f))
}

type answersReq struct {
	Answers map[string]string `json:"answers"`
}

// Answers scores the questionnaire and advances to package selection
// or rejection.
func (h *RegistrationHandler) Answers(c echo.Context) error {
	var req answersReq
	if err := c.Bind(&req); err != nil || len(req.Answers) == 0 {
		return respondErr(c, http.StatusBadRequest, "answers required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Flows.Get(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return respondErr(c, http.StatusNotFound, "flow not found")
		}
		return respondErr(c, http.StatusInternalServerError, "load flow failed")
	}
	if err := onboarding.SubmitAnswers(&f, req.Answers); err != nil {
		return respondErr(c, http.StatusConflict, "questionnaire already submitted")
	}
	if err := h.Flows.Save(ctx, f); err != nil {
		return respondErr(c, http.StatusInternalServerError, "save flow failed")
	}
	return respondOK(c, http.StatusOK, toFlowResp(f))
}

type packageReq struct {
	PackageID string `json:"packageId"`
}

// Package records the chosen membership package.
func (h *RegistrationHandler) Package(c echo.Context) error {
	var req packageReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.PackageID) == "" {
		return respondErr(c, http.StatusBadRequest, "packageId required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Flows.Get(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return respondErr(c, http.StatusNotFound, "flow not found")
		}
		return respondErr(c, http.StatusInternalServerError, "load flow failed")
	}
	if err := onboarding.ChoosePackage(&f, req.PackageID); err != nil {
		if errors.Is(err, onboarding.ErrUnknownPackage) {
			return respondErr(c, http.StatusBadRequest, "unknown package")
		}
		return respondErr(c, http.StatusConflict, "package selection not allowed yet")
	}
	if err := h.Flows.Save(ctx, f); err != nil {
		return respondErr(c, http.StatusInternalServerError, "save flow failed")
	}
	return respondOK(c, http.StatusOK, toFlowResp(f))
}

type registerReq struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	ReferralCode string `json:"referralCode"` // code of the inviting member, optional
}

// Register creates the member account and advances to payment.  A
// welcome email event is published best-effort.
func (h *RegistrationHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return respondErr(c, http.StatusBadRequest, "email/password required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Flows.Get(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return respondErr(c, http.StatusNotFound, "flow not found")
		}
		return respondErr(c, http.StatusInternalServerError, "load flow failed")
	}
	if f.CurrentStep != model.StepRegister {
		return respondErr(c, http.StatusConflict, "registration not allowed yet")
	}

	referredBy := strings.TrimSpace(req.ReferralCode)
	if referredBy != "" {
		// Only accept codes that actually belong to a member.
		if _, err := h.Users.GetByReferralCode(ctx, referredBy); err != nil {
			referredBy = ""
		}
	}

	code := newReferralCode()
	uid, err := h.Users.Create(ctx, req.Email, req.Password, "MEMBER", code, referredBy, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return respondErr(c, http.StatusConflict, "email already exists")
		}
		return respondErr(c, http.StatusInternalServerError, "create user failed")
	}
	if err := onboarding.AttachUser(&f, uid); err != nil {
		return respondErr(c, http.StatusConflict, "registration not allowed yet")
	}
	if err := h.Flows.Save(ctx, f); err != nil {
		return respondErr(c, http.StatusInternalServerError, "save flow failed")
	}

	// Best-effort: a broker outage must not block signups.
	_ = queue_publisher.PublishEmailQueued(ctx, queue.EmailQueuedEvent{
		MessageID: uuid.NewString(),
		Recipient: req.Email,
		EmailType: "welcome",
		Subject:   "Welcome to Top Tier Men",
		QueuedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return respondOK(c, http.StatusCreated, echo.Map{
		"flow":          toFlowResp(f),
		"user_id":       uid,
		"referral_code": code,
	})
}

// Payment creates the hosted checkout for the chosen package and
// completes the flow.  The client follows the returned URL.
func (h *RegistrationHandler) Payment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	f, err := h.Flows.Get(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return respondErr(c, http.StatusNotFound, "flow not found")
		}
		return respondErr(c, http.StatusInternalServerError, "load flow failed")
	}
	if f.CurrentStep != model.StepPayment {
		return respondErr(c, http.StatusConflict, "payment not allowed yet")
	}
	pkg, ok := onboarding.PackageByID(f.PackageID)
	if !ok {
		return respondErr(c, http.StatusConflict, "flow has no package")
	}

	checkout, err := h.Payments.CreateCheckout(ctx, payment.CheckoutRequest{
		Amount:      pkg.PriceMajor,
		Description: pkg.Title,
		RedirectURL: h.Cfg.CheckoutRedirectURL,
		Metadata:    map[string]string{"flow_id": f.ID, "package_id": pkg.ID},
	})
	if err != nil {
		return respondErr(c, http.StatusBadGateway, "create checkout failed")
	}
	if err := onboarding.AttachPayment(&f, checkout.CheckoutURL); err != nil {
		return respondErr(c, http.StatusConflict, "payment not allowed yet")
	}
	if err := h.Flows.Save(ctx, f); err != nil {
		return respondErr(c, http.StatusInternalServerError, "save flow failed")
	}
	return respondOK(c, http.StatusOK, echo.Map{
		"flow":         toFlowResp(f),
		"checkout_url": checkout.CheckoutURL,
	})
}

// newReferralCode derives a short shareable code.
func newReferralCode() string {
	return "TTM-" + strings.ToUpper(uuid.NewString()[:8])
}
