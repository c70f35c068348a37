package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/config"
	"github.com/toptiermen/platform/internal/repository"
)

func TestCompleteOnboardingRequiresUser(t *testing.T) {
	h := &AuthHandler{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/complete", nil)
	rec := httptest.NewRecorder()
	if err := h.CompleteOnboarding(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without a user claim", rec.Code)
	}
}

func TestCompleteOnboardingReportsDatabaseFailure(t *testing.T) {
	// Port 1 refuses connections immediately; sql.Open itself never dials.
	db, err := sql.Open("mysql", "auth:auth@tcp(127.0.0.1:1)/nope?timeout=200ms")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	h := NewAuthHandler(config.Config{}, repository.NewUserRepo(db), nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/complete", nil)
	rec := httptest.NewRecorder()
	if err := h.CompleteOnboarding(memberContext(e, req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 when the update cannot run", rec.Code)
	}
}
