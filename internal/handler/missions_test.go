package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/missions"
)

func newMissionHandler(t *testing.T) *MissionHandler {
	t.Helper()
	store, err := missions.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewMissionHandler(store)
}

func memberContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	// JWT numeric claims arrive as float64.
	c.Set("user_id", float64(7))
	return c
}

func createMission(t *testing.T, e *echo.Echo, h *MissionHandler, body string) uint64 {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/missions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Create(memberContext(e, req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Data struct {
			ID uint64 `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	return out.Data.ID
}

func TestMissionToggleRoundTrip(t *testing.T) {
	e := echo.New()
	h := newMissionHandler(t)
	id := createMission(t, e, h, `{"title":"Cold shower","xp_reward":20}`)

	toggle := func() (bool, int) {
		req := httptest.NewRequest(http.MethodPost, "/api/missions/1/toggle", nil)
		rec := httptest.NewRecorder()
		c := memberContext(e, req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")
		if err := h.Toggle(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var out struct {
			Data struct {
				Completed bool `json:"completed"`
				XPEarned  int  `json:"xpEarned"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatal(err)
		}
		return out.Data.Completed, out.Data.XPEarned
	}

	if id != 1 {
		t.Fatalf("first mission id = %d, want 1", id)
	}

	completed, xp := toggle()
	if !completed || xp != 20 {
		t.Errorf("first toggle: completed=%v xp=%d, want true/20", completed, xp)
	}
	// Toggling a mission completed today undoes it and deducts the
	// full reward.
	completed, xp = toggle()
	if completed || xp != -20 {
		t.Errorf("second toggle: completed=%v xp=%d, want false/-20", completed, xp)
	}
}

func TestMissionToggleUnknownID(t *testing.T) {
	e := echo.New()
	h := newMissionHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/missions/99/toggle", nil)
	rec := httptest.NewRecorder()
	c := memberContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := h.Toggle(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestMissionCreateValidation(t *testing.T) {
	e := echo.New()
	h := newMissionHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"xp_reward":10}`},
		{"bad frequency", `{"title":"x","frequency_type":"hourly"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/missions", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			if err := h.Create(memberContext(e, req, rec)); err != nil {
				t.Fatal(err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestMissionEndpointsRequireUser(t *testing.T) {
	e := echo.New()
	h := newMissionHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/missions", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without a user claim", rec.Code)
	}
}
