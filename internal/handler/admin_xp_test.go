package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestGrantXPValidation(t *testing.T) {
	// A nil repository doubles as proof that validation runs before any
	// database work: an insert attempt would panic.
	h := NewXPGrantHandler(nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing userId", `{"amount":50,"reason":"challenge winner"}`},
		{"zero amount", `{"userId":7,"amount":0,"reason":"challenge winner"}`},
		{"missing reason", `{"userId":7,"amount":50}`},
		{"whitespace reason", `{"userId":7,"amount":50,"reason":"   "}`},
		{"empty body", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/admin/xp/grant", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			if err := h.Grant(e.NewContext(req, rec)); err != nil {
				t.Fatal(err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"success":false`) {
				t.Errorf("body = %s, want error envelope", rec.Body.String())
			}
		})
	}
}
