package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/bug-notifications", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestCreateBugNotificationValidation(t *testing.T) {
	// A nil repository doubles as proof that validation runs before any
	// database work: an insert attempt would panic.
	h := NewBugNotificationHandler(nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing userId", `{"bugReportId":2,"type":"fix","title":"t","message":"m"}`},
		{"missing bugReportId", `{"userId":1,"type":"fix","title":"t","message":"m"}`},
		{"missing type", `{"userId":1,"bugReportId":2,"title":"t","message":"m"}`},
		{"missing title", `{"userId":1,"bugReportId":2,"type":"fix","message":"m"}`},
		{"missing message", `{"userId":1,"bugReportId":2,"type":"fix","title":"t"}`},
		{"whitespace only title", `{"userId":1,"bugReportId":2,"type":"fix","title":"   ","message":"m"}`},
		{"empty body", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.Create, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"success":false`) {
				t.Errorf("body = %s, want error envelope", rec.Body.String())
			}
		})
	}
}

func TestListBugNotificationsRequiresUserID(t *testing.T) {
	h := NewBugNotificationHandler(nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/bug-notifications", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
