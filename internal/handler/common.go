package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Every API response uses the same envelope: {"success":true,"data":…}
// on the happy path and {"success":false,"error":…} otherwise.

func respondOK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func respondErr(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}

// currentUserID extracts the authenticated user's id from the context
// values set by the JWT middleware.  JWT numeric claims decode as
// float64; some clients encode the subject as a string.
func currentUserID(c echo.Context) uint64 {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v)
	case uint64:
		return v
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
