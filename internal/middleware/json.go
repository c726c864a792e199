package middleware

import (
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"hometasks/internal/errors"
)

// RequireJSON rejects requests whose Content-Type is not application/json.
// Parameters such as charset are allowed.
func RequireJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			mediaType, _, err := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
			if err != nil || mediaType != echo.MIMEApplicationJSON {
				return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
					Error: errors.ErrNotJSON.Error(),
					Code:  "INVALID_CONTENT_TYPE",
				})
			}
			return next(c)
		}
	}
}
