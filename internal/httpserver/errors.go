package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/user_service/internal/permissions"
	"github.com/Skotchmaster/user_service/internal/service"
	"github.com/Skotchmaster/user_service/internal/transport"
)

// httpError maps service failures onto the wire taxonomy. Whether a missing
// user is 400 or 404 depends on the operation, so notFoundCode is explicit.
func httpError(err error, notFoundCode int) error {
	var fieldErr transport.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fieldErr.Error())
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(notFoundCode, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInactiveAccount),
		errors.Is(err, service.ErrSamePassword):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidAccessToken),
		errors.Is(err, service.ErrInvalidRefreshToken):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, permissions.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
