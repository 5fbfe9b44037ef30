package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/user_service/internal/models"
	"github.com/Skotchmaster/user_service/internal/repo"
	"github.com/Skotchmaster/user_service/pkg/tokens"
)

const principalKey = "principal"

type Auth struct {
	Tokens *tokens.Handler
	Repo   *repo.GormRepo
}

func NewAuth(handler *tokens.Handler, r *repo.GormRepo) *Auth {
	return &Auth{Tokens: handler, Repo: r}
}

// RequireAuth decodes the bearer access token and loads the acting principal
// into the request context for the handlers behind it.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := m.Tokens.DecodeAccess(strings.TrimPrefix(header, prefix))
		if err != nil {
			if errors.Is(err, tokens.ErrExpiredToken) {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token expired")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		user, err := m.Repo.GetByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
		if !user.IsActive {
			return echo.NewHTTPError(http.StatusUnauthorized, "account is not active")
		}

		c.Set(principalKey, user)
		return next(c)
	}
}

// Principal returns the user loaded by RequireAuth, nil outside of it.
func Principal(c echo.Context) *models.User {
	if u, ok := c.Get(principalKey).(*models.User); ok {
		return u
	}
	return nil
}
