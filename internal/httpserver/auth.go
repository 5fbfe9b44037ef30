package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/user_service/internal/models"
	"github.com/Skotchmaster/user_service/internal/mykafka"
	"github.com/Skotchmaster/user_service/internal/service"
	"github.com/Skotchmaster/user_service/internal/transport"
	"github.com/Skotchmaster/user_service/pkg/logging"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("register_error", "status", 422, "error", err)
		return httpError(err, http.StatusBadRequest)
	}

	user, err := h.Svc.Register(ctx, req.Email, req.Password, req.Username)
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}

	h.publish(c, user, "user_registered")

	return c.JSON(http.StatusCreated, transport.ToUserResponse(user))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}

	h.publish(c, user, "user_logged_in")

	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("refresh_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.Refresh(ctx, req.AccessToken, req.RefreshToken)
	if err != nil {
		return httpError(err, http.StatusUnauthorized)
	}

	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_change_password")

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("change_password_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("change_password_error", "status", 422, "error", err)
		return httpError(err, http.StatusBadRequest)
	}

	user, err := h.Svc.ChangePassword(ctx, req.Username, req.OldPassword, req.NewPassword)
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}

	h.publish(c, user, "password_changed")

	return c.JSON(http.StatusOK, transport.ToUserResponse(user))
}

// publish is best-effort: a broker outage never fails the request.
func (h *AuthHTTP) publish(c echo.Context, user *models.User, eventType string) {
	if h.Producer == nil {
		return
	}

	event := map[string]interface{}{
		"type":     eventType,
		"user_id":  user.ID,
		"username": user.Username,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Producer.PublishEvent(ctx, user.UUID.String(), event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka_publish_error", "error", err)
	}
}
