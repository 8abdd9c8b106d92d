package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ovchar/wa_storefront/internal/service"
	"github.com/ovchar/wa_storefront/internal/transport"
	"github.com/ovchar/wa_storefront/pkg/logging"
	authmw "github.com/ovchar/wa_storefront/pkg/middleware/auth"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, pair, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_error", "status", 401, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		l.Error("login_error", "status", 500, "reason", "cannot login", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot login")
	}

	c.SetCookie(authmw.CreateCookie(authmw.AccessCookieName, pair.AccessToken, "/", pair.AccessExp))
	c.SetCookie(authmw.CreateCookie(authmw.RefreshCookieName, pair.RefreshToken, "/", pair.RefreshExp))

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie(authmw.RefreshCookieName); err == nil && cookie.Value != "" {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			l.Error("logout_error", "status", 500, "reason", "cannot revoke refresh token", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot logout")
		}
	}

	c.SetCookie(authmw.DeleteCookie(authmw.AccessCookieName, "/"))
	c.SetCookie(authmw.DeleteCookie(authmw.RefreshCookieName, "/"))

	l.Info("logout_success")
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) CurrentUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.current_user")

	identity, ok := authmw.IdentityFromContext(ctx)
	if !ok {
		l.Warn("current_user_error", "status", 401, "reason", "no session identity")
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	user, err := h.Svc.CurrentUser(ctx, identity.UserID)
	if err != nil {
		l.Error("current_user_error", "status", 500, "reason", "cannot load user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load user")
	}

	return c.JSON(http.StatusOK, user)
}
