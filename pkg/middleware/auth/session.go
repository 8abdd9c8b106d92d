package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ovchar/wa_storefront/pkg/tokens"
)

// RotatedPair is a freshly issued cookie pair after a refresh rotation.
type RotatedPair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

// Refresher rotates an expired session against the identity provider.
type Refresher interface {
	Rotate(ctx context.Context, refreshToken string) (*RotatedPair, error)
}

// SessionGate validates the session cookie on every gated request and
// attaches the resolved identity to the request context. There is no
// process-wide auth state: each request carries its own session.
type SessionGate struct {
	JWTSecret []byte
	Sessions  Refresher
}

func NewSessionGate(secret []byte, sessions Refresher) *SessionGate {
	return &SessionGate{JWTSecret: secret, Sessions: sessions}
}

type identityKey struct{}

type Identity struct {
	UserID uint
	Role   string
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

func (g *SessionGate) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessCookie, err := c.Cookie(AccessCookieName)
		if err != nil || accessCookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
		}

		claims, err := tokens.AccessClaimsFromToken(accessCookie.Value, g.JWTSecret)
		if err == nil && claims != nil {
			return g.proceed(c, next, claims)
		}

		if !errors.Is(err, jwt.ErrTokenExpired) {
			clearSessionCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
		}

		refreshCookie, rErr := c.Cookie(RefreshCookieName)
		if rErr != nil || refreshCookie.Value == "" {
			clearSessionCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
		}

		pair, refErr := g.Sessions.Rotate(c.Request().Context(), refreshCookie.Value)
		if refErr != nil {
			clearSessionCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "session refresh failed")
		}

		c.SetCookie(CreateCookie(AccessCookieName, pair.AccessToken, "/", pair.AccessExp))
		c.SetCookie(CreateCookie(RefreshCookieName, pair.RefreshToken, "/", pair.RefreshExp))

		newClaims, pErr := tokens.AccessClaimsFromToken(pair.AccessToken, g.JWTSecret)
		if pErr != nil || newClaims == nil {
			clearSessionCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "new session token invalid")
		}

		return g.proceed(c, next, newClaims)
	}
}

func (g *SessionGate) proceed(c echo.Context, next echo.HandlerFunc, claims *tokens.AccessClaims) error {
	userID, err := claims.UserID()
	if err != nil {
		clearSessionCookies(c)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid session subject")
	}

	id := Identity{UserID: userID, Role: claims.Role}
	c.Set("user_id", id.UserID)
	c.Set("role", id.Role)

	req := c.Request().WithContext(context.WithValue(c.Request().Context(), identityKey{}, id))
	c.SetRequest(req)

	return next(c)
}

func clearSessionCookies(c echo.Context) {
	c.SetCookie(DeleteCookie(AccessCookieName, "/"))
	c.SetCookie(DeleteCookie(RefreshCookieName, "/"))
}
