package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovchar/wa_storefront/internal/models"
	authmw "github.com/ovchar/wa_storefront/pkg/middleware/auth"
	"github.com/ovchar/wa_storefront/pkg/tokens"
)

func TestLoginHandler(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": "admin",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	user := decodeJSON[models.User](t, rec)
	assert.Equal(t, "admin", user.Username)
	assert.Empty(t, user.PasswordHash, "password hash must not leak")

	cookies := rec.Result().Cookies()
	access := cookieByName(cookies, authmw.AccessCookieName)
	refresh := cookieByName(cookies, authmw.RefreshCookieName)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
	assert.NotEmpty(t, access.Value)
	assert.NotEmpty(t, refresh.Value)
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/login", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutHandler(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.loginAdmin(t)

	rec := env.do(t, http.MethodPost, "/api/logout", nil, cookies...)
	require.Equal(t, http.StatusNoContent, rec.Code)

	cleared := rec.Result().Cookies()
	access := cookieByName(cleared, authmw.AccessCookieName)
	require.NotNil(t, access)
	assert.Empty(t, access.Value)

	// The revoked refresh token can no longer rotate an expired session.
	var admin models.User
	require.NoError(t, env.DB.Where("username = ?", "admin").First(&admin).Error)
	expired, err := tokens.NewAccessToken(admin.ID, admin.Role, []byte("test-access-secret"), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	refresh := cookieByName(cookies, authmw.RefreshCookieName)
	rec = env.do(t, http.MethodGet, "/api/user", nil,
		&http.Cookie{Name: authmw.AccessCookieName, Value: expired, Path: "/"},
		refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCurrentUserHandler(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.loginAdmin(t)

	rec := env.do(t, http.MethodGet, "/api/user", nil, cookies...)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	user := decodeJSON[models.User](t, rec)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "admin", user.Role)
}
