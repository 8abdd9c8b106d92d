package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/repo"
	"github.com/ovchar/wa_storefront/internal/service"
	authmw "github.com/ovchar/wa_storefront/pkg/middleware/auth"
)

type testEnv struct {
	E    *echo.Echo
	DB   *gorm.DB
	Repo *repo.GormRepo
}

// newTestEnv wires the full HTTP surface over an in-memory database so
// requests travel through the real routes and the session gate.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate tables")

	r := repo.New(db)
	require.NoError(t, r.SeedSetting(t.Context(), models.Setting{SiteName: "Storefront", Currency: "USD"}))

	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
	require.NoError(t, authSvc.SeedAdmin(t.Context(), "admin", "s3cret"))

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())

	Register(e, &Deps{
		Products:   &ProductHTTP{Svc: &service.CatalogService{Repo: r}},
		Categories: &CategoryHTTP{Svc: &service.CategoryService{Repo: r}},
		Tags:       &TagHTTP{Svc: &service.TagService{Repo: r}},
		Orders:     &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		Settings:   &SettingsHTTP{Svc: &service.SettingsService{Repo: r}},
		Auth:       &AuthHTTP{Svc: authSvc},
		Search:     &SearchHTTP{},
		Gate:       authmw.NewSessionGate([]byte("test-access-secret"), authSvc),
	})

	return &testEnv{E: e, DB: db, Repo: r}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// loginAdmin runs the real login flow and returns the session cookies.
func (env *testEnv) loginAdmin(t *testing.T) []*http.Cookie {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": "admin",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, ck := range cookies {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
