package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Skotchmaster/academic_records/internal/repo"
	"github.com/Skotchmaster/academic_records/internal/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoles struct {
	mu    sync.Mutex
	roles map[uint]string
	err   error
	calls int
}

func (f *fakeRoles) FindRoleNameForUserID(_ context.Context, id uint) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	r, ok := f.roles[id]
	if !ok {
		return "", repo.ErrNotFound
	}
	return r, nil
}

type guardEnv struct {
	e     *echo.Echo
	codec *tokens.Codec
	roles *fakeRoles
}

func newGuardEnv(t *testing.T) *guardEnv {
	t.Helper()

	codec := tokens.NewCodec([]byte("test-jwt-secret"), tokens.DefaultTTL)
	roles := &fakeRoles{roles: map[uint]string{}}
	g := NewGuard(codec, roles)

	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		ctxClaims, ok := ClaimsFromContext(c.Request().Context())
		if !ok || ctxClaims != claims {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, echo.Map{"user_id": claims.UserID, "role_name": claims.RoleName})
	}, g.RequireAuth)
	e.GET("/registrar", func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentRole(c))
	}, g.RequireAuth, g.RequireRole("Registrar"))

	return &guardEnv{e: e, codec: codec, roles: roles}
}

func (env *guardEnv) do(t *testing.T, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *guardEnv) token(t *testing.T, id uint, role string) string {
	t.Helper()
	tok, err := env.codec.Issue(id, "u@x.com", role)
	require.NoError(t, err)
	return tok
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc", want: "abc", ok: true},
		{header: "bearer abc", want: "abc", ok: true},
		{header: "  Bearer   abc  ", want: "abc", ok: true},
		{header: "Bearer", ok: false},
		{header: "Bearer ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "abc", ok: false},
		{header: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func TestRequireAuth(t *testing.T) {
	env := newGuardEnv(t)

	rec := env.do(t, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, "/me", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, "/me", "Bearer "+env.token(t, 3, "Student"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":3,"role_name":"Student"}`, rec.Body.String())
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	env := newGuardEnv(t)

	old := tokens.NewCodec([]byte("test-jwt-secret"), tokens.DefaultTTL)
	old.Now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	tok, err := old.Issue(3, "u@x.com", "Student")
	require.NoError(t, err)

	rec := env.do(t, "/me", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	env := newGuardEnv(t)
	env.roles.roles[1] = "Student"
	env.roles.roles[2] = "Registrar"

	rec := env.do(t, "/registrar", "Bearer "+env.token(t, 1, "Student"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, "/registrar", "Bearer "+env.token(t, 2, "Registrar"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Registrar", rec.Body.String())

	rec = env.do(t, "/registrar", "Bearer "+env.token(t, 99, "Registrar"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequireRole_UsesCurrentRoleNotToken(t *testing.T) {
	env := newGuardEnv(t)
	env.roles.roles[1] = "Student"

	promoted := env.token(t, 1, "Student")
	env.roles.roles[1] = "Registrar"
	rec := env.do(t, "/registrar", "Bearer "+promoted)
	assert.Equal(t, http.StatusOK, rec.Code)

	demoted := env.token(t, 1, "Registrar")
	env.roles.roles[1] = "Student"
	rec = env.do(t, "/registrar", "Bearer "+demoted)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_UnauthenticatedShortCircuits(t *testing.T) {
	env := newGuardEnv(t)

	rec := env.do(t, "/registrar", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, env.roles.calls)
}

func TestRequireRole_StoreFailure(t *testing.T) {
	env := newGuardEnv(t)
	env.roles.err = errors.Join(repo.ErrUnavailable, errors.New("connection refused"))

	rec := env.do(t, "/registrar", "Bearer "+env.token(t, 1, "Registrar"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequireRole_WithoutRequireAuth(t *testing.T) {
	g := NewGuard(tokens.NewCodec([]byte("s"), 0), &fakeRoles{})
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := g.RequireRole("Admin")(func(c echo.Context) error { return nil })(c)
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
