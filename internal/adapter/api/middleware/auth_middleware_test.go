package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anniehongsk/RIT-Marketplace/internal/infrastructure/auth"
)

func newAuthFixture(t *testing.T) (*AuthMiddleware, string) {
	t.Helper()
	jwtService := auth.NewJWTService("test-secret", 3600)
	token, err := jwtService.GenerateToken(7, "annie")
	require.NoError(t, err)
	return NewAuthMiddleware(jwtService), token
}

func invoke(m *AuthMiddleware, req *http.Request) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := m.Authenticate(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, c, err
}

func TestAuthenticateWithBearerHeader(t *testing.T) {
	m, token := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec, c, err := invoke(m, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), c.Get("uid"))
	assert.Equal(t, "annie", c.Get("username"))
}

func TestAuthenticateWithQueryToken(t *testing.T) {
	m, token := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/?token="+token, nil)

	rec, _, err := invoke(m, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateMissingToken(t *testing.T) {
	m, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec, _, err := invoke(m, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	m, token := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)

	rec, _, err := invoke(m, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	m, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	rec, _, err := invoke(m, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	m, _ := newAuthFixture(t)

	other := auth.NewJWTService("other-secret", 3600)
	token, err := other.GenerateToken(7, "annie")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec, _, err := invoke(m, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
