package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/infrastructure/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSalt = "test-salt"

type stubUserRepo struct {
	users map[int64]*entity.User
}

func (s *stubUserRepo) FindActiveByID(id int64) (*entity.User, error) {
	return s.users[id], nil
}

func newTestHandler(repo UserRepository) echo.HandlerFunc {
	mw := NewAuthMiddleware(&AuthMiddlewareConfig{
		UserRepo: repo,
		Tokens:   token.NewProvider(testSalt),
	})
	return mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
}

func invoke(t *testing.T, handler echo.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, handler(c))
	return rec
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	handler := newTestHandler(&stubUserRepo{})
	rec := invoke(t, handler, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	handler := newTestHandler(&stubUserRepo{})
	rec := invoke(t, handler, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ForgedToken(t *testing.T) {
	forged, err := token.NewProvider("attacker-salt").CreateAccessToken(42)
	require.NoError(t, err)

	handler := newTestHandler(&stubUserRepo{})
	rec := invoke(t, handler, "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": int64(42),
		"iat":    now.Add(-time.Hour).Unix(),
		"exp":    now.Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSalt))
	require.NoError(t, err)

	handler := newTestHandler(&stubUserRepo{})
	rec := invoke(t, handler, "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_WithdrawnUser(t *testing.T) {
	tok, err := token.NewProvider(testSalt).CreateAccessToken(42)
	require.NoError(t, err)

	// Valid token, no active user behind it
	handler := newTestHandler(&stubUserRepo{})
	rec := invoke(t, handler, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_LoadsUserIntoContext(t *testing.T) {
	user := &entity.User{ID: 42, Nickname: "dayeon", Active: true}
	repo := &stubUserRepo{users: map[int64]*entity.User{42: user}}

	tok, err := token.NewProvider(testSalt).CreateAccessToken(42)
	require.NoError(t, err)

	mw := NewAuthMiddleware(&AuthMiddlewareConfig{
		UserRepo: repo,
		Tokens:   token.NewProvider(testSalt),
	})

	var seen *entity.User
	handler := mw(func(c echo.Context) error {
		seen = c.Get("user").(*entity.User)
		return c.String(http.StatusOK, "ok")
	})

	rec := invoke(t, handler, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(42), seen.ID)
}
