package token

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSalt = "test-salt"

func TestAccessToken_RoundTrip(t *testing.T) {
	p := NewProvider(testSalt)

	tok, err := p.CreateAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	assert.True(t, p.ValidateToken(tok))

	userID, err := p.GetUserPk(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

// Snowflake IDs exceed float64's 53-bit mantissa; consecutive IDs from
// one node differ only in the low sequence bits, so any precision loss
// in the claim round trip resolves the token to an adjacent user.
func TestAccessToken_RoundTripSnowflakeIDs(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	p := NewProvider(testSalt)
	for range 5 {
		userID := node.Generate().Int64()

		tok, err := p.CreateAccessToken(userID)
		require.NoError(t, err)

		got, err := p.GetUserPk(tok)
		require.NoError(t, err)
		require.Equal(t, userID, got)
	}
}

func TestValidateToken_ForgedSecret(t *testing.T) {
	tok, err := NewProvider("attacker-salt").CreateAccessToken(42)
	require.NoError(t, err)

	p := NewProvider(testSalt)
	assert.False(t, p.ValidateToken(tok))

	_, err = p.GetUserPk(tok)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": int64(42),
		"iat":    now.Add(-time.Hour).Unix(),
		"exp":    now.Add(-time.Minute).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSalt))
	require.NoError(t, err)

	p := NewProvider(testSalt)
	assert.False(t, p.ValidateToken(tok))
}

func TestValidateToken_RejectsOtherSigningMethods(t *testing.T) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": int64(42),
		"iat":    now.Unix(),
		"exp":    now.Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSalt))
	require.NoError(t, err)

	assert.False(t, NewProvider(testSalt).ValidateToken(tok))
}

func TestValidateToken_Garbage(t *testing.T) {
	p := NewProvider(testSalt)
	assert.False(t, p.ValidateToken("not.a.token"))
	assert.False(t, p.ValidateToken(""))
}

func TestRefreshToken_CarriesNoUser(t *testing.T) {
	p := NewProvider(testSalt)

	tok, err := p.CreateRefreshToken()
	require.NoError(t, err)
	assert.True(t, p.ValidateToken(tok))

	_, err = p.GetUserPk(tok)
	assert.Error(t, err)
}

func TestFromHeader(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer abc123")
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "abc123", FromHeader(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "", FromHeader(c))
}
