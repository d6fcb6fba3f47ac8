package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	accessTokenTTL  = 30 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Provider issues and verifies HMAC-SHA256 signed tokens. Verification
// is fully stateless: there is no revocation list, a token is good
// until it expires.
type Provider struct {
	secret []byte
}

func NewProvider(salt string) *Provider {
	return &Provider{secret: []byte(salt)}
}

// CreateAccessToken embeds the user ID and expires in 30 minutes.
func (p *Provider) CreateAccessToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(accessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// CreateRefreshToken carries no subject, only a jti and a 7 day expiry.
func (p *Provider) CreateRefreshToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// GetUserPk verifies the signature and extracts the user ID claim.
func (p *Provider) GetUserPk(tokenString string) (int64, error) {
	token, err := p.parse(tokenString)
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims format")
	}

	raw, ok := claims["userId"]
	if !ok {
		return 0, errors.New("token carries no userId claim")
	}

	switch v := raw.(type) {
	case json.Number:
		return v.Int64()
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("unexpected userId claim type %T", raw)
	}
}

// ValidateToken returns true iff the signature verifies and the token
// is unexpired. Any parse or verification failure yields false.
func (p *Provider) ValidateToken(tokenString string) bool {
	token, err := p.parse(tokenString)
	return err == nil && token.Valid
}

func (p *Provider) parse(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(
		sanitizeToken(tokenString),
		func(t *jwt.Token) (any, error) { return p.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Numeric claims decode as json.Number; float64 would truncate
		// snowflake IDs past 53 bits.
		jwt.WithJSONNumber(),
	)
}

// FromHeader pulls the bearer token out of the Authorization header.
func FromHeader(c echo.Context) string {
	return sanitizeToken(c.Request().Header.Get(echo.HeaderAuthorization))
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
}
