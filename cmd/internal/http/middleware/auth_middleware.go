package middleware

import (
	"net/http"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/infrastructure/token"
	"ustory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type TokenVerifier interface {
	GetUserPk(tokenString string) (int64, error)
	ValidateToken(tokenString string) bool
}

type UserRepository interface {
	FindActiveByID(id int64) (*entity.User, error)
}

type AuthMiddlewareConfig struct {
	UserRepo UserRepository
	Tokens   TokenVerifier
}

// NewAuthMiddleware rejects requests without a valid bearer token and
// loads the verified user into the request context for handlers.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := token.FromHeader(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, apierror.UnauthorizedError)
			}

			if !cfg.Tokens.ValidateToken(raw) {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			userID, err := cfg.Tokens.GetUserPk(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := cfg.UserRepo.FindActiveByID(userID)
			if err != nil {
				log.Errorf("failed to load user %d: %v", userID, err)
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if user == nil {
				// Withdrawn user still holding a valid token.
				return c.JSON(http.StatusUnauthorized, apierror.UnauthorizedError)
			}

			c.Set("user", user)
			c.Set("userId", userID)
			return next(c)
		}
	}
}
