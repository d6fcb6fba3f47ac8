package utils

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"strconv"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/utils/apierror"
)

func GetUserFromContext(c echo.Context) (*entity.User, apierror.ErrorResponse) {
	val := c.Get("user")
	if val == nil {
		log.Warnf("route %s attempted to read nil user from context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	user, ok := val.(*entity.User)
	if !ok {
		log.Warnf("expected user type at 'user' context key, got %T", val)
		return nil, apierror.InternalServerError
	}
	return user, nil
}

// ParsePaging reads the optional ?page= and ?size= query parameters.
// Pages are 1-based; size is clamped to [1, 100].
func ParsePaging(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	size, _ = strconv.Atoi(c.QueryParam("size"))
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return page, size
}
