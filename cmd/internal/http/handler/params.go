package handler

import (
	"strconv"
	"ustory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

func parseIDParam(c echo.Context, name string) (int64, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError(name, "int64")
	}

	if id <= 0 {
		return 0, apierror.InvalidIDError
	}
	return id, nil
}

func parseIDQuery(c echo.Context, name string) (int64, apierror.ErrorResponse) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, apierror.NewMissingParamError(name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError(name, "int64")
	}

	if id <= 0 {
		return 0, apierror.InvalidIDError
	}
	return id, nil
}
