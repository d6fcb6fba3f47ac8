package handler

import (
	"net/http"
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type PageService interface {
	CreatePage(actor *entity.User, req *contract.CreatePageRequest) (*contract.PageResponse, apierror.ErrorResponse)
	GetPage(actor *entity.User, pageID int64) (*contract.PageResponse, apierror.ErrorResponse)
	GetPagesByDiary(actor *entity.User, diaryID int64, page, size int) ([]*contract.PageResponse, apierror.ErrorResponse)
	UpdatePage(actor *entity.User, pageID int64, req *contract.UpdatePageRequest) (*contract.PageResponse, apierror.ErrorResponse)
	DeletePage(actor *entity.User, pageID int64) apierror.ErrorResponse
}

type DefaultPageRoute struct {
	PageService PageService
}

func NewPageDefault(pageService PageService) *DefaultPageRoute {
	return &DefaultPageRoute{PageService: pageService}
}

func (h *DefaultPageRoute) CreatePage(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreatePageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	page, apierr := h.PageService.CreatePage(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, page)
}

func (h *DefaultPageRoute) GetPage(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	pageID, perr := parseIDParam(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	page, apierr := h.PageService.GetPage(user, pageID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *DefaultPageRoute) UpdatePage(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	pageID, perr := parseIDParam(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.UpdatePageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	page, apierr := h.PageService.UpdatePage(user, pageID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *DefaultPageRoute) DeletePage(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	pageID, perr := parseIDParam(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	if apierr := h.PageService.DeletePage(user, pageID); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
