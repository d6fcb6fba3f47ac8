package handler

import (
	"net/http"
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type DiaryService interface {
	CreateDiary(actor *entity.User, req *contract.CreateDiaryRequest) (*contract.DiaryResponse, apierror.ErrorResponse)
	GetDiary(actor *entity.User, diaryID int64) (*contract.DiaryResponse, apierror.ErrorResponse)
	SearchDiaries(actor *entity.User, category string, page, size int) ([]*contract.DiaryResponse, apierror.ErrorResponse)
	UpdateDiary(actor *entity.User, diaryID int64, req *contract.UpdateDiaryRequest) (*contract.DiaryResponse, apierror.ErrorResponse)
	DeleteDiary(actor *entity.User, diaryID int64) apierror.ErrorResponse
	GetMembers(actor *entity.User, diaryID int64) (*contract.DiaryMembersResponse, apierror.ErrorResponse)
}

type DefaultDiaryRoute struct {
	DiaryService DiaryService
	PageService  PageService
}

func NewDiaryDefault(diaryService DiaryService, pageService PageService) *DefaultDiaryRoute {
	return &DefaultDiaryRoute{
		DiaryService: diaryService,
		PageService:  pageService,
	}
}

func (h *DefaultDiaryRoute) CreateDiary(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateDiaryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	diary, apierr := h.DiaryService.CreateDiary(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, diary)
}

func (h *DefaultDiaryRoute) GetDiary(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	diaryID, perr := parseIDParam(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	diary, apierr := h.DiaryService.GetDiary(user, diaryID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, diary)
}

func (h *DefaultDiaryRoute) SearchDiaries(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	page, size := utils.ParsePaging(c)
	diaries, apierr := h.DiaryService.SearchDiaries(user, c.QueryParam("category"), page, size)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"diaries": diaries}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultDiaryRoute) UpdateDiary(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	diaryID, perr := parseIDParam(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.UpdateDiaryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	diary, apierr := h.DiaryService.UpdateDiary(user, diaryID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, diary)
}

func (h *DefaultDiaryRoute) DeleteDiary(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	diaryID, perr := parseIDParam(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	if apierr := h.DiaryService.DeleteDiary(user, diaryID); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DefaultDiaryRoute) GetMembers(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	diaryID, perr := parseIDParam(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	members, apierr := h.DiaryService.GetMembers(user, diaryID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, members)
}

func (h *DefaultDiaryRoute) GetPages(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	diaryID, perr := parseIDParam(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	page, size := utils.ParsePaging(c)
	pages, apierr := h.PageService.GetPagesByDiary(user, diaryID, page, size)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"pages": pages}
	return c.JSON(http.StatusOK, &resp)
}
