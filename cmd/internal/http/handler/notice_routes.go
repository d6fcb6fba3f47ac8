package handler

import (
	"net/http"
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type NoticeService interface {
	SendNotice(req *contract.SendNoticeRequest) (*contract.NoticeResponse, apierror.ErrorResponse)
	GetNotices(userID, requestTime int64, page, size int) ([]*contract.NoticeResponse, apierror.ErrorResponse)
	DeleteNoticeByID(userID, noticeID int64) apierror.ErrorResponse
	DeleteAllByUser(userID int64) apierror.ErrorResponse
	DeleteSelected(userID int64, noticeIDs []int64) apierror.ErrorResponse
}

type DefaultNoticeRoute struct {
	NoticeService NoticeService
}

func NewNoticeDefault(noticeService NoticeService) *DefaultNoticeRoute {
	return &DefaultNoticeRoute{NoticeService: noticeService}
}

func (h *DefaultNoticeRoute) GetNotices(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	requestTime := utils.NowUTC()
	if raw := c.QueryParam("requestTime"); raw != "" {
		parsed, err := utils.ParseEpoch(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("requestTime", "RFC3339 timestamp"))
		}
		requestTime = parsed
	}

	page, size := utils.ParsePaging(c)
	notices, apierr := h.NoticeService.GetNotices(user.ID, requestTime, page, size)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"notices": notices}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultNoticeRoute) SendNotice(c echo.Context) error {
	var req contract.SendNoticeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	notice, apierr := h.NoticeService.SendNotice(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, notice)
}

func (h *DefaultNoticeRoute) DeleteNotice(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	noticeID, perr := parseIDParam(c, "noticeId")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	if apierr := h.NoticeService.DeleteNoticeByID(user.ID, noticeID); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DefaultNoticeRoute) DeleteAllNotices(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := h.NoticeService.DeleteAllByUser(user.ID); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DefaultNoticeRoute) DeleteSelected(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.DeleteSelectedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := h.NoticeService.DeleteSelected(user.ID, req.NoticeIDs); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
