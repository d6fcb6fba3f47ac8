package handler

import (
	"net/http"
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type FriendService interface {
	SendRequest(actor *entity.User, targetID int64) (*contract.FriendResponse, apierror.ErrorResponse)
	AcceptRequest(actor *entity.User, requesterID int64) (*contract.FriendResponse, apierror.ErrorResponse)
}

type DefaultFriendRoute struct {
	FriendService FriendService
}

func NewFriendDefault(friendService FriendService) *DefaultFriendRoute {
	return &DefaultFriendRoute{FriendService: friendService}
}

func (h *DefaultFriendRoute) SendRequest(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	targetID, perr := parseIDParam(c, "userId")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	resp, apierr := h.FriendService.SendRequest(user, targetID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *DefaultFriendRoute) AcceptRequest(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	requesterID, perr := parseIDParam(c, "userId")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	resp, apierr := h.FriendService.AcceptRequest(user, requesterID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
