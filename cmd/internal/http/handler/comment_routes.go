package handler

import (
	"net/http"
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type CommentService interface {
	GetComment(paperID, commentID int64) (*contract.CommentResponse, apierror.ErrorResponse)
	GetComments(paperID, viewerID int64) ([]*contract.CommentListResponse, apierror.ErrorResponse)
	AddComment(actor *entity.User, paperID int64, req *contract.AddCommentRequest) (*contract.AddCommentResponse, apierror.ErrorResponse)
	UpdateComment(actor *entity.User, commentID int64, req *contract.UpdateCommentRequest) (*contract.UpdateCommentResponse, apierror.ErrorResponse)
	DeleteComment(actor *entity.User, commentID int64) apierror.ErrorResponse
}

type DefaultCommentRoute struct {
	CommentService CommentService
}

func NewCommentDefault(commentService CommentService) *DefaultCommentRoute {
	return &DefaultCommentRoute{CommentService: commentService}
}

func (h *DefaultCommentRoute) GetComment(c echo.Context) error {
	paperID, perr := parseIDParam(c, "paperId")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	commentID, perr := parseIDParam(c, "commentId")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	comment, apierr := h.CommentService.GetComment(paperID, commentID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *DefaultCommentRoute) GetComments(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	paperID, perr := parseIDParam(c, "paperId")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	comments, apierr := h.CommentService.GetComments(paperID, user.ID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *DefaultCommentRoute) CreateComment(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	paperID, perr := parseIDQuery(c, "paperId")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	comment, apierr := h.CommentService.AddComment(user, paperID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *DefaultCommentRoute) UpdateComment(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	commentID, perr := parseIDParam(c, "commentId")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	updated, apierr := h.CommentService.UpdateComment(user, commentID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *DefaultCommentRoute) DeleteComment(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	commentID, perr := parseIDParam(c, "commentId")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	if apierr := h.CommentService.DeleteComment(user, commentID); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
