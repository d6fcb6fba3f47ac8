package service

import (
	"gorm.io/gorm"
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/domain/postgres/repository"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type CommentRepository interface {
	FindByID(id int64) (*entity.Comment, error)
	FindByIDAndPage(id, pageID int64) (*entity.Comment, error)
	FindAllByPage(pageID int64) ([]*entity.Comment, error)
	Save(comment *entity.Comment) error
	Delete(comment *entity.Comment) error
}

type DefaultCommentService struct {
	CommentRepo CommentRepository
	PageRepo    PageRepository
	NoticeRepo  NoticeRepository
	Validate    *validator.Validate
}

func NewCommentService(
	commentRepo CommentRepository,
	pageRepo PageRepository,
	noticeRepo NoticeRepository,
	validate *validator.Validate,
) *DefaultCommentService {
	return &DefaultCommentService{
		CommentRepo: commentRepo,
		PageRepo:    pageRepo,
		NoticeRepo:  noticeRepo,
		Validate:    validate,
	}
}

// GetComment returns an empty-shell response when the comment does not
// exist under the given paper, matching the public read contract.
func (s *DefaultCommentService) GetComment(paperID, commentID int64) (*contract.CommentResponse, apierror.ErrorResponse) {
	comment, err := s.CommentRepo.FindByIDAndPage(commentID, paperID)
	if err != nil {
		log.Errorf("failed to fetch comment %d: %v", commentID, err)
		return nil, apierror.InternalServerError
	}

	if comment == nil {
		return &contract.CommentResponse{}, nil
	}
	return toCommentResponse(comment), nil
}

// GetComments lists a paper's comments, flagging the ones the viewer
// wrote and may therefore moderate.
func (s *DefaultCommentService) GetComments(paperID, viewerID int64) ([]*contract.CommentListResponse, apierror.ErrorResponse) {
	page, err := s.PageRepo.FindActiveByID(paperID)
	if err != nil {
		log.Errorf("failed to fetch page %d: %v", paperID, err)
		return nil, apierror.InternalServerError
	}

	if page == nil {
		return nil, apierror.NotFoundError
	}

	comments, err := s.CommentRepo.FindAllByPage(paperID)
	if err != nil {
		log.Errorf("failed to fetch comments of page %d: %v", paperID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.CommentListResponse, len(comments))
	for i, comment := range comments {
		resp[i] = &contract.CommentListResponse{
			ID:        comment.ID,
			Content:   comment.Content,
			WriterID:  comment.WriterID,
			Editable:  comment.WriterID == viewerID,
			CreatedAt: utils.FormatEpoch(comment.CreatedAt),
		}
	}
	return resp, nil
}

// AddComment persists the comment and, in the same transaction, a
// comment notice for the page writer. Commenting on your own page
// produces no notice.
func (s *DefaultCommentService) AddComment(actor *entity.User, paperID int64, req *contract.AddCommentRequest) (*contract.AddCommentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	page, err := s.PageRepo.FindActiveByID(paperID)
	if err != nil {
		log.Errorf("failed to fetch page %d: %v", paperID, err)
		return nil, apierror.InternalServerError
	}

	if page == nil {
		return nil, apierror.NotFoundError
	}

	now := utils.NowUTC()
	comment := &entity.Comment{
		Content:   req.Content,
		PageID:    paperID,
		WriterID:  actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.NoticeRepo.InTx(func(tx *gorm.DB) error {
		if err := repository.NewCommentRepository(tx).Save(comment); err != nil {
			return err
		}

		if page.WriterID == actor.ID {
			return nil
		}

		notice := &entity.Notice{
			RequestID:   page.ID,
			ResponseID:  page.WriterID,
			Message:     msgNewComment,
			MessageType: entity.MessageTypeComment,
			CreatedAt:   now,
		}
		return repository.NewNoticeRepository(tx).Save(notice)
	})
	if err != nil {
		log.Errorf("failed to save comment on page %d: %v", paperID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.AddCommentResponse{
		ID:        comment.ID,
		PaperID:   paperID,
		WriterID:  actor.ID,
		CreatedAt: utils.FormatEpoch(comment.CreatedAt),
	}, nil
}

func (s *DefaultCommentService) UpdateComment(actor *entity.User, commentID int64, req *contract.UpdateCommentRequest) (*contract.UpdateCommentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	comment, err := s.CommentRepo.FindByID(commentID)
	if err != nil {
		log.Errorf("failed to fetch comment %d: %v", commentID, err)
		return nil, apierror.InternalServerError
	}

	if comment == nil {
		return nil, apierror.NotFoundError
	}

	if comment.WriterID != actor.ID {
		return nil, apierror.NewForbiddenError("Comment belongs to another user")
	}

	comment.Content = req.Content
	comment.UpdatedAt = utils.NowUTC()
	if err = s.CommentRepo.Save(comment); err != nil {
		log.Errorf("failed to update comment %d: %v", commentID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.UpdateCommentResponse{
		ID:      comment.ID,
		Content: comment.Content,
	}, nil
}

// DeleteComment removes the comment and, in the same transaction, the
// matching comment notice if one is still pending.
func (s *DefaultCommentService) DeleteComment(actor *entity.User, commentID int64) apierror.ErrorResponse {
	comment, err := s.CommentRepo.FindByID(commentID)
	if err != nil {
		log.Errorf("failed to fetch comment %d: %v", commentID, err)
		return apierror.InternalServerError
	}

	if comment == nil {
		return apierror.NotFoundError
	}

	if comment.WriterID != actor.ID {
		return apierror.NewForbiddenError("Comment belongs to another user")
	}

	page, err := s.PageRepo.FindActiveByID(comment.PageID)
	if err != nil {
		log.Errorf("failed to fetch page %d: %v", comment.PageID, err)
		return apierror.InternalServerError
	}

	err = s.NoticeRepo.InTx(func(tx *gorm.DB) error {
		if err := repository.NewCommentRepository(tx).Delete(comment); err != nil {
			return err
		}

		if page == nil {
			return nil
		}

		noticeRepo := repository.NewNoticeRepository(tx)
		notice, err := noticeRepo.FindBySender(page.ID, page.WriterID, entity.MessageTypeComment)
		if err != nil {
			return err
		}

		if notice == nil {
			return nil
		}
		return noticeRepo.Delete(notice)
	})
	if err != nil {
		log.Errorf("failed to delete comment %d: %v", commentID, err)
		return apierror.InternalServerError
	}
	return nil
}

func toCommentResponse(comment *entity.Comment) *contract.CommentResponse {
	return &contract.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		PaperID:   comment.PageID,
		WriterID:  comment.WriterID,
		CreatedAt: utils.FormatEpoch(comment.CreatedAt),
		UpdatedAt: utils.FormatEpoch(comment.UpdatedAt),
	}
}
