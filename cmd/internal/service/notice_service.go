package service

import (
	"errors"
	"fmt"
	"gorm.io/gorm"
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/domain/postgres/repository"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	msgFriendRequest = "You have a new friend request."
	msgFriendAccept  = "%s accepted your friend request."
	msgNewComment    = "A new comment was added to your paper."
	msgNewActivity   = "A new paper was added to your diary."
)

// errRolledBack signals an intentional transaction rollback whose API
// error has already been recorded.
var errRolledBack = errors.New("rolled back")

type NoticeRepository interface {
	InTx(fn func(tx *gorm.DB) error) error
	FindByID(id int64) (*entity.Notice, error)
	FindAllByIDs(ids []int64) ([]*entity.Notice, error)
	FindByReceiver(receiverID, before int64, page, size int) ([]*entity.Notice, error)
	FindBySender(requestID, responseID int64, messageType entity.MessageType) (*entity.Notice, error)
	Save(notice *entity.Notice) error
	Delete(notice *entity.Notice) error
	DeleteByIDs(ids []int64, receiverID int64) (int64, error)
	DeleteAllByReceiver(receiverID int64) (int64, error)
}

type PageRepository interface {
	FindActiveByID(id int64) (*entity.Page, error)
	FindAllByDiary(diaryID int64, page, size int) ([]*entity.Page, error)
	Save(page *entity.Page) error
	SoftDelete(page *entity.Page) error
}

type DefaultNoticeService struct {
	NoticeRepo NoticeRepository
	UserRepo   UserRepository
	PageRepo   PageRepository
	Validate   *validator.Validate
}

func NewNoticeService(
	noticeRepo NoticeRepository,
	userRepo UserRepository,
	pageRepo PageRepository,
	validate *validator.Validate,
) *DefaultNoticeService {
	return &DefaultNoticeService{
		NoticeRepo: noticeRepo,
		UserRepo:   userRepo,
		PageRepo:   pageRepo,
		Validate:   validate,
	}
}

// SendNotice builds and persists a notice for the variant named by the
// request's message type. Friend variants resolve the sender, page
// variants require a paper reference; anything else is rejected before
// a row can exist.
func (n *DefaultNoticeService) SendNotice(req *contract.SendNoticeRequest) (*contract.NoticeResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	messageType := entity.MessageType(req.MessageType)
	if !messageType.Valid() {
		return nil, apierror.InvalidMessageTypeError
	}

	var (
		requestID int64
		message   string
	)

	switch messageType {
	case entity.MessageTypeFriendAccept:
		sender, err := n.UserRepo.FindActiveByID(req.SenderID)
		if err != nil {
			log.Errorf("failed to fetch notice sender %d: %v", req.SenderID, err)
			return nil, apierror.InternalServerError
		}
		if sender == nil {
			return nil, apierror.NotFoundError
		}
		requestID = req.SenderID
		message = fmt.Sprintf(msgFriendAccept, sender.Nickname)

	case entity.MessageTypeFriendRequest:
		requestID = req.SenderID
		message = msgFriendRequest

	case entity.MessageTypeComment, entity.MessageTypeActivity:
		if req.PaperID == nil {
			return nil, apierror.PaperIDRequiredError
		}
		requestID = *req.PaperID
		if messageType == entity.MessageTypeComment {
			message = msgNewComment
		} else {
			message = msgNewActivity
		}
	}

	notice := &entity.Notice{
		RequestID:   requestID,
		ResponseID:  req.ResponseID,
		Message:     message,
		MessageType: messageType,
		CreatedAt:   utils.NowUTC(),
	}

	if err := n.NoticeRepo.Save(notice); err != nil {
		log.Errorf("failed to save notice: %v", err)
		return nil, apierror.InternalServerError
	}
	return n.render(notice)
}

// GetNotices lists the receiver's notices created at or before the
// given time, newest first.
func (n *DefaultNoticeService) GetNotices(userID, requestTime int64, page, size int) ([]*contract.NoticeResponse, apierror.ErrorResponse) {
	notices, err := n.NoticeRepo.FindByReceiver(userID, requestTime, page, size)
	if err != nil {
		log.Errorf("failed to fetch notices for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoticeResponse, len(notices))
	for i, notice := range notices {
		rendered, apierr := n.render(notice)
		if apierr != nil {
			return nil, apierr
		}
		resp[i] = rendered
	}
	return resp, nil
}

func (n *DefaultNoticeService) DeleteNoticeByID(userID, noticeID int64) apierror.ErrorResponse {
	notice, err := n.NoticeRepo.FindByID(noticeID)
	if err != nil {
		log.Errorf("failed to fetch notice %d: %v", noticeID, err)
		return apierror.InternalServerError
	}

	if notice == nil {
		return apierror.NotFoundError
	}

	if notice.ResponseID != userID {
		return apierror.NewForbiddenError("Notice belongs to another user")
	}

	if err = n.NoticeRepo.Delete(notice); err != nil {
		log.Errorf("failed to delete notice %d: %v", noticeID, err)
		return apierror.InternalServerError
	}
	return nil
}

// DeleteNoticeBySender removes the notice matching the exact
// (requestID, responseID, messageType) triple. It is idempotent: a
// missing match is a no-op.
func (n *DefaultNoticeService) DeleteNoticeBySender(requestID, responseID int64, messageType entity.MessageType) apierror.ErrorResponse {
	notice, err := n.NoticeRepo.FindBySender(requestID, responseID, messageType)
	if err != nil {
		log.Errorf("failed to fetch notice by sender %d: %v", requestID, err)
		return apierror.InternalServerError
	}

	if notice == nil {
		return nil
	}

	if err = n.NoticeRepo.Delete(notice); err != nil {
		log.Errorf("failed to delete notice %d: %v", notice.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (n *DefaultNoticeService) DeleteAllByUser(userID int64) apierror.ErrorResponse {
	if userID <= 0 {
		return apierror.InvalidIDError
	}

	user, err := n.UserRepo.FindActiveByID(userID)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", userID, err)
		return apierror.InternalServerError
	}

	if user == nil {
		return apierror.NotFoundError
	}

	affected, err := n.NoticeRepo.DeleteAllByReceiver(userID)
	if err != nil {
		log.Errorf("failed to delete notices of user %d: %v", userID, err)
		return apierror.InternalServerError
	}

	if affected == 0 {
		return apierror.NotFoundError
	}
	return nil
}

// DeleteSelected deletes the given notices as a single batch. If any
// resolved notice belongs to another receiver the whole batch is
// rejected and nothing is deleted.
func (n *DefaultNoticeService) DeleteSelected(userID int64, noticeIDs []int64) apierror.ErrorResponse {
	if len(noticeIDs) == 0 {
		return apierror.EmptyBatchError
	}

	var apierr apierror.ErrorResponse
	err := n.NoticeRepo.InTx(func(tx *gorm.DB) error {
		repo := repository.NewNoticeRepository(tx)

		notices, err := repo.FindAllByIDs(noticeIDs)
		if err != nil {
			return err
		}

		if len(notices) == 0 {
			apierr = apierror.NotFoundError
			return errRolledBack
		}

		for _, notice := range notices {
			if notice.ResponseID != userID {
				apierr = apierror.NewForbiddenError("Batch contains notices of another user")
				return errRolledBack
			}
		}

		_, err = repo.DeleteByIDs(noticeIDs, userID)
		return err
	})

	if apierr != nil {
		return apierr
	}

	if err != nil {
		log.Errorf("failed to delete selected notices for user %d: %v", userID, err)
		return apierror.InternalServerError
	}
	return nil
}

// render maps a stored notice to its display form. Comment notices
// resolve the referenced page for its creation time; a stored invalid
// message type is rejected as a defense against hand-edited rows.
func (n *DefaultNoticeService) render(notice *entity.Notice) (*contract.NoticeResponse, apierror.ErrorResponse) {
	category := notice.MessageType.Category()
	if category == "" {
		return nil, apierror.InvalidMessageTypeError
	}

	resp := &contract.NoticeResponse{
		ID:      notice.ID,
		Type:    category,
		Message: notice.Message,
		Time:    utils.FormatEpoch(notice.CreatedAt),
	}

	switch notice.MessageType {
	case entity.MessageTypeComment:
		page, err := n.PageRepo.FindActiveByID(notice.RequestID)
		if err != nil {
			log.Errorf("failed to fetch page %d for notice %d: %v", notice.RequestID, notice.ID, err)
			return nil, apierror.InternalServerError
		}
		if page == nil {
			return nil, apierror.NotFoundError
		}
		resp.PaperID = &page.ID
		resp.Time = utils.FormatEpoch(page.CreatedAt)

	case entity.MessageTypeActivity:
		resp.PaperID = &notice.RequestID
	}

	return resp, nil
}
