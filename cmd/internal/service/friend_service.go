package service

import (
	"fmt"
	"gorm.io/gorm"
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/domain/postgres/repository"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type FriendRepository interface {
	Exists(userID, friendID int64) (bool, error)
	Save(friend *entity.Friend) error
}

type DefaultFriendService struct {
	FriendRepo FriendRepository
	UserRepo   UserRepository
	NoticeRepo NoticeRepository
}

func NewFriendService(friendRepo FriendRepository, userRepo UserRepository, noticeRepo NoticeRepository) *DefaultFriendService {
	return &DefaultFriendService{
		FriendRepo: friendRepo,
		UserRepo:   userRepo,
		NoticeRepo: noticeRepo,
	}
}

// SendRequest records a pending friend request as a friend-request
// notice for the target user.
func (s *DefaultFriendService) SendRequest(actor *entity.User, targetID int64) (*contract.FriendResponse, apierror.ErrorResponse) {
	if targetID == actor.ID {
		return nil, apierror.SelfFriendError
	}

	target, err := s.UserRepo.FindActiveByID(targetID)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", targetID, err)
		return nil, apierror.InternalServerError
	}

	if target == nil {
		return nil, apierror.NotFoundError
	}

	friends, err := s.FriendRepo.Exists(actor.ID, targetID)
	if err != nil {
		log.Errorf("failed to check friendship %d->%d: %v", actor.ID, targetID, err)
		return nil, apierror.InternalServerError
	}

	if friends {
		return nil, apierror.AlreadyFriendsError
	}

	pending, err := s.NoticeRepo.FindBySender(actor.ID, targetID, entity.MessageTypeFriendRequest)
	if err != nil {
		log.Errorf("failed to check pending request %d->%d: %v", actor.ID, targetID, err)
		return nil, apierror.InternalServerError
	}

	if pending != nil {
		return nil, apierror.NewSimple(400, "Friend request already sent")
	}

	notice := &entity.Notice{
		RequestID:   actor.ID,
		ResponseID:  targetID,
		Message:     msgFriendRequest,
		MessageType: entity.MessageTypeFriendRequest,
		CreatedAt:   utils.NowUTC(),
	}

	if err = s.NoticeRepo.Save(notice); err != nil {
		log.Errorf("failed to save friend request notice: %v", err)
		return nil, apierror.InternalServerError
	}

	return &contract.FriendResponse{
		UserID:    actor.ID,
		FriendID:  targetID,
		Status:    "PENDING",
		CreatedAt: utils.FormatEpoch(notice.CreatedAt),
	}, nil
}

// AcceptRequest turns a pending request into a friendship: both
// directed rows, the friend-accept notice for the requester and the
// removal of the pending request notice commit together.
func (s *DefaultFriendService) AcceptRequest(actor *entity.User, requesterID int64) (*contract.FriendResponse, apierror.ErrorResponse) {
	requester, err := s.UserRepo.FindActiveByID(requesterID)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", requesterID, err)
		return nil, apierror.InternalServerError
	}

	if requester == nil {
		return nil, apierror.NotFoundError
	}

	pending, err := s.NoticeRepo.FindBySender(requesterID, actor.ID, entity.MessageTypeFriendRequest)
	if err != nil {
		log.Errorf("failed to fetch pending request %d->%d: %v", requesterID, actor.ID, err)
		return nil, apierror.InternalServerError
	}

	if pending == nil {
		return nil, apierror.NoPendingRequestError
	}

	now := utils.NowUTC()
	err = s.NoticeRepo.InTx(func(tx *gorm.DB) error {
		friendRepo := repository.NewFriendRepository(tx)
		rows := []*entity.Friend{
			{UserID: actor.ID, FriendID: requesterID, CreatedAt: now},
			{UserID: requesterID, FriendID: actor.ID, CreatedAt: now},
		}
		for _, row := range rows {
			if err := friendRepo.Save(row); err != nil {
				return err
			}
		}

		noticeRepo := repository.NewNoticeRepository(tx)
		accepted := &entity.Notice{
			RequestID:   actor.ID,
			ResponseID:  requesterID,
			Message:     fmt.Sprintf(msgFriendAccept, actor.Nickname),
			MessageType: entity.MessageTypeFriendAccept,
			CreatedAt:   now,
		}
		if err := noticeRepo.Save(accepted); err != nil {
			return err
		}
		return noticeRepo.Delete(pending)
	})
	if err != nil {
		log.Errorf("failed to accept friend request %d->%d: %v", requesterID, actor.ID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.FriendResponse{
		UserID:    actor.ID,
		FriendID:  requesterID,
		Status:    "ACCEPTED",
		CreatedAt: utils.FormatEpoch(now),
	}, nil
}
