package service

import (
	"testing"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/domain/postgres/repository"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFriendService(db *gorm.DB) *DefaultFriendService {
	return NewFriendService(
		repository.NewFriendRepository(db),
		repository.NewUserRepository(db),
		repository.NewNoticeRepository(db),
	)
}

func TestSendRequest_Self(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	actor := seedUser(t, db, "loner")

	_, apierr := svc.SendRequest(actor, actor.ID)
	assert.Equal(t, apierror.SelfFriendError, apierr)
}

func TestSendRequest_UnknownTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	actor := seedUser(t, db, "sender")

	_, apierr := svc.SendRequest(actor, 123456)
	assert.Equal(t, apierror.NotFoundError, apierr)
}

func TestSendRequest_CreatesPendingNotice(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	actor := seedUser(t, db, "sender")
	target := seedUser(t, db, "target")

	resp, apierr := svc.SendRequest(actor, target.ID)
	require.Nil(t, apierr)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, actor.ID, resp.UserID)
	assert.Equal(t, target.ID, resp.FriendID)

	pending, err := repository.NewNoticeRepository(db).
		FindBySender(actor.ID, target.ID, entity.MessageTypeFriendRequest)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, target.ID, pending.ResponseID)
}

func TestSendRequest_Duplicate(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	actor := seedUser(t, db, "sender")
	target := seedUser(t, db, "target")

	_, apierr := svc.SendRequest(actor, target.ID)
	require.Nil(t, apierr)

	_, apierr = svc.SendRequest(actor, target.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestSendRequest_AlreadyFriends(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	actor := seedUser(t, db, "sender")
	target := seedUser(t, db, "target")

	now := utils.NowUTC()
	friendRepo := repository.NewFriendRepository(db)
	require.NoError(t, friendRepo.Save(&entity.Friend{UserID: actor.ID, FriendID: target.ID, CreatedAt: now}))
	require.NoError(t, friendRepo.Save(&entity.Friend{UserID: target.ID, FriendID: actor.ID, CreatedAt: now}))

	_, apierr := svc.SendRequest(actor, target.ID)
	assert.Equal(t, apierror.AlreadyFriendsError, apierr)
}

func TestAcceptRequest_NoPending(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	actor := seedUser(t, db, "accepter")
	requester := seedUser(t, db, "requester")

	_, apierr := svc.AcceptRequest(actor, requester.ID)
	assert.Equal(t, apierror.NoPendingRequestError, apierr)
}

func TestAcceptRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	requester := seedUser(t, db, "requester")
	accepter := seedUser(t, db, "accepter")

	_, apierr := svc.SendRequest(requester, accepter.ID)
	require.Nil(t, apierr)

	resp, apierr := svc.AcceptRequest(accepter, requester.ID)
	require.Nil(t, apierr)
	assert.Equal(t, "ACCEPTED", resp.Status)

	friendRepo := repository.NewFriendRepository(db)
	for _, pair := range [][2]int64{{accepter.ID, requester.ID}, {requester.ID, accepter.ID}} {
		friends, err := friendRepo.Exists(pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, friends)
	}

	noticeRepo := repository.NewNoticeRepository(db)
	pending, err := noticeRepo.FindBySender(requester.ID, accepter.ID, entity.MessageTypeFriendRequest)
	require.NoError(t, err)
	assert.Nil(t, pending)

	accepted, err := noticeRepo.FindBySender(accepter.ID, requester.ID, entity.MessageTypeFriendAccept)
	require.NoError(t, err)
	require.NotNil(t, accepted)
	assert.Contains(t, accepted.Message, accepter.Nickname)
}
