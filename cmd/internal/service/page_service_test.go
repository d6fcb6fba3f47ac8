package service

import (
	"testing"
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/domain/postgres/repository"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPageService(db *gorm.DB) *DefaultPageService {
	return NewPageService(
		repository.NewPageRepository(db),
		repository.NewDiaryRepository(db),
		repository.NewNoticeRepository(db),
		newValidate(),
	)
}

func TestCreatePage_NotifiesOtherMembers(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	diary := seedDiary(t, db, alice, bob, carol)

	resp, apierr := svc.CreatePage(alice, &contract.CreatePageRequest{
		Title:      "day one",
		DiaryID:    diary.ID,
		TargetDate: "2026-01-15",
	})
	require.Nil(t, apierr)
	assert.NotZero(t, resp.ID)

	noticeRepo := repository.NewNoticeRepository(db)
	for _, member := range []*entity.User{bob, carol} {
		notice, err := noticeRepo.FindBySender(resp.ID, member.ID, entity.MessageTypeActivity)
		require.NoError(t, err)
		assert.NotNil(t, notice)
	}

	self, err := noticeRepo.FindBySender(resp.ID, alice.ID, entity.MessageTypeActivity)
	require.NoError(t, err)
	assert.Nil(t, self)
}

func TestCreatePage_NonMember(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)
	alice := seedUser(t, db, "alice")
	outsider := seedUser(t, db, "outsider")
	diary := seedDiary(t, db, alice)

	_, apierr := svc.CreatePage(outsider, &contract.CreatePageRequest{
		Title:      "day one",
		DiaryID:    diary.ID,
		TargetDate: "2026-01-15",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 403, apierr.Code())
}

func TestCreatePage_MissingDiary(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)
	alice := seedUser(t, db, "alice")

	_, apierr := svc.CreatePage(alice, &contract.CreatePageRequest{
		Title:      "day one",
		DiaryID:    123456,
		TargetDate: "2026-01-15",
	})
	assert.Equal(t, apierror.NotFoundError, apierr)
}

func TestGetPage_LockedStaysPrivate(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	diary := seedDiary(t, db, alice, bob)
	page := seedPage(t, db, alice, diary.ID, true)

	_, apierr := svc.GetPage(bob, page.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, 403, apierr.Code())

	resp, apierr := svc.GetPage(alice, page.ID)
	require.Nil(t, apierr)
	assert.Equal(t, page.ID, resp.ID)
}

func TestGetPagesByDiary_FiltersLockedPagesOfOthers(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	diary := seedDiary(t, db, alice, bob)
	seedPage(t, db, alice, diary.ID, true)
	open := seedPage(t, db, bob, diary.ID, false)

	pages, apierr := svc.GetPagesByDiary(bob, diary.ID, 1, 20)
	require.Nil(t, apierr)
	require.Len(t, pages, 1)
	assert.Equal(t, open.ID, pages[0].ID)

	pages, apierr = svc.GetPagesByDiary(alice, diary.ID, 1, 20)
	require.Nil(t, apierr)
	assert.Len(t, pages, 2)
}

func TestGetPagesByDiary_NonMember(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)
	alice := seedUser(t, db, "alice")
	outsider := seedUser(t, db, "outsider")
	diary := seedDiary(t, db, alice)

	_, apierr := svc.GetPagesByDiary(outsider, diary.ID, 1, 20)
	require.NotNil(t, apierr)
	assert.Equal(t, 403, apierr.Code())
}

func TestUpdatePage_ForeignWriter(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	diary := seedDiary(t, db, alice, bob)
	page := seedPage(t, db, alice, diary.ID, false)

	title := "hijacked"
	_, apierr := svc.UpdatePage(bob, page.ID, &contract.UpdatePageRequest{Title: &title})
	require.NotNil(t, apierr)
	assert.Equal(t, 403, apierr.Code())
}

func TestDeletePage_SoftDeletes(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)
	alice := seedUser(t, db, "alice")
	diary := seedDiary(t, db, alice)
	page := seedPage(t, db, alice, diary.ID, false)

	require.Nil(t, svc.DeletePage(alice, page.ID))

	_, apierr := svc.GetPage(alice, page.ID)
	assert.Equal(t, apierror.NotFoundError, apierr)

	// Row survives the soft delete
	var count int64
	require.NoError(t, db.Model(&entity.Page{}).Where("id = ?", page.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeletePage_RemovesPaperNotices(t *testing.T) {
	db := newTestDB(t)
	pages := newPageService(db)
	comments := newCommentService(db)
	notices := newNoticeService(db)
	writer := seedUser(t, db, "writer")
	commenter := seedUser(t, db, "commenter")
	diary := seedDiary(t, db, writer, commenter)

	// Activity notice for the other member, comment notice for the writer
	created, apierr := pages.CreatePage(writer, &contract.CreatePageRequest{
		Title:      "day one",
		DiaryID:    diary.ID,
		TargetDate: "2026-01-15",
	})
	require.Nil(t, apierr)

	_, apierr = comments.AddComment(commenter, created.ID, &contract.AddCommentRequest{Content: "nice"})
	require.Nil(t, apierr)
	require.Equal(t, int64(2), countNotices(t, db))

	require.Nil(t, pages.DeletePage(writer, created.ID))
	assert.Zero(t, countNotices(t, db))

	listed, apierr := notices.GetNotices(writer.ID, utils.NowUTC(), 1, 20)
	require.Nil(t, apierr)
	assert.Empty(t, listed)

	listed, apierr = notices.GetNotices(commenter.ID, utils.NowUTC(), 1, 20)
	require.Nil(t, apierr)
	assert.Empty(t, listed)
}
