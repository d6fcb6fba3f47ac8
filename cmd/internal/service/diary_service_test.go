package service

import (
	"testing"
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/domain/postgres/repository"
	"ustory/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDiaryService(db *gorm.DB) *DefaultDiaryService {
	return NewDiaryService(
		repository.NewDiaryRepository(db),
		repository.NewUserRepository(db),
		newValidate(),
	)
}

func createDiaryRequest(users ...string) *contract.CreateDiaryRequest {
	return &contract.CreateDiaryRequest{
		Name:        "trip log",
		ImgURL:      "https://example.com/cover.png",
		Category:    "FRIENDS",
		Description: "shared trip log",
		Color:       "#aabbcc",
		Users:       users,
	}
}

func TestCreateDiary_AddsMembers(t *testing.T) {
	db := newTestDB(t)
	svc := newDiaryService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	resp, apierr := svc.CreateDiary(alice, createDiaryRequest("bob"))
	require.Nil(t, apierr)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, int64(2), resp.MemberCount)

	repo := repository.NewDiaryRepository(db)
	for _, user := range []int64{alice.ID, bob.ID} {
		member, err := repo.IsMember(resp.ID, user)
		require.NoError(t, err)
		assert.True(t, member)
	}
}

func TestCreateDiary_UnknownNickname(t *testing.T) {
	db := newTestDB(t)
	svc := newDiaryService(db)
	alice := seedUser(t, db, "alice")

	_, apierr := svc.CreateDiary(alice, createDiaryRequest("ghost"))
	require.NotNil(t, apierr)
	assert.Equal(t, 404, apierr.Code())
}

func TestCreateDiary_InvalidCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newDiaryService(db)
	alice := seedUser(t, db, "alice")

	req := createDiaryRequest()
	req.Category = "WORK"
	_, apierr := svc.CreateDiary(alice, req)
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestGetDiary_NonMember(t *testing.T) {
	db := newTestDB(t)
	svc := newDiaryService(db)
	alice := seedUser(t, db, "alice")
	outsider := seedUser(t, db, "outsider")

	created, apierr := svc.CreateDiary(alice, createDiaryRequest())
	require.Nil(t, apierr)

	_, apierr = svc.GetDiary(outsider, created.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, 403, apierr.Code())
}

func TestGetDiary_Missing(t *testing.T) {
	db := newTestDB(t)
	svc := newDiaryService(db)
	alice := seedUser(t, db, "alice")

	_, apierr := svc.GetDiary(alice, 123456)
	assert.Equal(t, apierror.NotFoundError, apierr)
}

func TestUpdateDiary_PartialUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newDiaryService(db)
	alice := seedUser(t, db, "alice")

	created, apierr := svc.CreateDiary(alice, createDiaryRequest())
	require.Nil(t, apierr)

	name := "renamed"
	updated, apierr := svc.UpdateDiary(alice, created.ID, &contract.UpdateDiaryRequest{Name: &name})
	require.Nil(t, apierr)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, created.Category, updated.Category)
}

func TestGetMembers(t *testing.T) {
	db := newTestDB(t)
	svc := newDiaryService(db)
	alice := seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	created, apierr := svc.CreateDiary(alice, createDiaryRequest("bob"))
	require.Nil(t, apierr)

	members, apierr := svc.GetMembers(alice, created.ID)
	require.Nil(t, apierr)
	assert.Equal(t, created.ID, members.DiaryID)
	assert.ElementsMatch(t, []string{"alice", "bob"}, members.Nicknames)
}

func TestSearchDiaries_CategoryFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newDiaryService(db)
	alice := seedUser(t, db, "alice")

	_, apierr := svc.CreateDiary(alice, createDiaryRequest())
	require.Nil(t, apierr)

	solo := createDiaryRequest()
	solo.Category = "INDIVIDUAL"
	_, apierr = svc.CreateDiary(alice, solo)
	require.Nil(t, apierr)

	diaries, apierr := svc.SearchDiaries(alice, "INDIVIDUAL", 1, 20)
	require.Nil(t, apierr)
	require.Len(t, diaries, 1)
	assert.Equal(t, "INDIVIDUAL", diaries[0].Category)

	diaries, apierr = svc.SearchDiaries(alice, "", 1, 20)
	require.Nil(t, apierr)
	assert.Len(t, diaries, 2)
}

func TestDeleteDiary(t *testing.T) {
	db := newTestDB(t)
	svc := newDiaryService(db)
	alice := seedUser(t, db, "alice")

	created, apierr := svc.CreateDiary(alice, createDiaryRequest())
	require.Nil(t, apierr)

	require.Nil(t, svc.DeleteDiary(alice, created.ID))

	_, apierr = svc.GetDiary(alice, created.ID)
	assert.Equal(t, apierror.NotFoundError, apierr)
}
