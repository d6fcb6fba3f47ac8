package service

import (
	"path/filepath"
	"testing"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/domain/postgres"
	"ustory/cmd/internal/domain/postgres/repository"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/uid"
	"ustory/cmd/internal/utils/validators"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	uid.Init(1)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	return db
}

func newValidate() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	return validate
}

func seedUser(t *testing.T, db *gorm.DB, nickname string) *entity.User {
	t.Helper()
	now := utils.NowUTC()
	user := &entity.User{
		Email:     nickname + "@example.com",
		Nickname:  nickname,
		Password:  "not-a-real-hash",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repository.NewUserRepository(db).Save(user))
	return user
}

func seedDiary(t *testing.T, db *gorm.DB, members ...*entity.User) *entity.Diary {
	t.Helper()
	now := utils.NowUTC()
	diary := &entity.Diary{
		Name:        "trip log",
		ImgURL:      "https://example.com/cover.png",
		Category:    "FRIENDS",
		Description: "shared trip log",
		Color:       "#aabbcc",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	repo := repository.NewDiaryRepository(db)
	require.NoError(t, repo.Save(diary))
	for _, member := range members {
		require.NoError(t, repo.AddMember(diary.ID, member.ID))
	}
	return diary
}

func seedPage(t *testing.T, db *gorm.DB, writer *entity.User, diaryID int64, locked bool) *entity.Page {
	t.Helper()
	now := utils.NowUTC()
	page := &entity.Page{
		Title:      "day one",
		WriterID:   writer.ID,
		DiaryID:    diaryID,
		TargetDate: "2026-01-15",
		Locked:     locked,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repository.NewPageRepository(db).Save(page))
	return page
}

func countNotices(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&entity.Notice{}).Count(&count).Error)
	return count
}
