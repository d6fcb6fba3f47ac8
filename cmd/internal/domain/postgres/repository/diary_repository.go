package repository

import (
	"errors"
	"gorm.io/gorm"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/uid"
)

type DefaultDiaryRepository struct {
	db *gorm.DB
}

func NewDiaryRepository(db *gorm.DB) *DefaultDiaryRepository {
	return &DefaultDiaryRepository{db: db}
}

// InTx runs fn inside a single database transaction.
func (d *DefaultDiaryRepository) InTx(fn func(tx *gorm.DB) error) error {
	return d.db.Transaction(fn)
}

func (d *DefaultDiaryRepository) FindByID(id int64) (*entity.Diary, error) {
	var diary entity.Diary
	err := d.db.First(&diary, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &diary, nil
}

// SearchByUser pages through the diaries a user belongs to, optionally
// filtered by category.
func (d *DefaultDiaryRepository) SearchByUser(userID int64, category string, page, size int) ([]*entity.Diary, error) {
	q := d.db.
		Joins("JOIN diary_users ON diary_users.diary_id = diaries.id").
		Where("diary_users.user_id = ?", userID)

	if category != "" {
		q = q.Where("diaries.category = ?", category)
	}

	var diaries []*entity.Diary
	err := q.
		Order("diaries.created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&diaries).Error
	if err != nil {
		return nil, err
	}
	return diaries, nil
}

func (d *DefaultDiaryRepository) IsMember(diaryID, userID int64) (bool, error) {
	var exists int
	err := d.db.
		Raw("SELECT EXISTS(SELECT 1 FROM diary_users WHERE diary_id = ? AND user_id = ?)", diaryID, userID).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (d *DefaultDiaryRepository) FindMembers(diaryID int64) ([]*entity.User, error) {
	var users []*entity.User
	err := d.db.
		Joins("JOIN diary_users ON diary_users.user_id = users.id").
		Where("diary_users.diary_id = ? AND users.active = ?", diaryID, true).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (d *DefaultDiaryRepository) CountMembers(diaryID int64) (int64, error) {
	var count int64
	err := d.db.Model(&entity.DiaryUser{}).Where("diary_id = ?", diaryID).Count(&count).Error
	return count, err
}

func (d *DefaultDiaryRepository) AddMember(diaryID, userID int64) error {
	member := &entity.DiaryUser{
		DiaryID:   diaryID,
		UserID:    userID,
		CreatedAt: utils.NowUTC(),
	}
	return d.db.Save(member).Error
}

func (d *DefaultDiaryRepository) Save(diary *entity.Diary) error {
	if diary.ID == 0 {
		diary.ID = uid.Generate()
	}
	return d.db.Save(diary).Error
}

// Delete removes the diary together with its membership rows.
func (d *DefaultDiaryRepository) Delete(diary *entity.Diary) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("diary_id = ?", diary.ID).Delete(&entity.DiaryUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(diary).Error
	})
}
