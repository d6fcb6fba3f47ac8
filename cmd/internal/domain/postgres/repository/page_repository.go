package repository

import (
	"errors"
	"gorm.io/gorm"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/utils/uid"
)

type DefaultPageRepository struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) *DefaultPageRepository {
	return &DefaultPageRepository{db: db}
}

// FindActiveByID ignores soft-deleted pages.
func (d *DefaultPageRepository) FindActiveByID(id int64) (*entity.Page, error) {
	var page entity.Page
	err := d.db.Where("id = ? AND deleted = ?", id, false).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (d *DefaultPageRepository) FindAllByDiary(diaryID int64, page, size int) ([]*entity.Page, error) {
	var pages []*entity.Page
	err := d.db.
		Where("diary_id = ? AND deleted = ?", diaryID, false).
		Order("target_date DESC, created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (d *DefaultPageRepository) Save(page *entity.Page) error {
	if page.ID == 0 {
		page.ID = uid.Generate()
	}
	return d.db.Save(page).Error
}

func (d *DefaultPageRepository) SoftDelete(page *entity.Page) error {
	return d.db.Model(page).Update("deleted", true).Error
}
