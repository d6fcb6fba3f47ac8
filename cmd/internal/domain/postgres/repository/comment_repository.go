package repository

import (
	"errors"
	"gorm.io/gorm"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/utils/uid"
)

type DefaultCommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *DefaultCommentRepository {
	return &DefaultCommentRepository{db: db}
}

func (d *DefaultCommentRepository) FindByID(id int64) (*entity.Comment, error) {
	var comment entity.Comment
	err := d.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (d *DefaultCommentRepository) FindByIDAndPage(id, pageID int64) (*entity.Comment, error) {
	var comment entity.Comment
	err := d.db.Where("id = ? AND page_id = ?", id, pageID).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (d *DefaultCommentRepository) FindAllByPage(pageID int64) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	err := d.db.Where("page_id = ?", pageID).Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (d *DefaultCommentRepository) Save(comment *entity.Comment) error {
	if comment.ID == 0 {
		comment.ID = uid.Generate()
	}
	return d.db.Save(comment).Error
}

func (d *DefaultCommentRepository) Delete(comment *entity.Comment) error {
	return d.db.Delete(comment).Error
}
