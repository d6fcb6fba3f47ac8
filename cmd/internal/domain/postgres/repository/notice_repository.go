package repository

import (
	"errors"
	"gorm.io/gorm"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/utils/uid"
)

type DefaultNoticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) *DefaultNoticeRepository {
	return &DefaultNoticeRepository{db: db}
}

// InTx runs fn inside a single database transaction: every write either
// commits as a whole or rolls back on the first error.
func (d *DefaultNoticeRepository) InTx(fn func(tx *gorm.DB) error) error {
	return d.db.Transaction(fn)
}

func (d *DefaultNoticeRepository) FindByID(id int64) (*entity.Notice, error) {
	var notice entity.Notice
	err := d.db.First(&notice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &notice, nil
}

func (d *DefaultNoticeRepository) FindAllByIDs(ids []int64) ([]*entity.Notice, error) {
	if len(ids) == 0 {
		return []*entity.Notice{}, nil
	}

	var notices []*entity.Notice
	err := d.db.Where("id IN ?", ids).Find(&notices).Error
	if err != nil {
		return nil, err
	}
	return notices, nil
}

// FindByReceiver lists notices for a receiver created at or before the
// given time, newest first, paginated (1-based page).
func (d *DefaultNoticeRepository) FindByReceiver(receiverID, before int64, page, size int) ([]*entity.Notice, error) {
	var notices []*entity.Notice
	err := d.db.
		Where("response_id = ? AND created_at <= ?", receiverID, before).
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&notices).Error
	if err != nil {
		return nil, err
	}
	return notices, nil
}

func (d *DefaultNoticeRepository) FindBySender(requestID, responseID int64, messageType entity.MessageType) (*entity.Notice, error) {
	var notice entity.Notice
	err := d.db.
		Where("request_id = ? AND response_id = ? AND message_type = ?", requestID, responseID, messageType).
		First(&notice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &notice, nil
}

func (d *DefaultNoticeRepository) Save(notice *entity.Notice) error {
	if notice.ID == 0 {
		notice.ID = uid.Generate()
	}
	return d.db.Save(notice).Error
}

func (d *DefaultNoticeRepository) Delete(notice *entity.Notice) error {
	return d.db.Delete(notice).Error
}

// DeleteByIDs deletes the given notices in one statement, scoped to the
// receiver so rows belonging to anyone else are never touched.
func (d *DefaultNoticeRepository) DeleteByIDs(ids []int64, receiverID int64) (int64, error) {
	res := d.db.Where("id IN ? AND response_id = ?", ids, receiverID).Delete(&entity.Notice{})
	return res.RowsAffected, res.Error
}

// DeleteAllByPaper removes the comment and activity notices referencing
// the given page, so a deleted page leaves no notices pointing at it.
func (d *DefaultNoticeRepository) DeleteAllByPaper(paperID int64) (int64, error) {
	types := []entity.MessageType{entity.MessageTypeComment, entity.MessageTypeActivity}
	res := d.db.
		Where("request_id = ? AND message_type IN ?", paperID, types).
		Delete(&entity.Notice{})
	return res.RowsAffected, res.Error
}

func (d *DefaultNoticeRepository) DeleteAllByReceiver(receiverID int64) (int64, error) {
	res := d.db.Where("response_id = ?", receiverID).Delete(&entity.Notice{})
	return res.RowsAffected, res.Error
}
