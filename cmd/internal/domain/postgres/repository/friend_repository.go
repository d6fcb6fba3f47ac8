package repository

import (
	"gorm.io/gorm"
	"ustory/cmd/internal/domain/entity"
)

type DefaultFriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *DefaultFriendRepository {
	return &DefaultFriendRepository{db: db}
}

func (d *DefaultFriendRepository) Exists(userID, friendID int64) (bool, error) {
	var exists int
	err := d.db.
		Raw("SELECT EXISTS(SELECT 1 FROM friends WHERE user_id = ? AND friend_id = ?)", userID, friendID).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (d *DefaultFriendRepository) Save(friend *entity.Friend) error {
	return d.db.Save(friend).Error
}
