package repository

import (
	"errors"
	"gorm.io/gorm"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/utils/uid"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (u *DefaultUserRepository) FindActiveByID(id int64) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("id = ? AND active = ?", id, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindActiveByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("email = ? AND active = ?", email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindActiveByNickname(nickname string) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("nickname = ? AND active = ?", nickname, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsActiveByEmail only considers non-withdrawn users: a withdrawn
// account frees its email address for registration again.
func (u *DefaultUserRepository) ExistsActiveByEmail(email string) (bool, error) {
	var exists int
	err := u.db.
		Raw("SELECT EXISTS(SELECT 1 FROM users WHERE email = ? AND active = ?)", email, true).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (u *DefaultUserRepository) Save(user *entity.User) error {
	if user.ID == 0 {
		user.ID = uid.Generate()
	}
	return u.db.Save(user).Error
}

func (u *DefaultUserRepository) SoftDelete(user *entity.User) error {
	return u.db.Model(user).Update("active", false).Error
}
