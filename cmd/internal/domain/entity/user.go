package entity

// User is the general basic structure of all users across the platform.
// Withdrawn accounts are kept as rows with Active=false so that old
// pages and comments keep a valid writer reference.
type User struct {
	ID        int64  `gorm:"primaryKey"`
	Email     string `gorm:"not null;index"`
	Nickname  string `gorm:"not null"`
	Password  string `gorm:"not null"` // bcrypt hash
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}
