package entity

type Diary struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	ImgURL      string `gorm:"not null"`
	Category    string `gorm:"not null"`
	Description string `gorm:"not null"` // length 1-20, enforced at the contract layer
	Color       string `gorm:"not null"`
	CreatedAt   int64  `gorm:"not null"`
	UpdatedAt   int64  `gorm:"not null;autoUpdateTime:false"`
}

// DiaryUser is the diary membership join table.
type DiaryUser struct {
	DiaryID   int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt int64 `gorm:"not null"`

	// Relations
	Diary Diary `gorm:"foreignKey:DiaryID;references:ID"`
	User  User  `gorm:"foreignKey:UserID;references:ID"`
}
