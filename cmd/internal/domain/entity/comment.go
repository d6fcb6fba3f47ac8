package entity

type Comment struct {
	ID        int64  `gorm:"primaryKey"`
	Content   string `gorm:"not null"`
	PageID    int64  `gorm:"not null;index"` // References: pages(id)
	WriterID  int64  `gorm:"not null"`       // References: users(id)
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Page   Page `gorm:"foreignKey:PageID;references:ID"`
	Writer User `gorm:"foreignKey:WriterID;references:ID"`
}
