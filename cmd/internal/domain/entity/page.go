package entity

// Page is a single diary entry. The API historically calls pages
// "papers", so handlers expose paper_id while the storage layer keeps
// the page naming.
type Page struct {
	ID         int64  `gorm:"primaryKey"`
	Title      string `gorm:"not null"` // length <= 20, enforced at the contract layer
	WriterID   int64  `gorm:"not null;index"` // References: users(id)
	DiaryID    int64  `gorm:"not null;index"` // References: diaries(id)
	AddressID  int64  `gorm:"not null"`
	TargetDate string `gorm:"not null"` // YYYY-MM-DD
	Deleted    bool   `gorm:"not null;default:false"`
	Locked     bool   `gorm:"not null;default:false"`
	CreatedAt  int64  `gorm:"not null"`
	UpdatedAt  int64  `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Writer User  `gorm:"foreignKey:WriterID;references:ID"`
	Diary  Diary `gorm:"foreignKey:DiaryID;references:ID"`
}
