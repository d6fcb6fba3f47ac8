package entity

// Friend is a directed friendship row. An accepted friendship stores
// both directions, a pending request exists only as a notice.
type Friend struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	FriendID  int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt int64 `gorm:"not null"`
}
