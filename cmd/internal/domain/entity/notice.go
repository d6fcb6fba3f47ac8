package entity

// Notice is a stored notification. RequestID is the source entity of
// the notification: the sender's user ID for friend notices, the page
// ("paper") ID for comment and activity notices. ResponseID is always
// the receiving user.
type Notice struct {
	ID          int64       `gorm:"primaryKey"`
	RequestID   int64       `gorm:"not null"`
	ResponseID  int64       `gorm:"not null;index"` // References: users(id)
	Message     string      `gorm:"not null"`
	MessageType MessageType `gorm:"not null"`
	CreatedAt   int64       `gorm:"not null;index"`
}
