package contract

type FriendResponse struct {
	UserID    int64  `json:"user_id"`
	FriendID  int64  `json:"friend_id"`
	Status    string `json:"status"` // PENDING or ACCEPTED
	CreatedAt string `json:"created_at,omitempty"`
}
