package entity

// MessageType discriminates the four notice variants. Requests carry it
// as a raw integer; anything outside the four constants below is
// rejected before a Notice can be constructed, so an invalid code can
// only reach rendering through a hand-edited row.
type MessageType int

const (
	// MessageTypeFriendRequest notifies a pending friend request.
	// RequestID holds the sender's user ID.
	MessageTypeFriendRequest MessageType = iota + 1

	// MessageTypeComment notifies a new comment on one of the
	// receiver's pages. RequestID holds the page ID.
	MessageTypeComment

	// MessageTypeFriendAccept notifies that a friend request was
	// accepted. RequestID holds the accepting user's ID.
	MessageTypeFriendAccept

	// MessageTypeActivity notifies activity in a shared diary.
	// RequestID holds the page ID.
	MessageTypeActivity
)

const (
	CategoryFriend   = "friend"
	CategoryComment  = "comment"
	CategoryActivity = "activity"
)

func (m MessageType) Valid() bool {
	return m >= MessageTypeFriendRequest && m <= MessageTypeActivity
}

// RequiresPaper reports whether the variant references a page rather
// than a user.
func (m MessageType) RequiresPaper() bool {
	return m == MessageTypeComment || m == MessageTypeActivity
}

func (m MessageType) Category() string {
	switch m {
	case MessageTypeFriendRequest, MessageTypeFriendAccept:
		return CategoryFriend
	case MessageTypeComment:
		return CategoryComment
	case MessageTypeActivity:
		return CategoryActivity
	default:
		return ""
	}
}
