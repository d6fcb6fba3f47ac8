package contract

// SendNoticeRequest carries the raw integer message type from clients.
// SenderID is required for friend variants (1, 3), PaperID for comment
// and activity variants (2, 4); the service enforces this per variant.
type SendNoticeRequest struct {
	MessageType int    `json:"message_type" validate:"required"`
	SenderID    int64  `json:"sender_id" validate:"omitempty,min=1"`
	ResponseID  int64  `json:"response_id" validate:"required,min=1"`
	PaperID     *int64 `json:"paper_id" validate:"omitempty,min=1"`
}

type NoticeResponse struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Time    string `json:"time"`
	PaperID *int64 `json:"paper_id,omitempty"`
}

type DeleteSelectedRequest struct {
	NoticeIDs []int64 `json:"notice_ids"`
}
