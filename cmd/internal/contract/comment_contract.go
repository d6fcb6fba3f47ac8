package contract

type AddCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// CommentResponse doubles as the empty-shell payload when the requested
// comment does not exist.
type CommentResponse struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	PaperID   int64  `json:"paper_id"`
	WriterID  int64  `json:"writer_id"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// CommentListResponse annotates each comment with whether the viewer
// may moderate (edit/delete) it.
type CommentListResponse struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	WriterID  int64  `json:"writer_id"`
	Editable  bool   `json:"editable"`
	CreatedAt string `json:"created_at"`
}

type AddCommentResponse struct {
	ID        int64  `json:"id"`
	PaperID   int64  `json:"paper_id"`
	WriterID  int64  `json:"writer_id"`
	CreatedAt string `json:"created_at"`
}

type UpdateCommentResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}
