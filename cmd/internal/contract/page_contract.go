package contract

type CreatePageRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=20"`
	DiaryID    int64  `json:"diary_id" validate:"required"`
	AddressID  int64  `json:"address_id" validate:"omitempty,min=0"`
	TargetDate string `json:"target_date" validate:"required,datetime=2006-01-02"`
	Locked     bool   `json:"locked"`
}

type UpdatePageRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=20"`
	AddressID  *int64  `json:"address_id" validate:"omitempty,min=0"`
	TargetDate *string `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
	Locked     *bool   `json:"locked"`
}

type PageResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	WriterID   int64  `json:"writer_id"`
	DiaryID    int64  `json:"diary_id"`
	AddressID  int64  `json:"address_id"`
	TargetDate string `json:"target_date"`
	Locked     bool   `json:"locked"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
