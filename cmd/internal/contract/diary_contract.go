package contract

const DiaryCategories = "INDIVIDUAL COUPLE FAMILY FRIENDS"

type CreateDiaryRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=20"`
	ImgURL      string   `json:"img_url" validate:"required,url"`
	Category    string   `json:"category" validate:"required,oneof=INDIVIDUAL COUPLE FAMILY FRIENDS"`
	Description string   `json:"description" validate:"required,min=1,max=20"`
	Color       string   `json:"color" validate:"required,hexcolor"`
	Users       []string `json:"users" validate:"omitempty,max=20,nodupes,dive,required"` // member nicknames besides the creator
}

type UpdateDiaryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=20"`
	ImgURL      *string `json:"img_url" validate:"omitempty,url"`
	Category    *string `json:"category" validate:"omitempty,oneof=INDIVIDUAL COUPLE FAMILY FRIENDS"`
	Description *string `json:"description" validate:"omitempty,min=1,max=20"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
}

type DiaryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ImgURL      string `json:"img_url"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Color       string `json:"color"`
	MemberCount int64  `json:"member_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type DiaryMembersResponse struct {
	DiaryID   int64    `json:"diary_id"`
	Nicknames []string `json:"nicknames"`
}
