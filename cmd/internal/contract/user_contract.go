package contract

type EmailStatus string

const (
	EmailStatusAvailable EmailStatus = "AVAILABLE"
	EmailStatusExists    EmailStatus = "TAKEN"
)

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Nickname string `json:"nickname" validate:"required,min=2,max=10,nospaces"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type EmailCheckRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type EmailCheckResponse struct {
	Status EmailStatus `json:"status"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email,omitempty"` // only on the owner's own profile
	Nickname  string `json:"nickname"`
	CreatedAt string `json:"created_at"`
}
