package service

import (
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	FindActiveByID(id int64) (*entity.User, error)
	FindActiveByEmail(email string) (*entity.User, error)
	FindActiveByNickname(nickname string) (*entity.User, error)
	ExistsActiveByEmail(email string) (bool, error)
	Save(user *entity.User) error
	SoftDelete(user *entity.User) error
}

type TokenProvider interface {
	CreateAccessToken(userID int64) (string, error)
	CreateRefreshToken() (string, error)
}

type DefaultUserService struct {
	UserRepo UserRepository
	Tokens   TokenProvider
	Validate *validator.Validate
}

func NewUserService(userRepo UserRepository, tokens TokenProvider, validate *validator.Validate) *DefaultUserService {
	return &DefaultUserService{
		UserRepo: userRepo,
		Tokens:   tokens,
		Validate: validate,
	}
}

func (u *DefaultUserService) SignUp(req *contract.SignUpRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	taken, err := u.UserRepo.ExistsActiveByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check if email exists: %v", err)
		return nil, apierror.InternalServerError
	}

	if taken {
		return nil, apierror.EmailTakenError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		Email:     req.Email,
		Nickname:  req.Nickname,
		Password:  string(hash),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}
	return toUserResponse(user, user), nil
}

func (u *DefaultUserService) Login(req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	user, err := u.UserRepo.FindActiveByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user by email: %v", err)
		return nil, apierror.InternalServerError
	}

	// Same response for unknown email and wrong password.
	if user == nil {
		return nil, apierror.CredentialsMismatchError
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, apierror.CredentialsMismatchError
	}

	access, err := u.Tokens.CreateAccessToken(user.ID)
	if err != nil {
		log.Errorf("failed to issue access token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	refresh, err := u.Tokens.CreateRefreshToken()
	if err != nil {
		log.Errorf("failed to issue refresh token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (u *DefaultUserService) CheckEmail(req *contract.EmailCheckRequest) (*contract.EmailCheckResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	taken, err := u.UserRepo.ExistsActiveByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check if email exists: %v", err)
		return nil, apierror.InternalServerError
	}

	status := contract.EmailStatusAvailable
	if taken {
		status = contract.EmailStatusExists
	}
	return &contract.EmailCheckResponse{Status: status}, nil
}

func (u *DefaultUserService) GetUser(actor *entity.User, userID int64) (*contract.UserResponse, apierror.ErrorResponse) {
	user, err := u.UserRepo.FindActiveByID(userID)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.NotFoundError
	}
	return toUserResponse(user, actor), nil
}

func (u *DefaultUserService) Withdraw(actor *entity.User) apierror.ErrorResponse {
	if err := u.UserRepo.SoftDelete(actor); err != nil {
		log.Errorf("failed to withdraw user %d: %v", actor.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

func toUserResponse(user, viewer *entity.User) *contract.UserResponse {
	resp := &contract.UserResponse{
		ID:        user.ID,
		Nickname:  user.Nickname,
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
	}

	if viewer != nil && viewer.ID == user.ID {
		resp.Email = user.Email
	}
	return resp
}
