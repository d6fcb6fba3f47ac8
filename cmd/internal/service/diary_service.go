package service

import (
	"gorm.io/gorm"
	"ustory/cmd/internal/contract"
	"ustory/cmd/internal/domain/entity"
	"ustory/cmd/internal/domain/postgres/repository"
	"ustory/cmd/internal/utils"
	"ustory/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type DiaryRepository interface {
	InTx(fn func(tx *gorm.DB) error) error
	FindByID(id int64) (*entity.Diary, error)
	SearchByUser(userID int64, category string, page, size int) ([]*entity.Diary, error)
	IsMember(diaryID, userID int64) (bool, error)
	FindMembers(diaryID int64) ([]*entity.User, error)
	CountMembers(diaryID int64) (int64, error)
	AddMember(diaryID, userID int64) error
	Save(diary *entity.Diary) error
	Delete(diary *entity.Diary) error
}

type DefaultDiaryService struct {
	DiaryRepo DiaryRepository
	UserRepo  UserRepository
	Validate  *validator.Validate
}

func NewDiaryService(diaryRepo DiaryRepository, userRepo UserRepository, validate *validator.Validate) *DefaultDiaryService {
	return &DefaultDiaryService{
		DiaryRepo: diaryRepo,
		UserRepo:  userRepo,
		Validate:  validate,
	}
}

// CreateDiary persists the diary and its initial membership (the
// creator plus any users named in the request) in one transaction.
func (s *DefaultDiaryService) CreateDiary(actor *entity.User, req *contract.CreateDiaryRequest) (*contract.DiaryResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	members := []*entity.User{actor}
	for _, nickname := range req.Users {
		if nickname == actor.Nickname {
			continue
		}

		user, err := s.UserRepo.FindActiveByNickname(nickname)
		if err != nil {
			log.Errorf("failed to fetch user %q: %v", nickname, err)
			return nil, apierror.InternalServerError
		}
		if user == nil {
			return nil, apierror.NewSimple(404, "User '%s' not found", nickname)
		}
		members = append(members, user)
	}

	now := utils.NowUTC()
	diary := &entity.Diary{
		Name:        req.Name,
		ImgURL:      req.ImgURL,
		Category:    req.Category,
		Description: req.Description,
		Color:       req.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.DiaryRepo.InTx(func(tx *gorm.DB) error {
		repo := repository.NewDiaryRepository(tx)
		if err := repo.Save(diary); err != nil {
			return err
		}

		for _, member := range members {
			if err := repo.AddMember(diary.ID, member.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Errorf("failed to create diary: %v", err)
		return nil, apierror.InternalServerError
	}

	return s.toDiaryResponse(diary, int64(len(members))), nil
}

func (s *DefaultDiaryService) GetDiary(actor *entity.User, diaryID int64) (*contract.DiaryResponse, apierror.ErrorResponse) {
	diary, apierr := s.fetchForMember(actor, diaryID)
	if apierr != nil {
		return nil, apierr
	}

	count, err := s.DiaryRepo.CountMembers(diaryID)
	if err != nil {
		log.Errorf("failed to count members of diary %d: %v", diaryID, err)
		return nil, apierror.InternalServerError
	}
	return s.toDiaryResponse(diary, count), nil
}

func (s *DefaultDiaryService) SearchDiaries(actor *entity.User, category string, page, size int) ([]*contract.DiaryResponse, apierror.ErrorResponse) {
	diaries, err := s.DiaryRepo.SearchByUser(actor.ID, category, page, size)
	if err != nil {
		log.Errorf("failed to search diaries of user %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.DiaryResponse, len(diaries))
	for i, diary := range diaries {
		count, err := s.DiaryRepo.CountMembers(diary.ID)
		if err != nil {
			log.Errorf("failed to count members of diary %d: %v", diary.ID, err)
			return nil, apierror.InternalServerError
		}
		resp[i] = s.toDiaryResponse(diary, count)
	}
	return resp, nil
}

func (s *DefaultDiaryService) UpdateDiary(actor *entity.User, diaryID int64, req *contract.UpdateDiaryRequest) (*contract.DiaryResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	diary, apierr := s.fetchForMember(actor, diaryID)
	if apierr != nil {
		return nil, apierr
	}

	if req.Name != nil {
		diary.Name = *req.Name
	}
	if req.ImgURL != nil {
		diary.ImgURL = *req.ImgURL
	}
	if req.Category != nil {
		diary.Category = *req.Category
	}
	if req.Description != nil {
		diary.Description = *req.Description
	}
	if req.Color != nil {
		diary.Color = *req.Color
	}

	diary.UpdatedAt = utils.NowUTC()
	if err := s.DiaryRepo.Save(diary); err != nil {
		log.Errorf("failed to update diary %d: %v", diaryID, err)
		return nil, apierror.InternalServerError
	}

	count, err := s.DiaryRepo.CountMembers(diaryID)
	if err != nil {
		log.Errorf("failed to count members of diary %d: %v", diaryID, err)
		return nil, apierror.InternalServerError
	}
	return s.toDiaryResponse(diary, count), nil
}

func (s *DefaultDiaryService) DeleteDiary(actor *entity.User, diaryID int64) apierror.ErrorResponse {
	diary, apierr := s.fetchForMember(actor, diaryID)
	if apierr != nil {
		return apierr
	}

	if err := s.DiaryRepo.Delete(diary); err != nil {
		log.Errorf("failed to delete diary %d: %v", diaryID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultDiaryService) GetMembers(actor *entity.User, diaryID int64) (*contract.DiaryMembersResponse, apierror.ErrorResponse) {
	if _, apierr := s.fetchForMember(actor, diaryID); apierr != nil {
		return nil, apierr
	}

	members, err := s.DiaryRepo.FindMembers(diaryID)
	if err != nil {
		log.Errorf("failed to fetch members of diary %d: %v", diaryID, err)
		return nil, apierror.InternalServerError
	}

	nicknames := make([]string, len(members))
	for i, member := range members {
		nicknames[i] = member.Nickname
	}

	return &contract.DiaryMembersResponse{
		DiaryID:   diaryID,
		Nicknames: nicknames,
	}, nil
}

// fetchForMember loads the diary and rejects callers that are not part
// of it.
func (s *DefaultDiaryService) fetchForMember(actor *entity.User, diaryID int64) (*entity.Diary, apierror.ErrorResponse) {
	diary, err := s.DiaryRepo.FindByID(diaryID)
	if err != nil {
		log.Errorf("failed to fetch diary %d: %v", diaryID, err)
		return nil, apierror.InternalServerError
	}

	if diary == nil {
		return nil, apierror.NotFoundError
	}

	member, err := s.DiaryRepo.IsMember(diaryID, actor.ID)
	if err != nil {
		log.Errorf("failed to check membership of diary %d: %v", diaryID, err)
		return nil, apierror.InternalServerError
	}

	if !member {
		return nil, apierror.NewForbiddenError("Not a member of this diary")
	}
	return diary, nil
}

func (s *DefaultDiaryService) toDiaryResponse(diary *entity.Diary, memberCount int64) *contract.DiaryResponse {
	return &contract.DiaryResponse{
		ID:          diary.ID,
		Name:        diary.Name,
		ImgURL:      diary.ImgURL,
		Category:    diary.Category,
		Description: diary.Description,
		Color:       diary.Color,
		MemberCount: memberCount,
		CreatedAt:   utils.FormatEpoch(diary.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(diary.UpdatedAt),
	}
}
