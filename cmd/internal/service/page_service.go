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

type DefaultPageService struct {
	PageRepo   PageRepository
	DiaryRepo  DiaryRepository
	NoticeRepo NoticeRepository
	Validate   *validator.Validate
}

func NewPageService(
	pageRepo PageRepository,
	diaryRepo DiaryRepository,
	noticeRepo NoticeRepository,
	validate *validator.Validate,
) *DefaultPageService {
	return &DefaultPageService{
		PageRepo:   pageRepo,
		DiaryRepo:  diaryRepo,
		NoticeRepo: noticeRepo,
		Validate:   validate,
	}
}

// CreatePage writes the page and, in the same transaction, an activity
// notice for every other member of the diary.
func (s *DefaultPageService) CreatePage(actor *entity.User, req *contract.CreatePageRequest) (*contract.PageResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	diary, err := s.DiaryRepo.FindByID(req.DiaryID)
	if err != nil {
		log.Errorf("failed to fetch diary %d: %v", req.DiaryID, err)
		return nil, apierror.InternalServerError
	}

	if diary == nil {
		return nil, apierror.NotFoundError
	}

	member, err := s.DiaryRepo.IsMember(req.DiaryID, actor.ID)
	if err != nil {
		log.Errorf("failed to check membership of diary %d: %v", req.DiaryID, err)
		return nil, apierror.InternalServerError
	}

	if !member {
		return nil, apierror.NewForbiddenError("Not a member of this diary")
	}

	members, err := s.DiaryRepo.FindMembers(req.DiaryID)
	if err != nil {
		log.Errorf("failed to fetch members of diary %d: %v", req.DiaryID, err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	page := &entity.Page{
		Title:      req.Title,
		WriterID:   actor.ID,
		DiaryID:    req.DiaryID,
		AddressID:  req.AddressID,
		TargetDate: req.TargetDate,
		Locked:     req.Locked,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.NoticeRepo.InTx(func(tx *gorm.DB) error {
		if err := repository.NewPageRepository(tx).Save(page); err != nil {
			return err
		}

		noticeRepo := repository.NewNoticeRepository(tx)
		for _, m := range members {
			if m.ID == actor.ID {
				continue
			}

			notice := &entity.Notice{
				RequestID:   page.ID,
				ResponseID:  m.ID,
				Message:     msgNewActivity,
				MessageType: entity.MessageTypeActivity,
				CreatedAt:   now,
			}
			if err := noticeRepo.Save(notice); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Errorf("failed to create page in diary %d: %v", req.DiaryID, err)
		return nil, apierror.InternalServerError
	}

	return toPageResponse(page), nil
}

func (s *DefaultPageService) GetPage(actor *entity.User, pageID int64) (*contract.PageResponse, apierror.ErrorResponse) {
	page, err := s.PageRepo.FindActiveByID(pageID)
	if err != nil {
		log.Errorf("failed to fetch page %d: %v", pageID, err)
		return nil, apierror.InternalServerError
	}

	if page == nil {
		return nil, apierror.NotFoundError
	}

	// Locked pages stay private to their writer.
	if page.Locked && page.WriterID != actor.ID {
		return nil, apierror.NewForbiddenError("Page is locked by its writer")
	}
	return toPageResponse(page), nil
}

func (s *DefaultPageService) GetPagesByDiary(actor *entity.User, diaryID int64, pageNum, size int) ([]*contract.PageResponse, apierror.ErrorResponse) {
	member, err := s.DiaryRepo.IsMember(diaryID, actor.ID)
	if err != nil {
		log.Errorf("failed to check membership of diary %d: %v", diaryID, err)
		return nil, apierror.InternalServerError
	}

	if !member {
		return nil, apierror.NewForbiddenError("Not a member of this diary")
	}

	pages, err := s.PageRepo.FindAllByDiary(diaryID, pageNum, size)
	if err != nil {
		log.Errorf("failed to fetch pages of diary %d: %v", diaryID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.PageResponse, 0, len(pages))
	for _, page := range pages {
		if page.Locked && page.WriterID != actor.ID {
			continue
		}
		resp = append(resp, toPageResponse(page))
	}
	return resp, nil
}

func (s *DefaultPageService) UpdatePage(actor *entity.User, pageID int64, req *contract.UpdatePageRequest) (*contract.PageResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	page, apierr := s.fetchOwned(actor, pageID)
	if apierr != nil {
		return nil, apierr
	}

	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.AddressID != nil {
		page.AddressID = *req.AddressID
	}
	if req.TargetDate != nil {
		page.TargetDate = *req.TargetDate
	}
	if req.Locked != nil {
		page.Locked = *req.Locked
	}

	page.UpdatedAt = utils.NowUTC()
	if err := s.PageRepo.Save(page); err != nil {
		log.Errorf("failed to update page %d: %v", pageID, err)
		return nil, apierror.InternalServerError
	}
	return toPageResponse(page), nil
}

// DeletePage soft-deletes the page and, in the same transaction, the
// comment and activity notices that reference it. Those notices resolve
// the page when rendered, so they cannot outlive it.
func (s *DefaultPageService) DeletePage(actor *entity.User, pageID int64) apierror.ErrorResponse {
	page, apierr := s.fetchOwned(actor, pageID)
	if apierr != nil {
		return apierr
	}

	err := s.NoticeRepo.InTx(func(tx *gorm.DB) error {
		if err := repository.NewPageRepository(tx).SoftDelete(page); err != nil {
			return err
		}

		_, err := repository.NewNoticeRepository(tx).DeleteAllByPaper(page.ID)
		return err
	})
	if err != nil {
		log.Errorf("failed to delete page %d: %v", pageID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultPageService) fetchOwned(actor *entity.User, pageID int64) (*entity.Page, apierror.ErrorResponse) {
	page, err := s.PageRepo.FindActiveByID(pageID)
	if err != nil {
		log.Errorf("failed to fetch page %d: %v", pageID, err)
		return nil, apierror.InternalServerError
	}

	if page == nil {
		return nil, apierror.NotFoundError
	}

	if page.WriterID != actor.ID {
		return nil, apierror.NewForbiddenError("Page belongs to another user")
	}
	return page, nil
}

func toPageResponse(page *entity.Page) *contract.PageResponse {
	return &contract.PageResponse{
		ID:         page.ID,
		Title:      page.Title,
		WriterID:   page.WriterID,
		DiaryID:    page.DiaryID,
		AddressID:  page.AddressID,
		TargetDate: page.TargetDate,
		Locked:     page.Locked,
		CreatedAt:  utils.FormatEpoch(page.CreatedAt),
		UpdatedAt:  utils.FormatEpoch(page.UpdatedAt),
	}
}
