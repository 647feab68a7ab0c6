package service

import (
	"WeTube/internal/authz"
	"WeTube/internal/data"
	"WeTube/internal/model"
	"WeTube/internal/repository"
	"fmt"
	"strings"
	"time"
)

type InquiryList struct {
	Inquiries []model.Inquiry
	Total     int64
	Page      Page
}

type InquiryService interface {
	Create(authorID uint64, title, content string) (*model.Inquiry, error)
	ListMine(authorID uint64, page Page) (*InquiryList, error)
	ListAll(actor *model.User, page Page) (*InquiryList, error)
	// 本人或有inquiry:read_any能力的用户
	Get(actor *model.User, inquiryID uint64) (*model.Inquiry, error)
	// UNANSWERED/CLEARED -> ANSWERED，已答复的再答复就是修改答复
	Answer(actor *model.User, inquiryID uint64, answer string) (*model.Inquiry, error)
	// -> CLEARED
	ClearAnswer(actor *model.User, inquiryID uint64) (*model.Inquiry, error)
}

type inquiryService struct {
	inquiryRepo repository.InquiryRepository
	uow         data.UnitOfWork
	authorizer  *authz.Authorizer
	now         func() time.Time
}

func NewInquiryService(inquiryRepo repository.InquiryRepository, uow data.UnitOfWork, authorizer *authz.Authorizer) InquiryService {
	return &inquiryService{
		inquiryRepo: inquiryRepo,
		uow:         uow,
		authorizer:  authorizer,
		now:         time.Now,
	}
}

func (s *inquiryService) Create(authorID uint64, title, content string) (*model.Inquiry, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: 标题和内容不能为空", ErrInvalidInput)
	}
	inquiry := &model.Inquiry{
		AuthorID:     authorID,
		Title:        title,
		Content:      content,
		AnswerStatus: model.AnswerUnanswered,
	}
	if err := s.inquiryRepo.Create(inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *inquiryService) ListMine(authorID uint64, page Page) (*InquiryList, error) {
	inquiries, total, err := s.inquiryRepo.ListByAuthor(authorID, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}
	return &InquiryList{Inquiries: inquiries, Total: total, Page: page}, nil
}

func (s *inquiryService) ListAll(actor *model.User, page Page) (*InquiryList, error) {
	if !s.authorizer.Authorize(actor, authz.InquiryListAll).Allowed() {
		return nil, fmt.Errorf("%w: 需要管理员权限", ErrForbidden)
	}
	inquiries, total, err := s.inquiryRepo.ListAll(page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}
	return &InquiryList{Inquiries: inquiries, Total: total, Page: page}, nil
}

func (s *inquiryService) Get(actor *model.User, inquiryID uint64) (*model.Inquiry, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	inquiry, err := findInquiry(s.inquiryRepo, inquiryID)
	if err != nil {
		return nil, err
	}
	if inquiry.AuthorID != actor.ID && !s.authorizer.Authorize(actor, authz.InquiryReadAny).Allowed() {
		return nil, fmt.Errorf("%w: 只能查看自己的询问", ErrForbidden)
	}
	return inquiry, nil
}

func (s *inquiryService) Answer(actor *model.User, inquiryID uint64, answer string) (*model.Inquiry, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("%w: 答复内容不能为空", ErrInvalidInput)
	}
	answeredAt := s.now()
	return s.updateAnswer(actor, inquiryID, func(inquiry *model.Inquiry) {
		inquiry.Answer = &answer
		inquiry.IsAnswered = true
		inquiry.AnsweredAt = &answeredAt
		inquiry.AnswerStatus = model.AnswerAnswered
	})
}

func (s *inquiryService) ClearAnswer(actor *model.User, inquiryID uint64) (*model.Inquiry, error) {
	return s.updateAnswer(actor, inquiryID, func(inquiry *model.Inquiry) {
		inquiry.Answer = nil
		inquiry.IsAnswered = false
		inquiry.AnsweredAt = nil
		inquiry.AnswerStatus = model.AnswerCleared
	})
}

// updateAnswer 答复的四个字段在同一个事务里读出、修改、写回
func (s *inquiryService) updateAnswer(actor *model.User, inquiryID uint64, apply func(*model.Inquiry)) (*model.Inquiry, error) {
	if !s.authorizer.Authorize(actor, authz.InquiryAnswer).Allowed() {
		return nil, fmt.Errorf("%w: 需要管理员权限", ErrForbidden)
	}
	var updated *model.Inquiry
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		inquiry, err := findInquiry(repos.InquiryRepo, inquiryID)
		if err != nil {
			return err
		}
		apply(inquiry)
		if err := repos.InquiryRepo.SaveAnswer(inquiry); err != nil {
			return err
		}
		updated = inquiry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func findInquiry(repo repository.InquiryRepository, inquiryID uint64) (*model.Inquiry, error) {
	inquiry, err := repo.FindByID(inquiryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: 询问不存在", ErrNotFound)
		}
		return nil, err
	}
	return inquiry, nil
}
