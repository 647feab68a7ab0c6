package service

import (
	"WeTube/internal/authz"
	"WeTube/internal/model"
	"WeTube/internal/repository"
	"fmt"
	"strings"
)

type NoticeList struct {
	Notices []model.Notice
	Total   int64
	Page    Page
}

// NoticeUpdate nil表示不修改
type NoticeUpdate struct {
	Title   *string
	Content *string
}

type NoticeService interface {
	List(page Page) (*NoticeList, error)
	// 每次查看浏览数+1
	View(noticeID uint64) (*model.Notice, error)
	Create(actor *model.User, title, content string) (*model.Notice, error)
	Update(actor *model.User, noticeID uint64, update NoticeUpdate) (*model.Notice, error)
	Delete(actor *model.User, noticeID uint64) error
}

type noticeService struct {
	noticeRepo repository.NoticeRepository
	authorizer *authz.Authorizer
}

func NewNoticeService(noticeRepo repository.NoticeRepository, authorizer *authz.Authorizer) NoticeService {
	return &noticeService{noticeRepo: noticeRepo, authorizer: authorizer}
}

func (s *noticeService) List(page Page) (*NoticeList, error) {
	notices, total, err := s.noticeRepo.List(page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}
	return &NoticeList{Notices: notices, Total: total, Page: page}, nil
}

func (s *noticeService) View(noticeID uint64) (*model.Notice, error) {
	affected, err := s.noticeRepo.IncrementViewCount(noticeID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: 公告不存在", ErrNotFound)
	}
	return s.find(noticeID)
}

func (s *noticeService) Create(actor *model.User, title, content string) (*model.Notice, error) {
	if err := s.requireWrite(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: 标题和内容不能为空", ErrInvalidInput)
	}
	notice := &model.Notice{Title: title, Content: content}
	if err := s.noticeRepo.Create(notice); err != nil {
		return nil, err
	}
	return notice, nil
}

func (s *noticeService) Update(actor *model.User, noticeID uint64, update NoticeUpdate) (*model.Notice, error) {
	if err := s.requireWrite(actor); err != nil {
		return nil, err
	}
	if _, err := s.find(noticeID); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, fmt.Errorf("%w: 标题不能为空", ErrInvalidInput)
		}
		fields["title"] = *update.Title
	}
	if update.Content != nil {
		if strings.TrimSpace(*update.Content) == "" {
			return nil, fmt.Errorf("%w: 内容不能为空", ErrInvalidInput)
		}
		fields["content"] = *update.Content
	}
	if err := s.noticeRepo.UpdateFields(noticeID, fields); err != nil {
		return nil, err
	}
	return s.find(noticeID)
}

func (s *noticeService) Delete(actor *model.User, noticeID uint64) error {
	if err := s.requireWrite(actor); err != nil {
		return err
	}
	affected, err := s.noticeRepo.Delete(noticeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: 公告不存在", ErrNotFound)
	}
	return nil
}

func (s *noticeService) requireWrite(actor *model.User) error {
	if !s.authorizer.Authorize(actor, authz.NoticeWrite).Allowed() {
		return fmt.Errorf("%w: 需要管理员权限", ErrForbidden)
	}
	return nil
}

func (s *noticeService) find(noticeID uint64) (*model.Notice, error) {
	notice, err := s.noticeRepo.FindByID(noticeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: 公告不存在", ErrNotFound)
		}
		return nil, err
	}
	return notice, nil
}
