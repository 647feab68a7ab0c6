package service

import (
	"WeTube/internal/authz"
	"WeTube/internal/model"
	"WeTube/internal/repository"
	"fmt"
	"strings"
)

type CommentService interface {
	CreateComment(authorID, videoID uint64, content string) (*model.Comment, error)
	// 获取一个视频的所有评论
	GetComments(videoID uint64) ([]model.Comment, error)
	// 作者本人或有comment:delete_any能力的用户才能删
	DeleteComment(actor *model.User, commentID uint64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	authorizer  *authz.Authorizer
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository, authorizer *authz.Authorizer) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		authorizer:  authorizer,
	}
}

// 创建评论：1、内容非空 2、视频存在 3、创建后带作者再查一次
func (s *commentService) CreateComment(authorID, videoID uint64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: 评论内容不能为空", ErrInvalidInput)
	}
	if err := s.ensureVideo(videoID); err != nil {
		return nil, err
	}
	newComment := &model.Comment{
		AuthorID: authorID,
		VideoID:  videoID,
		Content:  content,
	}
	if err := s.commentRepo.Create(newComment); err != nil {
		return nil, err
	}
	// 创建成功后，立刻把它带着关联数据再查出来
	return s.commentRepo.FindByID(newComment.ID)
}

func (s *commentService) GetComments(videoID uint64) ([]model.Comment, error) {
	if err := s.ensureVideo(videoID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByVideo(videoID)
}

func (s *commentService) DeleteComment(actor *model.User, commentID uint64) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("%w: 评论不存在", ErrNotFound)
		}
		return err
	}
	if comment.AuthorID != actor.ID && !s.authorizer.Authorize(actor, authz.CommentDeleteAny).Allowed() {
		return fmt.Errorf("%w: 只能删除自己的评论", ErrForbidden)
	}
	return s.commentRepo.Delete(commentID)
}

func (s *commentService) ensureVideo(videoID uint64) error {
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("%w: 视频不存在", ErrNotFound)
		}
		return err
	}
	return nil
}
