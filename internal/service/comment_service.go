package service

import (
	"resto-doc-server/internal/model"
	"resto-doc-server/internal/repository"
)

type CommentService struct {
	comments repository.CommentStore
	images   repository.ImageStore
}

type AddCommentParams struct {
	Content string
	UserID  string
}

// AddComment 在图片上添加批注。
func (s *CommentService) AddComment(imageID string, params AddCommentParams) (*model.Comment, error) {
	if params.Content == "" {
		return nil, NewValidationError("content 不能为空")
	}
	if params.UserID == "" {
		return nil, NewValidationError("userId 不能为空")
	}

	if _, err := s.images.FindByID(imageID); err != nil {
		if IsRecordNotFound(err) {
			return nil, NewNotFoundError("图片不存在")
		}
		return nil, err
	}

	comment := &model.Comment{
		Content: params.Content,
		UserID:  params.UserID,
		ImageID: imageID,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) RemoveComment(id string) error {
	if err := s.comments.Delete(id); err != nil {
		if IsRecordNotFound(err) {
			return NewNotFoundError("评论不存在")
		}
		return err
	}
	return nil
}

// GetComments 按时间倒序列出图片的全部评论。
func (s *CommentService) GetComments(imageID string) ([]model.Comment, error) {
	return s.comments.ListByImage(imageID)
}
