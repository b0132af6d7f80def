package repository

import "resto-doc-server/internal/model"

type CommentStore interface {
	Create(comment *model.Comment) error
	Delete(id string) error
	ListByImage(imageID string) ([]model.Comment, error)
}
