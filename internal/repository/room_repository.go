package repository

import "resto-doc-server/internal/model"

type RoomStore interface {
	Create(room *model.Room) error
	FindByID(id string) (*model.Room, error)
	FindByNameAndProject(name string, projectID string) (*model.Room, error)
	ListByProject(projectID string) ([]model.Room, error)
	Update(id string, updates map[string]interface{}) (*model.Room, error)
	Delete(id string) error
}
