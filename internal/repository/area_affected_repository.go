package repository

import "resto-doc-server/internal/model"

type AreaAffectedStore interface {
	ListByRoom(roomID string) ([]model.AreaAffected, error)
	Upsert(roomID string, areaType model.AreaAffectedType, updates map[string]interface{}) (*model.AreaAffected, error)
	DeleteByRoomAndType(roomID string, areaType model.AreaAffectedType) error
}
