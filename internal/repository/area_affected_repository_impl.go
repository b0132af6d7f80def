package repository

import (
	"errors"

	"resto-doc-server/internal/model"

	"gorm.io/gorm"
)

type AreaAffectedRepository struct {
	db *gorm.DB
}

func (r *AreaAffectedRepository) ListByRoom(roomID string) ([]model.AreaAffected, error) {
	var areas []model.AreaAffected
	if err := r.db.Where("room_id = ?", roomID).Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

// Upsert 写入房间某部位的受损记录：已存在则按字段更新，不存在则创建。
// (room_id, type) 唯一，因此同一部位反复写入落在同一条记录上。
func (r *AreaAffectedRepository) Upsert(roomID string, areaType model.AreaAffectedType, updates map[string]interface{}) (*model.AreaAffected, error) {
	var area model.AreaAffected
	err := r.db.Where("room_id = ? AND type = ?", roomID, areaType).First(&area).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		area = model.AreaAffected{RoomID: roomID, Type: areaType}
		if err := r.db.Create(&area).Error; err != nil {
			return nil, err
		}
	}

	if len(updates) > 0 {
		if err := r.db.Model(&area).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := r.db.First(&area, "id = ?", area.ID).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

// DeleteByRoomAndType 删除房间某部位的记录；记录不存在时视为已完成。
func (r *AreaAffectedRepository) DeleteByRoomAndType(roomID string, areaType model.AreaAffectedType) error {
	return r.db.Where("room_id = ? AND type = ?", roomID, areaType).Delete(&model.AreaAffected{}).Error
}
