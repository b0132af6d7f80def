package repository

import (
	"resto-doc-server/internal/model"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func (r *RoomRepository) Create(room *model.Room) error {
	return r.db.Create(room).Error
}

func (r *RoomRepository) FindByID(id string) (*model.Room, error) {
	var room model.Room
	err := r.db.
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("images.sort_order asc") }).
		Preload("Images.Comments").
		First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) FindByNameAndProject(name string, projectID string) (*model.Room, error) {
	var room model.Room
	err := r.db.Where("name = ? AND project_id = ?", name, projectID).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListByProject 房间按创建时间倒序，房间内图片按排序位升序并附带评论。
func (r *RoomRepository) ListByProject(projectID string) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("images.sort_order asc") }).
		Preload("Images.Comments").
		Where("project_id = ?", projectID).
		Order("created_at desc").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) Update(id string, updates map[string]interface{}) (*model.Room, error) {
	result := r.db.Model(&model.Room{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

// Delete 删除房间并级联删除其图片、评论与受损区域记录。
func (r *RoomRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var imageIDs []string
		if err := tx.Model(&model.Image{}).Where("room_id = ?", id).Pluck("id", &imageIDs).Error; err != nil {
			return err
		}
		if len(imageIDs) > 0 {
			if err := tx.Where("image_id IN ?", imageIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", imageIDs).Delete(&model.Image{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("room_id = ?", id).Delete(&model.AreaAffected{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Room{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
