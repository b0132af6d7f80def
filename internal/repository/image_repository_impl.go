package repository

import (
	"resto-doc-server/internal/model"

	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func (r *ImageRepository) Create(image *model.Image) error {
	return r.db.Create(image).Error
}

func (r *ImageRepository) FindByID(id string) (*model.Image, error) {
	var image model.Image
	if err := r.db.Preload("Comments").First(&image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) Update(id string, updates map[string]interface{}) (*model.Image, error) {
	result := r.db.Model(&model.Image{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

// Delete 删除单张图片并级联删除其评论。
// 不依赖数据库外键的级联配置，跨方言行为一致。
func (r *ImageRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Image{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("image_id = ?", id).Delete(&model.Comment{}).Error
	})
}

func (r *ImageRepository) ListByRoom(roomID string, reportOnly bool) ([]model.Image, error) {
	var images []model.Image
	query := r.db.Preload("Comments").Where("room_id = ?", roomID)
	if reportOnly {
		query = query.Where("show_in_report = ?", true)
	}
	if err := query.Order("sort_order asc").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// Search 统计总数并返回一页记录。计数与取页共用同一谓词，
// 但不在同一事务内，两次查询之间的并发写入可能造成计数偏差（接受的竞态）。
func (r *ImageRepository) Search(filters ImageFilters, sort ImageSortOptions, offset, limit int) ([]model.Image, int64, error) {
	var total int64
	var images []model.Image

	if err := r.db.Model(&model.Image{}).Scopes(filters.Scope()).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Model(&model.Image{}).
		Scopes(filters.Scope()).
		Preload("Comments").
		Preload("Room").
		Order(sort.OrderClause()).
		Offset(offset).
		Limit(limit).
		Find(&images).Error
	if err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

func (r *ImageRepository) CountMatching(filters ImageFilters) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Image{}).Scopes(filters.Scope()).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RoomImageCounts 按房间统计项目内图片数，无图片的房间计为 0。
func (r *ImageRepository) RoomImageCounts(projectID string) ([]RoomImageCount, error) {
	var rows []RoomImageCount
	err := r.db.Model(&model.Room{}).
		Select("rooms.id AS room_id, rooms.name AS room_name, COUNT(images.id) AS count").
		Joins("LEFT JOIN images ON images.room_id = rooms.id").
		Where("rooms.project_id = ?", projectID).
		Group("rooms.id, rooms.name").
		Order("MIN(rooms.created_at) desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ImageRepository) BulkUpdate(filters ImageFilters, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&model.Image{}).Scopes(filters.Scope()).Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// BulkDelete 按谓词批量删除图片及其评论。
// 先用共享谓词选出 ID 集合，再在事务内删除评论与图片，
// 返回的数量即谓词命中的图片数。
func (r *ImageRepository) BulkDelete(filters ImageFilters) (int64, error) {
	var ids []string
	if err := r.db.Model(&model.Image{}).Scopes(filters.Scope()).Pluck("images.id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id IN ?", ids).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.Image{}).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

// SetReportStatus 按 ID 列表设置报告可见性，返回命中行数与涉及的项目 ID，
// 供调用方逐项目失效统计缓存。
func (r *ImageRepository) SetReportStatus(ids []string, showInReport bool) (int64, []string, error) {
	if len(ids) == 0 {
		return 0, nil, nil
	}

	var projectIDs []string
	if err := r.db.Model(&model.Image{}).Where("id IN ?", ids).Distinct().Pluck("project_id", &projectIDs).Error; err != nil {
		return 0, nil, err
	}

	result := r.db.Model(&model.Image{}).Where("id IN ?", ids).Update("show_in_report", showInReport)
	if result.Error != nil {
		return 0, nil, result.Error
	}
	return result.RowsAffected, projectIDs, nil
}

// UpdateOrders 在单个事务内逐条写入排序位：任何一条失败（含 ID 不存在）则全部回滚。
func (r *ImageRepository) UpdateOrders(updates []ImageOrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			result := tx.Model(&model.Image{}).Where("id = ?", u.ID).Update("sort_order", u.Order)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *ImageRepository) ToggleRoomReport(roomID string, showInReport bool) (int64, error) {
	result := r.db.Model(&model.Image{}).Where("room_id = ?", roomID).Update("show_in_report", showInReport)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
