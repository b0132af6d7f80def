package service

import (
	"math"

	"resto-doc-server/internal/consts"
	"resto-doc-server/internal/model"
	"resto-doc-server/internal/repository"
)

type ImageService struct {
	images repository.ImageStore
	rooms  repository.RoomStore
}

type PaginationOptions struct {
	Page  int
	Limit int
}

type AddImageParams struct {
	URL          string
	Name         string
	Description  string
	Type         model.ImageType
	ShowInReport bool
	Order        int
	ProjectID    string
	RoomID       string
}

type UpdateImageParams struct {
	URL          *string
	Name         *string
	Description  *string
	Type         *model.ImageType
	ShowInReport *bool
	Order        *int
}

// BulkImageUpdates 批量更新允许修改的字段子集。
type BulkImageUpdates struct {
	ShowInReport *bool
	Order        *int
	RoomID       *string
}

type SearchImagesResult struct {
	Data       []model.Image `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

type ImageStats struct {
	TotalImages        int64                       `json:"totalImages"`
	ImagesInReport     int64                       `json:"imagesInReport"`
	ImagesWithComments int64                       `json:"imagesWithComments"`
	ImagesByRoom       []repository.RoomImageCount `json:"imagesByRoom"`
}

// normalizePagination 归一化分页参数，确保页码与页大小有最小值。
func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

// AddImage 在项目中登记一张图片。未指定房间时归入项目的 "Untitled Room"，
// 该默认房间按 (name, projectId) 查找或创建，重复调用不会产生第二个。
func (s *ImageService) AddImage(params AddImageParams) (*model.Image, error) {
	if params.URL == "" || params.ProjectID == "" {
		return nil, NewValidationError("url 与 projectId 不能为空")
	}

	roomID := params.RoomID
	if roomID == "" {
		room, err := s.rooms.FindByNameAndProject(consts.UntitledRoomName, params.ProjectID)
		if err != nil {
			if !IsRecordNotFound(err) {
				return nil, err
			}
			room = &model.Room{Name: consts.UntitledRoomName, ProjectID: params.ProjectID}
			if err := s.rooms.Create(room); err != nil {
				return nil, err
			}
		}
		roomID = room.ID
	}

	image := &model.Image{
		URL:          params.URL,
		Name:         params.Name,
		Description:  params.Description,
		Type:         params.Type,
		ShowInReport: params.ShowInReport,
		Order:        params.Order,
		ProjectID:    params.ProjectID,
		RoomID:       &roomID,
	}
	if err := s.images.Create(image); err != nil {
		return nil, err
	}
	InvalidateStatsCache(params.ProjectID)
	image.Comments = []model.Comment{}
	return image, nil
}

func (s *ImageService) GetImage(id string) (*model.Image, error) {
	image, err := s.images.FindByID(id)
	if err != nil {
		if IsRecordNotFound(err) {
			return nil, NewNotFoundError("图片不存在")
		}
		return nil, err
	}
	return image, nil
}

func (s *ImageService) UpdateImage(id string, params UpdateImageParams) (*model.Image, error) {
	updates := map[string]interface{}{}
	if params.URL != nil {
		updates["url"] = *params.URL
	}
	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Type != nil {
		updates["type"] = *params.Type
	}
	if params.ShowInReport != nil {
		updates["show_in_report"] = *params.ShowInReport
	}
	if params.Order != nil {
		updates["sort_order"] = *params.Order
	}
	if len(updates) == 0 {
		return s.GetImage(id)
	}

	image, err := s.images.Update(id, updates)
	if err != nil {
		if IsRecordNotFound(err) {
			return nil, NewNotFoundError("图片不存在")
		}
		return nil, err
	}
	InvalidateStatsCache(image.ProjectID)
	return image, nil
}

// RemoveImage 删除单张图片及其评论。
func (s *ImageService) RemoveImage(id string) (*model.Image, error) {
	image, err := s.GetImage(id)
	if err != nil {
		return nil, err
	}
	if err := s.images.Delete(id); err != nil {
		if IsRecordNotFound(err) {
			return nil, NewNotFoundError("图片不存在")
		}
		return nil, err
	}
	InvalidateStatsCache(image.ProjectID)
	return image, nil
}

// GetRoomImages 获取房间全部图片；reportOnly 为 true 时仅返回报告图片。
func (s *ImageService) GetRoomImages(roomID string, reportOnly bool) ([]model.Image, error) {
	return s.images.ListByRoom(roomID, reportOnly)
}

// SearchImages 按过滤条件分页检索图片。
// 总数统计与取页共用同一谓词（repository.ImageFilters.Scope），
// 因此搜索预览到的集合与后续批量操作命中的集合一致。
func (s *ImageService) SearchImages(filters repository.ImageFilters, sort repository.ImageSortOptions, pagination PaginationOptions) (*SearchImagesResult, error) {
	page, limit := normalizePagination(pagination.Page, pagination.Limit)

	images, total, err := s.images.Search(filters, sort, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	if images == nil {
		images = []model.Image{}
	}
	return &SearchImagesResult{
		Data:       images,
		Total:      total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// GetImageStats 项目图片统计。四项数字相互独立；
// 三个计数查询同样经由共享谓词构造，与搜索口径一致。
// 启用 Redis 时结果短暂缓存，写操作时失效。
func (s *ImageService) GetImageStats(projectID string) (*ImageStats, error) {
	if cached, ok := loadStatsCache(projectID); ok {
		return cached, nil
	}

	total, err := s.images.CountMatching(repository.ImageFilters{ProjectID: projectID})
	if err != nil {
		return nil, err
	}

	inReport := true
	reportCount, err := s.images.CountMatching(repository.ImageFilters{ProjectID: projectID, ShowInReport: &inReport})
	if err != nil {
		return nil, err
	}

	withComments, err := s.images.CountMatching(repository.ImageFilters{ProjectID: projectID, HasComments: true})
	if err != nil {
		return nil, err
	}

	byRoom, err := s.images.RoomImageCounts(projectID)
	if err != nil {
		return nil, err
	}
	if byRoom == nil {
		byRoom = []repository.RoomImageCount{}
	}

	stats := &ImageStats{
		TotalImages:        total,
		ImagesInReport:     reportCount,
		ImagesWithComments: withComments,
		ImagesByRoom:       byRoom,
	}
	storeStatsCache(projectID, stats)
	return stats, nil
}

// BulkUpdateImages 按过滤条件批量更新。projectID 为必填上下文，
// 由调用方并入过滤条件，杜绝漏传导致的跨项目批量写。
// 仅含 projectId 的过滤条件是合法的（作用于整个项目）。
func (s *ImageService) BulkUpdateImages(projectID string, filters repository.ImageFilters, updates BulkImageUpdates) (int64, error) {
	if projectID == "" {
		return 0, NewValidationError("projectId 不能为空")
	}
	filters.ProjectID = projectID

	fields := map[string]interface{}{}
	if updates.ShowInReport != nil {
		fields["show_in_report"] = *updates.ShowInReport
	}
	if updates.Order != nil {
		fields["sort_order"] = *updates.Order
	}
	if updates.RoomID != nil {
		// 目标房间必须存在且属于同一项目，避免无外键方言下写入悬空引用
		room, err := s.rooms.FindByID(*updates.RoomID)
		if err != nil {
			if IsRecordNotFound(err) {
				return 0, NewNotFoundError("目标房间不存在")
			}
			return 0, err
		}
		if room.ProjectID != projectID {
			return 0, NewValidationError("目标房间不属于该项目")
		}
		fields["room_id"] = *updates.RoomID
	}
	if len(fields) == 0 {
		return 0, NewValidationError("没有需要更新的字段")
	}

	count, err := s.images.BulkUpdate(filters, fields)
	if err != nil {
		return 0, err
	}
	InvalidateStatsCache(projectID)
	return count, nil
}

// BulkRemoveImages 按过滤条件批量删除（含评论）。
func (s *ImageService) BulkRemoveImages(projectID string, filters repository.ImageFilters) (int64, error) {
	if projectID == "" {
		return 0, NewValidationError("projectId 不能为空")
	}
	filters.ProjectID = projectID

	count, err := s.images.BulkDelete(filters)
	if err != nil {
		return 0, err
	}
	InvalidateStatsCache(projectID)
	return count, nil
}

// SetImagesReportStatus 按显式 ID 列表设置报告可见性。
// 报告可见性直接影响统计口径，涉及的每个项目都需要失效缓存。
func (s *ImageService) SetImagesReportStatus(ids []string, showInReport bool) (int64, error) {
	if len(ids) == 0 {
		return 0, NewValidationError("imageIds 不能为空")
	}
	count, projectIDs, err := s.images.SetReportStatus(ids, showInReport)
	if err != nil {
		return 0, err
	}
	for _, projectID := range projectIDs {
		InvalidateStatsCache(projectID)
	}
	return count, nil
}

// UpdateImagesOrder 批量写入排序位。每条记录的值各不相同，
// 无法表达为单条谓词更新，因此逐条写入并在单个事务内保证全部成功或全部回滚。
func (s *ImageService) UpdateImagesOrder(updates []repository.ImageOrderUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, NewValidationError("更新列表不能为空")
	}
	if err := s.images.UpdateOrders(updates); err != nil {
		if IsRecordNotFound(err) {
			return 0, NewNotFoundError("部分图片不存在，已回滚全部排序更新")
		}
		return 0, err
	}
	return int64(len(updates)), nil
}

// ToggleAllRoomImagesInReport 切换房间内全部图片的报告可见性。
func (s *ImageService) ToggleAllRoomImagesInReport(roomID string, showInReport bool) (int64, error) {
	room, err := s.rooms.FindByID(roomID)
	if err != nil {
		if IsRecordNotFound(err) {
			return 0, NewNotFoundError("房间不存在")
		}
		return 0, err
	}

	count, err := s.images.ToggleRoomReport(roomID, showInReport)
	if err != nil {
		return 0, err
	}
	InvalidateStatsCache(room.ProjectID)
	return count, nil
}
