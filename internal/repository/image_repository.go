package repository

import "resto-doc-server/internal/model"

// ImageOrderUpdate 单张图片的新排序位。
type ImageOrderUpdate struct {
	ID    string
	Order int
}

// RoomImageCount 按房间统计的图片数。
type RoomImageCount struct {
	RoomID   string `json:"roomId"`
	RoomName string `json:"roomName"`
	Count    int64  `json:"count"`
}

type ImageStore interface {
	Create(image *model.Image) error
	FindByID(id string) (*model.Image, error)
	Update(id string, updates map[string]interface{}) (*model.Image, error)
	Delete(id string) error
	ListByRoom(roomID string, reportOnly bool) ([]model.Image, error)
	Search(filters ImageFilters, sort ImageSortOptions, offset, limit int) ([]model.Image, int64, error)
	CountMatching(filters ImageFilters) (int64, error)
	RoomImageCounts(projectID string) ([]RoomImageCount, error)
	BulkUpdate(filters ImageFilters, updates map[string]interface{}) (int64, error)
	BulkDelete(filters ImageFilters) (int64, error)
	SetReportStatus(ids []string, showInReport bool) (int64, []string, error)
	UpdateOrders(updates []ImageOrderUpdate) error
	ToggleRoomReport(roomID string, showInReport bool) (int64, error)
}
