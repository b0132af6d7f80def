package dto

import (
	"encoding/json"
	"time"

	"resto-doc-server/internal/model"
	"resto-doc-server/internal/repository"
)

type CreateRoomRequest struct {
	Name      string `json:"name" binding:"required"`
	ProjectID string `json:"projectId" binding:"required"`
}

type UpdateRoomRequest struct {
	Name *string `json:"name"`
}

type AddImageRequest struct {
	URL          string `json:"url" binding:"required"`
	ProjectID    string `json:"projectId" binding:"required"`
	RoomID       string `json:"roomId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	ShowInReport bool   `json:"showInReport"`
	Order        int    `json:"order"`
}

type UpdateImageRequest struct {
	URL          *string `json:"url"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Type         *string `json:"type"`
	ShowInReport *bool   `json:"showInReport"`
	Order        *int    `json:"order"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateAreaAffectedRequest 部位受损记录的部分更新，所有字段可选。
type UpdateAreaAffectedRequest struct {
	Material                  *string         `json:"material"`
	TotalAreaRemoved          *string         `json:"totalAreaRemoved"`
	TotalAreaMicrobialApplied *string         `json:"totalAreaMicrobialApplied"`
	CabinetryRemoved          *string         `json:"cabinetryRemoved"`
	IsVisible                 *bool           `json:"isVisible"`
	ExtraFields               json.RawMessage `json:"extraFields"`
}

type ReportStatusRequest struct {
	ImageIDs     []string `json:"imageIds" binding:"required"`
	ShowInReport *bool    `json:"showInReport" binding:"required"`
}

type ImageOrderPayload struct {
	ID    string `json:"id" binding:"required"`
	Order *int   `json:"order" binding:"required"`
}

type ToggleAllReportRequest struct {
	ShowInReport *bool `json:"showInReport" binding:"required"`
}

// ImageFiltersPayload 批量接口请求体中的过滤条件。
// 所有字段可选，缺省字段不参与谓词拼接。projectId 不在此处：
// 它取自路径参数并由服务层强制并入。
type ImageFiltersPayload struct {
	ShowInReport  *bool      `json:"showInReport"`
	HasComments   *bool      `json:"hasComments"`
	CreatedAfter  *time.Time `json:"createdAfter"`
	CreatedBefore *time.Time `json:"createdBefore"`
	RoomIDs       []string   `json:"roomIds"`
	IDs           []string   `json:"ids"`
	SearchTerm    string     `json:"searchTerm"`
	Type          string     `json:"type"`
}

// ToFilters 转换为仓储层过滤条件。
func (p ImageFiltersPayload) ToFilters() repository.ImageFilters {
	return repository.ImageFilters{
		ShowInReport:  p.ShowInReport,
		HasComments:   p.HasComments != nil && *p.HasComments,
		CreatedAfter:  p.CreatedAfter,
		CreatedBefore: p.CreatedBefore,
		RoomIDs:       p.RoomIDs,
		IDs:           p.IDs,
		SearchTerm:    p.SearchTerm,
		Type:          model.ImageType(p.Type),
	}
}

type BulkUpdatesPayload struct {
	ShowInReport *bool   `json:"showInReport"`
	Order        *int    `json:"order"`
	RoomID       *string `json:"roomId"`
}

type BulkUpdateImagesRequest struct {
	Filters ImageFiltersPayload `json:"filters"`
	Updates BulkUpdatesPayload  `json:"updates"`
}

type BulkRemoveImagesRequest struct {
	Filters ImageFiltersPayload `json:"filters"`
}
