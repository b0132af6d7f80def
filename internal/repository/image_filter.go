package repository

import (
	"strings"
	"time"

	"resto-doc-server/internal/model"

	"gorm.io/gorm"
)

// ImageFilters 图片查询的谓词描述。所有字段均可选：
// 未填写的字段不参与条件拼接，因此省略某个过滤条件绝不会缩小结果集。
type ImageFilters struct {
	ShowInReport  *bool
	HasComments   bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	ProjectID     string
	RoomIDs       []string
	IDs           []string
	SearchTerm    string
	Type          model.ImageType
}

// ImageSortOptions 排序字段与方向。
type ImageSortOptions struct {
	Field     string // createdAt, order, url
	Direction string // asc, desc
}

// sortColumns API 排序字段到数据库列的白名单映射，防止拼接任意列名。
var sortColumns = map[string]string{
	"createdAt": "images.created_at",
	"order":     "images.sort_order",
	"url":       "images.url",
}

// OrderClause 生成排序子句；未知字段或方向回退到默认 created_at desc。
func (s ImageSortOptions) OrderClause() string {
	column, ok := sortColumns[s.Field]
	if !ok {
		column = "images.created_at"
	}
	direction := strings.ToLower(s.Direction)
	if direction != "asc" && direction != "desc" {
		direction = "desc"
	}
	return column + " " + direction
}

// Scope 将 ImageFilters 翻译为查询谓词。
// 搜索、统计、批量更新与批量删除共用此唯一实现，
// 保证同一组过滤条件在任何操作下选中同一集合（预览即所得）。
func (f ImageFilters) Scope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.ShowInReport != nil {
			tx = tx.Where("images.show_in_report = ?", *f.ShowInReport)
		}
		if f.ProjectID != "" {
			tx = tx.Where("images.project_id = ?", f.ProjectID)
		}
		if len(f.RoomIDs) > 0 {
			tx = tx.Where("images.room_id IN ?", f.RoomIDs)
		}
		if len(f.IDs) > 0 {
			tx = tx.Where("images.id IN ?", f.IDs)
		}
		if f.CreatedAfter != nil {
			tx = tx.Where("images.created_at >= ?", *f.CreatedAfter)
		}
		if f.CreatedBefore != nil {
			tx = tx.Where("images.created_at <= ?", *f.CreatedBefore)
		}
		if f.Type != "" {
			tx = tx.Where("images.type = ?", f.Type)
		}
		if f.HasComments {
			tx = tx.Where("EXISTS (SELECT 1 FROM comments WHERE comments.image_id = images.id)")
		}
		if f.SearchTerm != "" {
			tx = tx.Where("LOWER(images.url) LIKE ?", "%"+strings.ToLower(f.SearchTerm)+"%")
		}
		return tx
	}
}
