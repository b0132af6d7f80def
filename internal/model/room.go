package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room 项目内的图片分组（如 "Kitchen"）。
type Room struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"not null;index:idx_rooms_project_name"`
	ProjectID string    `json:"projectId" gorm:"not null;index;index:idx_rooms_project_name"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index"`
	Images    []Image   `json:"images,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
