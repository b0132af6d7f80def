package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageType 图片的业务类型。
type ImageType string

const (
	ImageTypeRoom ImageType = "ROOM"
	ImageTypeNote ImageType = "NOTE"
)

// Image 项目中的一张照片/视频。必定归属一个项目，房间可选（允许未分组）。
type Image struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	URL          string    `json:"url" gorm:"not null"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Type         ImageType `json:"type" gorm:"not null;default:ROOM;index"`
	ShowInReport bool      `json:"showInReport" gorm:"not null;default:false;index"`
	Order        int       `json:"order" gorm:"column:sort_order;not null;default:0"`
	ProjectID    string    `json:"projectId" gorm:"not null;index"`
	RoomID       *string   `json:"roomId" gorm:"index"`
	CreatedAt    time.Time `json:"createdAt" gorm:"not null;index"`
	Room         *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Comments     []Comment `json:"comments" gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE;"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Type == "" {
		i.Type = ImageTypeRoom
	}
	return nil
}
