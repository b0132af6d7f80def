package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment 图片上的文字批注，作者由外部认证层提供的 user_id 标识。
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Content   string    `json:"content" gorm:"not null"`
	UserID    string    `json:"userId" gorm:"not null;index"`
	ImageID   string    `json:"imageId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
