package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AreaAffectedType 受损区域的部位。
type AreaAffectedType string

const (
	AreaFloor   AreaAffectedType = "floor"
	AreaWalls   AreaAffectedType = "walls"
	AreaCeiling AreaAffectedType = "ceiling"
)

// ValidAreaAffectedType 校验部位取值。
func ValidAreaAffectedType(t AreaAffectedType) bool {
	switch t {
	case AreaFloor, AreaWalls, AreaCeiling:
		return true
	}
	return false
}

// AreaAffected 房间单个部位的受损记录。每个房间每个部位至多一条。
type AreaAffected struct {
	ID                        string           `json:"id" gorm:"primaryKey;size:36"`
	RoomID                    string           `json:"roomId" gorm:"not null;uniqueIndex:idx_area_room_type"`
	Type                      AreaAffectedType `json:"type" gorm:"not null;uniqueIndex:idx_area_room_type"`
	Material                  string           `json:"material"`
	TotalAreaRemoved          string           `json:"totalAreaRemoved"`
	TotalAreaMicrobialApplied string           `json:"totalAreaMicrobialApplied"`
	CabinetryRemoved          string           `json:"cabinetryRemoved"`
	IsVisible                 bool             `json:"isVisible" gorm:"not null;default:true"`
	ExtraFields               json.RawMessage  `json:"extraFields,omitempty" gorm:"type:text"`
	CreatedAt                 time.Time        `json:"createdAt" gorm:"not null"`
}

func (a *AreaAffected) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
