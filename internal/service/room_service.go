package service

import (
	"encoding/json"

	"resto-doc-server/internal/model"
	"resto-doc-server/internal/repository"
)

type RoomService struct {
	rooms repository.RoomStore
	areas repository.AreaAffectedStore
}

type CreateRoomParams struct {
	Name      string
	ProjectID string
}

type UpdateRoomParams struct {
	Name *string
}

// CreateRoom 创建房间。(name, projectId) 去重：同名房间已存在时返回冲突错误。
func (s *RoomService) CreateRoom(params CreateRoomParams) (*model.Room, error) {
	if params.Name == "" || params.ProjectID == "" {
		return nil, NewValidationError("name 与 projectId 不能为空")
	}

	if _, err := s.rooms.FindByNameAndProject(params.Name, params.ProjectID); err == nil {
		return nil, NewConflictError("房间已存在")
	} else if !IsRecordNotFound(err) {
		return nil, err
	}

	room := &model.Room{
		Name:      params.Name,
		ProjectID: params.ProjectID,
	}
	if err := s.rooms.Create(room); err != nil {
		return nil, err
	}
	room.Images = []model.Image{}
	return room, nil
}

// ListRooms 列出项目下全部房间，含图片（按排序位）与评论。
func (s *RoomService) ListRooms(projectID string) ([]model.Room, error) {
	return s.rooms.ListByProject(projectID)
}

func (s *RoomService) GetRoom(id string) (*model.Room, error) {
	room, err := s.rooms.FindByID(id)
	if err != nil {
		if IsRecordNotFound(err) {
			return nil, NewNotFoundError("房间不存在")
		}
		return nil, err
	}
	return room, nil
}

func (s *RoomService) UpdateRoom(id string, params UpdateRoomParams) (*model.Room, error) {
	updates := map[string]interface{}{}
	if params.Name != nil {
		if *params.Name == "" {
			return nil, NewValidationError("房间名不能为空")
		}
		updates["name"] = *params.Name
	}
	if len(updates) == 0 {
		return s.GetRoom(id)
	}

	room, err := s.rooms.Update(id, updates)
	if err != nil {
		if IsRecordNotFound(err) {
			return nil, NewNotFoundError("房间不存在")
		}
		return nil, err
	}
	return room, nil
}

// DeleteRoom 删除房间并级联其图片与评论。
func (s *RoomService) DeleteRoom(id string) error {
	room, err := s.rooms.FindByID(id)
	if err != nil {
		if IsRecordNotFound(err) {
			return NewNotFoundError("房间不存在")
		}
		return err
	}

	if err := s.rooms.Delete(id); err != nil {
		if IsRecordNotFound(err) {
			return NewNotFoundError("房间不存在")
		}
		return err
	}
	InvalidateStatsCache(room.ProjectID)
	return nil
}

// AreaAffectedParams 单个部位受损记录的可更新字段，未填写的字段保持原值。
type AreaAffectedParams struct {
	Material                  *string
	TotalAreaRemoved          *string
	TotalAreaMicrobialApplied *string
	CabinetryRemoved          *string
	IsVisible                 *bool
	ExtraFields               json.RawMessage
}

// RoomAreaAffected 房间及其三个部位的受损记录，未登记的部位为 null。
type RoomAreaAffected struct {
	*model.Room
	FloorAffected   *model.AreaAffected `json:"floorAffected"`
	WallsAffected   *model.AreaAffected `json:"wallsAffected"`
	CeilingAffected *model.AreaAffected `json:"ceilingAffected"`
}

func (s *RoomService) assembleAreaAffected(room *model.Room) (*RoomAreaAffected, error) {
	areas, err := s.areas.ListByRoom(room.ID)
	if err != nil {
		return nil, err
	}

	result := &RoomAreaAffected{Room: room}
	for i := range areas {
		area := &areas[i]
		switch area.Type {
		case model.AreaFloor:
			result.FloorAffected = area
		case model.AreaWalls:
			result.WallsAffected = area
		case model.AreaCeiling:
			result.CeilingAffected = area
		}
	}
	return result, nil
}

// GetAreaAffected 获取房间三个部位的受损记录。
func (s *RoomService) GetAreaAffected(roomID string) (*RoomAreaAffected, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	return s.assembleAreaAffected(room)
}

// UpdateAreaAffected 写入房间某部位的受损记录（不存在则创建），按字段部分更新。
func (s *RoomService) UpdateAreaAffected(roomID string, areaType model.AreaAffectedType, params AreaAffectedParams) (*RoomAreaAffected, error) {
	if !model.ValidAreaAffectedType(areaType) {
		return nil, NewValidationError("部位必须为 floor、walls 或 ceiling")
	}

	room, err := s.GetRoom(roomID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if params.Material != nil {
		updates["material"] = *params.Material
	}
	if params.TotalAreaRemoved != nil {
		updates["total_area_removed"] = *params.TotalAreaRemoved
	}
	if params.TotalAreaMicrobialApplied != nil {
		updates["total_area_microbial_applied"] = *params.TotalAreaMicrobialApplied
	}
	if params.CabinetryRemoved != nil {
		updates["cabinetry_removed"] = *params.CabinetryRemoved
	}
	if params.IsVisible != nil {
		updates["is_visible"] = *params.IsVisible
	}
	if params.ExtraFields != nil {
		updates["extra_fields"] = []byte(params.ExtraFields)
	}

	if _, err := s.areas.Upsert(roomID, areaType, updates); err != nil {
		return nil, err
	}
	return s.assembleAreaAffected(room)
}

// DeleteAreaAffected 删除房间某部位的受损记录；部位未登记时直接返回当前状态。
func (s *RoomService) DeleteAreaAffected(roomID string, areaType model.AreaAffectedType) (*RoomAreaAffected, error) {
	if !model.ValidAreaAffectedType(areaType) {
		return nil, NewValidationError("部位必须为 floor、walls 或 ceiling")
	}

	room, err := s.GetRoom(roomID)
	if err != nil {
		return nil, err
	}

	if err := s.areas.DeleteByRoomAndType(roomID, areaType); err != nil {
		return nil, err
	}
	return s.assembleAreaAffected(room)
}
