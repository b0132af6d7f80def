package handler

import (
	"net/http"

	"resto-doc-server/internal/common/httpx"
	"resto-doc-server/internal/dto"
	"resto-doc-server/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	room, err := h.roomService.CreateRoom(service.CreateRoomParams{
		Name:      req.Name,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "创建房间失败")
		return
	}

	c.JSON(http.StatusCreated, room)
}

// ListProjectRooms 列出项目下全部房间（含图片与评论）。
func (h *Handler) ListProjectRooms(c *gin.Context) {
	projectID := c.Param("projectId")

	rooms, err := h.roomService.ListRooms(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取房间列表失败"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.roomService.GetRoom(c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取房间失败")
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	room, err := h.roomService.UpdateRoom(c.Param("id"), service.UpdateRoomParams{Name: req.Name})
	if err != nil {
		httpx.WriteServiceError(c, err, "更新房间失败")
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	if err := h.roomService.DeleteRoom(c.Param("id")); err != nil {
		httpx.WriteServiceError(c, err, "删除房间失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
