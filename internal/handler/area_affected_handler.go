package handler

import (
	"net/http"

	"resto-doc-server/internal/common/httpx"
	"resto-doc-server/internal/dto"
	"resto-doc-server/internal/model"
	"resto-doc-server/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAreaAffected 房间三个部位（floor/walls/ceiling）的受损记录。
func (h *Handler) GetAreaAffected(c *gin.Context) {
	result, err := h.roomService.GetAreaAffected(c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取受损区域失败")
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateAreaAffected 写入房间某部位的受损记录，返回房间的完整受损状态。
func (h *Handler) UpdateAreaAffected(c *gin.Context) {
	var req dto.UpdateAreaAffectedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	result, err := h.roomService.UpdateAreaAffected(
		c.Param("id"),
		model.AreaAffectedType(c.Param("type")),
		service.AreaAffectedParams{
			Material:                  req.Material,
			TotalAreaRemoved:          req.TotalAreaRemoved,
			TotalAreaMicrobialApplied: req.TotalAreaMicrobialApplied,
			CabinetryRemoved:          req.CabinetryRemoved,
			IsVisible:                 req.IsVisible,
			ExtraFields:               req.ExtraFields,
		},
	)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新受损区域失败")
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteAreaAffected 删除房间某部位的受损记录，返回删除后的受损状态。
func (h *Handler) DeleteAreaAffected(c *gin.Context) {
	result, err := h.roomService.DeleteAreaAffected(
		c.Param("id"),
		model.AreaAffectedType(c.Param("type")),
	)
	if err != nil {
		httpx.WriteServiceError(c, err, "删除受损区域失败")
		return
	}

	c.JSON(http.StatusOK, result)
}
