package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"resto-doc-server/internal/common/httpx"
	"resto-doc-server/internal/dto"
	"resto-doc-server/internal/model"
	"resto-doc-server/internal/repository"
	"resto-doc-server/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AddImage(c *gin.Context) {
	var req dto.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	image, err := h.imageService.AddImage(service.AddImageParams{
		URL:          req.URL,
		Name:         req.Name,
		Description:  req.Description,
		Type:         model.ImageType(req.Type),
		ShowInReport: req.ShowInReport,
		Order:        req.Order,
		ProjectID:    req.ProjectID,
		RoomID:       req.RoomID,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "登记图片失败")
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *Handler) UpdateImage(c *gin.Context) {
	var req dto.UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	var imageType *model.ImageType
	if req.Type != nil {
		t := model.ImageType(*req.Type)
		imageType = &t
	}

	image, err := h.imageService.UpdateImage(c.Param("imageId"), service.UpdateImageParams{
		URL:          req.URL,
		Name:         req.Name,
		Description:  req.Description,
		Type:         imageType,
		ShowInReport: req.ShowInReport,
		Order:        req.Order,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "更新图片失败")
		return
	}

	c.JSON(http.StatusOK, image)
}

func (h *Handler) RemoveImage(c *gin.Context) {
	image, err := h.imageService.RemoveImage(c.Param("imageId"))
	if err != nil {
		httpx.WriteServiceError(c, err, "删除图片失败")
		return
	}

	c.JSON(http.StatusOK, image)
}

// GetRoomImages 房间内全部图片，按排序位升序。
func (h *Handler) GetRoomImages(c *gin.Context) {
	images, err := h.imageService.GetRoomImages(c.Param("id"), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取图片失败"})
		return
	}

	c.JSON(http.StatusOK, images)
}

// GetRoomReportImages 房间内勾选进报告的图片。
func (h *Handler) GetRoomReportImages(c *gin.Context) {
	images, err := h.imageService.GetRoomImages(c.Param("id"), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取报告图片失败"})
		return
	}

	c.JSON(http.StatusOK, images)
}

// SearchImages 过滤 + 排序 + 分页检索项目图片。
// 查询参数：type、showInReport、hasComments、createdAfter、createdBefore（RFC3339）、
// roomIds（逗号分隔）、searchTerm、sortField、sortDirection、page、limit。
func (h *Handler) SearchImages(c *gin.Context) {
	filters := repository.ImageFilters{
		ProjectID:  c.Param("projectId"),
		SearchTerm: c.Query("searchTerm"),
		Type:       model.ImageType(c.Query("type")),
	}

	if v := c.Query("showInReport"); v != "" {
		b := v == "true"
		filters.ShowInReport = &b
	}
	if v := c.Query("hasComments"); v != "" {
		filters.HasComments = v == "true"
	}
	if v := c.Query("createdAfter"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "createdAfter 参数错误"})
			return
		}
		filters.CreatedAfter = &t
	}
	if v := c.Query("createdBefore"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "createdBefore 参数错误"})
			return
		}
		filters.CreatedBefore = &t
	}
	if v := c.Query("roomIds"); v != "" {
		filters.RoomIDs = strings.Split(v, ",")
	}

	sort := repository.ImageSortOptions{
		Field:     c.DefaultQuery("sortField", "createdAt"),
		Direction: c.DefaultQuery("sortDirection", "desc"),
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.imageService.SearchImages(filters, sort, service.PaginationOptions{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "检索图片失败"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetImageStats 项目图片统计。
func (h *Handler) GetImageStats(c *gin.Context) {
	stats, err := h.imageService.GetImageStats(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取统计失败"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// BulkUpdateImages 按过滤条件批量更新。路径中的 projectId 强制并入过滤条件。
func (h *Handler) BulkUpdateImages(c *gin.Context) {
	var req dto.BulkUpdateImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	count, err := h.imageService.BulkUpdateImages(c.Param("projectId"), req.Filters.ToFilters(), service.BulkImageUpdates{
		ShowInReport: req.Updates.ShowInReport,
		Order:        req.Updates.Order,
		RoomID:       req.Updates.RoomID,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "批量更新失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// BulkRemoveImages 按过滤条件批量删除。
func (h *Handler) BulkRemoveImages(c *gin.Context) {
	var req dto.BulkRemoveImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	count, err := h.imageService.BulkRemoveImages(c.Param("projectId"), req.Filters.ToFilters())
	if err != nil {
		httpx.WriteServiceError(c, err, "批量删除失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// UpdateImagesReportStatus 按显式 ID 列表设置报告可见性。
func (h *Handler) UpdateImagesReportStatus(c *gin.Context) {
	var req dto.ReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	count, err := h.imageService.SetImagesReportStatus(req.ImageIDs, *req.ShowInReport)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新报告状态失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// UpdateImagesOrder 批量写入排序位（全部成功或全部回滚）。
func (h *Handler) UpdateImagesOrder(c *gin.Context) {
	var req []dto.ImageOrderPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	updates := make([]repository.ImageOrderUpdate, 0, len(req))
	for _, u := range req {
		updates = append(updates, repository.ImageOrderUpdate{ID: u.ID, Order: *u.Order})
	}

	count, err := h.imageService.UpdateImagesOrder(updates)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新排序失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// ToggleAllRoomImagesInReport 切换房间内全部图片的报告可见性。
func (h *Handler) ToggleAllRoomImagesInReport(c *gin.Context) {
	var req dto.ToggleAllReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	count, err := h.imageService.ToggleAllRoomImagesInReport(c.Param("id"), *req.ShowInReport)
	if err != nil {
		httpx.WriteServiceError(c, err, "切换报告状态失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
