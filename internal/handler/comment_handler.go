package handler

import (
	"net/http"

	"resto-doc-server/internal/common/httpx"
	"resto-doc-server/internal/dto"
	"resto-doc-server/internal/service"

	"github.com/gin-gonic/gin"
)

// AddComment 在图片上添加批注，作者取自认证中间件注入的身份。
func (h *Handler) AddComment(c *gin.Context) {
	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
		return
	}

	comment, err := h.commentService.AddComment(c.Param("imageId"), service.AddCommentParams{
		Content: req.Content,
		UserID:  userID,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "添加评论失败")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) GetComments(c *gin.Context) {
	comments, err := h.commentService.GetComments(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取评论失败"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) RemoveComment(c *gin.Context) {
	if err := h.commentService.RemoveComment(c.Param("commentId")); err != nil {
		httpx.WriteServiceError(c, err, "删除评论失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
