package router

import (
	"resto-doc-server/internal/handler"
	"resto-doc-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerRoomRoutes(api *gin.RouterGroup, h *handler.Handler) {
	rooms := api.Group("/rooms")
	rooms.Use(middleware.JWTAuth())

	// 写操作限流：批量接口共用同一实例，保持行为一致
	writeLimiter := middleware.RateLimitMiddleware()

	rooms.POST("", writeLimiter, h.CreateRoom)
	rooms.GET("/project/:projectId", h.ListProjectRooms)
	rooms.GET("/:id", h.GetRoom)
	rooms.PUT("/:id", writeLimiter, h.UpdateRoom)
	rooms.DELETE("/:id", writeLimiter, h.DeleteRoom)

	// 图片
	rooms.POST("/images", writeLimiter, h.AddImage)
	rooms.PUT("/images/:imageId", writeLimiter, h.UpdateImage)
	rooms.DELETE("/images/:imageId", writeLimiter, h.RemoveImage)
	rooms.GET("/:id/images", h.GetRoomImages)
	rooms.GET("/:id/report-images", h.GetRoomReportImages)

	// 受损区域
	rooms.GET("/:id/area-affected", h.GetAreaAffected)
	rooms.PATCH("/:id/area-affected/:type", writeLimiter, h.UpdateAreaAffected)
	rooms.DELETE("/:id/area-affected/:type", writeLimiter, h.DeleteAreaAffected)

	// 评论
	rooms.POST("/images/:imageId/comments", writeLimiter, h.AddComment)
	rooms.GET("/images/:imageId/comments", h.GetComments)
	rooms.DELETE("/comments/:commentId", writeLimiter, h.RemoveComment)

	// 检索 / 统计 / 批量操作
	rooms.GET("/project/:projectId/images/search", h.SearchImages)
	rooms.GET("/project/:projectId/images/stats", h.GetImageStats)
	rooms.PATCH("/project/:projectId/images/bulk-update", writeLimiter, h.BulkUpdateImages)
	rooms.DELETE("/project/:projectId/images/bulk-remove", writeLimiter, h.BulkRemoveImages)
	rooms.PATCH("/images/report-status", writeLimiter, h.UpdateImagesReportStatus)
	rooms.PATCH("/images/order", writeLimiter, h.UpdateImagesOrder)
	rooms.PATCH("/:id/images/toggle-all-report", writeLimiter, h.ToggleAllRoomImagesInReport)
}
