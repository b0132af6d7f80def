package handler

import "resto-doc-server/internal/service"

type Handler struct {
	roomService    *service.RoomService
	imageService   *service.ImageService
	commentService *service.CommentService
}

func NewHandler(
	roomService *service.RoomService,
	imageService *service.ImageService,
	commentService *service.CommentService,
) *Handler {
	return &Handler{
		roomService:    roomService,
		imageService:   imageService,
		commentService: commentService,
	}
}
