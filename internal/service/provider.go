package service

import "resto-doc-server/internal/repository"

func NewRoomService(rooms repository.RoomStore, areas repository.AreaAffectedStore) *RoomService {
	return &RoomService{rooms: rooms, areas: areas}
}

func NewImageService(images repository.ImageStore, rooms repository.RoomStore) *ImageService {
	return &ImageService{images: images, rooms: rooms}
}

func NewCommentService(comments repository.CommentStore, images repository.ImageStore) *CommentService {
	return &CommentService{comments: comments, images: images}
}
