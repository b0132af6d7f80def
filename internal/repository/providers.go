package repository

import "gorm.io/gorm"

func NewImageRepository(db *gorm.DB) ImageStore {
	return &ImageRepository{db: db}
}

func NewRoomRepository(db *gorm.DB) RoomStore {
	return &RoomRepository{db: db}
}

func NewCommentRepository(db *gorm.DB) CommentStore {
	return &CommentRepository{db: db}
}

func NewAreaAffectedRepository(db *gorm.DB) AreaAffectedStore {
	return &AreaAffectedRepository{db: db}
}
