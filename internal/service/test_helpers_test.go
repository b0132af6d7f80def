package service

import (
	"testing"
	"time"

	"resto-doc-server/internal/config"
	"resto-doc-server/internal/model"
	"resto-doc-server/internal/repository"
	"resto-doc-server/internal/testutils"

	"gorm.io/gorm"
)

type testServices struct {
	db       *gorm.DB
	rooms    *RoomService
	images   *ImageService
	comments *CommentService
}

func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	config.SetForTest(config.Config{})

	gdb := testutils.SetupDB(t)
	roomStore := repository.NewRoomRepository(gdb)
	imageStore := repository.NewImageRepository(gdb)
	commentStore := repository.NewCommentRepository(gdb)
	areaStore := repository.NewAreaAffectedRepository(gdb)

	return &testServices{
		db:       gdb,
		rooms:    NewRoomService(roomStore, areaStore),
		images:   NewImageService(imageStore, roomStore),
		comments: NewCommentService(commentStore, imageStore),
	}
}

func mustCreateRoom(t *testing.T, gdb *gorm.DB, name string, projectID string) *model.Room {
	t.Helper()
	room := &model.Room{Name: name, ProjectID: projectID}
	if err := gdb.Create(room).Error; err != nil {
		t.Fatalf("创建房间失败: %v", err)
	}
	return room
}

type imageSeed struct {
	URL          string
	ProjectID    string
	RoomID       *string
	ShowInReport bool
	Order        int
	CreatedAt    time.Time
}

func mustCreateImage(t *testing.T, gdb *gorm.DB, seed imageSeed) *model.Image {
	t.Helper()
	image := &model.Image{
		URL:          seed.URL,
		ProjectID:    seed.ProjectID,
		RoomID:       seed.RoomID,
		ShowInReport: seed.ShowInReport,
		Order:        seed.Order,
		CreatedAt:    seed.CreatedAt,
	}
	if err := gdb.Create(image).Error; err != nil {
		t.Fatalf("创建图片失败: %v", err)
	}
	return image
}

func mustCreateComment(t *testing.T, gdb *gorm.DB, imageID string, userID string, content string) *model.Comment {
	t.Helper()
	comment := &model.Comment{Content: content, UserID: userID, ImageID: imageID}
	if err := gdb.Create(comment).Error; err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}
	return comment
}

func imageIDs(images []model.Image) map[string]bool {
	ids := make(map[string]bool, len(images))
	for _, img := range images {
		ids[img.ID] = true
	}
	return ids
}
