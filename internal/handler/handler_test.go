package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resto-doc-server/internal/config"
	"resto-doc-server/internal/handler"
	"resto-doc-server/internal/model"
	"resto-doc-server/internal/repository"
	"resto-doc-server/internal/router"
	"resto-doc-server/internal/service"
	"resto-doc-server/internal/testutils"
	"resto-doc-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.SetForTest(config.Config{
		JWT: config.JWTConfig{Secret: "test-secret"},
	})

	gdb := testutils.SetupDB(t)
	roomStore := repository.NewRoomRepository(gdb)
	imageStore := repository.NewImageRepository(gdb)
	commentStore := repository.NewCommentRepository(gdb)
	areaStore := repository.NewAreaAffectedRepository(gdb)

	h := handler.NewHandler(
		service.NewRoomService(roomStore, areaStore),
		service.NewImageService(imageStore, roomStore),
		service.NewCommentService(commentStore, imageStore),
	)

	engine := gin.New()
	router.NewRouter(h).Init(engine)

	token, err := utils.GenerateAccessToken("u1", "org1", time.Hour)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	return &testEnv{engine: engine, db: gdb, token: token}
}

// request 发送带认证头的 JSON 请求并返回响应记录器。
func (e *testEnv) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("序列化请求体失败: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("解析响应失败: %v (body: %s)", err, w.Body.String())
	}
}

// 测试内容：验证 ping 无需认证，房间接口缺少或携带非法令牌时返回 401。
func TestAuthGuard(t *testing.T) {
	e := setupTestEnv(t)

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}

	w = httptest.NewRecorder()
	e.engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/rooms/project/p1", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", w.Code)
	}

	req := httptest.NewRequest("GET", "/api/rooms/project/p1", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/rooms/project/p1", nil)
	req.Header.Set("Authorization", "Basic abc")
	w = httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", w.Code)
	}
}

// 测试内容：验证房间的创建、重名冲突、查询、更新与删除的完整闭环。
func TestRoomLifecycle(t *testing.T) {
	e := setupTestEnv(t)

	w := e.request(t, "POST", "/api/rooms", gin.H{"name": "Kitchen", "projectId": "p1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际为 %d (%s)", w.Code, w.Body.String())
	}
	var room model.Room
	decodeBody(t, w, &room)
	if room.ID == "" || room.Name != "Kitchen" {
		t.Fatalf("非预期 room: %+v", room)
	}

	// 重名冲突
	w = e.request(t, "POST", "/api/rooms", gin.H{"name": "Kitchen", "projectId": "p1"})
	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409，实际为 %d", w.Code)
	}

	// 缺少必填字段
	w = e.request(t, "POST", "/api/rooms", gin.H{"name": "Kitchen"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}

	w = e.request(t, "GET", "/api/rooms/project/p1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	var rooms []model.Room
	decodeBody(t, w, &rooms)
	if len(rooms) != 1 {
		t.Fatalf("期望 1 个房间，实际为 %d", len(rooms))
	}

	w = e.request(t, "PUT", "/api/rooms/"+room.ID, gin.H{"name": "Main Kitchen"})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}

	w = e.request(t, "GET", "/api/rooms/"+room.ID, nil)
	decodeBody(t, w, &room)
	if room.Name != "Main Kitchen" {
		t.Fatalf("非预期更新结果: %+v", room)
	}

	w = e.request(t, "DELETE", "/api/rooms/"+room.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	w = e.request(t, "GET", "/api/rooms/"+room.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}
}

// 测试内容：验证图片登记（含默认房间兜底）、更新、删除与房间图片列表。
func TestImageLifecycle(t *testing.T) {
	e := setupTestEnv(t)

	// 未指定房间，归入默认房间
	w := e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/a.jpg", "projectId": "p1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际为 %d (%s)", w.Code, w.Body.String())
	}
	var image model.Image
	decodeBody(t, w, &image)
	if image.RoomID == nil {
		t.Fatalf("期望归入默认房间")
	}
	roomID := *image.RoomID

	// 缺 url 校验
	w = e.request(t, "POST", "/api/rooms/images", gin.H{"projectId": "p1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}

	w = e.request(t, "PUT", "/api/rooms/images/"+image.ID, gin.H{"showInReport": true, "name": "entry photo"})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	decodeBody(t, w, &image)
	if !image.ShowInReport || image.Name != "entry photo" {
		t.Fatalf("非预期更新结果: %+v", image)
	}

	w = e.request(t, "GET", "/api/rooms/"+roomID+"/images", nil)
	var images []model.Image
	decodeBody(t, w, &images)
	if len(images) != 1 {
		t.Fatalf("期望 1 张图片，实际为 %d", len(images))
	}

	w = e.request(t, "GET", "/api/rooms/"+roomID+"/report-images", nil)
	decodeBody(t, w, &images)
	if len(images) != 1 {
		t.Fatalf("期望 1 张报告图片，实际为 %d", len(images))
	}

	w = e.request(t, "DELETE", "/api/rooms/images/"+image.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	w = e.request(t, "DELETE", "/api/rooms/images/"+image.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}
}

// 测试内容：验证检索接口的查询参数解析、分页元数据与非法日期参数。
func TestSearchImagesEndpoint(t *testing.T) {
	e := setupTestEnv(t)

	w := e.request(t, "POST", "/api/rooms", gin.H{"name": "Kitchen", "projectId": "p1"})
	var room model.Room
	decodeBody(t, w, &room)

	for i := 0; i < 3; i++ {
		body := gin.H{"url": "https://cdn.example.com/kitchen.jpg", "projectId": "p1", "roomId": room.ID}
		if i == 0 {
			body["showInReport"] = true
		}
		if w := e.request(t, "POST", "/api/rooms/images", body); w.Code != http.StatusCreated {
			t.Fatalf("登记图片失败: %d", w.Code)
		}
	}

	var result struct {
		Data       []model.Image `json:"data"`
		Total      int64         `json:"total"`
		Page       int           `json:"page"`
		TotalPages int           `json:"totalPages"`
	}

	w = e.request(t, "GET", "/api/rooms/project/p1/images/search?page=1&limit=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	decodeBody(t, w, &result)
	if result.Total != 3 || result.TotalPages != 2 || len(result.Data) != 2 {
		t.Fatalf("非预期分页: %+v", result)
	}

	w = e.request(t, "GET", "/api/rooms/project/p1/images/search?showInReport=true", nil)
	decodeBody(t, w, &result)
	if result.Total != 1 {
		t.Fatalf("期望命中 1 条，实际为 %d", result.Total)
	}

	w = e.request(t, "GET", "/api/rooms/project/p1/images/search?roomIds="+room.ID+"&searchTerm=KITCHEN", nil)
	decodeBody(t, w, &result)
	if result.Total != 3 {
		t.Fatalf("期望命中 3 条，实际为 %d", result.Total)
	}

	// 非法日期
	w = e.request(t, "GET", "/api/rooms/project/p1/images/search?createdAfter=yesterday", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}
}

// 测试内容：验证统计接口的数字与按房间分布。
func TestImageStatsEndpoint(t *testing.T) {
	e := setupTestEnv(t)

	w := e.request(t, "POST", "/api/rooms", gin.H{"name": "Kitchen", "projectId": "p1"})
	var room model.Room
	decodeBody(t, w, &room)

	e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/1.jpg", "projectId": "p1", "roomId": room.ID, "showInReport": true})
	e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/2.jpg", "projectId": "p1", "roomId": room.ID})

	w = e.request(t, "GET", "/api/rooms/project/p1/images/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	var stats struct {
		TotalImages        int64 `json:"totalImages"`
		ImagesInReport     int64 `json:"imagesInReport"`
		ImagesWithComments int64 `json:"imagesWithComments"`
		ImagesByRoom       []struct {
			RoomName string `json:"roomName"`
			Count    int64  `json:"count"`
		} `json:"imagesByRoom"`
	}
	decodeBody(t, w, &stats)
	if stats.TotalImages != 2 || stats.ImagesInReport != 1 || stats.ImagesWithComments != 0 {
		t.Fatalf("非预期 stats: %+v", stats)
	}
	if len(stats.ImagesByRoom) != 1 || stats.ImagesByRoom[0].Count != 2 {
		t.Fatalf("非预期分布: %+v", stats.ImagesByRoom)
	}
}

// 测试内容：验证批量更新 / 批量删除接口返回命中数量，且受路径 projectId 约束。
func TestBulkEndpoints(t *testing.T) {
	e := setupTestEnv(t)

	w := e.request(t, "POST", "/api/rooms", gin.H{"name": "Kitchen", "projectId": "p1"})
	var room model.Room
	decodeBody(t, w, &room)

	e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/1.jpg", "projectId": "p1", "roomId": room.ID})
	e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/2.jpg", "projectId": "p1", "roomId": room.ID})
	e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/3.jpg", "projectId": "p2"})

	var resp struct {
		Count int64 `json:"count"`
	}

	w = e.request(t, "PATCH", "/api/rooms/project/p1/images/bulk-update", gin.H{
		"filters": gin.H{"roomIds": []string{room.ID}},
		"updates": gin.H{"showInReport": true},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d (%s)", w.Code, w.Body.String())
	}
	decodeBody(t, w, &resp)
	if resp.Count != 2 {
		t.Fatalf("期望影响 2 条，实际为 %d", resp.Count)
	}

	// 空更新集被拒绝
	w = e.request(t, "PATCH", "/api/rooms/project/p1/images/bulk-update", gin.H{
		"filters": gin.H{},
		"updates": gin.H{},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}

	w = e.request(t, "DELETE", "/api/rooms/project/p1/images/bulk-remove", gin.H{
		"filters": gin.H{"showInReport": true},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	decodeBody(t, w, &resp)
	if resp.Count != 2 {
		t.Fatalf("期望删除 2 条，实际为 %d", resp.Count)
	}

	// 其他项目不受影响
	var remaining int64
	_ = e.db.Model(&model.Image{}).Count(&remaining).Error
	if remaining != 1 {
		t.Fatalf("期望剩余 1 条，实际为 %d", remaining)
	}
}

// 测试内容：验证报告状态与排序接口，重点覆盖 showInReport=false 不被误判为缺参。
func TestReportStatusAndOrderEndpoints(t *testing.T) {
	e := setupTestEnv(t)

	w := e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/1.jpg", "projectId": "p1", "showInReport": true})
	var i1 model.Image
	decodeBody(t, w, &i1)
	w = e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/2.jpg", "projectId": "p1"})
	var i2 model.Image
	decodeBody(t, w, &i2)

	var resp struct {
		Count int64 `json:"count"`
	}

	// showInReport 显式为 false 是合法请求
	w = e.request(t, "PATCH", "/api/rooms/images/report-status", gin.H{
		"imageIds":     []string{i1.ID},
		"showInReport": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d (%s)", w.Code, w.Body.String())
	}
	decodeBody(t, w, &resp)
	if resp.Count != 1 {
		t.Fatalf("期望影响 1 条，实际为 %d", resp.Count)
	}

	// 缺 showInReport 校验失败
	w = e.request(t, "PATCH", "/api/rooms/images/report-status", gin.H{"imageIds": []string{i1.ID}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}

	// 排序批量写入
	w = e.request(t, "PATCH", "/api/rooms/images/order", []gin.H{
		{"id": i1.ID, "order": 2},
		{"id": i2.ID, "order": 1},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d (%s)", w.Code, w.Body.String())
	}

	// 含无效 ID 时整体失败并回滚
	w = e.request(t, "PATCH", "/api/rooms/images/order", []gin.H{
		{"id": i1.ID, "order": 9},
		{"id": "missing", "order": 10},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}
	var check model.Image
	_ = e.db.First(&check, "id = ?", i1.ID).Error
	if check.Order != 2 {
		t.Fatalf("期望回滚保持 2，实际为 %d", check.Order)
	}
}

// 测试内容：验证整房间切换报告状态接口。
func TestToggleAllReportEndpoint(t *testing.T) {
	e := setupTestEnv(t)

	w := e.request(t, "POST", "/api/rooms", gin.H{"name": "Kitchen", "projectId": "p1"})
	var room model.Room
	decodeBody(t, w, &room)
	e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/1.jpg", "projectId": "p1", "roomId": room.ID})
	e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/2.jpg", "projectId": "p1", "roomId": room.ID})

	w = e.request(t, "PATCH", "/api/rooms/"+room.ID+"/images/toggle-all-report", gin.H{"showInReport": true})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Count int64 `json:"count"`
	}
	decodeBody(t, w, &resp)
	if resp.Count != 2 {
		t.Fatalf("期望影响 2 条，实际为 %d", resp.Count)
	}

	w = e.request(t, "PATCH", "/api/rooms/missing/images/toggle-all-report", gin.H{"showInReport": true})
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}
}

// 测试内容：验证受损区域接口：写入、部分更新、查询与删除，及部位/房间校验。
func TestAreaAffectedEndpoints(t *testing.T) {
	e := setupTestEnv(t)

	w := e.request(t, "POST", "/api/rooms", gin.H{"name": "Kitchen", "projectId": "p1"})
	var room model.Room
	decodeBody(t, w, &room)

	type areaState struct {
		FloorAffected *struct {
			ID        string `json:"id"`
			Material  string `json:"material"`
			IsVisible bool   `json:"isVisible"`
		} `json:"floorAffected"`
		WallsAffected   *json.RawMessage `json:"wallsAffected"`
		CeilingAffected *json.RawMessage `json:"ceilingAffected"`
	}

	w = e.request(t, "GET", "/api/rooms/"+room.ID+"/area-affected", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	var state areaState
	decodeBody(t, w, &state)
	if state.FloorAffected != nil {
		t.Fatalf("期望初始无记录: %+v", state.FloorAffected)
	}

	w = e.request(t, "PATCH", "/api/rooms/"+room.ID+"/area-affected/floor", gin.H{
		"material":         "hardwood",
		"totalAreaRemoved": "12.5",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d (%s)", w.Code, w.Body.String())
	}
	decodeBody(t, w, &state)
	if state.FloorAffected == nil || state.FloorAffected.Material != "hardwood" {
		t.Fatalf("非预期 floor 记录: %+v", state.FloorAffected)
	}
	firstID := state.FloorAffected.ID

	// 再次写入同一部位更新同一条记录
	w = e.request(t, "PATCH", "/api/rooms/"+room.ID+"/area-affected/floor", gin.H{"isVisible": false})
	decodeBody(t, w, &state)
	if state.FloorAffected == nil || state.FloorAffected.ID != firstID || state.FloorAffected.Material != "hardwood" || state.FloorAffected.IsVisible {
		t.Fatalf("非预期部分更新: %+v", state.FloorAffected)
	}

	// 非法部位与不存在的房间
	w = e.request(t, "PATCH", "/api/rooms/"+room.ID+"/area-affected/roof", gin.H{"material": "tile"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}
	w = e.request(t, "GET", "/api/rooms/missing/area-affected", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}

	w = e.request(t, "DELETE", "/api/rooms/"+room.ID+"/area-affected/floor", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	decodeBody(t, w, &state)
	if state.FloorAffected != nil {
		t.Fatalf("期望删除后为空: %+v", state.FloorAffected)
	}
}

// 测试内容：验证响应字段与请求字段一致使用 camelCase 命名。
func TestResponseFieldCasing(t *testing.T) {
	e := setupTestEnv(t)

	w := e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/a.jpg", "projectId": "p1", "showInReport": true})
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际为 %d", w.Code)
	}

	body := w.Body.String()
	for _, key := range []string{`"showInReport"`, `"projectId"`, `"roomId"`, `"createdAt"`} {
		if !strings.Contains(body, key) {
			t.Errorf("期望响应包含字段 %s: %s", key, body)
		}
	}
	for _, key := range []string{`"show_in_report"`, `"project_id"`, `"room_id"`, `"created_at"`} {
		if strings.Contains(body, key) {
			t.Errorf("期望响应不包含 snake_case 字段 %s", key)
		}
	}
}

// 测试内容：验证评论接口，作者取自令牌身份而非请求体。
func TestCommentEndpoints(t *testing.T) {
	e := setupTestEnv(t)

	w := e.request(t, "POST", "/api/rooms/images", gin.H{"url": "https://cdn.example.com/1.jpg", "projectId": "p1"})
	var image model.Image
	decodeBody(t, w, &image)

	w = e.request(t, "POST", "/api/rooms/images/"+image.ID+"/comments", gin.H{"content": "pre-mitigation"})
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际为 %d (%s)", w.Code, w.Body.String())
	}
	var comment model.Comment
	decodeBody(t, w, &comment)
	if comment.UserID != "u1" {
		t.Fatalf("期望作者来自令牌 u1，实际为 %s", comment.UserID)
	}

	w = e.request(t, "GET", "/api/rooms/images/"+image.ID+"/comments", nil)
	var comments []model.Comment
	decodeBody(t, w, &comments)
	if len(comments) != 1 {
		t.Fatalf("期望 1 条评论，实际为 %d", len(comments))
	}

	w = e.request(t, "DELETE", "/api/rooms/comments/"+comment.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	w = e.request(t, "DELETE", "/api/rooms/comments/"+comment.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}
}
