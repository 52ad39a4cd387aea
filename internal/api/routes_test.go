package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/repository"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestRouter 完整路由 + sqlite 内存库,覆盖鉴权中间件到持久层的整条链路
func newTestRouter(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Lab{},
		&model.Instrument{},
		&model.Appointment{},
		&model.InstrumentApplication{},
		&model.RepairTicket{},
		&model.Notification{},
		&model.News{},
		&model.Favorite{},
	))
	require.NoError(t, db.Create(&model.Lab{Name: "化学实验室", Status: "open", Capacity: 20}).Error)
	require.NoError(t, db.Create(&model.Instrument{LabID: 1, Name: "离心机", Status: "available"}).Error)

	tokens := auth.NewTokenManager("router-test-secret", "experiment-server", time.Hour)

	labRepo := repository.NewLabRepository(db)
	instrumentRepo := repository.NewInstrumentRepository(db)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(db), nil, nil)
	engine := workflow.NewEngine(repository.NewWorkflowStore(db), notifications, nil)

	router := SetupRoutes(&RouterDeps{
		DB:            db,
		Tokens:        tokens,
		Users:         service.NewUserService(repository.NewUserRepository(db), tokens),
		Appointments:  service.NewAppointmentService(engine, repository.NewAppointmentRepository(db), labRepo),
		Applications:  service.NewInstrumentApplicationService(engine, repository.NewInstrumentApplicationRepository(db), instrumentRepo),
		Repairs:       service.NewRepairService(engine, repository.NewRepairTicketRepository(db), instrumentRepo),
		Notifications: notifications,
		Labs:          service.NewLabService(labRepo),
		Instruments:   service.NewInstrumentService(instrumentRepo, labRepo),
		News:          service.NewNewsService(repository.NewNewsRepository(db)),
		Favorites:     service.NewFavoriteService(repository.NewFavoriteRepository(db), labRepo, instrumentRepo),
	})
	return router, tokens
}

func issueToken(t *testing.T, tokens *auth.TokenManager, id uint, role model.Role) string {
	t.Helper()
	token, err := tokens.IssueToken(&model.User{ID: id, Username: fmt.Sprintf("u%d", id), Role: role})
	require.NoError(t, err)
	return token
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginProfile(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/users/register", "", gin.H{
		"username": "alice",
		"password": "secret123",
		"nickname": "小艾",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 重名注册 409
	w = doJSON(router, http.MethodPost, "/api/v1/users/register", "", gin.H{
		"username": "alice",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 密码错误 400
	w = doJSON(router, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"username": "alice",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Data.Token)

	w = doJSON(router, http.MethodGet, "/api/v1/users/profile", loginResp.Data.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 无 token 401
	w = doJSON(router, http.MethodGet, "/api/v1/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAppointmentRoundTrip(t *testing.T) {
	router, tokens := newTestRouter(t)
	student := issueToken(t, tokens, 1, model.RoleStudent)
	teacher := issueToken(t, tokens, 10, model.RoleTeacher)

	w := doJSON(router, http.MethodPost, "/api/v1/appointments", student, gin.H{
		"lab_id":     1,
		"start_time": time.Now().Add(time.Hour).Format(time.RFC3339),
		"end_time":   time.Now().Add(2 * time.Hour).Format(time.RFC3339),
		"purpose":    "滴定实验",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var submitResp struct {
		Data struct {
			ID     uint   `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitResp))
	assert.Equal(t, "pending", submitResp.Data.Status)
	id := submitResp.Data.ID

	// 学生看不到待审核列表
	w = doJSON(router, http.MethodGet, "/api/v1/appointments/pending", student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/appointments/pending", teacher, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 学生审核 403
	w = doJSON(router, http.MethodPut, fmt.Sprintf("/api/v1/appointments/review/%d", id), student, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 教师审核通过
	w = doJSON(router, http.MethodPut, fmt.Sprintf("/api/v1/appointments/review/%d", id), teacher, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 重复审核 409
	w = doJSON(router, http.MethodPut, fmt.Sprintf("/api/v1/appointments/review/%d", id), teacher, gin.H{"status": "rejected", "reject_reason": "换时间"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 申请人收到通知
	w = doJSON(router, http.MethodGet, "/api/v1/notifications/unread-count", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var countResp struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &countResp))
	assert.EqualValues(t, 1, countResp.Data.Count)

	// 我的预约列表
	w = doJSON(router, http.MethodGet, "/api/v1/appointments/my", student, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRepairRoundTrip(t *testing.T) {
	router, tokens := newTestRouter(t)
	student := issueToken(t, tokens, 1, model.RoleStudent)
	admin := issueToken(t, tokens, 20, model.RoleAdmin)

	w := doJSON(router, http.MethodPost, "/api/v1/repairs", student, gin.H{
		"instrument_id": 1,
		"title":         "离心机异响",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var submitResp struct {
		Data struct {
			ID     uint   `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitResp))
	assert.Equal(t, "reported", submitResp.Data.Status)
	id := submitResp.Data.ID

	// 管理员接单
	w = doJSON(router, http.MethodPatch, fmt.Sprintf("/api/v1/repairs/progress/%d", id), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 完结
	w = doJSON(router, http.MethodPut, fmt.Sprintf("/api/v1/repairs/review/%d", id), admin, gin.H{"status": "resolved"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 完结后取消 409
	w = doJSON(router, http.MethodPatch, fmt.Sprintf("/api/v1/repairs/cancel/%d", id), student, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCatalogRoutes(t *testing.T) {
	router, tokens := newTestRouter(t)
	student := issueToken(t, tokens, 1, model.RoleStudent)
	admin := issueToken(t, tokens, 20, model.RoleAdmin)

	// 读公开
	w := doJSON(router, http.MethodGet, "/api/v1/labs", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodGet, "/api/v1/instruments/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 写仅管理员
	w = doJSON(router, http.MethodPost, "/api/v1/labs", student, gin.H{"name": "生物实验室"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(router, http.MethodPost, "/api/v1/labs", admin, gin.H{"name": "生物实验室", "capacity": 15})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 收藏
	w = doJSON(router, http.MethodPost, "/api/v1/favorites", student, gin.H{"target_type": "lab", "target_id": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	// 重复收藏 409
	w = doJSON(router, http.MethodPost, "/api/v1/favorites", student, gin.H{"target_type": "lab", "target_id": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/favorites/my", student, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 健康检查
	w = doJSON(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
