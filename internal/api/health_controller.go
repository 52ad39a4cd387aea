package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/database"
	"github.com/sugar258596/experiment-server-sub001/internal/websocket"
	"gorm.io/gorm"
)

// HealthController 健康检查控制器
type HealthController struct {
	db  *gorm.DB
	hub *websocket.Hub
}

// NewHealthController 创建健康检查控制器
func NewHealthController(db *gorm.DB, hub *websocket.Hub) *HealthController {
	return &HealthController{db: db, hub: hub}
}

// Check 健康检查
func (c *HealthController) Check(ctx *gin.Context) {
	status := "healthy"
	checks := make(map[string]string)

	if c.db != nil {
		if database.CheckHealth(c.db) {
			checks["database"] = "healthy"
		} else {
			status = "unhealthy"
			checks["database"] = "unhealthy"
		}
	} else {
		checks["database"] = "not configured"
	}

	httpStatus := http.StatusOK
	if status == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	payload := gin.H{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	}
	if c.hub != nil {
		payload["ws_clients"] = c.hub.GetClientCount()
	}
	ctx.JSON(httpStatus, payload)
}
