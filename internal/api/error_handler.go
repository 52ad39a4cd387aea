package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
)

// statusOf 业务错误类别到 HTTP 状态码的映射
func statusOf(kind workflow.ErrorKind) int {
	switch kind {
	case workflow.ErrValidation:
		return http.StatusBadRequest
	case workflow.ErrForbidden:
		return http.StatusForbidden
	case workflow.ErrNotFound:
		return http.StatusNotFound
	case workflow.ErrConflict:
		return http.StatusConflict
	case workflow.ErrDependency:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HandleError 统一输出服务层错误
// 业务错误按类别映射状态码,其余一律按 500 处理
func HandleError(c *gin.Context, err error) {
	kind := workflow.KindOf(err)
	if kind == 0 {
		Error(c, http.StatusInternalServerError, "internal server error", err.Error())
		return
	}
	Error(c, statusOf(kind), err.Error(), "")
}
