package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseID 解析路径中的记录 ID,失败时已写出 400 响应
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", c.Param("id"))
		return 0, false
	}
	return uint(id), true
}

// parsePage 解析分页查询参数,非法值回落到默认值
func parsePage(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
