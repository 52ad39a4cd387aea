package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
)

// LabController 实验室控制器
type LabController struct {
	labService service.LabService
}

// NewLabController 创建实验室控制器
func NewLabController(labService service.LabService) *LabController {
	return &LabController{labService: labService}
}

// Create 创建实验室
// @Summary      创建实验室
// @Tags         实验室
// @Accept       json
// @Produce      json
// @Param        request body service.SaveLabRequest true "实验室信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /labs [post]
// @Security     BearerAuth
func (c *LabController) Create(ctx *gin.Context) {
	var req service.SaveLabRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	lab, err := c.labService.Create(ctx.Request.Context(), &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, lab)
}

// Update 更新实验室
// @Summary      更新实验室
// @Tags         实验室
// @Accept       json
// @Produce      json
// @Param        id path int true "实验室 ID"
// @Param        request body service.SaveLabRequest true "实验室信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /labs/{id} [put]
// @Security     BearerAuth
func (c *LabController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.SaveLabRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	lab, err := c.labService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, lab)
}

// Get 实验室详情
// @Summary      获取实验室详情
// @Tags         实验室
// @Produce      json
// @Param        id path int true "实验室 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /labs/{id} [get]
func (c *LabController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	lab, err := c.labService.Get(ctx.Request.Context(), id)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, lab)
}

// List 实验室列表
// @Summary      分页查询实验室
// @Tags         实验室
// @Produce      json
// @Param        name query string false "名称模糊匹配"
// @Param        status query string false "状态过滤"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Router       /labs [get]
func (c *LabController) List(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)

	items, total, err := c.labService.List(ctx.Request.Context(), ctx.Query("name"), ctx.Query("status"), page, pageSize)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Paginated(ctx, items, NewPagination(page, pageSize, total))
}

// Delete 删除实验室
// @Summary      删除实验室
// @Tags         实验室
// @Produce      json
// @Param        id path int true "实验室 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /labs/{id} [delete]
// @Security     BearerAuth
func (c *LabController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.labService.Delete(ctx.Request.Context(), id); err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, nil)
}
