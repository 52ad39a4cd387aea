package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
)

// InstrumentController 仪器控制器
type InstrumentController struct {
	instrumentService service.InstrumentService
}

// NewInstrumentController 创建仪器控制器
func NewInstrumentController(instrumentService service.InstrumentService) *InstrumentController {
	return &InstrumentController{instrumentService: instrumentService}
}

// Create 创建仪器
// @Summary      创建仪器
// @Tags         仪器
// @Accept       json
// @Produce      json
// @Param        request body service.SaveInstrumentRequest true "仪器信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /instruments [post]
// @Security     BearerAuth
func (c *InstrumentController) Create(ctx *gin.Context) {
	var req service.SaveInstrumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	instrument, err := c.instrumentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, instrument)
}

// Update 更新仪器
// @Summary      更新仪器
// @Tags         仪器
// @Accept       json
// @Produce      json
// @Param        id path int true "仪器 ID"
// @Param        request body service.SaveInstrumentRequest true "仪器信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /instruments/{id} [put]
// @Security     BearerAuth
func (c *InstrumentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.SaveInstrumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	instrument, err := c.instrumentService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, instrument)
}

// Get 仪器详情
// @Summary      获取仪器详情
// @Tags         仪器
// @Produce      json
// @Param        id path int true "仪器 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /instruments/{id} [get]
func (c *InstrumentController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	instrument, err := c.instrumentService.Get(ctx.Request.Context(), id)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, instrument)
}

// List 仪器列表
// @Summary      分页查询仪器
// @Tags         仪器
// @Produce      json
// @Param        lab_id query int false "所属实验室"
// @Param        name query string false "名称模糊匹配"
// @Param        status query string false "状态过滤"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Router       /instruments [get]
func (c *InstrumentController) List(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)
	labID, _ := strconv.ParseUint(ctx.Query("lab_id"), 10, 64)

	items, total, err := c.instrumentService.List(ctx.Request.Context(), uint(labID), ctx.Query("name"), ctx.Query("status"), page, pageSize)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Paginated(ctx, items, NewPagination(page, pageSize, total))
}

// Delete 删除仪器
// @Summary      删除仪器
// @Tags         仪器
// @Produce      json
// @Param        id path int true "仪器 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /instruments/{id} [delete]
// @Security     BearerAuth
func (c *InstrumentController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.instrumentService.Delete(ctx.Request.Context(), id); err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, nil)
}
