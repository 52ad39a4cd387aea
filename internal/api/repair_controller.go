package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
)

// RepairController 报修工单控制器
type RepairController struct {
	repairService service.RepairService
}

// NewRepairController 创建报修工单控制器
func NewRepairController(repairService service.RepairService) *RepairController {
	return &RepairController{repairService: repairService}
}

// Submit 提交报修
// @Summary      提交仪器报修
// @Tags         报修工单
// @Accept       json
// @Produce      json
// @Param        request body service.SubmitRepairRequest true "报修信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /repairs [post]
// @Security     BearerAuth
func (c *RepairController) Submit(ctx *gin.Context) {
	var req service.SubmitRepairRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	caller := auth.CallerFromContext(ctx)
	ticket, err := c.repairService.Submit(ctx.Request.Context(), caller, &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, ticket)
}

// Review 完结工单
// @Summary      完结报修工单
// @Description  resolved 表示修复完成,rejected 表示关闭工单并说明原因
// @Tags         报修工单
// @Accept       json
// @Produce      json
// @Param        id path int true "工单 ID"
// @Param        request body service.ReviewRequest true "处理结论"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /repairs/review/{id} [put]
// @Security     BearerAuth
func (c *RepairController) Review(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	caller := auth.CallerFromContext(ctx)
	ticket, err := c.repairService.Review(ctx.Request.Context(), caller, id, &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, ticket)
}

// Begin 接单
// @Summary      开始处理工单
// @Description  处理人接单,工单进入处理中状态
// @Tags         报修工单
// @Produce      json
// @Param        id path int true "工单 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /repairs/progress/{id} [patch]
// @Security     BearerAuth
func (c *RepairController) Begin(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	caller := auth.CallerFromContext(ctx)
	ticket, err := c.repairService.Begin(ctx.Request.Context(), caller, id)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, ticket)
}

// Cancel 取消工单
// @Summary      取消报修工单
// @Tags         报修工单
// @Produce      json
// @Param        id path int true "工单 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /repairs/cancel/{id} [patch]
// @Security     BearerAuth
func (c *RepairController) Cancel(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	caller := auth.CallerFromContext(ctx)
	ticket, err := c.repairService.Cancel(ctx.Request.Context(), caller, id)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, ticket)
}

// Get 工单详情
// @Summary      获取工单详情
// @Tags         报修工单
// @Produce      json
// @Param        id path int true "工单 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /repairs/{id} [get]
// @Security     BearerAuth
func (c *RepairController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	ticket, err := c.repairService.Get(ctx.Request.Context(), id)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, ticket)
}

// My 我的工单
// @Summary      查询我的报修工单
// @Tags         报修工单
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Router       /repairs/my [get]
// @Security     BearerAuth
func (c *RepairController) My(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)
	caller := auth.CallerFromContext(ctx)

	items, total, err := c.repairService.My(ctx.Request.Context(), caller.UserID, page, pageSize)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Paginated(ctx, items, NewPagination(page, pageSize, total))
}

// Pending 待处理工单
// @Summary      查询待处理工单
// @Tags         报修工单
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /repairs/pending [get]
// @Security     BearerAuth
func (c *RepairController) Pending(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)

	items, total, err := c.repairService.Pending(ctx.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Paginated(ctx, items, NewPagination(page, pageSize, total))
}
