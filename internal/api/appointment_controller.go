package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
)

// AppointmentController 实验室预约控制器
type AppointmentController struct {
	appointmentService service.AppointmentService
}

// NewAppointmentController 创建实验室预约控制器
func NewAppointmentController(appointmentService service.AppointmentService) *AppointmentController {
	return &AppointmentController{appointmentService: appointmentService}
}

// Submit 提交预约
// @Summary      提交实验室预约
// @Description  提交预约申请,新记录处于待审核状态
// @Tags         实验室预约
// @Accept       json
// @Produce      json
// @Param        request body service.SubmitAppointmentRequest true "预约信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /appointments [post]
// @Security     BearerAuth
func (c *AppointmentController) Submit(ctx *gin.Context) {
	var req service.SubmitAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	caller := auth.CallerFromContext(ctx)
	appointment, err := c.appointmentService.Submit(ctx.Request.Context(), caller, &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, appointment)
}

// Review 审核预约
// @Summary      审核实验室预约
// @Description  通过或驳回预约,驳回时必须给出原因
// @Tags         实验室预约
// @Accept       json
// @Produce      json
// @Param        id path int true "预约 ID"
// @Param        request body service.ReviewRequest true "审核结论"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /appointments/review/{id} [put]
// @Security     BearerAuth
func (c *AppointmentController) Review(ctx *gin.Context) {
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
	appointment, err := c.appointmentService.Review(ctx.Request.Context(), caller, id, &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, appointment)
}

// Cancel 取消预约
// @Summary      取消实验室预约
// @Description  预约人取消自己的待审核预约
// @Tags         实验室预约
// @Produce      json
// @Param        id path int true "预约 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /appointments/cancel/{id} [patch]
// @Security     BearerAuth
func (c *AppointmentController) Cancel(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	caller := auth.CallerFromContext(ctx)
	appointment, err := c.appointmentService.Cancel(ctx.Request.Context(), caller, id)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, appointment)
}

// Get 预约详情
// @Summary      获取预约详情
// @Tags         实验室预约
// @Produce      json
// @Param        id path int true "预约 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /appointments/{id} [get]
// @Security     BearerAuth
func (c *AppointmentController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	appointment, err := c.appointmentService.Get(ctx.Request.Context(), id)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, appointment)
}

// My 我的预约
// @Summary      查询我的预约
// @Tags         实验室预约
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Router       /appointments/my [get]
// @Security     BearerAuth
func (c *AppointmentController) My(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)
	caller := auth.CallerFromContext(ctx)

	items, total, err := c.appointmentService.My(ctx.Request.Context(), caller.UserID, page, pageSize)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Paginated(ctx, items, NewPagination(page, pageSize, total))
}

// Pending 待审核预约
// @Summary      查询待审核预约
// @Tags         实验室预约
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /appointments/pending [get]
// @Security     BearerAuth
func (c *AppointmentController) Pending(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)

	items, total, err := c.appointmentService.Pending(ctx.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Paginated(ctx, items, NewPagination(page, pageSize, total))
}
