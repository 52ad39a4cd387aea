package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
)

// InstrumentApplicationController 仪器使用申请控制器
type InstrumentApplicationController struct {
	applicationService service.InstrumentApplicationService
}

// NewInstrumentApplicationController 创建仪器使用申请控制器
func NewInstrumentApplicationController(applicationService service.InstrumentApplicationService) *InstrumentApplicationController {
	return &InstrumentApplicationController{applicationService: applicationService}
}

// Submit 提交申请
// @Summary      提交仪器使用申请
// @Tags         仪器使用申请
// @Accept       json
// @Produce      json
// @Param        request body service.SubmitApplicationRequest true "申请信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /usage-applications [post]
// @Security     BearerAuth
func (c *InstrumentApplicationController) Submit(ctx *gin.Context) {
	var req service.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	caller := auth.CallerFromContext(ctx)
	application, err := c.applicationService.Submit(ctx.Request.Context(), caller, &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, application)
}

// Review 审核申请
// @Summary      审核仪器使用申请
// @Description  通过或驳回申请,驳回时必须给出原因
// @Tags         仪器使用申请
// @Accept       json
// @Produce      json
// @Param        id path int true "申请 ID"
// @Param        request body service.ReviewRequest true "审核结论"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /usage-applications/review/{id} [put]
// @Security     BearerAuth
func (c *InstrumentApplicationController) Review(ctx *gin.Context) {
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
	application, err := c.applicationService.Review(ctx.Request.Context(), caller, id, &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, application)
}

// Cancel 取消申请
// @Summary      取消仪器使用申请
// @Tags         仪器使用申请
// @Produce      json
// @Param        id path int true "申请 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /usage-applications/cancel/{id} [patch]
// @Security     BearerAuth
func (c *InstrumentApplicationController) Cancel(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	caller := auth.CallerFromContext(ctx)
	application, err := c.applicationService.Cancel(ctx.Request.Context(), caller, id)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, application)
}

// Get 申请详情
// @Summary      获取申请详情
// @Tags         仪器使用申请
// @Produce      json
// @Param        id path int true "申请 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /usage-applications/{id} [get]
// @Security     BearerAuth
func (c *InstrumentApplicationController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	application, err := c.applicationService.Get(ctx.Request.Context(), id)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, application)
}

// My 我的申请
// @Summary      查询我的申请
// @Tags         仪器使用申请
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Router       /usage-applications/my [get]
// @Security     BearerAuth
func (c *InstrumentApplicationController) My(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)
	caller := auth.CallerFromContext(ctx)

	items, total, err := c.applicationService.My(ctx.Request.Context(), caller.UserID, page, pageSize)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Paginated(ctx, items, NewPagination(page, pageSize, total))
}

// Pending 待审核申请
// @Summary      查询待审核申请
// @Tags         仪器使用申请
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /usage-applications/pending [get]
// @Security     BearerAuth
func (c *InstrumentApplicationController) Pending(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)

	items, total, err := c.applicationService.Pending(ctx.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Paginated(ctx, items, NewPagination(page, pageSize, total))
}
