package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
)

// NewsController 新闻公告控制器
type NewsController struct {
	newsService service.NewsService
}

// NewNewsController 创建新闻公告控制器
func NewNewsController(newsService service.NewsService) *NewsController {
	return &NewsController{newsService: newsService}
}

// Create 发布新闻
// @Summary      发布新闻公告
// @Tags         新闻公告
// @Accept       json
// @Produce      json
// @Param        request body service.SaveNewsRequest true "新闻内容"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /news [post]
// @Security     BearerAuth
func (c *NewsController) Create(ctx *gin.Context) {
	var req service.SaveNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	caller := auth.CallerFromContext(ctx)
	news, err := c.newsService.Create(ctx.Request.Context(), caller.UserID, &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, news)
}

// Update 更新新闻
// @Summary      更新新闻公告
// @Tags         新闻公告
// @Accept       json
// @Produce      json
// @Param        id path int true "新闻 ID"
// @Param        request body service.SaveNewsRequest true "新闻内容"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /news/{id} [put]
// @Security     BearerAuth
func (c *NewsController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.SaveNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	news, err := c.newsService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, news)
}

// Get 新闻详情
// @Summary      获取新闻详情
// @Tags         新闻公告
// @Produce      json
// @Param        id path int true "新闻 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /news/{id} [get]
func (c *NewsController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	news, err := c.newsService.Get(ctx.Request.Context(), id)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, news)
}

// List 新闻列表
// @Summary      分页查询新闻
// @Tags         新闻公告
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Router       /news [get]
func (c *NewsController) List(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)

	items, total, err := c.newsService.List(ctx.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Paginated(ctx, items, NewPagination(page, pageSize, total))
}

// Delete 删除新闻
// @Summary      删除新闻公告
// @Tags         新闻公告
// @Produce      json
// @Param        id path int true "新闻 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /news/{id} [delete]
// @Security     BearerAuth
func (c *NewsController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.newsService.Delete(ctx.Request.Context(), id); err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, nil)
}
