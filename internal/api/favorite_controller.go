package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
)

// FavoriteController 收藏控制器
type FavoriteController struct {
	favoriteService service.FavoriteService
}

// NewFavoriteController 创建收藏控制器
func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

// Add 添加收藏
// @Summary      收藏实验室或仪器
// @Tags         收藏
// @Accept       json
// @Produce      json
// @Param        request body service.AddFavoriteRequest true "收藏目标"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /favorites [post]
// @Security     BearerAuth
func (c *FavoriteController) Add(ctx *gin.Context) {
	var req service.AddFavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	caller := auth.CallerFromContext(ctx)
	favorite, err := c.favoriteService.Add(ctx.Request.Context(), caller.UserID, &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, favorite)
}

// Remove 取消收藏
// @Summary      取消收藏
// @Tags         收藏
// @Produce      json
// @Param        id path int true "收藏 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /favorites/{id} [delete]
// @Security     BearerAuth
func (c *FavoriteController) Remove(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	caller := auth.CallerFromContext(ctx)
	if err := c.favoriteService.Remove(ctx.Request.Context(), caller.UserID, id); err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, nil)
}

// My 我的收藏
// @Summary      查询我的收藏
// @Tags         收藏
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Router       /favorites/my [get]
// @Security     BearerAuth
func (c *FavoriteController) My(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)
	caller := auth.CallerFromContext(ctx)

	items, total, err := c.favoriteService.My(ctx.Request.Context(), caller.UserID, page, pageSize)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Paginated(ctx, items, NewPagination(page, pageSize, total))
}
