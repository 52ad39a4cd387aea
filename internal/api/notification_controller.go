package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
)

// NotificationController 通知控制器
type NotificationController struct {
	notificationService service.NotificationService
}

// NewNotificationController 创建通知控制器
func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List 通知列表
// @Summary      查询我的通知
// @Tags         通知
// @Produce      json
// @Param        unread query bool false "仅未读"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Router       /notifications [get]
// @Security     BearerAuth
func (c *NotificationController) List(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)
	onlyUnread := ctx.Query("unread") == "true"
	caller := auth.CallerFromContext(ctx)

	items, total, err := c.notificationService.List(ctx.Request.Context(), caller.UserID, onlyUnread, page, pageSize)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Paginated(ctx, items, NewPagination(page, pageSize, total))
}

// MarkRead 标记已读
// @Summary      标记通知已读
// @Tags         通知
// @Produce      json
// @Param        id path int true "通知 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/read/{id} [patch]
// @Security     BearerAuth
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	caller := auth.CallerFromContext(ctx)
	if err := c.notificationService.MarkRead(ctx.Request.Context(), id, caller.UserID); err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, nil)
}

// MarkAllRead 全部标记已读
// @Summary      全部标记已读
// @Tags         通知
// @Produce      json
// @Success      200  {object}  Response
// @Router       /notifications/read-all [patch]
// @Security     BearerAuth
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	caller := auth.CallerFromContext(ctx)
	if err := c.notificationService.MarkAllRead(ctx.Request.Context(), caller.UserID); err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, nil)
}

// UnreadCount 未读数量
// @Summary      查询未读通知数量
// @Tags         通知
// @Produce      json
// @Success      200  {object}  Response
// @Router       /notifications/unread-count [get]
// @Security     BearerAuth
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	caller := auth.CallerFromContext(ctx)
	count, err := c.notificationService.UnreadCount(ctx.Request.Context(), caller.UserID)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, gin.H{"count": count})
}

// Remove 删除通知
// @Summary      删除通知
// @Tags         通知
// @Produce      json
// @Param        id path int true "通知 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id} [delete]
// @Security     BearerAuth
func (c *NotificationController) Remove(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	caller := auth.CallerFromContext(ctx)
	if err := c.notificationService.Remove(ctx.Request.Context(), id, caller.UserID); err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, nil)
}
