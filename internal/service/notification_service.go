package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/sugar258596/experiment-server-sub001/internal/metrics"
	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/repository"
	"github.com/sugar258596/experiment-server-sub001/internal/websocket"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/gorm"
)

// NotificationService 通知服务接口
// Emit 由审核引擎调用(workflow.Notifier),其余操作服务于通知中心页面
type NotificationService interface {
	Emit(ctx context.Context, userID uint, notificationType string, title, content string, relatedID uint) error
	List(ctx context.Context, userID uint, onlyUnread bool, page, pageSize int) ([]*model.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	Remove(ctx context.Context, id, userID uint) error
}

// notificationService 通知服务实现
type notificationService struct {
	repo   repository.NotificationRepository
	hub    *websocket.Hub
	logger *logrus.Logger
}

// NewNotificationService 创建通知服务
// hub 可以为 nil,此时只落库不推送
func NewNotificationService(repo repository.NotificationRepository, hub *websocket.Hub, logger *logrus.Logger) NotificationService {
	if logger == nil {
		logger = logrus.New()
	}
	return &notificationService{
		repo:   repo,
		hub:    hub,
		logger: logger,
	}
}

// Emit 创建通知
// 每次调用都新建一行,从不去重;落库失败向调用方返回可恢复错误,
// 触发通知的状态流转此时已提交,由调用方决定如何告警
func (s *notificationService) Emit(ctx context.Context, userID uint, notificationType string, title, content string, relatedID uint) error {
	n := &model.Notification{
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Content:   content,
		IsRead:    false,
		RelatedID: relatedID,
	}
	if err := n.Validate(); err != nil {
		return workflow.Invalid(err.Error())
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return workflow.Dependency("通知落库失败", err)
	}

	metrics.RecordNotificationEmitted(notificationType)
	s.push(n)
	return nil
}

// push 向在线连接推送通知,尽力而为
func (s *notificationService) push(n *model.Notification) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		s.logger.WithError(err).Warn("通知推送序列化失败")
		return
	}
	s.hub.PushToUser(n.UserID, payload)
}

// List 分页查询用户的通知
func (s *notificationService) List(ctx context.Context, userID uint, onlyUnread bool, page, pageSize int) ([]*model.Notification, int64, error) {
	offset, limit := normalizePage(page, pageSize)
	items, total, err := s.repo.ListByUser(ctx, userID, onlyUnread, offset, limit)
	if err != nil {
		return nil, 0, workflow.Dependency("查询通知失败", err)
	}
	return items, total, nil
}

// MarkRead 标记已读,只有接收人本人可以操作
func (s *notificationService) MarkRead(ctx context.Context, id, userID uint) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.NotFound("通知不存在")
		}
		return workflow.Dependency("查询通知失败", err)
	}
	if n.UserID != userID {
		return workflow.Forbidden("只能操作自己的通知")
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return workflow.Dependency("标记已读失败", err)
	}
	return nil
}

// MarkAllRead 全部标记已读,幂等
func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return workflow.Dependency("标记已读失败", err)
	}
	return nil
}

// UnreadCount 未读通知数
func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, workflow.Dependency("统计未读通知失败", err)
	}
	return count, nil
}

// Remove 软删除,只有接收人本人可以操作
func (s *notificationService) Remove(ctx context.Context, id, userID uint) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.NotFound("通知不存在")
		}
		return workflow.Dependency("查询通知失败", err)
	}
	if n.UserID != userID {
		return workflow.Forbidden("只能删除自己的通知")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return workflow.Dependency("删除通知失败", err)
	}
	return nil
}
