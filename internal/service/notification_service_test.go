package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/repository"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newNotificationService(t *testing.T) NotificationService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Notification{}))
	return NewNotificationService(repository.NewNotificationRepository(db), nil, nil)
}

func TestNotificationEmitAndList(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	require.NoError(t, svc.Emit(ctx, 1, model.NotificationTypeReviewResult, "审核结果", "您的预约已通过", 5))
	require.NoError(t, svc.Emit(ctx, 1, model.NotificationTypeRepairProgress, "处理进度", "工单已接单", 6))
	require.NoError(t, svc.Emit(ctx, 2, model.NotificationTypeSystem, "系统通知", "维护公告", 0))

	items, total, err := svc.List(ctx, 1, false, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	// 缺必填字段拒绝落库
	err = svc.Emit(ctx, 1, "", "无类型", "内容", 0)
	assert.True(t, workflow.IsValidation(err))
}

func TestNotificationMarkRead(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	require.NoError(t, svc.Emit(ctx, 1, model.NotificationTypeReviewResult, "审核结果", "内容", 1))

	items, _, err := svc.List(ctx, 1, true, 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	id := items[0].ID

	// 他人标记 403
	err = svc.MarkRead(ctx, id, 2)
	assert.True(t, workflow.IsForbidden(err))

	// 不存在 404
	err = svc.MarkRead(ctx, 999, 1)
	assert.True(t, workflow.IsNotFound(err))

	require.NoError(t, svc.MarkRead(ctx, id, 1))

	count, err := svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	// 已读后未读列表为空
	items, total, err := svc.List(ctx, 1, true, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func TestNotificationMarkAllRead(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Emit(ctx, 1, model.NotificationTypeSystem, "系统通知", "内容", 0))
	}
	require.NoError(t, svc.Emit(ctx, 2, model.NotificationTypeSystem, "系统通知", "内容", 0))

	require.NoError(t, svc.MarkAllRead(ctx, 1))
	// 幂等
	require.NoError(t, svc.MarkAllRead(ctx, 1))

	count, err := svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	// 其他用户不受影响
	count, err = svc.UnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestNotificationRemove(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	require.NoError(t, svc.Emit(ctx, 1, model.NotificationTypeSystem, "系统通知", "内容", 0))
	items, _, err := svc.List(ctx, 1, false, 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	id := items[0].ID

	err = svc.Remove(ctx, id, 2)
	assert.True(t, workflow.IsForbidden(err))

	require.NoError(t, svc.Remove(ctx, id, 1))

	_, total, err := svc.List(ctx, 1, false, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	err = svc.Remove(ctx, id, 1)
	assert.True(t, workflow.IsNotFound(err))
}
