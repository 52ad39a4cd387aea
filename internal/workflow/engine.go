package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/metrics"
)

// Decision 审核决定
type Decision struct {
	Approve bool   // true 通过,false 驳回
	Reason  string // 驳回原因,驳回时必填
}

// Engine 审核引擎
// 按描述符驱动状态机: 校验角色与当前状态,通过条件更新提交流转,
// 流转成功后向申请人发送一条通知。通知失败只告警,不回滚已提交的流转
type Engine struct {
	store    Store
	notifier Notifier
	logger   *logrus.Logger
}

// NewEngine 创建审核引擎
func NewEngine(store Store, notifier Notifier, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit 提交申请,创建处于初始状态的记录
func (e *Engine) Submit(ctx context.Context, d Descriptor, caller auth.Caller, payload interface{}) (*Record, error) {
	if !auth.Allowed(caller.Role, d.SubmitRoles...) {
		return nil, Forbidden(fmt.Sprintf("当前角色无权提交%s", d.Label))
	}

	rec, err := e.store.CreatePending(ctx, d.Kind, payload)
	if err != nil {
		return nil, err
	}

	metrics.RecordWorkflowSubmit(string(d.Kind))
	return rec, nil
}

// Review 审核通过或驳回
// 校验顺序固定: 角色门槛 → 驳回原因 → 记录存在 → 当前状态。
// 状态前置条件并入同一条 UPDATE,并发审核时后到者得到 ConflictError
func (e *Engine) Review(ctx context.Context, d Descriptor, id uint, caller auth.Caller, dec Decision) (*Record, error) {
	if !auth.Allowed(caller.Role, d.ReviewRoles...) {
		return nil, Forbidden(fmt.Sprintf("当前角色无权审核%s", d.Label))
	}

	reason := strings.TrimSpace(dec.Reason)
	if !dec.Approve && reason == "" {
		return nil, Invalid("驳回时必须填写驳回原因")
	}

	rec, err := e.store.FindByID(ctx, d.Kind, id)
	if err != nil {
		return nil, err
	}
	if !statusIn(rec.Status, d.ReviewableFrom) {
		return nil, Conflict(fmt.Sprintf("%s已处于 %s 状态,不能重复审核", d.Label, rec.Status))
	}

	target := d.ApprovedStatus
	action := "approve"
	if !dec.Approve {
		target = d.RejectedStatus
		action = "reject"
	}

	now := time.Now()
	fields := map[string]interface{}{
		"status":      string(target),
		"reviewer_id": caller.UserID,
		"review_time": now,
	}
	if !dec.Approve {
		fields["reject_reason"] = reason
	}

	updated, err := e.store.ConditionalUpdate(ctx, d.Kind, id, d.ReviewableFrom, fields)
	if err != nil {
		return nil, err
	}
	if !updated {
		// 并发审核落败,记录已被其他审核人流转
		return nil, Conflict(fmt.Sprintf("%s已被其他审核人处理", d.Label))
	}

	rec.Status = target
	rec.ReviewerID = &caller.UserID
	rec.ReviewTime = &now
	if !dec.Approve {
		rec.RejectReason = reason
	}

	metrics.RecordWorkflowReview(string(d.Kind), action)
	e.notifyReviewResult(ctx, d, rec, dec.Approve, reason)
	return rec, nil
}

// Cancel 申请人取消
// 校验顺序固定为先归属后状态: 非本人一律 403,本人在已完结记录上取消得到 409
func (e *Engine) Cancel(ctx context.Context, d Descriptor, id uint, caller auth.Caller) (*Record, error) {
	rec, err := e.store.FindByID(ctx, d.Kind, id)
	if err != nil {
		return nil, err
	}

	if rec.RequesterID != caller.UserID {
		return nil, Forbidden(fmt.Sprintf("只有申请人本人可以取消%s", d.Label))
	}
	if !statusIn(rec.Status, d.CancellableFrom) {
		return nil, Conflict(fmt.Sprintf("%s已处于 %s 状态,无法取消", d.Label, rec.Status))
	}

	updated, err := e.store.ConditionalUpdate(ctx, d.Kind, id, d.CancellableFrom, map[string]interface{}{
		"status": string(d.CancelledStatus),
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, Conflict(fmt.Sprintf("%s状态已变更,无法取消", d.Label))
	}

	rec.Status = d.CancelledStatus
	metrics.RecordWorkflowReview(string(d.Kind), "cancel")
	return rec, nil
}

// Advance 中间流转(报修工单 reported → in_progress)
// 处理人接单,向报修人发送进度通知
func (e *Engine) Advance(ctx context.Context, d Descriptor, id uint, caller auth.Caller) (*Record, error) {
	if len(d.AdvanceFrom) == 0 {
		return nil, Invalid(fmt.Sprintf("%s不支持该操作", d.Label))
	}
	if !auth.Allowed(caller.Role, d.ReviewRoles...) {
		return nil, Forbidden(fmt.Sprintf("当前角色无权处理%s", d.Label))
	}

	rec, err := e.store.FindByID(ctx, d.Kind, id)
	if err != nil {
		return nil, err
	}
	if !statusIn(rec.Status, d.AdvanceFrom) {
		return nil, Conflict(fmt.Sprintf("%s已处于 %s 状态,无法开始处理", d.Label, rec.Status))
	}

	updated, err := e.store.ConditionalUpdate(ctx, d.Kind, id, d.AdvanceFrom, map[string]interface{}{
		"status":      string(d.AdvanceStatus),
		"reviewer_id": caller.UserID,
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, Conflict(fmt.Sprintf("%s已被其他处理人接单", d.Label))
	}

	rec.Status = d.AdvanceStatus
	rec.ReviewerID = &caller.UserID
	metrics.RecordWorkflowReview(string(d.Kind), "advance")

	e.emit(ctx, rec.RequesterID, d.NotificationType,
		fmt.Sprintf("%s处理进度", d.Label),
		fmt.Sprintf("您的%s(编号 %d)已开始处理", d.Label, rec.ID),
		rec.ID)
	return rec, nil
}

// notifyReviewResult 审核结果通知
// 每次成功的流转恰好产生一条通知,接收人为原申请人
func (e *Engine) notifyReviewResult(ctx context.Context, d Descriptor, rec *Record, approved bool, reason string) {
	title := fmt.Sprintf("%s审核结果", d.Label)
	var content string
	if approved {
		content = fmt.Sprintf("您的%s(编号 %d)已审核通过", d.Label, rec.ID)
	} else {
		content = fmt.Sprintf("您的%s(编号 %d)未通过审核,原因: %s", d.Label, rec.ID, reason)
	}
	e.emit(ctx, rec.RequesterID, d.NotificationType, title, content, rec.ID)
}

// emit 发送通知,失败只告警
// 状态流转此时已提交,通知失败不应让审核结果丢失
func (e *Engine) emit(ctx context.Context, userID uint, notificationType, title, content string, relatedID uint) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Emit(ctx, userID, notificationType, title, content, relatedID); err != nil {
		e.logger.WithFields(logrus.Fields{
			"user_id":    userID,
			"related_id": relatedID,
			"type":       notificationType,
		}).WithError(err).Warn("通知发送失败,状态流转已生效")
	}
}
