package workflow

import (
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/model"
)

// Descriptor 资源类型描述符
// 三类审核资源共享同一套状态机形状,只是词汇表和角色门槛不同,
// 引擎以描述符为参数做多态,避免按资源复制三份实现
type Descriptor struct {
	Kind  Kind
	Label string // 中文资源名,用于通知文案和错误消息

	SubmitRoles []model.Role // 允许提交的角色
	ReviewRoles []model.Role // 允许审核(通过/驳回)的角色

	InitialStatus   Status
	ApprovedStatus  Status
	RejectedStatus  Status
	CancelledStatus Status

	ReviewableFrom  []Status // 允许审核的起始状态
	CancellableFrom []Status // 允许申请人取消的起始状态

	// 中间流转(仅报修工单使用,reported → in_progress),为空表示不支持
	AdvanceFrom   []Status
	AdvanceStatus Status

	NotificationType string // 审核结果通知的类型
}

// AppointmentFlow 实验室预约的审核流
var AppointmentFlow = Descriptor{
	Kind:             KindAppointment,
	Label:            "实验室预约",
	SubmitRoles:      auth.AllRoles,
	ReviewRoles:      auth.ReviewerRoles,
	InitialStatus:    StatusPending,
	ApprovedStatus:   StatusApproved,
	RejectedStatus:   StatusRejected,
	CancelledStatus:  StatusCancelled,
	ReviewableFrom:   []Status{StatusPending},
	CancellableFrom:  []Status{StatusPending},
	NotificationType: model.NotificationTypeReviewResult,
}

// InstrumentApplicationFlow 仪器使用申请的审核流
var InstrumentApplicationFlow = Descriptor{
	Kind:             KindInstrumentApplication,
	Label:            "仪器使用申请",
	SubmitRoles:      auth.AllRoles,
	ReviewRoles:      auth.ReviewerRoles,
	InitialStatus:    StatusPending,
	ApprovedStatus:   StatusApproved,
	RejectedStatus:   StatusRejected,
	CancelledStatus:  StatusCancelled,
	ReviewableFrom:   []Status{StatusPending},
	CancellableFrom:  []Status{StatusPending},
	NotificationType: model.NotificationTypeReviewResult,
}

// RepairFlow 报修工单的审核流
// 词汇表不同但边结构同构: reported 等价 pending,resolved 等价 approved;
// 管理员驳回映射为 cancelled 并要求填写说明,申请人在工单完结前可取消
var RepairFlow = Descriptor{
	Kind:             KindRepairTicket,
	Label:            "报修工单",
	SubmitRoles:      auth.AllRoles,
	ReviewRoles:      auth.AdminRoles,
	InitialStatus:    StatusReported,
	ApprovedStatus:   StatusResolved,
	RejectedStatus:   StatusCancelled,
	CancelledStatus:  StatusCancelled,
	ReviewableFrom:   []Status{StatusReported, StatusInProgress},
	CancellableFrom:  []Status{StatusReported, StatusInProgress},
	AdvanceFrom:      []Status{StatusReported},
	AdvanceStatus:    StatusInProgress,
	NotificationType: model.NotificationTypeRepairProgress,
}

// statusIn 判断状态是否在集合内
func statusIn(s Status, set []Status) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
