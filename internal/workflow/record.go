package workflow

import (
	"context"
	"time"
)

// Kind 审核资源类型
type Kind string

const (
	KindAppointment           Kind = "appointment"            // 实验室预约
	KindInstrumentApplication Kind = "instrument_application" // 仪器使用申请
	KindRepairTicket          Kind = "repair_ticket"          // 报修工单
)

// Status 审核状态
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"

	// 报修工单使用的状态词汇,结构上与 pending/approved 同构
	StatusReported   Status = "reported"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// Record 审核记录的通用投影
// 三类资源各自的业务字段由各自的模型承载,引擎只依赖这组通用字段。
// 引擎不在内存中长期持有 Record,每次流转都重新读取当前状态
type Record struct {
	ID           uint
	RequesterID  uint // 申请人,创建后不可变
	SubjectID    uint // 被预约/申请/报修的实验室或仪器
	Status       Status
	ReviewerID   *uint
	ReviewTime   *time.Time
	RejectReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Store 审核记录持久化协作方
// ConditionalUpdate 把状态前置条件并入同一条 UPDATE,
// 并发审核时最多只有一个请求能完成流转,后到者得到 updated=false
type Store interface {
	FindByID(ctx context.Context, kind Kind, id uint) (*Record, error)
	CreatePending(ctx context.Context, kind Kind, payload interface{}) (*Record, error)
	ConditionalUpdate(ctx context.Context, kind Kind, id uint, expected []Status, fields map[string]interface{}) (bool, error)
}

// Notifier 通知协作方
// 发送失败不回滚已提交的状态流转,由引擎记录告警
type Notifier interface {
	Emit(ctx context.Context, userID uint, notificationType string, title, content string, relatedID uint) error
}
