package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/gorm"
)

// WorkflowStore 审核记录持久化实现
// 三类资源映射到各自的表,审核相关列同名,条件更新共用同一条语句形状
type WorkflowStore struct {
	db *gorm.DB
}

// NewWorkflowStore 创建审核记录存储
func NewWorkflowStore(db *gorm.DB) *WorkflowStore {
	return &WorkflowStore{db: db}
}

// FindByID 按类型和 ID 查找审核记录
func (s *WorkflowStore) FindByID(ctx context.Context, kind workflow.Kind, id uint) (*workflow.Record, error) {
	switch kind {
	case workflow.KindAppointment:
		var m model.Appointment
		if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
			return nil, translateFindError(err, "预约记录不存在")
		}
		return appointmentRecord(&m), nil

	case workflow.KindInstrumentApplication:
		var m model.InstrumentApplication
		if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
			return nil, translateFindError(err, "仪器使用申请不存在")
		}
		return applicationRecord(&m), nil

	case workflow.KindRepairTicket:
		var m model.RepairTicket
		if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
			return nil, translateFindError(err, "报修工单不存在")
		}
		return repairRecord(&m), nil
	}
	return nil, workflow.Invalid(fmt.Sprintf("未知的资源类型: %s", kind))
}

// CreatePending 创建处于初始状态的记录
// 无论调用方传入什么,审核字段都在这里统一复位,保证新记录一定是待审核
func (s *WorkflowStore) CreatePending(ctx context.Context, kind workflow.Kind, payload interface{}) (*workflow.Record, error) {
	switch kind {
	case workflow.KindAppointment:
		m, ok := payload.(*model.Appointment)
		if !ok {
			return nil, workflow.Invalid("预约记录类型不匹配")
		}
		m.Status = string(workflow.StatusPending)
		resetReviewFields(&m.ReviewerID, &m.ReviewTime, &m.RejectReason)
		if err := m.Validate(); err != nil {
			return nil, workflow.Invalid(err.Error())
		}
		if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
			return nil, workflow.Dependency("创建预约记录失败", err)
		}
		return appointmentRecord(m), nil

	case workflow.KindInstrumentApplication:
		m, ok := payload.(*model.InstrumentApplication)
		if !ok {
			return nil, workflow.Invalid("仪器使用申请类型不匹配")
		}
		m.Status = string(workflow.StatusPending)
		resetReviewFields(&m.ReviewerID, &m.ReviewTime, &m.RejectReason)
		if err := m.Validate(); err != nil {
			return nil, workflow.Invalid(err.Error())
		}
		if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
			return nil, workflow.Dependency("创建仪器使用申请失败", err)
		}
		return applicationRecord(m), nil

	case workflow.KindRepairTicket:
		m, ok := payload.(*model.RepairTicket)
		if !ok {
			return nil, workflow.Invalid("报修工单类型不匹配")
		}
		m.Status = string(workflow.StatusReported)
		resetReviewFields(&m.ReviewerID, &m.ReviewTime, &m.RejectReason)
		if err := m.Validate(); err != nil {
			return nil, workflow.Invalid(err.Error())
		}
		if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
			return nil, workflow.Dependency("创建报修工单失败", err)
		}
		return repairRecord(m), nil
	}
	return nil, workflow.Invalid(fmt.Sprintf("未知的资源类型: %s", kind))
}

// ConditionalUpdate 条件更新
// 状态前置条件并入 WHERE,与更新同属一条语句,
// 并发流转时只有一个请求能命中行,落败方得到 updated=false
func (s *WorkflowStore) ConditionalUpdate(ctx context.Context, kind workflow.Kind, id uint, expected []workflow.Status, fields map[string]interface{}) (bool, error) {
	m := modelFor(kind)
	if m == nil {
		return false, workflow.Invalid(fmt.Sprintf("未知的资源类型: %s", kind))
	}

	res := s.db.WithContext(ctx).
		Model(m).
		Where("id = ? AND status IN ?", id, statusStrings(expected)).
		Updates(fields)
	if res.Error != nil {
		return false, workflow.Dependency("提交状态流转失败", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// modelFor 返回类型对应的空模型
func modelFor(kind workflow.Kind) interface{} {
	switch kind {
	case workflow.KindAppointment:
		return &model.Appointment{}
	case workflow.KindInstrumentApplication:
		return &model.InstrumentApplication{}
	case workflow.KindRepairTicket:
		return &model.RepairTicket{}
	}
	return nil
}

func statusStrings(statuses []workflow.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// resetReviewFields 复位审核字段,保证新建记录的审核信息为空
func resetReviewFields(reviewerID **uint, reviewTime **time.Time, rejectReason *string) {
	*reviewerID = nil
	*reviewTime = nil
	*rejectReason = ""
}

func translateFindError(err error, notFoundMessage string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workflow.NotFound(notFoundMessage)
	}
	return workflow.Dependency("查询审核记录失败", err)
}

func appointmentRecord(m *model.Appointment) *workflow.Record {
	return &workflow.Record{
		ID:           m.ID,
		RequesterID:  m.UserID,
		SubjectID:    m.LabID,
		Status:       workflow.Status(m.Status),
		ReviewerID:   m.ReviewerID,
		ReviewTime:   m.ReviewTime,
		RejectReason: m.RejectReason,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func applicationRecord(m *model.InstrumentApplication) *workflow.Record {
	return &workflow.Record{
		ID:           m.ID,
		RequesterID:  m.UserID,
		SubjectID:    m.InstrumentID,
		Status:       workflow.Status(m.Status),
		ReviewerID:   m.ReviewerID,
		ReviewTime:   m.ReviewTime,
		RejectReason: m.RejectReason,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func repairRecord(m *model.RepairTicket) *workflow.Record {
	return &workflow.Record{
		ID:           m.ID,
		RequesterID:  m.UserID,
		SubjectID:    m.InstrumentID,
		Status:       workflow.Status(m.Status),
		ReviewerID:   m.ReviewerID,
		ReviewTime:   m.ReviewTime,
		RejectReason: m.RejectReason,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
