package service

import (
	"context"
	"errors"
	"time"

	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/repository"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/gorm"
)

// AppointmentService 实验室预约服务接口
type AppointmentService interface {
	Submit(ctx context.Context, caller auth.Caller, req *SubmitAppointmentRequest) (*model.Appointment, error)
	Review(ctx context.Context, caller auth.Caller, id uint, req *ReviewRequest) (*model.Appointment, error)
	Cancel(ctx context.Context, caller auth.Caller, id uint) (*model.Appointment, error)
	Get(ctx context.Context, id uint) (*model.Appointment, error)
	My(ctx context.Context, userID uint, page, pageSize int) ([]*model.Appointment, int64, error)
	Pending(ctx context.Context, page, pageSize int) ([]*model.Appointment, int64, error)
}

// SubmitAppointmentRequest 提交预约请求
// @Description 提交实验室预约的请求参数
type SubmitAppointmentRequest struct {
	LabID     uint      `json:"lab_id" binding:"required"`     // 实验室 ID
	StartTime time.Time `json:"start_time" binding:"required"` // 预约开始时间
	EndTime   time.Time `json:"end_time" binding:"required"`   // 预约结束时间
	Purpose   string    `json:"purpose"`                       // 用途说明
	Attendees int       `json:"attendees"`                     // 使用人数
}

// appointmentService 实验室预约服务实现
type appointmentService struct {
	engine  *workflow.Engine
	repo    repository.AppointmentRepository
	labRepo repository.LabRepository
}

// NewAppointmentService 创建实验室预约服务
func NewAppointmentService(engine *workflow.Engine, repo repository.AppointmentRepository, labRepo repository.LabRepository) AppointmentService {
	return &appointmentService{
		engine:  engine,
		repo:    repo,
		labRepo: labRepo,
	}
}

// Submit 提交预约,新记录处于待审核状态
func (s *appointmentService) Submit(ctx context.Context, caller auth.Caller, req *SubmitAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.labRepo.FindByID(ctx, req.LabID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("实验室不存在")
		}
		return nil, workflow.Dependency("查询实验室失败", err)
	}

	attendees := req.Attendees
	if attendees < 1 {
		attendees = 1
	}
	m := &model.Appointment{
		UserID:    caller.UserID,
		LabID:     req.LabID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Purpose:   req.Purpose,
		Attendees: attendees,
	}
	if _, err := s.engine.Submit(ctx, workflow.AppointmentFlow, caller, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Review 审核预约
func (s *appointmentService) Review(ctx context.Context, caller auth.Caller, id uint, req *ReviewRequest) (*model.Appointment, error) {
	dec, err := parseDecision(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.engine.Review(ctx, workflow.AppointmentFlow, id, caller, dec); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Cancel 申请人取消预约
func (s *appointmentService) Cancel(ctx context.Context, caller auth.Caller, id uint) (*model.Appointment, error) {
	if _, err := s.engine.Cancel(ctx, workflow.AppointmentFlow, id, caller); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Get 获取预约详情
func (s *appointmentService) Get(ctx context.Context, id uint) (*model.Appointment, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("预约记录不存在")
		}
		return nil, workflow.Dependency("查询预约失败", err)
	}
	return m, nil
}

// My 查询我的预约
func (s *appointmentService) My(ctx context.Context, userID uint, page, pageSize int) ([]*model.Appointment, int64, error) {
	offset, limit := normalizePage(page, pageSize)
	items, total, err := s.repo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, workflow.Dependency("查询预约列表失败", err)
	}
	return items, total, nil
}

// Pending 查询待审核预约
func (s *appointmentService) Pending(ctx context.Context, page, pageSize int) ([]*model.Appointment, int64, error) {
	offset, limit := normalizePage(page, pageSize)
	items, total, err := s.repo.ListByStatus(ctx, string(workflow.StatusPending), offset, limit)
	if err != nil {
		return nil, 0, workflow.Dependency("查询待审核预约失败", err)
	}
	return items, total, nil
}
