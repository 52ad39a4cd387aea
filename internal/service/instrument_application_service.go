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

// InstrumentApplicationService 仪器使用申请服务接口
type InstrumentApplicationService interface {
	Submit(ctx context.Context, caller auth.Caller, req *SubmitApplicationRequest) (*model.InstrumentApplication, error)
	Review(ctx context.Context, caller auth.Caller, id uint, req *ReviewRequest) (*model.InstrumentApplication, error)
	Cancel(ctx context.Context, caller auth.Caller, id uint) (*model.InstrumentApplication, error)
	Get(ctx context.Context, id uint) (*model.InstrumentApplication, error)
	My(ctx context.Context, userID uint, page, pageSize int) ([]*model.InstrumentApplication, int64, error)
	Pending(ctx context.Context, page, pageSize int) ([]*model.InstrumentApplication, int64, error)
}

// SubmitApplicationRequest 提交仪器使用申请请求
// @Description 提交仪器使用申请的请求参数
type SubmitApplicationRequest struct {
	InstrumentID uint      `json:"instrument_id" binding:"required"` // 仪器 ID
	StartTime    time.Time `json:"start_time" binding:"required"`    // 使用开始时间
	EndTime      time.Time `json:"end_time" binding:"required"`      // 使用结束时间
	Purpose      string    `json:"purpose"`                          // 用途说明
	Supervisor   string    `json:"supervisor"`                       // 指导教师
}

// instrumentApplicationService 仪器使用申请服务实现
type instrumentApplicationService struct {
	engine         *workflow.Engine
	repo           repository.InstrumentApplicationRepository
	instrumentRepo repository.InstrumentRepository
}

// NewInstrumentApplicationService 创建仪器使用申请服务
func NewInstrumentApplicationService(engine *workflow.Engine, repo repository.InstrumentApplicationRepository, instrumentRepo repository.InstrumentRepository) InstrumentApplicationService {
	return &instrumentApplicationService{
		engine:         engine,
		repo:           repo,
		instrumentRepo: instrumentRepo,
	}
}

// Submit 提交申请
func (s *instrumentApplicationService) Submit(ctx context.Context, caller auth.Caller, req *SubmitApplicationRequest) (*model.InstrumentApplication, error) {
	instrument, err := s.instrumentRepo.FindByID(ctx, req.InstrumentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("仪器不存在")
		}
		return nil, workflow.Dependency("查询仪器失败", err)
	}
	if instrument.Status == "retired" {
		return nil, workflow.Invalid("仪器已报废,无法申请使用")
	}

	m := &model.InstrumentApplication{
		UserID:       caller.UserID,
		InstrumentID: req.InstrumentID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Purpose:      req.Purpose,
		Supervisor:   req.Supervisor,
	}
	if _, err := s.engine.Submit(ctx, workflow.InstrumentApplicationFlow, caller, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Review 审核申请
func (s *instrumentApplicationService) Review(ctx context.Context, caller auth.Caller, id uint, req *ReviewRequest) (*model.InstrumentApplication, error) {
	dec, err := parseDecision(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.engine.Review(ctx, workflow.InstrumentApplicationFlow, id, caller, dec); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Cancel 申请人取消申请
func (s *instrumentApplicationService) Cancel(ctx context.Context, caller auth.Caller, id uint) (*model.InstrumentApplication, error) {
	if _, err := s.engine.Cancel(ctx, workflow.InstrumentApplicationFlow, id, caller); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Get 获取申请详情
func (s *instrumentApplicationService) Get(ctx context.Context, id uint) (*model.InstrumentApplication, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("仪器使用申请不存在")
		}
		return nil, workflow.Dependency("查询申请失败", err)
	}
	return m, nil
}

// My 查询我的申请
func (s *instrumentApplicationService) My(ctx context.Context, userID uint, page, pageSize int) ([]*model.InstrumentApplication, int64, error) {
	offset, limit := normalizePage(page, pageSize)
	items, total, err := s.repo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, workflow.Dependency("查询申请列表失败", err)
	}
	return items, total, nil
}

// Pending 查询待审核申请
func (s *instrumentApplicationService) Pending(ctx context.Context, page, pageSize int) ([]*model.InstrumentApplication, int64, error) {
	offset, limit := normalizePage(page, pageSize)
	items, total, err := s.repo.ListByStatus(ctx, string(workflow.StatusPending), offset, limit)
	if err != nil {
		return nil, 0, workflow.Dependency("查询待审核申请失败", err)
	}
	return items, total, nil
}
