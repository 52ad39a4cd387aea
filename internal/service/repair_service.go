package service

import (
	"context"
	"errors"

	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/repository"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/gorm"
)

// RepairService 报修工单服务接口
// Begin 为工单特有的中间流转: 处理人接单,reported → in_progress
type RepairService interface {
	Submit(ctx context.Context, caller auth.Caller, req *SubmitRepairRequest) (*model.RepairTicket, error)
	Review(ctx context.Context, caller auth.Caller, id uint, req *ReviewRequest) (*model.RepairTicket, error)
	Begin(ctx context.Context, caller auth.Caller, id uint) (*model.RepairTicket, error)
	Cancel(ctx context.Context, caller auth.Caller, id uint) (*model.RepairTicket, error)
	Get(ctx context.Context, id uint) (*model.RepairTicket, error)
	My(ctx context.Context, userID uint, page, pageSize int) ([]*model.RepairTicket, int64, error)
	Pending(ctx context.Context, page, pageSize int) ([]*model.RepairTicket, int64, error)
}

// SubmitRepairRequest 提交报修请求
// @Description 提交仪器报修的请求参数
type SubmitRepairRequest struct {
	InstrumentID uint   `json:"instrument_id" binding:"required"` // 仪器 ID
	Title        string `json:"title" binding:"required"`         // 故障概述
	Description  string `json:"description"`                      // 故障详情
	Images       string `json:"images"`                           // 故障图片,逗号分隔
}

// repairService 报修工单服务实现
type repairService struct {
	engine         *workflow.Engine
	repo           repository.RepairTicketRepository
	instrumentRepo repository.InstrumentRepository
}

// NewRepairService 创建报修工单服务
func NewRepairService(engine *workflow.Engine, repo repository.RepairTicketRepository, instrumentRepo repository.InstrumentRepository) RepairService {
	return &repairService{
		engine:         engine,
		repo:           repo,
		instrumentRepo: instrumentRepo,
	}
}

// Submit 提交报修,新工单处于 reported 状态
func (s *repairService) Submit(ctx context.Context, caller auth.Caller, req *SubmitRepairRequest) (*model.RepairTicket, error) {
	if _, err := s.instrumentRepo.FindByID(ctx, req.InstrumentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("仪器不存在")
		}
		return nil, workflow.Dependency("查询仪器失败", err)
	}

	m := &model.RepairTicket{
		UserID:       caller.UserID,
		InstrumentID: req.InstrumentID,
		Title:        req.Title,
		Description:  req.Description,
		Images:       req.Images,
	}
	if _, err := s.engine.Submit(ctx, workflow.RepairFlow, caller, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Review 完结工单
// status 为 resolved(或 approved)表示修复完成,rejected 表示关闭工单并说明原因
func (s *repairService) Review(ctx context.Context, caller auth.Caller, id uint, req *ReviewRequest) (*model.RepairTicket, error) {
	dec, err := parseDecision(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.engine.Review(ctx, workflow.RepairFlow, id, caller, dec); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Begin 处理人接单
func (s *repairService) Begin(ctx context.Context, caller auth.Caller, id uint) (*model.RepairTicket, error) {
	if _, err := s.engine.Advance(ctx, workflow.RepairFlow, id, caller); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Cancel 报修人取消工单
func (s *repairService) Cancel(ctx context.Context, caller auth.Caller, id uint) (*model.RepairTicket, error) {
	if _, err := s.engine.Cancel(ctx, workflow.RepairFlow, id, caller); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Get 获取工单详情
func (s *repairService) Get(ctx context.Context, id uint) (*model.RepairTicket, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("报修工单不存在")
		}
		return nil, workflow.Dependency("查询工单失败", err)
	}
	return m, nil
}

// My 查询我的工单
func (s *repairService) My(ctx context.Context, userID uint, page, pageSize int) ([]*model.RepairTicket, int64, error) {
	offset, limit := normalizePage(page, pageSize)
	items, total, err := s.repo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, workflow.Dependency("查询工单列表失败", err)
	}
	return items, total, nil
}

// Pending 查询待处理工单
func (s *repairService) Pending(ctx context.Context, page, pageSize int) ([]*model.RepairTicket, int64, error) {
	offset, limit := normalizePage(page, pageSize)
	items, total, err := s.repo.ListByStatus(ctx, string(workflow.StatusReported), offset, limit)
	if err != nil {
		return nil, 0, workflow.Dependency("查询待处理工单失败", err)
	}
	return items, total, nil
}
