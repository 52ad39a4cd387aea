package service

import (
	"context"
	"errors"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/repository"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/gorm"
)

// InstrumentService 仪器服务接口
type InstrumentService interface {
	Create(ctx context.Context, req *SaveInstrumentRequest) (*model.Instrument, error)
	Update(ctx context.Context, id uint, req *SaveInstrumentRequest) (*model.Instrument, error)
	Get(ctx context.Context, id uint) (*model.Instrument, error)
	List(ctx context.Context, labID uint, name, status string, page, pageSize int) ([]*model.Instrument, int64, error)
	Delete(ctx context.Context, id uint) error
}

// SaveInstrumentRequest 创建/更新仪器请求
// @Description 仪器信息
type SaveInstrumentRequest struct {
	LabID       uint   `json:"lab_id" binding:"required"` // 所属实验室 ID
	Name        string `json:"name" binding:"required"`   // 仪器名称
	ModelNo     string `json:"model_no"`
	SerialNo    string `json:"serial_no"`
	Description string `json:"description"`
	Status      string `json:"status"` // available / in_use / repairing / retired
	Image       string `json:"image"`
}

// instrumentService 仪器服务实现
type instrumentService struct {
	repo    repository.InstrumentRepository
	labRepo repository.LabRepository
}

// NewInstrumentService 创建仪器服务
func NewInstrumentService(repo repository.InstrumentRepository, labRepo repository.LabRepository) InstrumentService {
	return &instrumentService{repo: repo, labRepo: labRepo}
}

// Create 创建仪器
func (s *instrumentService) Create(ctx context.Context, req *SaveInstrumentRequest) (*model.Instrument, error) {
	if _, err := s.labRepo.FindByID(ctx, req.LabID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("实验室不存在")
		}
		return nil, workflow.Dependency("查询实验室失败", err)
	}

	instrument := &model.Instrument{
		LabID:       req.LabID,
		Name:        req.Name,
		ModelNo:     req.ModelNo,
		SerialNo:    req.SerialNo,
		Description: req.Description,
		Status:      req.Status,
		Image:       req.Image,
	}
	if instrument.Status == "" {
		instrument.Status = "available"
	}
	if err := s.repo.Save(ctx, instrument); err != nil {
		return nil, workflow.Dependency("创建仪器失败", err)
	}
	return instrument, nil
}

// Update 更新仪器
func (s *instrumentService) Update(ctx context.Context, id uint, req *SaveInstrumentRequest) (*model.Instrument, error) {
	instrument, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	instrument.LabID = req.LabID
	instrument.Name = req.Name
	instrument.ModelNo = req.ModelNo
	instrument.SerialNo = req.SerialNo
	instrument.Description = req.Description
	if req.Status != "" {
		instrument.Status = req.Status
	}
	instrument.Image = req.Image
	if err := s.repo.Save(ctx, instrument); err != nil {
		return nil, workflow.Dependency("更新仪器失败", err)
	}
	return instrument, nil
}

// Get 获取仪器详情
func (s *instrumentService) Get(ctx context.Context, id uint) (*model.Instrument, error) {
	instrument, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("仪器不存在")
		}
		return nil, workflow.Dependency("查询仪器失败", err)
	}
	return instrument, nil
}

// List 分页查询仪器
func (s *instrumentService) List(ctx context.Context, labID uint, name, status string, page, pageSize int) ([]*model.Instrument, int64, error) {
	filter := &repository.InstrumentFilter{}
	if labID > 0 {
		filter.LabID = &labID
	}
	if name != "" {
		filter.Name = &name
	}
	if status != "" {
		filter.Status = &status
	}

	offset, limit := normalizePage(page, pageSize)
	instruments, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, workflow.Dependency("查询仪器列表失败", err)
	}
	return instruments, total, nil
}

// Delete 删除仪器
func (s *instrumentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return workflow.Dependency("删除仪器失败", err)
	}
	return nil
}
