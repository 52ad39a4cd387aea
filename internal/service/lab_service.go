package service

import (
	"context"
	"errors"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/repository"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/gorm"
)

// LabService 实验室服务接口
type LabService interface {
	Create(ctx context.Context, req *SaveLabRequest) (*model.Lab, error)
	Update(ctx context.Context, id uint, req *SaveLabRequest) (*model.Lab, error)
	Get(ctx context.Context, id uint) (*model.Lab, error)
	List(ctx context.Context, name, status string, page, pageSize int) ([]*model.Lab, int64, error)
	Delete(ctx context.Context, id uint) error
}

// SaveLabRequest 创建/更新实验室请求
// @Description 实验室信息
type SaveLabRequest struct {
	Name        string `json:"name" binding:"required"` // 实验室名称
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
	OpenTime    string `json:"open_time"`
	Status      string `json:"status"` // open / closed / maintenance
	Cover       string `json:"cover"`
}

// labService 实验室服务实现
type labService struct {
	repo repository.LabRepository
}

// NewLabService 创建实验室服务
func NewLabService(repo repository.LabRepository) LabService {
	return &labService{repo: repo}
}

// Create 创建实验室
func (s *labService) Create(ctx context.Context, req *SaveLabRequest) (*model.Lab, error) {
	lab := &model.Lab{
		Name:        req.Name,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Description: req.Description,
		OpenTime:    req.OpenTime,
		Status:      req.Status,
		Cover:       req.Cover,
	}
	if lab.Status == "" {
		lab.Status = "open"
	}
	if err := s.repo.Save(ctx, lab); err != nil {
		return nil, workflow.Dependency("创建实验室失败", err)
	}
	return lab, nil
}

// Update 更新实验室
func (s *labService) Update(ctx context.Context, id uint, req *SaveLabRequest) (*model.Lab, error) {
	lab, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	lab.Name = req.Name
	lab.Location = req.Location
	lab.Capacity = req.Capacity
	lab.Description = req.Description
	lab.OpenTime = req.OpenTime
	if req.Status != "" {
		lab.Status = req.Status
	}
	lab.Cover = req.Cover
	if err := s.repo.Save(ctx, lab); err != nil {
		return nil, workflow.Dependency("更新实验室失败", err)
	}
	return lab, nil
}

// Get 获取实验室详情
func (s *labService) Get(ctx context.Context, id uint) (*model.Lab, error) {
	lab, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("实验室不存在")
		}
		return nil, workflow.Dependency("查询实验室失败", err)
	}
	return lab, nil
}

// List 分页查询实验室
func (s *labService) List(ctx context.Context, name, status string, page, pageSize int) ([]*model.Lab, int64, error) {
	filter := &repository.LabFilter{}
	if name != "" {
		filter.Name = &name
	}
	if status != "" {
		filter.Status = &status
	}

	offset, limit := normalizePage(page, pageSize)
	labs, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, workflow.Dependency("查询实验室列表失败", err)
	}
	return labs, total, nil
}

// Delete 删除实验室
func (s *labService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return workflow.Dependency("删除实验室失败", err)
	}
	return nil
}
