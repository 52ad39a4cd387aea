package service

import (
	"context"
	"errors"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/repository"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/gorm"
)

// FavoriteService 收藏服务接口
type FavoriteService interface {
	Add(ctx context.Context, userID uint, req *AddFavoriteRequest) (*model.Favorite, error)
	Remove(ctx context.Context, userID, id uint) error
	My(ctx context.Context, userID uint, page, pageSize int) ([]*model.Favorite, int64, error)
}

// AddFavoriteRequest 添加收藏请求
// @Description 收藏实验室或仪器的请求参数
type AddFavoriteRequest struct {
	TargetType string `json:"target_type" binding:"required"` // lab / instrument
	TargetID   uint   `json:"target_id" binding:"required"`   // 目标 ID
}

// favoriteService 收藏服务实现
type favoriteService struct {
	repo           repository.FavoriteRepository
	labRepo        repository.LabRepository
	instrumentRepo repository.InstrumentRepository
}

// NewFavoriteService 创建收藏服务
func NewFavoriteService(repo repository.FavoriteRepository, labRepo repository.LabRepository, instrumentRepo repository.InstrumentRepository) FavoriteService {
	return &favoriteService{
		repo:           repo,
		labRepo:        labRepo,
		instrumentRepo: instrumentRepo,
	}
}

// Add 添加收藏,同一用户对同一目标只能收藏一次
func (s *favoriteService) Add(ctx context.Context, userID uint, req *AddFavoriteRequest) (*model.Favorite, error) {
	if err := s.checkTarget(ctx, req.TargetType, req.TargetID); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByTarget(ctx, userID, req.TargetType, req.TargetID); err == nil {
		return nil, workflow.Conflict("已收藏过该目标")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, workflow.Dependency("查询收藏失败", err)
	}

	favorite := &model.Favorite{
		UserID:     userID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
	}
	if err := s.repo.Create(ctx, favorite); err != nil {
		return nil, workflow.Dependency("添加收藏失败", err)
	}
	return favorite, nil
}

// Remove 取消收藏,只能操作自己的收藏
func (s *favoriteService) Remove(ctx context.Context, userID, id uint) error {
	favorite, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.NotFound("收藏不存在")
		}
		return workflow.Dependency("查询收藏失败", err)
	}
	if favorite.UserID != userID {
		return workflow.Forbidden("只能取消自己的收藏")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return workflow.Dependency("取消收藏失败", err)
	}
	return nil
}

// My 分页查询我的收藏
func (s *favoriteService) My(ctx context.Context, userID uint, page, pageSize int) ([]*model.Favorite, int64, error) {
	offset, limit := normalizePage(page, pageSize)
	items, total, err := s.repo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, workflow.Dependency("查询收藏列表失败", err)
	}
	return items, total, nil
}

// checkTarget 校验收藏目标存在
func (s *favoriteService) checkTarget(ctx context.Context, targetType string, targetID uint) error {
	var err error
	switch targetType {
	case model.FavoriteTargetLab:
		_, err = s.labRepo.FindByID(ctx, targetID)
	case model.FavoriteTargetInstrument:
		_, err = s.instrumentRepo.FindByID(ctx, targetID)
	default:
		return workflow.Invalid("不支持的收藏类型: " + targetType)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.NotFound("收藏目标不存在")
		}
		return workflow.Dependency("查询收藏目标失败", err)
	}
	return nil
}
