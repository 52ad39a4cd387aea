package service

import (
	"context"
	"errors"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/repository"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/gorm"
)

// NewsService 新闻公告服务接口
type NewsService interface {
	Create(ctx context.Context, authorID uint, req *SaveNewsRequest) (*model.News, error)
	Update(ctx context.Context, id uint, req *SaveNewsRequest) (*model.News, error)
	Get(ctx context.Context, id uint) (*model.News, error)
	List(ctx context.Context, page, pageSize int) ([]*model.News, int64, error)
	Delete(ctx context.Context, id uint) error
}

// SaveNewsRequest 创建/更新新闻请求
// @Description 新闻公告内容
type SaveNewsRequest struct {
	Title   string `json:"title" binding:"required"` // 标题
	Content string `json:"content"`
	Cover   string `json:"cover"`
}

// newsService 新闻公告服务实现
type newsService struct {
	repo repository.NewsRepository
}

// NewNewsService 创建新闻公告服务
func NewNewsService(repo repository.NewsRepository) NewsService {
	return &newsService{repo: repo}
}

// Create 发布新闻
func (s *newsService) Create(ctx context.Context, authorID uint, req *SaveNewsRequest) (*model.News, error) {
	news := &model.News{
		Title:    req.Title,
		Content:  req.Content,
		Cover:    req.Cover,
		AuthorID: authorID,
	}
	if err := s.repo.Save(ctx, news); err != nil {
		return nil, workflow.Dependency("发布新闻失败", err)
	}
	return news, nil
}

// Update 更新新闻
func (s *newsService) Update(ctx context.Context, id uint, req *SaveNewsRequest) (*model.News, error) {
	news, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	news.Title = req.Title
	news.Content = req.Content
	news.Cover = req.Cover
	if err := s.repo.Save(ctx, news); err != nil {
		return nil, workflow.Dependency("更新新闻失败", err)
	}
	return news, nil
}

// Get 获取新闻详情,同时浏览量加一
func (s *newsService) Get(ctx context.Context, id uint) (*model.News, error) {
	news, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	// 浏览量为辅助数据,更新失败不影响读取
	if err := s.repo.IncrementViews(ctx, id); err == nil {
		news.Views++
	}
	return news, nil
}

// List 分页查询新闻
func (s *newsService) List(ctx context.Context, page, pageSize int) ([]*model.News, int64, error) {
	offset, limit := normalizePage(page, pageSize)
	items, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, workflow.Dependency("查询新闻列表失败", err)
	}
	return items, total, nil
}

// Delete 删除新闻
func (s *newsService) Delete(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return workflow.Dependency("删除新闻失败", err)
	}
	return nil
}

func (s *newsService) find(ctx context.Context, id uint) (*model.News, error) {
	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("新闻不存在")
		}
		return nil, workflow.Dependency("查询新闻失败", err)
	}
	return news, nil
}
