package service

import (
	"context"
	"errors"

	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/repository"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 用户服务接口
type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *LoginRequest) (string, *model.User, error)
	Profile(ctx context.Context, userID uint) (*model.User, error)
}

// RegisterRequest 注册请求
// @Description 用户注册的请求参数,注册用户默认为学生角色
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // 登录名
	Password string `json:"password" binding:"required,min=6"` // 密码
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// LoginRequest 登录请求
// @Description 用户登录的请求参数
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// userService 用户服务实现
type userService struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager) UserService {
	return &userService{
		repo:   repo,
		tokens: tokens,
	}
}

// Register 注册用户
// 注册入口只产生学生角色,教师和管理员由超级管理员在后台指定
func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, workflow.Conflict("用户名已存在")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, workflow.Dependency("查询用户失败", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, workflow.Dependency("密码加密失败", err)
	}

	user := &model.User{
		Username: req.Username,
		Password: string(hashed),
		Nickname: req.Nickname,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     model.RoleStudent,
	}
	if err := user.Validate(); err != nil {
		return nil, workflow.Invalid(err.Error())
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, workflow.Dependency("创建用户失败", err)
	}
	return user, nil
}

// Login 登录,成功返回 token 和用户信息
func (s *userService) Login(ctx context.Context, req *LoginRequest) (string, *model.User, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, workflow.Invalid("用户名或密码错误")
		}
		return "", nil, workflow.Dependency("查询用户失败", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, workflow.Invalid("用户名或密码错误")
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return "", nil, workflow.Dependency("签发 token 失败", err)
	}
	return token, user, nil
}

// Profile 获取用户信息
func (s *userService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NotFound("用户不存在")
		}
		return nil, workflow.Dependency("查询用户失败", err)
	}
	return user, nil
}
