package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
)

// UserController 用户控制器
type UserController struct {
	userService service.UserService
}

// NewUserController 创建用户控制器
func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// Register 注册
// @Summary      用户注册
// @Description  注册新用户,默认为学生角色
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body service.RegisterRequest true "注册信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	user, err := c.userService.Register(ctx.Request.Context(), &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, user)
}

// Login 登录
// @Summary      用户登录
// @Description  校验用户名密码,返回 JWT token
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body service.LoginRequest true "登录信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /users/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	token, user, err := c.userService.Login(ctx.Request.Context(), &req)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Profile 当前用户信息
// @Summary      获取当前用户信息
// @Tags         用户
// @Produce      json
// @Success      200  {object}  Response
// @Failure      401  {object}  ErrorResponse
// @Router       /users/profile [get]
// @Security     BearerAuth
func (c *UserController) Profile(ctx *gin.Context) {
	caller := auth.CallerFromContext(ctx)
	user, err := c.userService.Profile(ctx.Request.Context(), caller.UserID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	Success(ctx, user)
}
