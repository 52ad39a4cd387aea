package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/model"
)

// 路由上显式给出各审核入口允许的角色集合
// 角色层级为 STUDENT < TEACHER < ADMIN < SUPER_ADMIN,
// 集合按层级展开写死,高角色天然覆盖低角色能通过的门槛
var (
	// ReviewerRoles 普通审核资源(预约、仪器使用申请)的审核角色
	ReviewerRoles = []model.Role{model.RoleTeacher, model.RoleAdmin, model.RoleSuperAdmin}

	// AdminRoles 仅管理员可操作的资源(报修处理、目录维护)
	AdminRoles = []model.Role{model.RoleAdmin, model.RoleSuperAdmin}

	// AllRoles 任意已认证用户
	AllRoles = []model.Role{model.RoleStudent, model.RoleTeacher, model.RoleAdmin, model.RoleSuperAdmin}
)

// Allowed 判断角色是否在允许集合内
// 纯函数,无状态,可并发调用
func Allowed(role model.Role, allowed ...model.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// RequireRoles 角色校验中间件
// 必须挂在 AuthMiddleware 之后,依赖上下文中的 role
func RequireRoles(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.Role(c.GetString("role"))
		if !Allowed(role, allowed...) {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "当前角色无权访问该接口",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
