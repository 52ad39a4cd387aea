package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/sugar258596/experiment-server-sub001/internal/model"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		name    string
		role    model.Role
		allowed []model.Role
		want    bool
	}{
		{"学生不在审核集合", model.RoleStudent, ReviewerRoles, false},
		{"教师可审核", model.RoleTeacher, ReviewerRoles, true},
		{"管理员可审核", model.RoleAdmin, ReviewerRoles, true},
		{"超级管理员可审核", model.RoleSuperAdmin, ReviewerRoles, true},
		{"教师不能处理工单", model.RoleTeacher, AdminRoles, false},
		{"管理员可处理工单", model.RoleAdmin, AdminRoles, true},
		{"任意角色在全集内", model.RoleStudent, AllRoles, true},
		{"空角色一律拒绝", model.Role(""), AllRoles, false},
		{"未知角色一律拒绝", model.Role("GUEST"), ReviewerRoles, false},
		{"空集合一律拒绝", model.RoleSuperAdmin, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Allowed(tc.role, tc.allowed...))
		})
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin-only", func(c *gin.Context) {
		c.Set("role", c.GetHeader("X-Test-Role"))
		c.Next()
	}, RequireRoles(AdminRoles...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		role string
		want int
	}{
		{"ADMIN", http.StatusOK},
		{"SUPER_ADMIN", http.StatusOK},
		{"TEACHER", http.StatusForbidden},
		{"STUDENT", http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("X-Test-Role", tc.role)
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "role %q", tc.role)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", "experiment-server", 0)

	user := &model.User{ID: 7, Username: "alice", Role: model.RoleTeacher}
	token, err := m.IssueToken(user)
	assert.NoError(t, err)

	claims, err := m.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.RoleTeacher, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", "experiment-server", 0)
	verifier := NewTokenManager("secret-b", "experiment-server", 0)

	token, err := issuer.IssueToken(&model.User{ID: 1, Username: "bob", Role: model.RoleStudent})
	assert.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongIssuer(t *testing.T) {
	issuer := NewTokenManager("secret", "other-service", 0)
	verifier := NewTokenManager("secret", "experiment-server", 0)

	token, err := issuer.IssueToken(&model.User{ID: 1, Username: "bob", Role: model.RoleStudent})
	assert.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}
