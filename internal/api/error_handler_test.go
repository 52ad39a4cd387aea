package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		kind workflow.ErrorKind
		want int
	}{
		{workflow.ErrValidation, http.StatusBadRequest},
		{workflow.ErrForbidden, http.StatusForbidden},
		{workflow.ErrNotFound, http.StatusNotFound},
		{workflow.ErrConflict, http.StatusConflict},
		{workflow.ErrDependency, http.StatusServiceUnavailable},
		{workflow.ErrorKind(0), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusOf(tc.kind))
	}
}

func performHandleError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandleError(c, err)
	return w
}

func TestHandleErrorMapsWorkflowErrors(t *testing.T) {
	w := performHandleError(workflow.Conflict("预约已被其他审核人处理"))
	assert.Equal(t, http.StatusConflict, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Equal(t, "预约已被其他审核人处理", body.Message)
}

func TestHandleErrorUnknownErrorIs500(t *testing.T) {
	w := performHandleError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
	assert.Equal(t, "boom", body.Detail)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPage)

	// 非法参数回落默认值
	p = NewPagination(0, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 0, p.TotalPage)
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/items/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		Success(c, id)
	})

	cases := []struct {
		path string
		want int
	}{
		{"/items/7", http.StatusOK},
		{"/items/0", http.StatusBadRequest},
		{"/items/abc", http.StatusBadRequest},
		{"/items/-1", http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.want, w.Code, "path %s", tc.path)
	}
}
