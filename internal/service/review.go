package service

import (
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
)

// ReviewRequest 审核请求
// @Description 审核通过或驳回的请求参数
type ReviewRequest struct {
	Status       string `json:"status" binding:"required"` // approved / rejected(报修工单可用 resolved)
	RejectReason string `json:"reject_reason"`             // 驳回原因,驳回时必填
}

// parseDecision 把请求中的目标状态解析为审核决定
// 驳回原因是否为空由引擎校验,这里只识别动作
func parseDecision(req *ReviewRequest) (workflow.Decision, error) {
	switch workflow.Status(req.Status) {
	case workflow.StatusApproved, workflow.StatusResolved:
		return workflow.Decision{Approve: true}, nil
	case workflow.StatusRejected:
		return workflow.Decision{Approve: false, Reason: req.RejectReason}, nil
	}
	return workflow.Decision{}, workflow.Invalid("status 只能为 approved、resolved 或 rejected")
}

// normalizePage 规范化分页参数,返回 offset 和 limit
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return (page - 1) * pageSize, pageSize
}
