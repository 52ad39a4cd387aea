package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 审核申请提交数
	workflowSubmitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_submits_total",
			Help: "Total number of workflow records submitted",
		},
		[]string{"resource"},
	)

	// 审核流转操作数
	workflowReviewsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_reviews_total",
			Help: "Total number of workflow review operations",
		},
		[]string{"resource", "action"}, // approve, reject, cancel, advance
	)

	// 通知发送数
	notificationsEmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_emitted_total",
			Help: "Total number of notifications emitted",
		},
		[]string{"type"},
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// 各状态审核记录数
	workflowRecordsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "workflow_records_by_status",
			Help: "Number of workflow records by resource and status",
		},
		[]string{"resource", "status"},
	)
)

var registerOnce sync.Once

// Register 注册所有指标
// 重复调用安全,便于测试
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			apiRequestsTotal,
			apiRequestDuration,
			workflowSubmitsTotal,
			workflowReviewsTotal,
			notificationsEmittedTotal,
			databaseConnectionsActive,
			databaseConnectionsIdle,
			workflowRecordsByStatus,
		)
	})
}

// Handler 返回 Prometheus 指标处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest 记录一次 API 请求
func RecordAPIRequest(method, path string, status int, seconds float64) {
	apiRequestsTotal.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordWorkflowSubmit 记录一次申请提交
func RecordWorkflowSubmit(resource string) {
	workflowSubmitsTotal.WithLabelValues(resource).Inc()
}

// RecordWorkflowReview 记录一次审核流转操作
func RecordWorkflowReview(resource, action string) {
	workflowReviewsTotal.WithLabelValues(resource, action).Inc()
}

// RecordNotificationEmitted 记录一次通知发送
func RecordNotificationEmitted(notificationType string) {
	notificationsEmittedTotal.WithLabelValues(notificationType).Inc()
}

// SetWorkflowRecordsByStatus 更新状态分布指标
func SetWorkflowRecordsByStatus(resource, status string, count float64) {
	workflowRecordsByStatus.WithLabelValues(resource, status).Set(count)
}

// UpdateDatabaseMetrics 更新数据库连接池指标
func UpdateDatabaseMetrics(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.InUse))
	databaseConnectionsIdle.Set(float64(stats.Idle))
}

// RefreshWorkflowRecords 刷新三类审核资源的状态分布指标
func RefreshWorkflowRecords(db *gorm.DB) {
	if db == nil {
		return
	}

	tables := map[string]string{
		"appointment":            "appointments",
		"instrument_application": "instrument_applications",
		"repair_ticket":          "repair_tickets",
	}
	type statusCount struct {
		Status string
		Count  float64
	}
	for resource, table := range tables {
		var rows []statusCount
		err := db.Table(table).
			Select("status, count(*) as count").
			Where("deleted_at IS NULL").
			Group("status").
			Scan(&rows).Error
		if err != nil {
			continue
		}
		for _, row := range rows {
			SetWorkflowRecordsByStatus(resource, row.Status, row.Count)
		}
	}
}
