package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/config"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
	"github.com/sugar258596/experiment-server-sub001/internal/websocket"
	"gorm.io/gorm"
)

// RouterDeps 路由依赖
type RouterDeps struct {
	Config *config.Config
	DB     *gorm.DB
	Tokens *auth.TokenManager
	Hub    *websocket.Hub

	Users         service.UserService
	Appointments  service.AppointmentService
	Applications  service.InstrumentApplicationService
	Repairs       service.RepairService
	Notifications service.NotificationService
	Labs          service.LabService
	Instruments   service.InstrumentService
	News          service.NewsService
	Favorites     service.FavoriteService
}

// SetupRoutes 配置路由
func SetupRoutes(deps *RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	if deps.Config != nil {
		router.Use(CORSMiddleware(deps.Config.CORS.AllowedOrigins))
		if deps.Config.Rate.Enabled {
			router.Use(RateLimitMiddleware(deps.Config.Rate))
		}
		if deps.Config.Tracing.Enabled {
			router.Use(TracingMiddleware(deps.Config.Tracing.ServiceName))
		}
	}

	// 健康检查
	healthController := NewHealthController(deps.DB, deps.Hub)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	authRequired := auth.AuthMiddleware(deps.Tokens)

	// WebSocket 通知推送
	if deps.Hub != nil {
		router.GET("/ws/notifications", authRequired, websocket.NotificationHandler(deps.Hub))
	}

	userController := NewUserController(deps.Users)
	appointmentController := NewAppointmentController(deps.Appointments)
	applicationController := NewInstrumentApplicationController(deps.Applications)
	repairController := NewRepairController(deps.Repairs)
	notificationController := NewNotificationController(deps.Notifications)
	labController := NewLabController(deps.Labs)
	instrumentController := NewInstrumentController(deps.Instruments)
	newsController := NewNewsController(deps.News)
	favoriteController := NewFavoriteController(deps.Favorites)

	// API v1 路由组
	v1 := router.Group("/api/v1")
	{
		// 用户
		users := v1.Group("/users")
		{
			users.POST("/register", userController.Register)
			users.POST("/login", userController.Login)
			users.GET("/profile", authRequired, userController.Profile)
		}

		// 实验室预约
		appointments := v1.Group("/appointments", authRequired)
		{
			appointments.POST("", appointmentController.Submit)
			appointments.GET("/my", appointmentController.My)
			appointments.GET("/pending", auth.RequireRoles(auth.ReviewerRoles...), appointmentController.Pending)
			appointments.GET("/:id", appointmentController.Get)
			appointments.PUT("/review/:id", appointmentController.Review)
			appointments.PATCH("/cancel/:id", appointmentController.Cancel)
		}

		// 仪器使用申请
		applications := v1.Group("/usage-applications", authRequired)
		{
			applications.POST("", applicationController.Submit)
			applications.GET("/my", applicationController.My)
			applications.GET("/pending", auth.RequireRoles(auth.ReviewerRoles...), applicationController.Pending)
			applications.GET("/:id", applicationController.Get)
			applications.PUT("/review/:id", applicationController.Review)
			applications.PATCH("/cancel/:id", applicationController.Cancel)
		}

		// 报修工单
		repairs := v1.Group("/repairs", authRequired)
		{
			repairs.POST("", repairController.Submit)
			repairs.GET("/my", repairController.My)
			repairs.GET("/pending", auth.RequireRoles(auth.AdminRoles...), repairController.Pending)
			repairs.GET("/:id", repairController.Get)
			repairs.PUT("/review/:id", repairController.Review)
			repairs.PATCH("/progress/:id", repairController.Begin)
			repairs.PATCH("/cancel/:id", repairController.Cancel)
		}

		// 通知中心
		notifications := v1.Group("/notifications", authRequired)
		{
			notifications.GET("", notificationController.List)
			notifications.GET("/unread-count", notificationController.UnreadCount)
			notifications.PATCH("/read/:id", notificationController.MarkRead)
			notifications.PATCH("/read-all", notificationController.MarkAllRead)
			notifications.DELETE("/:id", notificationController.Remove)
		}

		// 实验室目录,读公开,写仅管理员
		labs := v1.Group("/labs")
		{
			labs.GET("", labController.List)
			labs.GET("/:id", labController.Get)
			labs.POST("", authRequired, auth.RequireRoles(auth.AdminRoles...), labController.Create)
			labs.PUT("/:id", authRequired, auth.RequireRoles(auth.AdminRoles...), labController.Update)
			labs.DELETE("/:id", authRequired, auth.RequireRoles(auth.AdminRoles...), labController.Delete)
		}

		// 仪器目录,读公开,写仅管理员
		instruments := v1.Group("/instruments")
		{
			instruments.GET("", instrumentController.List)
			instruments.GET("/:id", instrumentController.Get)
			instruments.POST("", authRequired, auth.RequireRoles(auth.AdminRoles...), instrumentController.Create)
			instruments.PUT("/:id", authRequired, auth.RequireRoles(auth.AdminRoles...), instrumentController.Update)
			instruments.DELETE("/:id", authRequired, auth.RequireRoles(auth.AdminRoles...), instrumentController.Delete)
		}

		// 新闻公告,读公开,写仅管理员
		news := v1.Group("/news")
		{
			news.GET("", newsController.List)
			news.GET("/:id", newsController.Get)
			news.POST("", authRequired, auth.RequireRoles(auth.AdminRoles...), newsController.Create)
			news.PUT("/:id", authRequired, auth.RequireRoles(auth.AdminRoles...), newsController.Update)
			news.DELETE("/:id", authRequired, auth.RequireRoles(auth.AdminRoles...), newsController.Delete)
		}

		// 收藏
		favorites := v1.Group("/favorites", authRequired)
		{
			favorites.POST("", favoriteController.Add)
			favorites.GET("/my", favoriteController.My)
			favorites.DELETE("/:id", favoriteController.Remove)
		}
	}

	return router
}
