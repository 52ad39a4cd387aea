package container

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sugar258596/experiment-server-sub001/internal/api"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/config"
	"github.com/sugar258596/experiment-server-sub001/internal/database"
	"github.com/sugar258596/experiment-server-sub001/internal/metrics"
	"github.com/sugar258596/experiment-server-sub001/internal/repository"
	"github.com/sugar258596/experiment-server-sub001/internal/service"
	"github.com/sugar258596/experiment-server-sub001/internal/websocket"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/gorm"
)

// Container 应用依赖容器
// 按依赖顺序组装数据库、仓储、引擎和服务
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
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

// New 组装应用依赖
func New(cfg *config.Config) (*Container, error) {
	logger, err := api.NewLoggerFromConfig(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	api.SetDefaultLogger(logger)

	metrics.Register()

	db, err := database.ConnectWithRetry(cfg.Database, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpireSec)*time.Second)

	hub := websocket.NewHub()
	go hub.Run()

	// 仓储层
	userRepo := repository.NewUserRepository(db)
	labRepo := repository.NewLabRepository(db)
	instrumentRepo := repository.NewInstrumentRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	applicationRepo := repository.NewInstrumentApplicationRepository(db)
	repairRepo := repository.NewRepairTicketRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// 审核引擎,通知服务兼任 Notifier
	notifications := service.NewNotificationService(notificationRepo, hub, logger)
	store := repository.NewWorkflowStore(db)
	engine := workflow.NewEngine(store, notifications, logger)

	return &Container{
		Config:        cfg,
		Logger:        logger,
		DB:            db,
		Tokens:        tokens,
		Hub:           hub,
		Users:         service.NewUserService(userRepo, tokens),
		Appointments:  service.NewAppointmentService(engine, appointmentRepo, labRepo),
		Applications:  service.NewInstrumentApplicationService(engine, applicationRepo, instrumentRepo),
		Repairs:       service.NewRepairService(engine, repairRepo, instrumentRepo),
		Notifications: notifications,
		Labs:          service.NewLabService(labRepo),
		Instruments:   service.NewInstrumentService(instrumentRepo, labRepo),
		News:          service.NewNewsService(newsRepo),
		Favorites:     service.NewFavoriteService(favoriteRepo, labRepo, instrumentRepo),
	}, nil
}

// Router 构建 HTTP 路由
func (c *Container) Router() *api.RouterDeps {
	return &api.RouterDeps{
		Config:        c.Config,
		DB:            c.DB,
		Tokens:        c.Tokens,
		Hub:           c.Hub,
		Users:         c.Users,
		Appointments:  c.Appointments,
		Applications:  c.Applications,
		Repairs:       c.Repairs,
		Notifications: c.Notifications,
		Labs:          c.Labs,
		Instruments:   c.Instruments,
		News:          c.News,
		Favorites:     c.Favorites,
	}
}

// Close 释放资源
func (c *Container) Close() {
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
