/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/sugar258596/experiment-server-sub001/internal/api"
	"github.com/sugar258596/experiment-server-sub001/internal/config"
	"github.com/sugar258596/experiment-server-sub001/internal/container"
	"github.com/sugar258596/experiment-server-sub001/internal/metrics"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the Experiment Server API server.
The server will listen on the configured host and port,
and provide REST API interfaces for lab reservations,
instrument applications and repair tickets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. 初始化链路追踪
		if cfg.Tracing.Enabled {
			if err := api.InitTracing(cfg.Tracing.ServiceName, cfg.Tracing.JaegerURL); err != nil {
				return fmt.Errorf("failed to init tracing: %w", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = api.ShutdownTracing(ctx)
			}()
		}

		// 3. 组装依赖
		ctr, err := container.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		// 4. 配置热更新,仅对日志级别生效
		if configPath != "" {
			watcher := config.NewWatcher(configPath)
			watcher.Subscribe(func(newCfg *config.Config) {
				if logger, err := api.NewLoggerFromConfig(&newCfg.Log); err == nil {
					ctr.Logger.SetLevel(logger.GetLevel())
					api.SetLoggerLevel(logger.GetLevel())
				}
			})
			if err := watcher.Start(); err != nil {
				ctr.Logger.WithError(err).Warn("配置热更新未启用")
			}
			defer watcher.Stop()
		}

		// 5. 周期刷新连接池与状态分布指标
		metricsStop := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-metricsStop:
					return
				case <-ticker.C:
					metrics.UpdateDatabaseMetrics(ctr.DB)
					metrics.RefreshWorkflowRecords(ctr.DB)
				}
			}
		}()
		defer close(metricsStop)

		// 6. 设置路由
		router := api.SetupRoutes(ctr.Router())
		router.NoRoute(func(c *gin.Context) {
			api.Error(c, http.StatusNotFound, "route not found", "the requested route does not exist")
		})

		// 7. 启动服务器
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			log.Printf("Server starting on %s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}

		log.Println("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// 服务器配置标志
	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}
