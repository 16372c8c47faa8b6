package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sketchui-backend/internal/config"
	"sketchui-backend/internal/figma"
	"sketchui-backend/internal/handler"
	"sketchui-backend/internal/metrics"
	"sketchui-backend/internal/provider"
	"sketchui-backend/internal/service"
	"sketchui-backend/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	metrics.Register()

	if !cfg.FigmaConfigured() {
		logger.Warnf("Figma API Key 或文件 ID 未设置，useStyleTokens 请求将使用基础提示词")
	}

	// 初始化服务
	gateway := provider.NewGateway(cfg)
	figmaClient := figma.NewClient(cfg.Figma)
	generateService := service.NewGenerateService(gateway, figmaClient, cfg.Figma)

	// 初始化处理器
	uploadHandler := handler.NewUploadHandler(generateService, cfg.Server.MaxUploadBytes)

	router := setupRouter(cfg, uploadHandler)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Infof("服务器启动在端口 %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待信号优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务器正在关闭...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("服务器关闭失败: %v", err)
	}
	logger.Info("服务器已关闭")
}

func setupRouter(cfg *config.Config, uploadHandler *handler.UploadHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// 中间件
	router.Use(handler.RequestID())
	router.Use(handler.RequestLogger())
	router.Use(handler.Recovery())

	// CORS配置
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/upload", uploadHandler.Upload)
	}

	return router
}
