package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/config"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/api/handler"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/api/router"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/catalog"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/parser"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/repository"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/service"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/database"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/jwt"
	applogger "github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/logger"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/redis"
)

func main() {
	// 1. 加载 .env（不存在时忽略）
	_ = godotenv.Load()

	// 2. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 3. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 4. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 4.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 5. 连接 Redis（可选：连接失败时降级运行，评估缓存仅走本地）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，评估缓存降级为仅本地缓存", zap.Error(err))
		rdb = nil
	}

	// 6. 初始化 JWT 验证器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 7. 加载内置课程目录（课程、先修、等效、开课、培养方案模板）
	cat, err := catalog.Load(logger)
	if err != nil {
		logger.Fatal("课程目录加载失败", zap.Error(err))
	}

	// 8. 外部成绩单解析服务客户端
	parserClient := parser.NewClient(&cfg.Parser, logger)

	// 9. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, cat, parserClient, rdb, logger)
	h := handler.NewHandler(svc)

	// 10. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 11. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 12. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
