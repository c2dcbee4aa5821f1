// main.go

package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/config"
	"github.com/jacl-coder/PixelStorm-Survival/internal/data"
	"github.com/jacl-coder/PixelStorm-Survival/internal/game"
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
	"github.com/jacl-coder/PixelStorm-Survival/pkg/db"
	"github.com/jacl-coder/PixelStorm-Survival/pkg/logger"
)

func main() {
	// 解析命令行参数
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	cfg := &config.GlobalConfig

	zlog, err := logger.New(cfg.Server.LogLevel, cfg.Server.Debug)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	// 加载战斗数值
	tuning := data.Default()
	if cfg.Combat.TuningFile != "" {
		if tuning, err = data.Load(cfg.Combat.TuningFile); err != nil {
			zlog.Fatal("加载战斗数值失败", zap.String("file", cfg.Combat.TuningFile), zap.Error(err))
		}
	}

	archive := &models.RunArchive{}
	backends := game.Backends{Recorder: archive}

	// 初始化数据库连接
	if cfg.Database.Enabled {
		if err := db.InitPostgres(); err != nil {
			zlog.Fatal("初始化PostgreSQL失败", zap.Error(err))
		}
		defer db.Close()

		if err := db.InitAllTables(); err != nil {
			zlog.Fatal("初始化数据表失败", zap.Error(err))
		}
		archive.DB = db.DB
		backends.History = archive
	}

	// 初始化Redis连接
	if cfg.Redis.Enabled {
		if err := db.InitRedis(); err != nil {
			zlog.Fatal("初始化Redis失败", zap.Error(err))
		}
		defer db.CloseRedis()

		archive.Board = models.NewRedisLeaderboard(db.RedisClient)
		backends.Board = archive.Board
	}

	server, err := game.NewGameServer(cfg, tuning, zlog, backends)
	if err != nil {
		zlog.Fatal("创建游戏服务器失败", zap.Error(err))
	}
	if err := server.Start(); err != nil {
		zlog.Fatal("启动游戏服务器失败", zap.Error(err))
	}

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zlog.Info("接收到关闭信号，正在关闭服务器...")
	if err := server.Stop(); err != nil {
		zlog.Error("关闭服务器失败", zap.Error(err))
	}
	zlog.Info("服务器已安全关闭")
}
