// db_manager.go

package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/config"
	"github.com/jacl-coder/PixelStorm-Survival/pkg/db"
	"github.com/jacl-coder/PixelStorm-Survival/pkg/logger"
)

func main() {
	// 解析命令行参数
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	action := flag.String("action", "help", "操作类型: reset, init, help")
	flag.Parse()

	// 显示帮助信息
	if *action == "help" {
		showHelp()
		return
	}

	// 加载配置
	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(config.GlobalConfig.Server.LogLevel, true)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	// 初始化数据库连接
	if err := db.InitPostgres(); err != nil {
		zlog.Fatal("初始化PostgreSQL失败", zap.Error(err))
	}
	defer db.Close()

	// 执行操作
	switch *action {
	case "reset":
		resetDatabase(zlog)
	case "init":
		initDatabase(zlog)
	default:
		zlog.Fatal("未知操作", zap.String("action", *action))
	}
}

// showHelp 显示帮助信息
func showHelp() {
	log.Println("PixelStorm Survival 数据库管理工具")
	log.Println("")
	log.Println("用法:")
	log.Println("  go run scripts/db_manager.go -action=<操作> [-config=<配置文件>]")
	log.Println("")
	log.Println("操作:")
	log.Println("  reset  - 重置数据库（删除所有表和数据）")
	log.Println("  init   - 初始化数据库（创建表结构）")
	log.Println("  help   - 显示此帮助信息")
}

// resetDatabase 重置数据库
func resetDatabase(zlog *zap.Logger) {
	zlog.Warn("正在重置数据库，这将删除所有对局记录")

	if err := db.DropAllTables(); err != nil {
		zlog.Fatal("重置数据库失败", zap.Error(err))
	}

	zlog.Info("数据库重置完成")
}

// initDatabase 初始化数据库
func initDatabase(zlog *zap.Logger) {
	zlog.Info("正在初始化数据库")

	if err := db.InitAllTables(); err != nil {
		zlog.Fatal("初始化数据库表失败", zap.Error(err))
	}

	zlog.Info("数据库初始化完成", zap.Strings("tables", []string{"run_records", "run_bests(视图)"}))
}
