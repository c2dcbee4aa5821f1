package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/config"
)

// 连接池参数，对局记录只在结束时写入一次
const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxIdleTime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

var (
	// DB 全局数据库连接实例
	DB *sql.DB
)

// InitPostgres 按全局配置打开PostgreSQL连接池
func InitPostgres() error {
	cfg := config.GlobalConfig.Database

	pool, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}
	pool.SetMaxOpenConns(maxOpenConns)
	pool.SetMaxIdleConns(maxIdleConns)
	pool.SetConnMaxIdleTime(connMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("数据库Ping失败: %w", err)
	}

	DB = pool
	zap.L().Info("成功连接到PostgreSQL数据库",
		zap.String("host", cfg.Host),
		zap.String("dbname", cfg.DBName))
	return nil
}

// Close 关闭数据库连接
func Close() {
	if DB == nil {
		return
	}
	if err := DB.Close(); err != nil {
		zap.L().Warn("关闭数据库连接时发生错误", zap.Error(err))
	}
	DB = nil
	zap.L().Info("数据库连接已关闭")
}
