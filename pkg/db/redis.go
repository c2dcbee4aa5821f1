package db

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/config"
)

// 排行榜写入在对局结束时进行，超时要短于对局归档的超时
const redisOpTimeout = 2 * time.Second

var (
	// RedisClient 全局Redis客户端实例
	RedisClient *redis.Client
)

// RedisOptions 根据配置生成客户端参数
func RedisOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  pingTimeout,
		ReadTimeout:  redisOpTimeout,
		WriteTimeout: redisOpTimeout,
	}
}

// InitRedis 按全局配置连接Redis
func InitRedis() error {
	cfg := config.GlobalConfig.Redis
	client := redis.NewClient(RedisOptions(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("Redis连接失败: %w", err)
	}

	RedisClient = client
	zap.L().Info("成功连接到Redis服务器", zap.String("addr", cfg.GetRedisAddr()), zap.Int("db", cfg.DB))
	return nil
}

// CloseRedis 关闭Redis连接
func CloseRedis() {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Close(); err != nil {
		zap.L().Warn("关闭Redis连接时发生错误", zap.Error(err))
	}
	RedisClient = nil
	zap.L().Info("Redis连接已关闭")
}
