package models

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLeaderboard Redis排行榜管理器，记录每个玩家的最佳单局成绩
type RedisLeaderboard struct {
	client *redis.Client
}

// NewRedisLeaderboard 创建Redis排行榜管理器
func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{client: client}
}

// 排行榜Redis键名
const (
	LeaderboardCurrencyKey = "leaderboard:currency"
	LeaderboardKillsKey    = "leaderboard:kills"
	LeaderboardSurvivalKey = "leaderboard:survival"

	// 最近一局结果键前缀
	LastRunPrefix = "run:last:"

	// 最近一局缓存时间
	LastRunTTL = 24 * time.Hour
)

// SubmitRun 提交一局结果，只在超过历史最佳时更新
func (rl *RedisLeaderboard) SubmitRun(ctx context.Context, rec *RunRecord) error {
	scores := map[LeaderboardType]float64{
		LeaderboardCurrency: float64(rec.Currency),
		LeaderboardKills:    float64(rec.Kills),
		LeaderboardSurvival: rec.Survived,
	}

	pipe := rl.client.TxPipeline()
	for scoreType, score := range scores {
		pipe.ZAddArgs(ctx, rl.getLeaderboardKey(scoreType), redis.ZAddArgs{
			GT:      true,
			Members: []redis.Z{{Score: score, Member: rec.PlayerID}},
		})
	}
	pipe.Set(ctx, LastRunPrefix+rec.PlayerID, rec.ID, LastRunTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("写入排行榜失败: %w", err)
	}
	return nil
}

// GetLeaderboard 获取排行榜
func (rl *RedisLeaderboard) GetLeaderboard(ctx context.Context, scoreType LeaderboardType, limit int) ([]LeaderboardEntry, error) {
	key := rl.getLeaderboardKey(scoreType)

	// 按分数降序
	members, err := rl.client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(members))
	for i, member := range members {
		playerID, ok := member.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			PlayerID: playerID,
			Score:    member.Score,
			Rank:     i + 1,
		})
	}

	return entries, nil
}

// GetPlayerRank 获取玩家排名
func (rl *RedisLeaderboard) GetPlayerRank(ctx context.Context, playerID string, scoreType LeaderboardType) (int, error) {
	key := rl.getLeaderboardKey(scoreType)

	rank, err := rl.client.ZRevRank(ctx, key, playerID).Result()
	if err != nil {
		if err == redis.Nil {
			return -1, nil // 玩家不在排行榜中
		}
		return -1, err
	}

	return int(rank) + 1, nil // Redis排名从0开始
}

// getLeaderboardKey 获取排行榜键名
func (rl *RedisLeaderboard) getLeaderboardKey(scoreType LeaderboardType) string {
	switch scoreType {
	case LeaderboardKills:
		return LeaderboardKillsKey
	case LeaderboardSurvival:
		return LeaderboardSurvivalKey
	default:
		return LeaderboardCurrencyKey
	}
}
