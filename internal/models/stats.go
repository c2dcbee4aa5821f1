// stats.go

package models

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunRecord 单局记录
type RunRecord struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Survived  float64   `json:"survived"` // 模拟时间(秒)
	Frames    int64     `json:"frames"`
	Currency  int       `json:"currency"`
	Kills     int       `json:"kills"`
	Wave      int       `json:"wave"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	PlayerID string  `json:"player_id"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank"` // 排名
}

// LeaderboardType 排行榜类型
type LeaderboardType string

const (
	// LeaderboardCurrency 单局金币排行榜
	LeaderboardCurrency LeaderboardType = "currency"
	// LeaderboardKills 单局击杀排行榜
	LeaderboardKills LeaderboardType = "kills"
	// LeaderboardSurvival 生存时间排行榜
	LeaderboardSurvival LeaderboardType = "survival"
)

// RunArchive 对局归档: PostgreSQL记录 + Redis排行榜，任一为空则跳过
type RunArchive struct {
	DB    *sql.DB
	Board *RedisLeaderboard
}

// RecordRun 保存一局结果
func (a *RunArchive) RecordRun(ctx context.Context, rec *RunRecord) error {
	if a.DB != nil {
		if err := SaveRunRecord(ctx, a.DB, rec); err != nil {
			return err
		}
	}
	if a.Board != nil {
		if err := a.Board.SubmitRun(ctx, rec); err != nil {
			return fmt.Errorf("更新排行榜失败: %w", err)
		}
	}
	return nil
}

// RecentRuns 查询玩家最近的对局，未启用数据库时返回错误
func (a *RunArchive) RecentRuns(ctx context.Context, playerID string, limit int) ([]RunRecord, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("未启用数据库")
	}
	return RecentRuns(ctx, a.DB, playerID, limit)
}

// SaveRunRecord 写入对局记录
func SaveRunRecord(ctx context.Context, db *sql.DB, rec *RunRecord) error {
	query := `
		INSERT INTO run_records (id, player_id, started_at, ended_at, survived, frames, currency, kills, wave)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := db.ExecContext(ctx, query,
		rec.ID, rec.PlayerID, rec.StartedAt, rec.EndedAt,
		rec.Survived, rec.Frames, rec.Currency, rec.Kills, rec.Wave,
	)
	if err != nil {
		return fmt.Errorf("保存对局记录失败: %w", err)
	}
	return nil
}

// RecentRuns 查询玩家最近的对局
func RecentRuns(ctx context.Context, db *sql.DB, playerID string, limit int) ([]RunRecord, error) {
	query := `
		SELECT id, player_id, started_at, ended_at, survived, frames, currency, kills, wave
		FROM run_records
		WHERE player_id = $1
		ORDER BY ended_at DESC
		LIMIT $2
	`
	rows, err := db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("查询对局记录失败: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.ID, &r.PlayerID, &r.StartedAt, &r.EndedAt,
			&r.Survived, &r.Frames, &r.Currency, &r.Kills, &r.Wave,
		); err != nil {
			return nil, fmt.Errorf("解析对局记录失败: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
