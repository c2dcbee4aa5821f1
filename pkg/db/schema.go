// schema.go

package db

// CreateAllTablesSQL 创建所有表的SQL语句
const CreateAllTablesSQL = `
-- 单局记录表
CREATE TABLE IF NOT EXISTS run_records (
    id VARCHAR(50) PRIMARY KEY,
    player_id VARCHAR(50) NOT NULL,
    started_at TIMESTAMP WITH TIME ZONE NOT NULL,
    ended_at TIMESTAMP WITH TIME ZONE NOT NULL,
    survived DOUBLE PRECISION DEFAULT 0, -- 模拟时间(秒)
    frames BIGINT DEFAULT 0,
    currency INT DEFAULT 0,
    kills INT DEFAULT 0,
    wave INT DEFAULT 0
);

-- 玩家最佳成绩视图
CREATE OR REPLACE VIEW run_bests AS
SELECT
    player_id,
    COUNT(*) AS total_runs,
    MAX(currency) AS best_currency,
    MAX(kills) AS best_kills,
    MAX(survived) AS best_survived,
    SUM(kills) AS total_kills
FROM
    run_records
GROUP BY
    player_id;

-- 创建索引以提高查询性能
CREATE INDEX IF NOT EXISTS idx_run_records_player_id ON run_records(player_id);
CREATE INDEX IF NOT EXISTS idx_run_records_ended_at ON run_records(ended_at);
`

// DropAllTablesSQL 删除所有表和视图
const DropAllTablesSQL = `
DROP VIEW IF EXISTS run_bests CASCADE;
DROP TABLE IF EXISTS run_records CASCADE;
`

// InitAllTables 初始化所有数据库表
func InitAllTables() error {
	_, err := DB.Exec(CreateAllTablesSQL)
	if err != nil {
		return err
	}
	return nil
}

// DropAllTables 删除所有数据库表
func DropAllTables() error {
	_, err := DB.Exec(DropAllTablesSQL)
	return err
}
