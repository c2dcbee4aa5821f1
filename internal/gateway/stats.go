// stats.go

package gateway

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// LeaderboardReader 排行榜查询
type LeaderboardReader interface {
	GetLeaderboard(ctx context.Context, scoreType models.LeaderboardType, limit int) ([]models.LeaderboardEntry, error)
	GetPlayerRank(ctx context.Context, playerID string, scoreType models.LeaderboardType) (int, error)
}

// RunHistory 对局记录查询
type RunHistory interface {
	RecentRuns(ctx context.Context, playerID string, limit int) ([]models.RunRecord, error)
}

// StatsHandler 战绩处理器，任一数据源为空时对应接口返回503
type StatsHandler struct {
	board   LeaderboardReader
	history RunHistory
	log     *zap.Logger
}

// NewStatsHandler 创建战绩处理器
func NewStatsHandler(board LeaderboardReader, history RunHistory, log *zap.Logger) *StatsHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatsHandler{board: board, history: history, log: log}
}

// RegisterHandlers 注册HTTP处理器
func (h *StatsHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("/leaderboard/rank/", h.handleRank)
	mux.HandleFunc("/runs/", h.handleRuns)
}

// StatsResponse 战绩响应
type StatsResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RankData 玩家排名，-1表示未上榜
type RankData struct {
	PlayerID string                 `json:"player_id"`
	Type     models.LeaderboardType `json:"type"`
	Rank     int                    `json:"rank"`
}

// handleLeaderboard 排行榜 ?type=currency|kills|survival&limit=10
func (h *StatsHandler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendError(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}
	if h.board == nil {
		h.sendError(w, "排行榜未启用", http.StatusServiceUnavailable)
		return
	}

	scoreType := parseLeaderboardType(r.URL.Query().Get("type"))
	limit := parseLimit(r.URL.Query().Get("limit"), 10, 100)

	entries, err := h.board.GetLeaderboard(r.Context(), scoreType, limit)
	if err != nil {
		h.log.Error("查询排行榜失败", zap.String("type", string(scoreType)), zap.Error(err))
		h.sendError(w, "查询排行榜失败", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	h.sendSuccess(w, "查询成功", entries)
}

// handleRank 玩家排名 /leaderboard/rank/{player_id}?type=
func (h *StatsHandler) handleRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendError(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}
	if h.board == nil {
		h.sendError(w, "排行榜未启用", http.StatusServiceUnavailable)
		return
	}

	playerID := strings.TrimPrefix(r.URL.Path, "/leaderboard/rank/")
	if playerID == "" {
		h.sendError(w, "无效的玩家ID", http.StatusBadRequest)
		return
	}
	scoreType := parseLeaderboardType(r.URL.Query().Get("type"))

	rank, err := h.board.GetPlayerRank(r.Context(), playerID, scoreType)
	if err != nil {
		h.log.Error("查询玩家排名失败", zap.String("player_id", playerID), zap.Error(err))
		h.sendError(w, "查询玩家排名失败", http.StatusInternalServerError)
		return
	}
	h.sendSuccess(w, "查询成功", RankData{PlayerID: playerID, Type: scoreType, Rank: rank})
}

// handleRuns 玩家最近的对局 /runs/{player_id}?limit=10
func (h *StatsHandler) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendError(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}
	if h.history == nil {
		h.sendError(w, "对局记录未启用", http.StatusServiceUnavailable)
		return
	}

	playerID := strings.TrimPrefix(r.URL.Path, "/runs/")
	if playerID == "" {
		h.sendError(w, "无效的玩家ID", http.StatusBadRequest)
		return
	}
	limit := parseLimit(r.URL.Query().Get("limit"), 10, 100)

	runs, err := h.history.RecentRuns(r.Context(), playerID, limit)
	if err != nil {
		h.log.Error("查询对局记录失败", zap.String("player_id", playerID), zap.Error(err))
		h.sendError(w, "查询对局记录失败", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []models.RunRecord{}
	}
	h.sendSuccess(w, "查询成功", runs)
}

func parseLeaderboardType(s string) models.LeaderboardType {
	switch t := models.LeaderboardType(s); t {
	case models.LeaderboardKills, models.LeaderboardSurvival:
		return t
	default:
		return models.LeaderboardCurrency
	}
}

// parseLimit 解析数量参数，非法值使用默认值
func parseLimit(s string, def, max int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

func (h *StatsHandler) sendSuccess(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, StatsResponse{Success: true, Message: message, Data: data})
}

func (h *StatsHandler) sendError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, StatsResponse{Success: false, Message: message})
}
