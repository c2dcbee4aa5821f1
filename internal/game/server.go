package game

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/config"
	"github.com/jacl-coder/PixelStorm-Survival/internal/data"
	"github.com/jacl-coder/PixelStorm-Survival/internal/gateway"
	"github.com/jacl-coder/PixelStorm-Survival/internal/protocol"
)

// idleTimeout 超过该时间没有收到客户端消息的连接会被清理
const idleTimeout = 2 * time.Minute

// Backends 对局归档与战绩查询，均可为空
type Backends struct {
	Recorder RunRecorder
	Board    gateway.LeaderboardReader
	History  gateway.RunHistory
}

// GameServer 游戏服务器，每个WebSocket连接对应一个单人对局
type GameServer struct {
	config   *config.Config
	tuning   *data.Tuning
	log      *zap.Logger
	codec    protocol.Codec
	issuer   *gateway.TokenIssuer
	backends Backends
	limiter  *gateway.RateLimiter

	httpServer  *http.Server
	connections map[string]*PlayerConnection
	connMutex   sync.RWMutex

	// 关闭信号
	shutdown  chan struct{}
	isRunning bool
}

// NewGameServer 创建新的游戏服务器
func NewGameServer(cfg *config.Config, tuning *data.Tuning, log *zap.Logger, backends Backends) (*GameServer, error) {
	codec, err := protocol.NewCodec(cfg.Server.Codec)
	if err != nil {
		return nil, err
	}
	if tuning == nil {
		tuning = data.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &GameServer{
		config:      cfg,
		tuning:      tuning,
		log:         log,
		codec:       codec,
		issuer:      gateway.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		backends:    backends,
		connections: make(map[string]*PlayerConnection),
		shutdown:    make(chan struct{}),
	}, nil
}

// Issuer 令牌签发器
func (s *GameServer) Issuer() *gateway.TokenIssuer {
	return s.issuer
}

// Start 启动游戏服务器
func (s *GameServer) Start() error {
	if s.isRunning {
		return fmt.Errorf("服务器已经在运行")
	}

	// 初始化HTTP服务器
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Server.GamePort),
		Handler: s.Handler(),
	}

	// 启动HTTP服务器
	go func() {
		s.log.Info("游戏服务器启动", zap.Int("port", s.config.Server.GamePort))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("HTTP服务器错误", zap.Error(err))
		}
	}()

	// 启动连接清理
	go s.connectionReaper()

	s.isRunning = true
	return nil
}

// Stop 停止游戏服务器
func (s *GameServer) Stop() error {
	if !s.isRunning {
		return nil
	}

	// 发送关闭信号
	close(s.shutdown)
	if s.limiter != nil {
		s.limiter.Stop()
	}

	// 关闭HTTP服务器
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)

	// Shutdown不会关闭已升级的连接
	s.closeAll()

	s.isRunning = false
	if err != nil {
		return fmt.Errorf("HTTP服务器关闭错误: %w", err)
	}
	s.log.Info("游戏服务器已停止")
	return nil
}

// Handler 创建HTTP处理器
func (s *GameServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket 连接端点
	mux.HandleFunc("/ws", s.handleWSConnection)

	// 健康检查端点
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	gateway.NewAuthHandler(s.issuer, s.log).RegisterHandlers(mux)
	gateway.NewStatsHandler(s.backends.Board, s.backends.History, s.log).RegisterHandlers(mux)

	if s.limiter == nil {
		rpm := s.config.Server.RequestsPerMinute
		if rpm <= 0 {
			rpm = 120
		}
		s.limiter = gateway.NewRateLimiter(rpm)
	}
	return gateway.Chain(mux,
		gateway.LoggingMiddleware(s.log),
		gateway.CORSMiddleware,
		gateway.SecurityMiddleware,
		s.limiter.Middleware,
	)
}

// SessionCount 当前进行中的对局数
func (s *GameServer) SessionCount() int {
	s.connMutex.RLock()
	defer s.connMutex.RUnlock()
	return len(s.connections)
}

// register 登记连接，超过对局上限时返回false
func (s *GameServer) register(player *PlayerConnection) bool {
	s.connMutex.Lock()
	defer s.connMutex.Unlock()

	if max := s.config.Server.MaxSessions; max > 0 && len(s.connections) >= max {
		return false
	}
	s.connections[player.ID] = player
	return true
}

func (s *GameServer) snapshotConnections() []*PlayerConnection {
	s.connMutex.RLock()
	defer s.connMutex.RUnlock()

	players := make([]*PlayerConnection, 0, len(s.connections))
	for _, player := range s.connections {
		players = append(players, player)
	}
	return players
}

// closeAll 关闭所有连接
func (s *GameServer) closeAll() {
	for _, player := range s.snapshotConnections() {
		s.closeConnection(player)
	}
}

// connectionReaper 定期清理空闲连接
func (s *GameServer) connectionReaper() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanupIdle(time.Now())
		case <-s.shutdown:
			return
		}
	}
}

// cleanupIdle 关闭在now之前idleTimeout内没有活动的连接
func (s *GameServer) cleanupIdle(now time.Time) int {
	n := 0
	for _, player := range s.snapshotConnections() {
		if now.Sub(player.Session.LastActive()) > idleTimeout {
			s.log.Info("清理空闲连接",
				zap.String("conn_id", player.ID),
				zap.String("player_id", player.PlayerID))
			s.closeConnection(player)
			n++
		}
	}
	return n
}
