// websocket.go

package game

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/internal/gateway"
	"github.com/jacl-coder/PixelStorm-Survival/internal/protocol"
)

const (
	// 写入超时时间
	writeWait = 10 * time.Second

	// 读取超时时间
	pongWait = 60 * time.Second

	// 发送 ping 的间隔时间
	pingPeriod = (pongWait * 9) / 10

	// 最大消息大小
	maxMessageSize = 512 * 1024 // 512KB
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 允许所有跨域请求
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message 客户端消息结构
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// PlayerConnection 玩家连接
type PlayerConnection struct {
	ID       string
	PlayerID string
	Session  *Session

	// 错误等控制消息，帧数据直接从会话读取
	Send chan []byte

	closed    chan struct{}
	closeOnce sync.Once
	conn      *websocket.Conn
}

// handleWSConnection 处理WebSocket连接
func (s *GameServer) handleWSConnection(w http.ResponseWriter, r *http.Request) {
	claims, err := s.issuer.Parse(gateway.TokenFromRequest(r))
	if err != nil {
		http.Error(w, "未授权", http.StatusUnauthorized)
		return
	}

	session := NewSession(s.tuning, SessionOptions{
		PlayerID: claims.PlayerID,
		TickRate: s.config.Server.TickRate,
		Seed:     s.config.Combat.Seed,
		CellSize: s.config.Combat.CellSize,
		Logger:   s.log,
		Recorder: s.backends.Recorder,
	})
	player := &PlayerConnection{
		ID:       uuid.New().String(),
		PlayerID: claims.PlayerID,
		Session:  session,
		Send:     make(chan []byte, 16),
		closed:   make(chan struct{}),
	}

	if !s.register(player) {
		http.Error(w, "服务器已满", http.StatusServiceUnavailable)
		return
	}

	// 升级HTTP连接为WebSocket
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket升级失败", zap.Error(err))
		s.closeConnection(player)
		return
	}
	player.conn = conn

	if err := session.Start(); err != nil {
		s.log.Error("启动会话失败", zap.Error(err))
		s.closeConnection(player)
		conn.Close()
		return
	}

	s.log.Info("玩家已连接",
		zap.String("conn_id", player.ID),
		zap.String("player_id", player.PlayerID),
		zap.String("session_id", session.ID))

	// 启动读写协程
	go s.readPump(player)
	go s.writePump(player)
}

// readPump 从WebSocket读取数据
func (s *GameServer) readPump(player *PlayerConnection) {
	conn := player.conn
	defer s.closeConnection(player)

	// 设置读取参数
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				s.log.Warn("WebSocket错误", zap.String("conn_id", player.ID), zap.Error(err))
			}
			return
		}

		// 处理接收到的消息
		s.handleMessage(player, message)
	}
}

// writePump 向WebSocket写入帧和控制消息，对局结束后正常关闭连接
func (s *GameServer) writePump(player *PlayerConnection) {
	conn := player.conn
	frames := player.Session.Frames()
	msgType := websocket.TextMessage
	if s.codec.Binary() {
		msgType = websocket.BinaryMessage
	}

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case snap, ok := <-frames:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 会话结束
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "对局结束"))
				return
			}

			data, err := s.codec.Encode(snap.ToFrame())
			if err != nil {
				s.log.Error("编码帧失败", zap.Error(err))
				continue
			}
			if err := conn.WriteMessage(msgType, data); err != nil {
				return
			}
		case message := <-player.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-player.closed:
			return
		}
	}
}

// closeConnection 关闭玩家连接并停止对局
func (s *GameServer) closeConnection(player *PlayerConnection) {
	player.closeOnce.Do(func() {
		s.connMutex.Lock()
		delete(s.connections, player.ID)
		s.connMutex.Unlock()

		close(player.closed)
		if player.conn != nil {
			player.conn.Close()
		}
		player.Session.Stop()

		s.log.Info("玩家已断开连接",
			zap.String("conn_id", player.ID),
			zap.String("player_id", player.PlayerID))
	})
}

// handleMessage 处理接收到的消息
func (s *GameServer) handleMessage(player *PlayerConnection, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(player, "无法解析消息")
		return
	}

	switch msg.Type {
	case protocol.MsgPlayerInput:
		var in protocol.PlayerInput
		if err := json.Unmarshal(msg.Payload, &in); err != nil {
			s.sendError(player, "无效的输入")
			return
		}
		player.Session.SubmitInput(in)
	case protocol.MsgSetStats:
		var stats protocol.StatsInfo
		if err := json.Unmarshal(msg.Payload, &stats); err != nil {
			s.sendError(player, "无效的属性")
			return
		}
		player.Session.SetCombatStats(protocol.ToCombatStats(stats))
	default:
		s.sendError(player, "未知消息类型: "+msg.Type)
	}
}

// sendError 向玩家发送错误通知，队列已满时丢弃
func (s *GameServer) sendError(player *PlayerConnection, message string) {
	data, err := json.Marshal(protocol.ErrorMessage{Type: protocol.MsgError, Message: message})
	if err != nil {
		s.log.Error("序列化消息失败", zap.Error(err))
		return
	}

	select {
	case player.Send <- data:
	default:
		s.log.Warn("发送队列已满，丢弃消息", zap.String("conn_id", player.ID))
	}
}
