package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tokenIssuer 令牌签发方
const tokenIssuer = "PixelStorm"

var (
	// ErrMissingToken 请求中没有令牌
	ErrMissingToken = errors.New("缺少令牌")
	// ErrInvalidToken 令牌无效或已过期
	ErrInvalidToken = errors.New("令牌无效")
)

// Claims 访客令牌声明
type Claims struct {
	PlayerID string `json:"player_id"`
	jwt.RegisteredClaims
}

// TokenIssuer HS256 令牌签发与校验
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer 创建令牌签发器
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue 为玩家签发令牌，返回令牌与过期时间
func (ti *TokenIssuer) Issue(playerID string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(ti.ttl)
	claims := Claims{
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    tokenIssuer,
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("签发令牌失败: %w", err)
	}
	return signed, expires, nil
}

// Parse 校验令牌并返回声明
func (ti *TokenIssuer) Parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.PlayerID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenFromRequest 从Authorization头或token参数读取令牌
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// AuthResponse 认证响应
type AuthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token,omitempty"`
	PlayerID  string    `json:"player_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// AuthHandler 认证处理器，只提供访客登录
type AuthHandler struct {
	issuer *TokenIssuer
	log    *zap.Logger
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(issuer *TokenIssuer, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{issuer: issuer, log: log}
}

// RegisterHandlers 注册HTTP处理器
func (h *AuthHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/auth/guest", h.handleGuest)
	mux.HandleFunc("/auth/validate", h.handleValidate)
}

// handleGuest 签发访客令牌
func (h *AuthHandler) handleGuest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "仅支持POST方法", http.StatusMethodNotAllowed)
		return
	}

	playerID := "guest-" + uuid.New().String()
	token, expires, err := h.issuer.Issue(playerID)
	if err != nil {
		h.log.Error("签发访客令牌失败", zap.Error(err))
		http.Error(w, "生成令牌失败", http.StatusInternalServerError)
		return
	}

	h.log.Info("访客登录", zap.String("player_id", playerID))
	writeJSON(w, http.StatusOK, AuthResponse{
		Success:   true,
		Message:   "登录成功",
		Token:     token,
		PlayerID:  playerID,
		ExpiresAt: expires,
	})
}

// handleValidate 校验令牌
func (h *AuthHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	claims, err := h.issuer.Parse(TokenFromRequest(r))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success:   true,
		Message:   "令牌有效",
		PlayerID:  claims.PlayerID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

// writeJSON 写入JSON响应
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
