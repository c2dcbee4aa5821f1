// config.go

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 服务器配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Combat   CombatConfig   `mapstructure:"combat"`
}

// ServerConfig 服务器基本配置
type ServerConfig struct {
	GamePort    int    `mapstructure:"game_port"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	TickRate    int    `mapstructure:"tick_rate"`    // 每秒模拟帧数
	Codec       string `mapstructure:"codec"`        // json / msgpack / protobuf
	MaxSessions int    `mapstructure:"max_sessions"` // 同时进行的对局上限

	RequestsPerMinute int `mapstructure:"requests_per_minute"` // 每个IP每分钟的HTTP请求上限
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// CombatConfig 战斗模拟配置
type CombatConfig struct {
	TuningFile string  `mapstructure:"tuning_file"`
	Seed       int64   `mapstructure:"seed"` // 0 表示按启动时间取种子
	CellSize   float64 `mapstructure:"cell_size"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig Config
)

// LoadConfig 从文件加载配置到全局实例
func LoadConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	GlobalConfig = *cfg
	return nil
}

// Load 从文件加载配置，环境变量 PIXELSTORM_SERVER_GAME_PORT 等可覆盖文件中的值
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("pixelstorm")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("无法读取配置文件: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法解析配置文件: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.game_port", 8081)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.tick_rate", 60)
	v.SetDefault("server.codec", "json")
	v.SetDefault("server.max_sessions", 64)
	v.SetDefault("server.requests_per_minute", 120)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("combat.cell_size", 128.0)
}

// Validate 检查配置合法性
func (c *Config) Validate() error {
	if c.Server.TickRate <= 0 || c.Server.TickRate > 240 {
		return fmt.Errorf("server.tick_rate 必须在 (0, 240] 内: %d", c.Server.TickRate)
	}
	switch c.Server.Codec {
	case "json", "msgpack", "protobuf":
	default:
		return fmt.Errorf("未知的编码格式: %s", c.Server.Codec)
	}
	if c.Server.RequestsPerMinute <= 0 {
		return fmt.Errorf("server.requests_per_minute 必须大于0: %d", c.Server.RequestsPerMinute)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret 不能为空")
	}
	return nil
}

// TickInterval 每帧间隔
func (c *ServerConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// GetDSN 获取PostgreSQL连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetRedisAddr 获取Redis连接地址
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
