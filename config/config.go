package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Notify   NotifyConfig
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	SeedData bool   `env:"SEED_USERS" envDefault:"true"`
}

type ServerConfig struct {
	Host         string   `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port         int      `env:"SERVER_PORT" envDefault:"8080"`
	Mode         string   `env:"GIN_MODE" envDefault:"release"`
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:4200,http://localhost:3000"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"postgres"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	// 活動快取存活時間
	EventCacheTTL time.Duration `env:"REDIS_EVENT_CACHE_TTL" envDefault:"5m"`
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET,required"`
	Issuer   string        `env:"JWT_ISSUER" envDefault:"event-ticketing"`
	Audience string        `env:"JWT_AUDIENCE" envDefault:"event-ticketing-clients"`
	TTL      time.Duration `env:"JWT_TTL" envDefault:"168h"`
}

type StorageConfig struct {
	UploadsDir    string `env:"UPLOADS_DIR" envDefault:"./wwwroot/uploads"`
	MaxUploadSize int64  `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
}

// NotifyConfig 通知佇列設定：redis 使用 Redis Stream，memory 使用程序內 channel
type NotifyConfig struct {
	Queue      string `env:"NOTIFY_QUEUE" envDefault:"redis"`
	BufferSize int    `env:"NOTIFY_BUFFER_SIZE" envDefault:"1024"`
	ConsumerID string `env:"NOTIFY_CONSUMER_ID"`
}

// MinJWTSecretLength HS256 建議至少 32 bytes
const MinJWTSecretLength = 32

var AppConfig *Config

// LoadConfig 讀取 .env（若存在）後解析環境變數
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.JWT.Secret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", MinJWTSecretLength)
	}
	switch c.Notify.Queue {
	case "redis", "memory":
	default:
		return fmt.Errorf("NOTIFY_QUEUE must be redis or memory, got %q", c.Notify.Queue)
	}
	return nil
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:          "localhost",
		Port:          "6380", // 測試 Redis 用 6380 port
		Password:      "",
		DB:            1,
		EventCacheTTL: time.Minute,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		JWT: JWTConfig{
			Secret:   "test-secret-key-with-at-least-32-bytes!!",
			Issuer:   "event-ticketing-test",
			Audience: "event-ticketing-test",
			TTL:      time.Hour,
		},
		Notify:   NotifyConfig{Queue: "memory", BufferSize: 16},
		LogLevel: "debug",
	}
}
