package app

import (
	"strings"
	"time"

	"github.com/yungbote/slotswapper-backend/internal/data/db"
	"github.com/yungbote/slotswapper-backend/internal/observability"
	"github.com/yungbote/slotswapper-backend/internal/platform/envutil"
	"github.com/yungbote/slotswapper-backend/internal/realtime/bus"
)

const serviceName = "slotswapper-backend"

type Config struct {
	Port    string
	LogMode string

	DB          db.Config
	AutoMigrate bool

	JWTSecretKey string
	JWTIssuer    string

	Redis         bus.Config
	CORSOrigins   []string
	NotifyTimeout time.Duration
	SSEHeartbeat  time.Duration

	MetricsEnabled bool
	MetricsAddr    string
	Otel           observability.OtelConfig
}

func LoadConfig() Config {
	env := envutil.String("APP_ENV", "development")
	return Config{
		Port:    envutil.String("PORT", "8080"),
		LogMode: envutil.String("LOG_MODE", "development"),

		DB: db.Config{
			Driver:           strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres)),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "slotswapper"),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:       envutil.String("SQLITE_PATH", "slotswapper.db"),
			SlowThreshold:    envutil.Duration("DB_SLOW_THRESHOLD", 200*time.Millisecond),
			MaxOpenConns:     envutil.Int("DB_MAX_OPEN_CONNS", 0),
			MaxIdleConns:     envutil.Int("DB_MAX_IDLE_CONNS", 0),
		},
		AutoMigrate: envutil.Bool("DB_AUTO_MIGRATE", true),

		JWTSecretKey: envutil.String("JWT_SECRET_KEY", ""),
		JWTIssuer:    envutil.String("JWT_ISSUER", ""),

		Redis: bus.Config{
			Addr:     envutil.String("REDIS_ADDR", ""),
			Password: envutil.String("REDIS_PASSWORD", ""),
			DB:       envutil.Int("REDIS_DB", 0),
			Channel:  envutil.String("REDIS_CHANNEL", ""),
		},
		CORSOrigins:   envutil.List("CORS_ORIGINS", nil),
		NotifyTimeout: envutil.Duration("NOTIFY_TIMEOUT", 5*time.Second),
		SSEHeartbeat:  envutil.Duration("SSE_HEARTBEAT", 15*time.Second),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false),
		MetricsAddr:    envutil.String("METRICS_ADDR", ":9090"),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", serviceName),
			Environment: env,
			Version:     envutil.String("APP_VERSION", "dev"),
			SampleRatio: float64(envutil.Int("OTEL_SAMPLE_PERCENT", 100)) / 100,
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
		},
	}
}
