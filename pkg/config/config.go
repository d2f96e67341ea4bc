package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	CMS       CMSConfig
	Mail      MailConfig
	Webhook   WebhookConfig
	Catalog   CatalogConfig
	Cart      CartConfig
	RateLimit RateLimitConfig
	Features  FeatureFlagsConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CARAPE_APP_ENV" required:"true"`
	Port         string `envconfig:"CARAPE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CARAPE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARAPE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARAPE_DB_DSN" required:"true"`
	Driver string `envconfig:"CARAPE_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"CARAPE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARAPE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARAPE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARAPE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CARAPE_REDIS_URL"`
	Address      string        `envconfig:"CARAPE_REDIS_ADDR"`
	Password     string        `envconfig:"CARAPE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARAPE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARAPE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARAPE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARAPE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARAPE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARAPE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CMSConfig points at the hosted headless content API that owns the catalog.
type CMSConfig struct {
	ProjectID  string        `envconfig:"CARAPE_CMS_PROJECT_ID" required:"true"`
	Dataset    string        `envconfig:"CARAPE_CMS_DATASET" default:"production"`
	APIVersion string        `envconfig:"CARAPE_CMS_API_VERSION" default:"2024-01-01"`
	Token      string        `envconfig:"CARAPE_CMS_TOKEN"`
	UseCDN     bool          `envconfig:"CARAPE_CMS_USE_CDN" default:"false"`
	Timeout    time.Duration `envconfig:"CARAPE_CMS_TIMEOUT" default:"10s"`
}

type MailConfig struct {
	APIKey        string `envconfig:"CARAPE_MAILJET_API_KEY" required:"true"`
	SecretKey     string `envconfig:"CARAPE_MAILJET_SECRET_KEY" required:"true"`
	SenderEmail   string `envconfig:"CARAPE_MAIL_SENDER" required:"true"`
	ReceiverEmail string `envconfig:"CARAPE_MAIL_RECEIVER" required:"true"`
}

type WebhookConfig struct {
	RevalidateSecret string `envconfig:"CARAPE_REVALIDATE_SECRET" required:"true"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"CARAPE_CATALOG_CACHE_TTL" default:"60s"`
	PageSize int           `envconfig:"CARAPE_CATALOG_PAGE_SIZE" default:"12"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"CARAPE_CART_TTL" default:"720h"`
}

type RateLimitConfig struct {
	SubmitWindow     time.Duration `envconfig:"CARAPE_RATE_LIMIT_SUBMIT_WINDOW" default:"1m"`
	SubmitIPLimit    int           `envconfig:"CARAPE_RATE_LIMIT_SUBMIT_IP_LIMIT" default:"10"`
	SubmitEmailLimit int           `envconfig:"CARAPE_RATE_LIMIT_SUBMIT_EMAIL_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CARAPE_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CARAPE_CORS_ALLOWED_ORIGINS"`
}
