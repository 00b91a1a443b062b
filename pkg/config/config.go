package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Shopify      ShopifyConfig
	OpenAI       OpenAIConfig
	Content      ContentConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SEOFORGE_APP_ENV" required:"true"`
	Port         string `envconfig:"SEOFORGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SEOFORGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SEOFORGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SEOFORGE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SEOFORGE_DB_DSN"`
	Driver string `envconfig:"SEOFORGE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SEOFORGE_DB_HOST"`
	LegacyPort     int    `envconfig:"SEOFORGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SEOFORGE_DB_USER"`
	LegacyPassword string `envconfig:"SEOFORGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SEOFORGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SEOFORGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SEOFORGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SEOFORGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SEOFORGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SEOFORGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SEOFORGE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SEOFORGE_REDIS_ADDR"`
	Password     string        `envconfig:"SEOFORGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SEOFORGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SEOFORGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SEOFORGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SEOFORGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SEOFORGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SEOFORGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ShopifyConfig covers Admin API access plus embedded-app session token
// verification. AdminToken is the single-store dev fallback; in production
// tokens come from the session store the platform SDK maintains.
type ShopifyConfig struct {
	APIVersion string `envconfig:"SEOFORGE_SHOPIFY_API_VERSION" default:"2024-07"`
	AppSecret  string `envconfig:"SEOFORGE_SHOPIFY_APP_SECRET" required:"true"`
	AdminToken string `envconfig:"SEOFORGE_SHOPIFY_ADMIN_TOKEN"`
}

type OpenAIConfig struct {
	APIKey      string        `envconfig:"SEOFORGE_OPENAI_API_KEY" required:"true"`
	BaseURL     string        `envconfig:"SEOFORGE_OPENAI_BASE_URL" default:"https://api.openai.com"`
	Model       string        `envconfig:"SEOFORGE_OPENAI_MODEL" default:"gpt-4o"`
	Timeout     time.Duration `envconfig:"SEOFORGE_OPENAI_TIMEOUT" default:"180s"`
	Temperature float64       `envconfig:"SEOFORGE_OPENAI_TEMPERATURE" default:"0.7"`
}

// ContentConfig tunes the generation pipeline and cache.
type ContentConfig struct {
	CacheTTL          time.Duration `envconfig:"SEOFORGE_CONTENT_CACHE_TTL" default:"168h"`
	MaxAnalyzerImages int           `envconfig:"SEOFORGE_CONTENT_MAX_ANALYZER_IMAGES" default:"10"`
	MaxVisionImages   int           `envconfig:"SEOFORGE_CONTENT_MAX_VISION_IMAGES" default:"5"`
	GenerateLockTTL   time.Duration `envconfig:"SEOFORGE_CONTENT_GENERATE_LOCK_TTL" default:"2m"`
}

type CronConfig struct {
	SweepInterval time.Duration `envconfig:"SEOFORGE_CRON_SWEEP_INTERVAL" default:"1h"`
	SweepBatch    int           `envconfig:"SEOFORGE_CRON_SWEEP_BATCH" default:"500"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SEOFORGE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SEOFORGE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
