package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	AuthModeFirebase = "firebase"
	AuthModeHMAC     = "hmac"
)

type HTTPOptions struct {
	Port           int      `env:"PORT" toml:"port"`
	CORSOrigins    []string `env:"CORS_ORIGINS" envSeparator:"," toml:"cors_origins"`
	RateLimit      string   `env:"RATE_LIMIT" toml:"rate_limit"`
	TrustForwarded bool     `env:"TRUST_FORWARDED_FOR" toml:"trust_forwarded_for"`
	BodyLimit      string   `env:"BODY_LIMIT" toml:"body_limit"`
}

type DatabaseOptions struct {
	URL         string        `env:"DATABASE_URL" toml:"url"`
	Driver      string        `env:"STORE_DRIVER" toml:"driver"`
	ConnTimeout time.Duration `env:"DATABASE_CONNECT_TIMEOUT" toml:"connect_timeout"`
	MaxConns    int32         `env:"DATABASE_MAX_CONNS" toml:"max_conns"`
}

type AuthOptions struct {
	Mode           string        `env:"AUTH_MODE" toml:"mode"`
	ProjectID      string        `env:"FIREBASE_PROJECT_ID" toml:"project_id"`
	JWKSURL        string        `env:"AUTH_JWKS_URL" toml:"jwks_url"`
	JWKSRefresh    time.Duration `env:"AUTH_JWKS_REFRESH" toml:"jwks_refresh"`
	HMACSecret     string        `env:"AUTH_HMAC_SECRET" toml:"hmac_secret"`
	DevTokenTTL    time.Duration `env:"AUTH_DEV_TOKEN_TTL" toml:"dev_token_ttl"`
	CacheTokens    bool          `env:"AUTH_CACHE_TOKENS" toml:"cache_tokens"`
}

// FirebaseCredentials are the identity provider service account fields.
// Only their presence is ever reported.
type FirebaseCredentials struct {
	PrivateKeyID  string `env:"FIREBASE_PRIVATE_KEY_ID" toml:"private_key_id"`
	PrivateKey    string `env:"FIREBASE_PRIVATE_KEY" toml:"private_key"`
	ClientEmail   string `env:"FIREBASE_CLIENT_EMAIL" toml:"client_email"`
	ClientID      string `env:"FIREBASE_CLIENT_ID" toml:"client_id"`
	ClientCertURL string `env:"FIREBASE_CLIENT_CERT_URL" toml:"client_cert_url"`
}

// NamedValue pairs a variable name with its configured value
type NamedValue struct {
	Name  string
	Value string
}

// Fields lists the credentials in their canonical order
func (f FirebaseCredentials) Fields() []NamedValue {
	return []NamedValue{
		{Name: "FIREBASE_PRIVATE_KEY_ID", Value: f.PrivateKeyID},
		{Name: "FIREBASE_PRIVATE_KEY", Value: f.PrivateKey},
		{Name: "FIREBASE_CLIENT_EMAIL", Value: f.ClientEmail},
		{Name: "FIREBASE_CLIENT_ID", Value: f.ClientID},
		{Name: "FIREBASE_CLIENT_CERT_URL", Value: f.ClientCertURL},
	}
}

type RedisOptions struct {
	Addr     string `env:"REDIS_ADDR" toml:"addr"`
	Password string `env:"REDIS_PASSWORD" toml:"password"`
	DB       int    `env:"REDIS_DB" toml:"db"`
}

func (r RedisOptions) Enabled() bool { return r.Addr != "" }

type MinioOptions struct {
	Endpoint  string `env:"MINIO_ENDPOINT" toml:"endpoint"`
	AccessKey string `env:"MINIO_ACCESS_KEY" toml:"access_key"`
	SecretKey string `env:"MINIO_SECRET_KEY" toml:"secret_key"`
	Bucket    string `env:"MINIO_BUCKET" toml:"bucket"`
	UseSSL    bool   `env:"MINIO_USE_SSL" toml:"use_ssl"`
}

func (m MinioOptions) Enabled() bool { return m.Endpoint != "" }

type SchedulerOptions struct {
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" toml:"reconcile_interval"`
}

type Configuration struct {
	Environment string `env:"APP_ENV" toml:"environment"`
	LogLevel    string `env:"LOG_LEVEL" toml:"log_level"`

	HTTP      HTTPOptions         `toml:"http"`
	Database  DatabaseOptions     `toml:"database"`
	Auth      AuthOptions         `toml:"auth"`
	Firebase  FirebaseCredentials `toml:"firebase"`
	Redis     RedisOptions        `toml:"redis"`
	Minio     MinioOptions        `toml:"minio"`
	Scheduler SchedulerOptions    `toml:"scheduler"`

	logger *logrus.Logger
}

// Default returns the configuration used when nothing overrides a field
func Default() *Configuration {
	return &Configuration{
		Environment: "development",
		LogLevel:    "info",
		HTTP: HTTPOptions{
			Port:        8080,
			CORSOrigins: []string{"*"},
			RateLimit:   "300-M",
			BodyLimit:   "1M",
		},
		Database: DatabaseOptions{
			Driver:      StoreDriverPostgres,
			ConnTimeout: 5 * time.Second,
			MaxConns:    10,
		},
		Auth: AuthOptions{
			Mode:        AuthModeFirebase,
			JWKSRefresh: time.Hour,
			DevTokenTTL: 24 * time.Hour,
			CacheTokens: true,
		},
		Minio:     MinioOptions{Bucket: "recruitcrm-exports"},
		Scheduler: SchedulerOptions{ReconcileInterval: 10 * time.Minute},
	}
}

// Load reads .env files, then the optional TOML file named by CRM_CONFIG_FILE,
// then the process environment. Later sources win.
func Load(envFiles ...string) (*Configuration, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env", ".env.local"}
	}
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	c := Default()
	if path := os.Getenv("CRM_CONFIG_FILE"); path != "" {
		if err := decodeFile(path, c); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.logger = newLogger(c)
	return c, nil
}

func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	// godotenv.Load never overrides variables already set in the process
	return godotenv.Load(existing...)
}

func (c *Configuration) Validate() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case StoreDriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is %q", StoreDriverPostgres)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, c.Database.Driver)
	}

	c.Auth.Mode = strings.ToLower(strings.TrimSpace(c.Auth.Mode))
	switch c.Auth.Mode {
	case AuthModeFirebase:
		if c.Auth.ProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required when AUTH_MODE is %q", AuthModeFirebase)
		}
	case AuthModeHMAC:
		if c.IsProduction() {
			return fmt.Errorf("AUTH_MODE %q is not allowed in production", AuthModeHMAC)
		}
	default:
		return fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeFirebase, AuthModeHMAC, c.Auth.Mode)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Scheduler.ReconcileInterval < 0 {
		return fmt.Errorf("RECONCILE_INTERVAL must not be negative")
	}
	return nil
}

func (c *Configuration) IsProduction() bool {
	return c.Environment == Production
}

func (c *Configuration) Address() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}

// Logger returns the process logger configured from LogLevel and Environment
func (c *Configuration) Logger() *logrus.Logger {
	if c.logger == nil {
		c.logger = newLogger(c)
	}
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

func newLogger(c *Configuration) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(c.LogrusLogLevel())
	if c.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
