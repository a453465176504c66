package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Expiry   ExpiryConfig
	Alerts   AlertsConfig
	Reports  ReportsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Service     string
	Development bool
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// CredentialSource selects which employee column backs the driving credential expiry.
type CredentialSource string

const (
	CredentialSourceAuto     CredentialSource = "auto"
	CredentialSourceCarteira CredentialSource = "carteira"
	CredentialSourceCNH      CredentialSource = "cnh"
	CredentialSourceNone     CredentialSource = "none"
)

// ExpiryConfig tunes expiry classification and schema handling.
type ExpiryConfig struct {
	WindowDays       int
	CardLimit        int
	CredentialSource CredentialSource
	EmployeeTable    string
	GuardTables      []string
	GuardEnabled     bool
}

// AlertsConfig drives the daily expiry digest.
type AlertsConfig struct {
	Enabled    bool
	Schedule   string
	Timezone   string
	EmailFrom  string
	WebhookURL string
}

// ReportsConfig holds report rendering settings.
type ReportsConfig struct {
	UploadDir string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	credentialSource, err := parseCredentialSource(getEnv("EXPIRY_CREDENTIAL_SOURCE", string(CredentialSourceAuto)))
	if err != nil {
		return nil, err
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	employeeTable := getEnv("EXPIRY_EMPLOYEE_TABLE", "employees")

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "hr-docs"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Service:     getEnv("APP_NAME", "hr-docs"),
			Development: getEnv("APP_ENV", "development") != "production",
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Expiry: ExpiryConfig{
			WindowDays:       getEnvAsInt("EXPIRY_WINDOW_DAYS", 30),
			CardLimit:        getEnvAsInt("EXPIRY_CARD_LIMIT", 100),
			CredentialSource: credentialSource,
			EmployeeTable:    employeeTable,
			GuardTables:      withTable(getEnvAsList("EXPIRY_GUARD_TABLES", nil), employeeTable),
			GuardEnabled:     getEnvAsBool("EXPIRY_GUARD_ENABLED", true),
		},
		Alerts: AlertsConfig{
			Enabled:    getEnvAsBool("ALERTS_ENABLED", true),
			Schedule:   getEnv("ALERTS_SCHEDULE", "0 8 * * *"),
			Timezone:   getEnv("ALERTS_TIMEZONE", "America/Sao_Paulo"),
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Reports: ReportsConfig{
			UploadDir: getEnv("UPLOAD_FOLDER", "uploads"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Location resolves the alert timezone, falling back to UTC.
func (a AlertsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseCredentialSource(raw string) (CredentialSource, error) {
	switch src := CredentialSource(strings.ToLower(strings.TrimSpace(raw))); src {
	case CredentialSourceAuto, CredentialSourceCarteira, CredentialSourceCNH, CredentialSourceNone:
		return src, nil
	default:
		return "", fmt.Errorf("invalid EXPIRY_CREDENTIAL_SOURCE: %q", raw)
	}
}

// withTable makes sure the employee table is always inspected; expiry
// columns are resolved from its entry in the guard report.
func withTable(tables []string, table string) []string {
	for _, t := range tables {
		if t == table {
			return tables
		}
	}
	return append(tables, table)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
