package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Data source kinds accepted by DATA_SOURCE.
const (
	SourceSeed     = "seed"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	DataSource string
	SeedFile   string

	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Log      LogConfig
	Kiosk    KioskConfig
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig tunes projection memoization.
type CacheConfig struct {
	TTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// KioskConfig governs how schedules are projected for the display.
type KioskConfig struct {
	Locale             string
	Timezone           string
	UpcomingDays       int
	SkipInvalid        bool
	AllowClockOverride bool
	ReloadInterval     time.Duration
	ExportDir          string
}

// Location resolves the configured timezone, falling back to the host's local zone.
func (k KioskConfig) Location() *time.Location {
	if k.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(k.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.DataSource = strings.ToLower(v.GetString("DATA_SOURCE"))
	cfg.SeedFile = v.GetString("SEED_FILE")

	cfg.Database = DatabaseConfig{
		Driver:       driverFor(cfg.DataSource),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		SQLitePath:   v.GetString("SQLITE_PATH"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		TTL: parseDuration(v.GetString("CACHE_TTL"), time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	upcoming := v.GetInt("KIOSK_UPCOMING_DAYS")
	if upcoming <= 0 {
		upcoming = 5
	}
	cfg.Kiosk = KioskConfig{
		Locale:             v.GetString("KIOSK_LOCALE"),
		Timezone:           v.GetString("KIOSK_TIMEZONE"),
		UpcomingDays:       upcoming,
		SkipInvalid:        v.GetBool("KIOSK_SKIP_INVALID"),
		AllowClockOverride: v.GetBool("KIOSK_ALLOW_CLOCK_OVERRIDE"),
		ReloadInterval:     parseDuration(v.GetString("KIOSK_RELOAD_INTERVAL"), 0),
		ExportDir:          v.GetString("EXPORT_DIR"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DATA_SOURCE", SourceSeed)
	v.SetDefault("SEED_FILE", "configs/seed.yaml")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "course_kiosk")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("SQLITE_PATH", "kiosk.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "1m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("KIOSK_LOCALE", "pt-BR")
	v.SetDefault("KIOSK_TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("KIOSK_UPCOMING_DAYS", 5)
	v.SetDefault("KIOSK_SKIP_INVALID", false)
	v.SetDefault("KIOSK_ALLOW_CLOCK_OVERRIDE", false)
	v.SetDefault("KIOSK_RELOAD_INTERVAL", "0")
	v.SetDefault("EXPORT_DIR", "./exports")
}

func driverFor(source string) string {
	switch source {
	case SourceSQLite:
		return "sqlite3"
	case SourcePostgres:
		return "postgres"
	default:
		return ""
	}
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
