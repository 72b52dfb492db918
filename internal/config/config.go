package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type HTTPConfig struct {
	Host               string
	Port               int
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	RateLimitBurst     int
}

type DBConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
	AutoMigrate     bool
}

type DashboardConfig struct {
	TripTable    string
	AlcoholTable string
	SessionTTL   time.Duration
	RankingLimit int
}

type ExportConfig struct {
	PDFFontPath string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Dashboard   DashboardConfig
	Export      ExportConfig
}

func Load() (*Config, error) {
	// .env is optional; app.env below is the primary source.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:               v.GetString("HTTP_HOST"),
			Port:               v.GetInt("HTTP_PORT"),
			CORSAllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
			RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
			RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Dashboard: DashboardConfig{
			TripTable:    strings.TrimSpace(v.GetString("DASHBOARD_TRIP_TABLE")),
			AlcoholTable: strings.TrimSpace(v.GetString("DASHBOARD_ALCOHOL_TABLE")),
			SessionTTL:   v.GetDuration("DASHBOARD_SESSION_TTL"),
			RankingLimit: v.GetInt("DASHBOARD_RANKING_LIMIT"),
		},
		Export: ExportConfig{
			PDFFontPath: strings.TrimSpace(v.GetString("PDF_FONT_PATH")),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.CORSAllowedOrigins) == 0 {
		cfg.HTTP.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.HTTP.RateLimitPerMinute <= 0 {
		cfg.HTTP.RateLimitPerMinute = 120
	}
	if cfg.HTTP.RateLimitBurst <= 0 {
		cfg.HTTP.RateLimitBurst = 20
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = DriverMySQL
	}
	if cfg.Dashboard.TripTable == "" {
		cfg.Dashboard.TripTable = "績效日報表"
	}
	if cfg.Dashboard.AlcoholTable == "" {
		cfg.Dashboard.AlcoholTable = "酒測紀錄"
	}
	if cfg.Dashboard.SessionTTL <= 0 {
		cfg.Dashboard.SessionTTL = 30 * time.Minute
	}
	if cfg.Dashboard.RankingLimit < 0 {
		cfg.Dashboard.RankingLimit = 0
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment reports whether environment selects verbose local logging.
// An unset environment counts as development.
func IsDevelopment(environment string) bool {
	switch strings.ToLower(strings.TrimSpace(environment)) {
	case "", "dev", "development", "local":
		return true
	default:
		return false
	}
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	switch cfg.DB.Driver {
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported", cfg.DB.Driver)
	}
	if cfg.DB.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(cfg.DB.ConnMaxLifetime); err != nil {
			return fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
		}
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
