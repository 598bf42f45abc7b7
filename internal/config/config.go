package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config holds all application settings.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Email    EmailConfig
	Game     GameConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig contains unified Redis connection settings.
// Supported modes: single, sentinel, cluster.
type RedisConfig struct {
	// Mode selects the Redis topology ("single", "sentinel", "cluster").
	// Defaults to "single".
	Mode string `mapstructure:"mode"`

	// Addrs lists Redis addresses (host:port), used by all modes. For
	// 'single' the first address wins if the list is non-empty.
	Addrs []string `mapstructure:"addrs"`

	// Addr is the alternative single-mode address, used when Addrs is empty.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName names the Redis master (sentinel mode only).
	MasterName string `mapstructure:"master_name"`

	// MaxRetries caps reconnection attempts (-1 for unlimited). Defaults to
	// 0, no retries.
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff is the minimum retry interval in milliseconds.
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff is the maximum retry interval in milliseconds.
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// JWTConfig contains token settings.
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// EmailConfig contains outbound mail settings.
type EmailConfig struct {
	// APIKey authenticates against the Resend API. Sending is disabled when
	// empty; notifications are still recorded.
	APIKey    string `mapstructure:"api_key"`
	FromAddr  string `mapstructure:"from_addr"`
	VerifyURL string `mapstructure:"verify_url"`
}

// GameConfig contains prediction-game rules.
type GameConfig struct {
	// PredictionDeadlineMinutes is the lead time before kickoff after which
	// submissions are rejected.
	PredictionDeadlineMinutes int `mapstructure:"prediction_deadline_minutes"`

	// MaxLeaguesPerUser caps mini-league memberships per user.
	MaxLeaguesPerUser int `mapstructure:"max_leagues_per_user"`

	// DefaultLeagueSize is the member cap applied to new mini-leagues.
	DefaultLeagueSize int `mapstructure:"default_league_size"`

	// NextFixtureOnly restricts submissions to the chronologically next
	// scheduled fixture of the season.
	NextFixtureOnly bool `mapstructure:"next_fixture_only"`

	// FormWindow is the number of recent finished fixtures in the form
	// leaderboard.
	FormWindow int `mapstructure:"form_window"`
}

// PostgresConnectionString builds the PostgreSQL DSN.
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from the file at configPath, with explicitly
// bound environment variables taking precedence.
func Load(configPath string) (*Config, error) {
	vip := viper.New()

	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 15)
	vip.SetDefault("server.writetimeout", 15)
	vip.SetDefault("game.prediction_deadline_minutes", 5)
	vip.SetDefault("game.max_leagues_per_user", 5)
	vip.SetDefault("game.default_league_size", 50)
	vip.SetDefault("game.next_fixture_only", true)
	vip.SetDefault("game.form_window", 5)

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	vip.BindEnv("email.api_key", "RESEND_API_KEY")
	vip.BindEnv("email.from_addr", "EMAIL_FROM_ADDR")
	vip.BindEnv("email.verify_url", "EMAIL_VERIFY_URL")

	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("game.prediction_deadline_minutes", "GAME_PREDICTION_DEADLINE_MINUTES")
	vip.BindEnv("game.max_leagues_per_user", "GAME_MAX_LEAGUES_PER_USER")
	vip.BindEnv("game.next_fixture_only", "GAME_NEXT_FIXTURE_ONLY")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Config file '%s' not found, using environment variables and defaults.", configPath)
			} else {
				log.Printf("Warning: could not read config file '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Loaded configuration ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Port: %s", cfg.Database.Port)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("JWT Secret Set: %t", cfg.JWT.Secret != "")
		log.Printf("JWT Expiration Hours: %d", cfg.JWT.ExpirationHrs)
		log.Printf("Email Sending Enabled: %t", cfg.Email.APIKey != "")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Prediction Deadline Minutes: %d", cfg.Game.PredictionDeadlineMinutes)
		log.Printf("Next Fixture Only: %t", cfg.Game.NextFixtureOnly)
		log.Printf("----------------------------")
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required in config (check JWT_SECRET env var)")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if os.Getenv("GIN_MODE") == "release" && cfg.Database.Password == "" {
		return nil, fmt.Errorf("database password is required in release mode (check DATABASE_PASSWORD env var)")
	}

	return &cfg, nil
}
