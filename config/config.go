package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger    `mapstructure:"logger"`
	DB        Database  `mapstructure:"database"`
	API       API       `mapstructure:"api"`
	Scheduler Scheduler `mapstructure:"scheduler"`
	Cache     Cache     `mapstructure:"cache"`
	Strategy  Strategy  `mapstructure:"strategy"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Scheduler struct {
	RefitCron       string        `mapstructure:"refit_cron"`
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// Strategy holds the default thresholds applied when a request leaves
// them unset.
type Strategy struct {
	EntryZ          float64 `mapstructure:"entry_z"`
	ExitZ           float64 `mapstructure:"exit_z"`
	CostPerTurnover float64 `mapstructure:"cost_per_turnover"`
	PeriodsPerYear  int     `mapstructure:"periods_per_year"`
	SweepWorkers    int     `mapstructure:"sweep_workers"`
}

func Load() (*Config, error) {
	// Optional .env for local development; real environment wins either way.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("scheduler.refit_cron", "0 6 * * *")
	viper.SetDefault("scheduler.max_concurrency", 4)
	viper.SetDefault("scheduler.timeout_duration", 5*time.Minute)
	viper.SetDefault("cache.default_expiration", 30*time.Minute)
	viper.SetDefault("cache.cleanup_interval", time.Hour)
	viper.SetDefault("strategy.entry_z", 2.0)
	viper.SetDefault("strategy.exit_z", 0.5)
	viper.SetDefault("strategy.cost_per_turnover", 0.0)
	viper.SetDefault("strategy.periods_per_year", 252)
	viper.SetDefault("strategy.sweep_workers", 4)
}
