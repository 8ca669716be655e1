package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress        = "localhost:8080"
	defaultQueryTimeout      = 3 * time.Second
	defaultMaxConns          = 10
	defaultMetricsWorkers    = 5
	defaultDashboardCacheTTL = 5 * time.Minute
)

var (
	ErrOrdersDSNNotSet = errors.New("orders database DSN is not set")
	ErrJWTSecretNotSet = errors.New("jwt secret is not set")
)

type Config struct {
	RunAddress string `env:"RUN_ADDRESS"`

	OrdersDatabaseDSN     string `env:"ORDERS_DATABASE_URI"`
	OrdersMigrationsDir   string `env:"ORDERS_MIGRATIONS_DIR"`
	PaymentsDatabaseDSN   string `env:"PAYMENTS_DATABASE_URI"`
	PaymentsMigrationsDir string `env:"PAYMENTS_MIGRATIONS_DIR"`

	JWTSecret string `env:"JWT_SECRET"`

	QueryTimeout      time.Duration `env:"STORE_QUERY_TIMEOUT"`
	MaxConns          int32         `env:"STORE_MAX_CONNS"`
	MetricsWorkers    int           `env:"METRICS_WORKERS"`
	DashboardCacheTTL time.Duration `env:"DASHBOARD_CACHE_TTL"`

	LogFile string `env:"LOG_FILE"`
}

// PaymentsConfigured false, если строка подключения к хранилищу платежей не задана.
func (c *Config) PaymentsConfigured() bool {
	return c.PaymentsDatabaseDSN != ""
}

// LoadConfig читает необязательный .env, затем переменные окружения и флаги командной строки.
// Переменные окружения имеют приоритет над флагами.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}
	return loadConfig(os.Args[1:])
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadConfig(args []string) (*Config, error) {
	var envConfig Config
	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	flagsConfig, flagsErr := loadFlags(args)
	if flagsErr != nil {
		return nil, fmt.Errorf("parse flags: %s", flagsErr.Error())
	}

	conf := mergeConfig(&envConfig, flagsConfig)
	if err := validate(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func loadFlags(args []string) (*Config, error) {
	var flagConfig Config
	var maxConns int

	flags := flag.NewFlagSet("admin", flag.ContinueOnError)
	flags.StringVar(&flagConfig.RunAddress, "a", defaultRunAddress, "Run address in format host:port")
	flags.StringVar(&flagConfig.OrdersDatabaseDSN, "d", "", "Orders database DSN")
	flags.StringVar(&flagConfig.PaymentsDatabaseDSN, "p", "", "Payments database DSN")
	flags.StringVar(&flagConfig.OrdersMigrationsDir, "m", "", "Orders database migrations directory")
	flags.StringVar(&flagConfig.PaymentsMigrationsDir, "pm", "", "Payments database migrations directory")
	flags.StringVar(&flagConfig.JWTSecret, "j", "", "JWT secret")
	flags.DurationVar(&flagConfig.QueryTimeout, "t", defaultQueryTimeout, "Store query timeout")
	flags.IntVar(&maxConns, "c", defaultMaxConns, "Max connections per store pool")
	flags.IntVar(&flagConfig.MetricsWorkers, "w", defaultMetricsWorkers, "Users processed concurrently per page")
	flags.DurationVar(&flagConfig.DashboardCacheTTL, "ttl", defaultDashboardCacheTTL, "Dashboard cache TTL")
	flags.StringVar(&flagConfig.LogFile, "l", "", "Log file path, empty to log to stdout only")

	if err := flags.Parse(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	flagConfig.MaxConns = int32(maxConns) //nolint:gosec
	return &flagConfig, nil
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:            defaultIfZero(envConfig.RunAddress, flagsConfig.RunAddress),
		OrdersDatabaseDSN:     defaultIfZero(envConfig.OrdersDatabaseDSN, flagsConfig.OrdersDatabaseDSN),
		OrdersMigrationsDir:   defaultIfZero(envConfig.OrdersMigrationsDir, flagsConfig.OrdersMigrationsDir),
		PaymentsDatabaseDSN:   defaultIfZero(envConfig.PaymentsDatabaseDSN, flagsConfig.PaymentsDatabaseDSN),
		PaymentsMigrationsDir: defaultIfZero(envConfig.PaymentsMigrationsDir, flagsConfig.PaymentsMigrationsDir),
		JWTSecret:             defaultIfZero(envConfig.JWTSecret, flagsConfig.JWTSecret),
		QueryTimeout:          defaultIfZero(envConfig.QueryTimeout, flagsConfig.QueryTimeout),
		MaxConns:              defaultIfZero(envConfig.MaxConns, flagsConfig.MaxConns),
		MetricsWorkers:        defaultIfZero(envConfig.MetricsWorkers, flagsConfig.MetricsWorkers),
		DashboardCacheTTL:     defaultIfZero(envConfig.DashboardCacheTTL, flagsConfig.DashboardCacheTTL),
		LogFile:               defaultIfZero(envConfig.LogFile, flagsConfig.LogFile),
	}
}

func validate(conf *Config) error {
	if conf.OrdersDatabaseDSN == "" {
		return ErrOrdersDSNNotSet
	}
	if conf.JWTSecret == "" {
		return ErrJWTSecretNotSet
	}
	if conf.QueryTimeout <= 0 {
		return fmt.Errorf("store query timeout must be positive, got %s", conf.QueryTimeout)
	}
	if conf.MaxConns < 1 {
		return fmt.Errorf("store max conns must be positive, got %d", conf.MaxConns)
	}
	if conf.MetricsWorkers < 1 {
		return fmt.Errorf("metrics workers must be positive, got %d", conf.MetricsWorkers)
	}
	return nil
}

func defaultIfZero[T comparable](value T, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}
