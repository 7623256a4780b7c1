package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultFile = "config.yaml"

type HTTPServer struct {
	Port              string        `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
	// ConnectRetries is how many failed pings are retried on startup.
	ConnectRetries uint64 `mapstructure:"connect_retries"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Scheduler struct {
	// Cron expression with a leading seconds field.
	Cron string `mapstructure:"cron"`
}

type RateSource struct {
	BaseURL          string        `mapstructure:"base_url"`
	MaxRetries       uint64        `mapstructure:"max_retries"`
	FetchConcurrency int64         `mapstructure:"fetch_concurrency"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
}

type Notifier struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

type Mailer struct {
	APIKey    string `mapstructure:"sendgrid_api_key"`
	Host      string `mapstructure:"sendgrid_host"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_email_name"`
}

type Kafka struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	RateSource RateSource `mapstructure:"rate_source"`
	Notifier   Notifier   `mapstructure:"notifier"`
	Mailer     Mailer     `mapstructure:"mailer"`
	Kafka      Kafka      `mapstructure:"kafka"`
	Cache      Cache      `mapstructure:"cache"`
}

// Init reads the yaml config at path (DefaultFile when empty), an optional
// .env file and the bound environment variables.
func Init(path string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	if path == "" {
		path = DefaultFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	setDefaults(v)
	bindEnv(v)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_server.read_header_timeout", 10*time.Second)
	v.SetDefault("http_server.idle_timeout", 60*time.Second)
	v.SetDefault("http_server.shutdown_timeout", 10*time.Second)
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("db_server.connect_retries", 5)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("scheduler.cron", "0 */10 7-18 * * 1-5")
	v.SetDefault("rate_source.base_url", "https://themoneyconverter.com/DE")
	v.SetDefault("rate_source.max_retries", 5)
	v.SetDefault("rate_source.fetch_concurrency", 5)
	v.SetDefault("rate_source.fetch_timeout", 30*time.Second)
	v.SetDefault("notifier.workers", 40)
	v.SetDefault("notifier.queue_size", 256)
	v.SetDefault("mailer.sendgrid_host", "https://api.sendgrid.com")
	v.SetDefault("kafka.topic", "exchange-rates-changed")
	v.SetDefault("kafka.group_id", "currencymonitor-notifier")
	v.SetDefault("cache.max_items", 1024)
}

func bindEnv(v *viper.Viper) {
	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")
	_ = v.BindEnv("db_server.connect_retries", "DB_CONNECT_RETRIES")

	// http
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("rate_source.base_url", "RATE_SOURCE_BASE_URL")

	// mailer
	_ = v.BindEnv("mailer.sendgrid_api_key", "SENDGRID_API_KEY")
	_ = v.BindEnv("mailer.from_email", "MAIL_FROM_EMAIL")
	_ = v.BindEnv("mailer.from_email_name", "MAIL_FROM_NAME")

	// kafka
	_ = v.BindEnv("kafka.enabled", "KAFKA_ENABLED")
	_ = v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
}
