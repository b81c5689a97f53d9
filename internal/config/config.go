// config - источник загрузки конфигурации notification-extension.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	Backend   BackendConfig   `yaml:"backend"`
	Extension ExtensionConfig `yaml:"extension"`
	Redis     RedisConfig     `yaml:"redis"`
	DB        DBConfig        `yaml:"db"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Crypto    CryptoConfig    `yaml:"crypto"`
}

// HTTPConfig — хост-сервер, принимающий пробуждения (wake-ups).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50095"`

	// AdminToken — Bearer-токен оператора для /v1/accounts; пусто — без проверки.
	AdminToken string `yaml:"admin_token" env:"HTTP_ADMIN_TOKEN"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// BackendConfig — REST API мессенджера (access, notifications).
type BackendConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"BACKEND_BASE_URL"        env-default:"https://prod-nginz-https.wire.com"`
	UserAgent      string        `yaml:"user_agent"      env:"BACKEND_USER_AGENT"      env-default:"notification-extension"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"BACKEND_REQUEST_TIMEOUT" env-default:"10s"`
}

// ExtensionConfig — поведение пайплайна.
// JobBudget — бюджет времени одного пробуждения (аналог лимита ОС), применяется хостом.
// EventRetention — сколько хранить расшифрованные события; чистка раз в RetentionInterval.
type ExtensionConfig struct {
	JobBudget         time.Duration `yaml:"job_budget"         env:"EXTENSION_JOB_BUDGET"         env-default:"25s"`
	DebugMessages     bool          `yaml:"debug_messages"     env:"EXTENSION_DEBUG_MESSAGES"     env-default:"false"`
	Title             string        `yaml:"title"              env:"EXTENSION_TITLE"`
	EventRetention    time.Duration `yaml:"event_retention"    env:"EXTENSION_EVENT_RETENTION"    env-default:"168h"`
	RetentionInterval time.Duration `yaml:"retention_interval" env:"EXTENSION_RETENTION_INTERVAL" env-default:"1h"`
}

// RedisConfig — хранилище cookie аккаунтов и реестр активных звонков.
// Пустой URL — in-memory реализации (только для local).
type RedisConfig struct {
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`
	Prefix   string `yaml:"prefix"    env:"REDIS_PREFIX" env-default:"nse:"`
}

// DBConfig — хранилище расшифрованных событий.
type DBConfig struct {
	DatabaseURL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
}

// KafkaConfig — опциональный источник пробуждений и приёмники результатов.
// Пустой Brokers отключает Kafka целиком.
type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"             env:"KAFKA_BROKERS"`
	GroupID            string   `yaml:"group_id"            env:"KAFKA_GROUP_ID"            env-default:"notification-extension"`
	WakeupsTopic       string   `yaml:"wakeups_topic"       env:"KAFKA_WAKEUPS_TOPIC"       env-default:"wakeups"`
	NotificationsTopic string   `yaml:"notifications_topic" env:"KAFKA_NOTIFICATIONS_TOPIC" env-default:"notifications"`
	VoIPTopic          string   `yaml:"voip_topic"          env:"KAFKA_VOIP_TOPIC"          env-default:"voip"`
}

func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// CryptoConfig — мастер-ключ для вывода ключей аккаунтов (hex, 32 байта).
type CryptoConfig struct {
	MasterKey string `yaml:"master_key" env:"CRYPTO_MASTER_KEY" env-required:"true"`
}

// ErrMissingRequired — обязательное поле задано, но пустое.
// cleanenv проверяет только наличие переменной, не её значение.
var ErrMissingRequired = errors.New("required config value is empty")

func (c *Config) validate() error {
	switch {
	case c.DB.DatabaseURL == "":
		return fmt.Errorf("%w: DATABASE_URL", ErrMissingRequired)
	case c.Crypto.MasterKey == "":
		return fmt.Errorf("%w: CRYPTO_MASTER_KEY", ErrMissingRequired)
	}

	return nil
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load читает конфигурацию и проверяет обязательные поля.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	return &cfg, nil
}
