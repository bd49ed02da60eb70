package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Backends de armazenamento suportados.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config armazena todas as configurações do GoCine, lidas das variáveis de ambiente.
type Config struct {
	// Geral
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENV" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	// Armazenamento: "memory" ou "postgres"
	StorageBackend string `env:"STORAGE_BACKEND" env-default:"memory"`
	DatabaseURL    string `env:"DATABASE_URL"`
	DBTimeoutSec   int    `env:"DB_TIMEOUT_SEC" env-default:"5"`

	// Cache (Redis)
	RedisAddr    string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	CacheEnabled bool   `env:"CACHE_ENABLED" env-default:"false"`
	CacheTTLSec  int    `env:"CACHE_TTL_SEC" env-default:"60"`

	// Rate Limiting
	RateLimitMaxRequests int `env:"RATE_LIMIT_MAX_REQUESTS" env-default:"100"`
	RateLimitPeriodSec   int `env:"RATE_LIMIT_PERIOD_SEC" env-default:"60"`

	ShutdownTimeoutSec int `env:"SHUTDOWN_TIMEOUT_SEC" env-default:"15"`
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente e valida as combinações.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("falha ao ler configuração: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL deve ser definida quando STORAGE_BACKEND=%s", StoragePostgres)
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND inválido: %q (use %q ou %q)", c.StorageBackend, StorageMemory, StoragePostgres)
	}
	if c.DBTimeoutSec <= 0 || c.CacheTTLSec <= 0 || c.RateLimitPeriodSec <= 0 {
		return fmt.Errorf("timeouts e períodos devem ser positivos")
	}
	return nil
}

// DBTimeout é o limite de cada operação no banco.
func (c *Config) DBTimeout() time.Duration { return time.Duration(c.DBTimeoutSec) * time.Second }

// CacheTTL é a validade das entradas de filme no Redis.
func (c *Config) CacheTTL() time.Duration { return time.Duration(c.CacheTTLSec) * time.Second }

// RateLimitPeriod é a janela do limitador por IP.
func (c *Config) RateLimitPeriod() time.Duration {
	return time.Duration(c.RateLimitPeriodSec) * time.Second
}

// ShutdownTimeout é o prazo do graceful shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}
