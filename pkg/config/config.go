package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config representa a configuração completa da aplicação
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
	Tracing  TracingConfig
	Features FeaturesConfig
}

// ServerConfig contém configurações do servidor HTTP
type ServerConfig struct {
	Port           int
	Host           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	TLS            bool
	CertFile       string
	KeyFile        string
	Domains        []string
}

// DatabaseConfig contém configurações do banco de dados
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	SlowThreshold   time.Duration
	MigrationDir    string
	SkipMigrations  bool
}

// RedisOptions contém configurações específicas para Redis
type RedisOptions struct {
	Address      string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

// CacheConfig contém configurações do cache
type CacheConfig struct {
	Enabled bool
	Type    string // redis, memory
	TTL     time.Duration
	Redis   RedisOptions
}

// AuthConfig contém configurações de autenticação
type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
	PasswordMinLen  int
}

// MetricsConfig contém configurações de métricas
type MetricsConfig struct {
	Enabled        bool
	PrometheusPath string
}

// LoggingConfig contém configurações de log
type LoggingConfig struct {
	Level      string
	Format     string
	Production bool
}

// TracingConfig contém configurações de rastreamento distribuído
type TracingConfig struct {
	Enabled       bool
	ServiceName   string
	CollectorURL  string
	SamplingRatio float64
}

// FeaturesConfig habilita ou desabilita comportamentos opcionais
type FeaturesConfig struct {
	// CascadeDelete remove as tarefas de um workspace quando ele é
	// excluído. Desligado por padrão: tarefas órfãs permanecem no
	// banco, inacessíveis pela listagem por workspace.
	CascadeDelete bool
	RateLimiter   bool
	HealthCheck   bool
}

// LoadConfig carrega a configuração de diversas fontes (arquivo, env, defaults)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/kanbanapi")

	if err := v.ReadInConfig(); err != nil {
		// Ignorar se o arquivo não for encontrado; defaults e env bastam
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
	}

	// Variáveis de ambiente com prefixo KB_
	v.SetEnvPrefix("KB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("erro ao mapear configuração: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults define valores padrão para a configuração
func setDefaults(v *viper.Viper) {
	// Servidor
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.readTimeout", "5s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "30s")
	v.SetDefault("server.maxHeaderBytes", 1<<20) // 1 MB
	v.SetDefault("server.tls", false)

	// Banco de dados
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./kanban.db")
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.connMaxLifetime", "1h")
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.slowThreshold", "200ms")
	v.SetDefault("database.migrationDir", "./migrations")
	v.SetDefault("database.skipMigrations", false)

	// Cache
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.pool_size", 10)
	v.SetDefault("cache.redis.min_idle_conns", 5)
	v.SetDefault("cache.redis.read_timeout", "3s")
	v.SetDefault("cache.redis.write_timeout", "3s")
	v.SetDefault("cache.redis.dial_timeout", "5s")

	// Autenticação
	v.SetDefault("auth.tokenExpiration", "24h")
	v.SetDefault("auth.passwordMinLen", 8)

	// Métricas
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.prometheusPath", "/metrics")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.production", true)

	// Tracing
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.serviceName", "kanban-api")
	v.SetDefault("tracing.collectorURL", "localhost:4317")
	v.SetDefault("tracing.samplingRatio", 0.1)

	// Features
	v.SetDefault("features.cascadeDelete", false)
	v.SetDefault("features.rateLimiter", true)
	v.SetDefault("features.healthCheck", true)
}

// validateConfig valida a configuração carregada
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("driver de banco de dados não suportado: %s", config.Database.Driver)
	}

	if config.Cache.Enabled && config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("tipo de cache não suportado: %s", config.Cache.Type)
	}

	if config.Auth.JWTSecret == "" {
		fmt.Println("AVISO: KB_AUTH_JWTSECRET não está definido. Uma chave temporária será usada, mas isso não é recomendado para produção.")
	}

	return nil
}
