package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meukanban/kanban-api/pkg/config"
)

func main() {
	var (
		outputPath string
		force      bool
	)

	flag.StringVar(&outputPath, "output", "config.yaml", "Caminho para o arquivo de configuração de saída")
	flag.BoolVar(&force, "force", false, "Sobrescrever arquivo se existir")
	flag.Parse()

	if _, err := os.Stat(outputPath); err == nil && !force {
		fmt.Printf("Erro: arquivo %s já existe. Use --force para sobrescrever.\n", outputPath)
		os.Exit(1)
	}

	// Configuração com valores padrão
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
			TLS:            false,
			CertFile:       "",
			KeyFile:        "",
			Domains:        []string{},
		},
		Database: config.DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "./kanban.db",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: 1 * time.Hour,
			LogLevel:        "warn",
			SlowThreshold:   200 * time.Millisecond,
			MigrationDir:    "./migrations",
			SkipMigrations:  false,
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Type:    "memory",
			TTL:     5 * time.Minute,
			Redis: config.RedisOptions{
				Address:  "localhost:6379",
				Password: "",
				DB:       0,
			},
		},
		Auth: config.AuthConfig{
			JWTSecret:       "your-secret-key-with-at-least-32-bytes",
			TokenExpiration: 24 * time.Hour,
			PasswordMinLen:  6,
		},
		Metrics: config.MetricsConfig{
			Enabled:        true,
			PrometheusPath: "/metrics",
		},
		Logging: config.LoggingConfig{
			Level:      "info",
			Format:     "json",
			Production: true,
		},
		Tracing: config.TracingConfig{
			Enabled:       false,
			ServiceName:   "kanban-api",
			CollectorURL:  "localhost:4317",
			SamplingRatio: 0.1,
		},
		Features: config.FeaturesConfig{
			CascadeDelete: false,
			RateLimiter:   true,
			HealthCheck:   true,
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("Erro ao serializar configuração: %v\n", err)
		os.Exit(1)
	}

	err = os.WriteFile(outputPath, data, 0644)
	if err != nil {
		fmt.Printf("Erro ao escrever arquivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Arquivo de configuração gerado em: %s\n", outputPath)
}
