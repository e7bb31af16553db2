package security

import (
	"os"

	"github.com/meukanban/kanban-api/pkg/config"
)

// GetJWTSecret obtém o segredo JWT na seguinte ordem:
// 1. Variável de ambiente JWT_SECRET_KEY
// 2. Variável de ambiente KB_AUTH_JWTSECRET
// 3. Arquivo de configuração
func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret != "" {
		return []byte(secret)
	}

	secret = os.Getenv("KB_AUTH_JWTSECRET")
	if secret != "" {
		return []byte(secret)
	}

	cfg, err := config.LoadConfig("./config")
	if err == nil && cfg.Auth.JWTSecret != "" {
		return []byte(cfg.Auth.JWTSecret)
	}

	return nil
}
