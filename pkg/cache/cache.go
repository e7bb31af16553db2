package cache

import (
	"context"
	"time"
)

// Cache é o contrato usado pelo serviço de workspaces para guardar a
// lista de cada usuário entre leituras. Valores são serializados como
// JSON; Get deserializa em dest e informa se a chave existia.
type Cache interface {
	// Set armazena um valor com o tempo de expiração dado
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Get recupera um valor; retorna false sem erro quando a chave não existe
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Delete remove uma chave (invalidação após escrita)
	Delete(ctx context.Context, key string) error

	// Ping verifica se o cache está acessível, para o health check
	Ping(ctx context.Context) error
}
