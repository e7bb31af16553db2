package repository

import (
	"context"
	"errors"

	"github.com/meukanban/kanban-api/internal/domain/model"
)

var (
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailInUse         = errors.New("email já está em uso")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
)

// UserRepository define a interface para armazenamento de usuários
type UserRepository interface {
	// GetByID obtém um usuário pelo identificador
	GetByID(ctx context.Context, id string) (*model.User, error)

	// GetByEmail obtém um usuário pelo email
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Authenticate verifica email e senha e retorna a identidade
	Authenticate(ctx context.Context, email, password string) (*model.User, error)

	// Create persiste um novo usuário com a senha já com hash
	Create(ctx context.Context, user *model.User, hashedPassword string) error

	// MutateWorkspaces executa fn sobre o estado atual armazenado do
	// usuário, sob um ponto de serialização por usuário, e persiste a
	// lista de workspaces e o ponteiro ativo resultantes. Fecha a
	// corrida de leitura-modificação-escrita entre operações
	// concorrentes sobre o mesmo usuário.
	MutateWorkspaces(ctx context.Context, userID string, fn func(u *model.User) error) (*model.User, error)

	// SetActiveWorkspace define o workspace ativo incondicionalmente,
	// sem verificar existência na lista
	SetActiveWorkspace(ctx context.Context, userID, name string) error
}
