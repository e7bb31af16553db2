package repository

import (
	"context"
	"errors"

	"github.com/meukanban/kanban-api/internal/domain/model"
)

var ErrTaskNotFound = errors.New("tarefa não encontrada")

// TaskRepository define a interface para armazenamento de tarefas.
// Toda operação é delimitada pelo dono: uma tarefa de outro usuário é
// indistinguível de uma tarefa inexistente.
type TaskRepository interface {
	// ListByWorkspace retorna as tarefas do usuário no workspace,
	// ordenadas da mais recente para a mais antiga
	ListByWorkspace(ctx context.Context, userID, workspace string) ([]*model.Task, error)

	// Create persiste uma nova tarefa
	Create(ctx context.Context, task *model.Task) (*model.Task, error)

	// Update aplica uma atualização parcial a uma tarefa do usuário
	Update(ctx context.Context, userID, taskID string, update model.TaskUpdate) (*model.Task, error)

	// Delete remove uma tarefa do usuário
	Delete(ctx context.Context, userID, taskID string) error

	// CountByWorkspace conta as tarefas do usuário no workspace
	CountByWorkspace(ctx context.Context, userID, workspace string) (int64, error)

	// DeleteByWorkspace remove todas as tarefas do usuário no workspace
	// e retorna quantas foram removidas
	DeleteByWorkspace(ctx context.Context, userID, workspace string) (int64, error)
}
