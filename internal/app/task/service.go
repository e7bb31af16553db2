package task

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meukanban/kanban-api/internal/domain/model"
	"github.com/meukanban/kanban-api/internal/domain/repository"
	"github.com/meukanban/kanban-api/internal/infra/metrics"
	apperrors "github.com/meukanban/kanban-api/pkg/errors"
)

// Service executa operações de tarefas sempre delimitadas pelo dono e,
// na listagem, pelo workspace
type Service struct {
	repo    repository.TaskRepository
	logger  *zap.Logger
	metrics *metrics.APIMetrics
}

// NewService cria um novo serviço de tarefas
func NewService(repo repository.TaskRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// SetMetrics configura o objeto de métricas
func (s *Service) SetMetrics(m *metrics.APIMetrics) {
	s.metrics = m
}

// CreateInput são os campos aceitos na criação de uma tarefa
type CreateInput struct {
	Title       string
	Description string
	Status      string
	Workspace   string
}

// UpdateInput são os campos aceitos na atualização parcial de uma
// tarefa. Campos nil não são alterados; workspace e dono são imutáveis.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *string
}

// List retorna as tarefas do usuário no workspace, da mais recente para
// a mais antiga. Workspace vazio vale como o padrão.
func (s *Service) List(ctx context.Context, userID, workspace string) ([]*model.Task, error) {
	if workspace == "" {
		workspace = model.DefaultWorkspaceName
	}

	tasks, err := s.repo.ListByWorkspace(ctx, userID, workspace)
	if err != nil {
		return nil, apperrors.StoreUnavailable("", err)
	}
	return tasks, nil
}

// Create valida e persiste uma nova tarefa. Status fora do enum é
// rejeitado, nunca coagido para o padrão.
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.InvalidInput("O título é obrigatório", nil)
	}

	status, err := model.ParseStatus(input.Status)
	if err != nil {
		return nil, apperrors.InvalidInput("Status inválido", err)
	}

	workspace := input.Workspace
	if workspace == "" {
		workspace = model.DefaultWorkspaceName
	}

	task := &model.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		Workspace:   workspace,
		UserID:      userID,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, apperrors.StoreUnavailable("", err)
	}

	if s.metrics != nil {
		s.metrics.TaskCreated(string(created.Status))
	}

	s.logger.Info("Tarefa criada",
		zap.String("task_id", created.ID),
		zap.String("workspace", created.Workspace))

	return created, nil
}

// Update aplica uma atualização parcial a uma tarefa do usuário. Uma
// tarefa de outro dono é reportada como NotFound, nunca Forbidden.
func (s *Service) Update(ctx context.Context, userID, taskID string, input UpdateInput) (*model.Task, error) {
	update := model.TaskUpdate{}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.InvalidInput("O título é obrigatório", nil)
		}
		update.Title = &title
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		update.Description = &description
	}

	if input.Status != nil {
		status := model.Status(*input.Status)
		if !status.Valid() {
			return nil, apperrors.InvalidInput("Status inválido", nil)
		}
		update.Status = &status
	}

	updated, err := s.repo.Update(ctx, userID, taskID, update)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperrors.NotFound("Tarefa", err)
		}
		return nil, apperrors.StoreUnavailable("", err)
	}

	return updated, nil
}

// Delete remove uma tarefa do usuário
func (s *Service) Delete(ctx context.Context, userID, taskID string) error {
	if err := s.repo.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperrors.NotFound("Tarefa", err)
		}
		return apperrors.StoreUnavailable("", err)
	}

	s.logger.Info("Tarefa excluída", zap.String("task_id", taskID))
	return nil
}
