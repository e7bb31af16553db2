package workspace

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/meukanban/kanban-api/internal/domain/model"
	"github.com/meukanban/kanban-api/internal/domain/repository"
	"github.com/meukanban/kanban-api/internal/infra/metrics"
	"github.com/meukanban/kanban-api/pkg/cache"
	apperrors "github.com/meukanban/kanban-api/pkg/errors"
)

const cacheTTL = 5 * time.Minute

// Service gerencia os workspaces de um usuário: listagem, criação,
// troca do ativo e exclusão, mantendo o ponteiro ativo consistente.
type Service struct {
	users   repository.UserRepository
	tasks   repository.TaskRepository
	cache   cache.Cache
	logger  *zap.Logger
	metrics *metrics.APIMetrics

	// cascadeDelete controla se a exclusão de um workspace também
	// remove suas tarefas. Desligado, as tarefas ficam órfãs no banco.
	cascadeDelete bool
}

// NewService cria um novo serviço de workspaces
func NewService(users repository.UserRepository, tasks repository.TaskRepository, c cache.Cache, logger *zap.Logger, cascadeDelete bool) *Service {
	return &Service{
		users:         users,
		tasks:         tasks,
		cache:         c,
		logger:        logger,
		cascadeDelete: cascadeDelete,
	}
}

// SetMetrics configura o objeto de métricas
func (s *Service) SetMetrics(m *metrics.APIMetrics) {
	s.metrics = m
}

// ListResult é a resposta das operações de workspace
type ListResult struct {
	Workspaces      []model.Workspace `json:"workspaces"`
	ActiveWorkspace string            `json:"activeWorkspace"`
}

func cacheKey(userID string) string {
	return "workspaces:" + userID
}

// List retorna os workspaces do usuário e o ativo resolvido: o
// armazenado, ou o primeiro da lista, ou o padrão se a lista for vazia
func (s *Service) List(ctx context.Context, userID string) (*ListResult, error) {
	var result ListResult

	key := cacheKey(userID)
	found, err := s.cache.Get(ctx, key, &result)
	if err != nil {
		s.logger.Error("Erro ao buscar workspaces do cache", zap.Error(err))
		// Seguir para o repositório em caso de erro de cache
	} else if found {
		return &result, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NotFound("Usuário", err)
		}
		return nil, apperrors.StoreUnavailable("", err)
	}

	result = ListResult{
		Workspaces:      user.Workspaces,
		ActiveWorkspace: user.ResolveActiveWorkspace(),
	}

	if err := s.cache.Set(ctx, key, result, cacheTTL); err != nil {
		s.logger.Warn("Erro ao armazenar workspaces no cache", zap.Error(err))
	}

	return &result, nil
}

// Create adiciona um workspace ao fim da lista do usuário. Se já existe
// um workspace com o mesmo nome a operação é um no-op bem-sucedido:
// retorna a lista inalterada, sem erro de duplicidade.
func (s *Service) Create(ctx context.Context, userID, name, description, icon string) (*ListResult, error) {
	if name == "" {
		return nil, apperrors.InvalidInput("Nome inválido", nil)
	}

	if icon == "" {
		icon = model.DefaultWorkspaceIcon
	}

	user, err := s.users.MutateWorkspaces(ctx, userID, func(u *model.User) error {
		if u.HasWorkspace(name) {
			return nil
		}
		u.Workspaces = append(u.Workspaces, model.Workspace{
			Name:        name,
			Description: description,
			Icon:        icon,
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NotFound("Usuário", err)
		}
		return nil, apperrors.StoreUnavailable("", err)
	}

	s.invalidate(ctx, userID)

	return &ListResult{
		Workspaces:      user.Workspaces,
		ActiveWorkspace: user.ResolveActiveWorkspace(),
	}, nil
}

// SetActive define o workspace ativo do usuário. Não há verificação de
// existência na lista: o sistema é permissivo e a leitura tolera
// referências penduradas.
func (s *Service) SetActive(ctx context.Context, userID, name string) (string, error) {
	if err := s.users.SetActiveWorkspace(ctx, userID, name); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperrors.NotFound("Usuário", err)
		}
		return "", apperrors.StoreUnavailable("", err)
	}

	s.invalidate(ctx, userID)

	return name, nil
}

// Delete remove toda entrada com o nome dado da lista do usuário. Se a
// entrada removida era a ativa, o ponteiro é reatribuído ao primeiro
// workspace restante, ou ao padrão quando não resta nenhum.
func (s *Service) Delete(ctx context.Context, userID, name string) (*ListResult, error) {
	user, err := s.users.MutateWorkspaces(ctx, userID, func(u *model.User) error {
		filtered := u.Workspaces[:0]
		for _, w := range u.Workspaces {
			if w.Name != name {
				filtered = append(filtered, w)
			}
		}
		u.Workspaces = filtered

		if u.ActiveWorkspace == name {
			if len(u.Workspaces) > 0 {
				u.ActiveWorkspace = u.Workspaces[0].Name
			} else {
				u.ActiveWorkspace = model.DefaultWorkspaceName
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NotFound("Usuário", err)
		}
		return nil, apperrors.StoreUnavailable("", err)
	}

	s.invalidate(ctx, userID)
	s.reapTasks(ctx, userID, name)

	return &ListResult{
		Workspaces:      user.Workspaces,
		ActiveWorkspace: user.ResolveActiveWorkspace(),
	}, nil
}

// reapTasks trata as tarefas do workspace excluído: remove quando a
// cascata está habilitada, caso contrário apenas registra as órfãs
func (s *Service) reapTasks(ctx context.Context, userID, name string) {
	if s.cascadeDelete {
		deleted, err := s.tasks.DeleteByWorkspace(ctx, userID, name)
		if err != nil {
			s.logger.Error("Erro ao excluir tarefas do workspace removido",
				zap.String("workspace", name),
				zap.Error(err))
			return
		}
		s.logger.Info("Tarefas do workspace removidas em cascata",
			zap.String("workspace", name),
			zap.Int64("deleted", deleted))
		return
	}

	orphaned, err := s.tasks.CountByWorkspace(ctx, userID, name)
	if err != nil {
		s.logger.Warn("Erro ao contar tarefas órfãs", zap.Error(err))
		return
	}
	if orphaned > 0 {
		s.logger.Warn("Workspace excluído deixou tarefas órfãs",
			zap.String("workspace", name),
			zap.Int64("orphaned", orphaned))
		if s.metrics != nil {
			s.metrics.OrphanedTasks(orphaned)
		}
	}
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, cacheKey(userID)); err != nil {
		s.logger.Warn("Erro ao invalidar cache de workspaces", zap.Error(err))
	}
}
