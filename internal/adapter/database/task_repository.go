package database

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meukanban/kanban-api/internal/domain/model"
	"github.com/meukanban/kanban-api/internal/domain/repository"
)

// TaskRepository implementa repository.TaskRepository sobre GORM
type TaskRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewTaskRepository cria um novo repositório de tarefas
func NewTaskRepository(db *gorm.DB, logger *zap.Logger) repository.TaskRepository {
	tracer := otel.GetTracerProvider().Tracer("kanban-api.repository.task")

	return &TaskRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// ListByWorkspace retorna as tarefas do usuário no workspace, da mais
// recente para a mais antiga
func (r *TaskRepository) ListByWorkspace(ctx context.Context, userID, workspace string) ([]*model.Task, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"TaskRepository.ListByWorkspace",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "tasks"),
			attribute.String("task.workspace", workspace),
		),
	)
	defer span.End()

	var entities []model.TaskEntity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND workspace = ?", userID, workspace).
		Order("created_at DESC").
		Find(&entities).Error
	if err != nil {
		r.logger.Error("falha ao buscar tarefas",
			zap.String("workspace", workspace),
			zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar tarefas: %w", err)
	}

	tasks := make([]*model.Task, 0, len(entities))
	for i := range entities {
		tasks = append(tasks, taskEntityToModel(&entities[i]))
	}

	span.SetAttributes(attribute.Int("tasks.count", len(tasks)))
	span.SetStatus(codes.Ok, "")
	return tasks, nil
}

// Create persiste uma nova tarefa
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"TaskRepository.Create",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "tasks"),
		),
	)
	defer span.End()

	entity := model.TaskEntity{
		ID:          task.ID,
		UserID:      task.UserID,
		Workspace:   task.Workspace,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
	}

	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		r.logger.Error("falha ao criar tarefa", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao criar tarefa: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return taskEntityToModel(&entity), nil
}

// Update aplica uma atualização parcial a uma tarefa do usuário. Uma
// tarefa inexistente ou de outro dono resulta em ErrTaskNotFound.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID string, update model.TaskUpdate) (*model.Task, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"TaskRepository.Update",
		trace.WithAttributes(
			attribute.String("db.operation", "update"),
			attribute.String("db.table", "tasks"),
		),
	)
	defer span.End()

	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Status != nil {
		fields["status"] = string(*update.Status)
	}

	var entity model.TaskEntity
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", taskID, userID).First(&entity).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrTaskNotFound
			}
			return fmt.Errorf("falha ao buscar tarefa: %w", err)
		}

		if len(fields) == 0 {
			return nil
		}

		if err := tx.Model(&entity).Updates(fields).Error; err != nil {
			return fmt.Errorf("falha ao atualizar tarefa: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			span.SetStatus(codes.Error, "task not found")
		} else {
			r.logger.Error("falha ao atualizar tarefa", zap.String("task_id", taskID), zap.Error(err))
			span.SetStatus(codes.Error, "database error")
		}
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return taskEntityToModel(&entity), nil
}

// Delete remove uma tarefa do usuário
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	ctx, span := r.tracer.Start(
		ctx,
		"TaskRepository.Delete",
		trace.WithAttributes(
			attribute.String("db.operation", "delete"),
			attribute.String("db.table", "tasks"),
		),
	)
	defer span.End()

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&model.TaskEntity{})
	if result.Error != nil {
		r.logger.Error("falha ao excluir tarefa", zap.String("task_id", taskID), zap.Error(result.Error))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao excluir tarefa: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		span.SetStatus(codes.Error, "task not found")
		return repository.ErrTaskNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// CountByWorkspace conta as tarefas do usuário no workspace
func (r *TaskRepository) CountByWorkspace(ctx context.Context, userID, workspace string) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "TaskRepository.CountByWorkspace")
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Model(&model.TaskEntity{}).
		Where("user_id = ? AND workspace = ?", userID, workspace).
		Count(&count).Error
	if err != nil {
		span.SetStatus(codes.Error, "database error")
		return 0, fmt.Errorf("falha ao contar tarefas: %w", err)
	}

	span.SetAttributes(attribute.Int64("tasks.count", count))
	span.SetStatus(codes.Ok, "")
	return count, nil
}

// DeleteByWorkspace remove todas as tarefas do usuário no workspace
func (r *TaskRepository) DeleteByWorkspace(ctx context.Context, userID, workspace string) (int64, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"TaskRepository.DeleteByWorkspace",
		trace.WithAttributes(
			attribute.String("db.operation", "delete"),
			attribute.String("db.table", "tasks"),
			attribute.String("task.workspace", workspace),
		),
	)
	defer span.End()

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND workspace = ?", userID, workspace).
		Delete(&model.TaskEntity{})
	if result.Error != nil {
		r.logger.Error("falha ao excluir tarefas do workspace",
			zap.String("workspace", workspace),
			zap.Error(result.Error))
		span.SetStatus(codes.Error, "database error")
		return 0, fmt.Errorf("falha ao excluir tarefas do workspace: %w", result.Error)
	}

	span.SetAttributes(attribute.Int64("tasks.deleted", result.RowsAffected))
	span.SetStatus(codes.Ok, "")
	return result.RowsAffected, nil
}

// taskEntityToModel converte a entidade de banco para o modelo de domínio
func taskEntityToModel(entity *model.TaskEntity) *model.Task {
	return &model.Task{
		ID:          entity.ID,
		Title:       entity.Title,
		Description: entity.Description,
		Status:      model.Status(entity.Status),
		Workspace:   entity.Workspace,
		UserID:      entity.UserID,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}
