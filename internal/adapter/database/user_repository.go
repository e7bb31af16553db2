package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meukanban/kanban-api/internal/domain/model"
	"github.com/meukanban/kanban-api/internal/domain/repository"
)

// UserRepository implementa repository.UserRepository sobre GORM
type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewUserRepository cria um novo repositório de usuários
func NewUserRepository(db *gorm.DB, logger *zap.Logger) repository.UserRepository {
	tracer := otel.GetTracerProvider().Tracer("kanban-api.repository.user")

	return &UserRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// GetByID obtém um usuário pelo identificador
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"UserRepository.GetByID",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "users"),
		),
	)
	defer span.End()

	var entity model.UserEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "user not found")
			return nil, repository.ErrUserNotFound
		}
		r.logger.Error("falha ao buscar usuário", zap.String("id", id), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return entityToUser(&entity)
}

// GetByEmail obtém um usuário pelo email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"UserRepository.GetByEmail",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "users"),
		),
	)
	defer span.End()

	var entity model.UserEntity
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "user not found")
			return nil, repository.ErrUserNotFound
		}
		r.logger.Error("falha ao buscar usuário por email", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return entityToUser(&entity)
}

// Authenticate verifica email e senha e retorna a identidade
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.Authenticate")
	defer span.End()

	var entity model.UserEntity
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "user not found")
			return nil, repository.ErrInvalidCredentials
		}
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(entity.Password), []byte(password)); err != nil {
		span.SetStatus(codes.Error, "password mismatch")
		return nil, repository.ErrInvalidCredentials
	}

	span.SetStatus(codes.Ok, "")
	return entityToUser(&entity)
}

// Create persiste um novo usuário com a senha já com hash
func (r *UserRepository) Create(ctx context.Context, user *model.User, hashedPassword string) error {
	ctx, span := r.tracer.Start(
		ctx,
		"UserRepository.Create",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "users"),
		),
	)
	defer span.End()

	workspacesJSON, err := json.Marshal(user.Workspaces)
	if err != nil {
		span.SetStatus(codes.Error, "marshal failure")
		return fmt.Errorf("falha ao serializar workspaces: %w", err)
	}

	entity := model.UserEntity{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Password:        hashedPassword,
		WorkspacesJSON:  string(workspacesJSON),
		ActiveWorkspace: user.ActiveWorkspace,
	}

	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		r.logger.Error("falha ao criar usuário", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao criar usuário: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// MutateWorkspaces executa fn sobre o estado atual do usuário dentro de
// uma transação com a linha bloqueada (SELECT ... FOR UPDATE). Duas
// criações concorrentes do mesmo workspace serializam aqui: a segunda
// observa a lista já atualizada e vira no-op.
func (r *UserRepository) MutateWorkspaces(ctx context.Context, userID string, fn func(u *model.User) error) (*model.User, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"UserRepository.MutateWorkspaces",
		trace.WithAttributes(
			attribute.String("db.operation", "update"),
			attribute.String("db.table", "users"),
		),
	)
	defer span.End()

	var result *model.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("id = ?", userID)
		// SQLite não aceita SELECT ... FOR UPDATE; nele a serialização
		// vem do bloqueio de escrita do próprio banco
		if tx.Dialector.Name() != "sqlite" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var entity model.UserEntity
		if err := query.First(&entity).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrUserNotFound
			}
			return fmt.Errorf("falha ao buscar usuário: %w", err)
		}

		user, err := entityToUser(&entity)
		if err != nil {
			return err
		}

		if err := fn(user); err != nil {
			return err
		}

		workspacesJSON, err := json.Marshal(user.Workspaces)
		if err != nil {
			return fmt.Errorf("falha ao serializar workspaces: %w", err)
		}

		updates := map[string]interface{}{
			"workspaces":       string(workspacesJSON),
			"active_workspace": user.ActiveWorkspace,
		}
		if err := tx.Model(&model.UserEntity{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return fmt.Errorf("falha ao atualizar workspaces: %w", err)
		}

		result = user
		return nil
	})

	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			span.SetStatus(codes.Error, "user not found")
		} else {
			span.SetStatus(codes.Error, "mutation failure")
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("workspaces.count", len(result.Workspaces)))
	span.SetStatus(codes.Ok, "")
	return result, nil
}

// SetActiveWorkspace define o workspace ativo incondicionalmente
func (r *UserRepository) SetActiveWorkspace(ctx context.Context, userID, name string) error {
	ctx, span := r.tracer.Start(
		ctx,
		"UserRepository.SetActiveWorkspace",
		trace.WithAttributes(
			attribute.String("db.operation", "update"),
			attribute.String("db.table", "users"),
		),
	)
	defer span.End()

	result := r.db.WithContext(ctx).Model(&model.UserEntity{}).
		Where("id = ?", userID).
		Update("active_workspace", name)
	if result.Error != nil {
		r.logger.Error("falha ao atualizar workspace ativo", zap.Error(result.Error))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao atualizar workspace ativo: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		span.SetStatus(codes.Error, "user not found")
		return repository.ErrUserNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// entityToUser converte a entidade de banco para o modelo de domínio,
// deserializando a lista de workspaces
func entityToUser(entity *model.UserEntity) (*model.User, error) {
	workspaces := []model.Workspace{}
	if entity.WorkspacesJSON != "" {
		if err := json.Unmarshal([]byte(entity.WorkspacesJSON), &workspaces); err != nil {
			return nil, fmt.Errorf("falha ao deserializar workspaces: %w", err)
		}
	}

	return &model.User{
		ID:              entity.ID,
		Name:            entity.Name,
		Email:           entity.Email,
		Workspaces:      workspaces,
		ActiveWorkspace: entity.ActiveWorkspace,
	}, nil
}
