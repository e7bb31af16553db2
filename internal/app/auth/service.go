package auth

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/meukanban/kanban-api/internal/domain/model"
	"github.com/meukanban/kanban-api/internal/domain/repository"
	apperrors "github.com/meukanban/kanban-api/pkg/errors"
	"github.com/meukanban/kanban-api/pkg/security"
)

var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// Service gerencia registro, login e validação de sessão. O núcleo de
// workspaces e tarefas nunca autentica: recebe o userId já resolvido.
type Service struct {
	keyManager      *security.KeyManager
	users           repository.UserRepository
	logger          *zap.Logger
	tokenExpiration time.Duration
	passwordMinLen  int
}

// NewService cria um novo serviço de autenticação
func NewService(keyManager *security.KeyManager, users repository.UserRepository, logger *zap.Logger, tokenExpiration time.Duration, passwordMinLen int) *Service {
	if tokenExpiration <= 0 {
		tokenExpiration = 24 * time.Hour
	}
	if passwordMinLen <= 0 {
		passwordMinLen = 8
	}

	return &Service{
		keyManager:      keyManager,
		users:           users,
		logger:          logger,
		tokenExpiration: tokenExpiration,
		passwordMinLen:  passwordMinLen,
	}
}

// Register cria um novo usuário com os três workspaces padrão
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if name == "" {
		return nil, apperrors.InvalidInput("O nome é obrigatório", nil)
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.InvalidInput("Por favor, insira um email válido", nil)
	}
	if len(password) < s.passwordMinLen {
		return nil, apperrors.InvalidInput("A senha é muito curta", nil)
	}

	// Email é único entre todos os usuários
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.Conflict("Email já está em uso", repository.ErrEmailInUse)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperrors.StoreUnavailable("", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Erro ao gerar hash da senha", zap.Error(err))
		return nil, apperrors.InternalServer("Erro ao processar senha", err)
	}

	user := &model.User{
		ID:              uuid.New().String(),
		Name:            name,
		Email:           email,
		Workspaces:      model.DefaultWorkspaces(),
		ActiveWorkspace: model.DefaultWorkspaceName,
	}

	if err := s.users.Create(ctx, user, string(hashed)); err != nil {
		return nil, apperrors.StoreUnavailable("", err)
	}

	s.logger.Info("Usuário criado com sucesso", zap.String("user_id", user.ID))
	return user, nil
}

// Login autentica um usuário e gera um token de sessão
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			s.logger.Warn("Falha na autenticação", zap.String("email", email))
			return "", nil, apperrors.Unauthorized("Credenciais inválidas", err)
		}
		return "", nil, apperrors.StoreUnavailable("", err)
	}

	token, err := s.keyManager.GenerateToken(user.ID, user.Email, s.tokenExpiration)
	if err != nil {
		s.logger.Error("Falha ao gerar token", zap.String("user_id", user.ID), zap.Error(err))
		return "", nil, apperrors.InternalServer("Erro ao gerar token", err)
	}

	s.logger.Info("Login bem-sucedido", zap.String("user_id", user.ID))
	return token, user, nil
}

// ValidateToken valida um token de sessão e retorna o usuário
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.keyManager.VerifyToken(tokenString)
	if err != nil {
		return nil, apperrors.Unauthorized("Token inválido ou expirado", err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Error("Usuário do token não encontrado", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, apperrors.Unauthorized("Usuário inválido", err)
	}

	return user, nil
}
