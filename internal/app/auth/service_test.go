package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/meukanban/kanban-api/internal/app/auth"
	"github.com/meukanban/kanban-api/internal/domain/model"
	"github.com/meukanban/kanban-api/internal/domain/repository"
	"github.com/meukanban/kanban-api/internal/mocks"
	"github.com/meukanban/kanban-api/internal/testutils"
	apperrors "github.com/meukanban/kanban-api/pkg/errors"
	"github.com/meukanban/kanban-api/pkg/security"
)

func newAuthService(t *testing.T, users *mocks.MockUserRepository) *auth.Service {
	t.Setenv("JWT_SECRET_KEY", "um-segredo-de-teste-com-mais-de-32-bytes")

	logger := testutils.TestLogger(t)
	keyManager, err := security.NewKeyManager(logger)
	require.NoError(t, err)

	return auth.NewService(keyManager, users, logger, time.Hour, 6)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates the user with the default workspaces", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		users.On("GetByEmail", mock.Anything, "maria@example.com").
			Return(nil, repository.ErrUserNotFound).Once()

		var hashed string
		users.On("Create", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				hashed = args.Get(2).(string)
			}).
			Return(nil).Once()

		user, err := service.Register(ctx, "Maria", "maria@example.com", "senha-forte")

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "Maria", user.Name)
		assert.Len(t, user.Workspaces, 3)
		assert.Equal(t, model.DefaultWorkspaceName, user.ActiveWorkspace)
		assert.NotEqual(t, "senha-forte", hashed, "password must be stored hashed")
		users.AssertExpectations(t)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Register(ctx, "Maria", "nao-é-email", "senha-forte")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
		users.AssertNotCalled(t, "Create")
	})

	t.Run("rejects short password", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Register(ctx, "Maria", "maria@example.com", "123")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
	})

	t.Run("duplicate email maps to 409", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		users.On("GetByEmail", mock.Anything, "maria@example.com").
			Return(&model.User{ID: "u1", Email: "maria@example.com"}, nil).Once()

		_, err := service.Register(ctx, "Maria", "maria@example.com", "senha-forte")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperrors.HTTPStatus(err))
		users.AssertNotCalled(t, "Create")
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("valid credentials produce a verifiable token", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		user := &model.User{ID: "u1", Email: "maria@example.com"}

		users.On("Authenticate", mock.Anything, "maria@example.com", "senha-forte").
			Return(user, nil).Once()

		token, loggedIn, err := service.Login(ctx, "maria@example.com", "senha-forte")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user, loggedIn)

		// The token must resolve back to the same user
		users.On("GetByID", mock.Anything, "u1").Return(user, nil).Once()

		validated, err := service.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "u1", validated.ID)
	})

	t.Run("wrong credentials map to 401", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		users.On("Authenticate", mock.Anything, "maria@example.com", "errada").
			Return(nil, repository.ErrInvalidCredentials).Once()

		_, _, err := service.Login(ctx, "maria@example.com", "errada")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatus(err))
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	t.Run("garbage token is rejected", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.ValidateToken(ctx, "não-é-um-token")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatus(err))
		users.AssertNotCalled(t, "GetByID")
	})
}
