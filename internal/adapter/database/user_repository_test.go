package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meukanban/kanban-api/internal/adapter/database"
	"github.com/meukanban/kanban-api/internal/domain/model"
	"github.com/meukanban/kanban-api/internal/domain/repository"
	"github.com/meukanban/kanban-api/internal/testutils"
)

func seedUser(t *testing.T, repo repository.UserRepository, id, email, password string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		ID:              id,
		Name:            "Maria",
		Email:           email,
		Workspaces:      model.DefaultWorkspaces(),
		ActiveWorkspace: model.DefaultWorkspaceName,
	}
	require.NoError(t, repo.Create(context.Background(), user, string(hashed)))
	return user
}

func TestUserRepository_WorkspacesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := database.NewUserRepository(db, testutils.TestLogger(t))
	ctx := context.Background()

	seeded := seedUser(t, repo, "u1", "maria@example.com", "senha-forte")

	t.Run("GetByID devolve a lista na ordem gravada", func(t *testing.T) {
		user, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)

		require.Len(t, user.Workspaces, len(seeded.Workspaces))
		for i, w := range seeded.Workspaces {
			assert.Equal(t, w.Name, user.Workspaces[i].Name)
			assert.Equal(t, w.Icon, user.Workspaces[i].Icon)
			assert.Equal(t, w.Description, user.Workspaces[i].Description)
		}
		assert.Equal(t, model.DefaultWorkspaceName, user.ActiveWorkspace)
	})

	t.Run("GetByEmail encontra o mesmo usuário", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "maria@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("usuário desconhecido", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "fantasma")
		require.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestUserRepository_Authenticate(t *testing.T) {
	db := newTestDB(t)
	repo := database.NewUserRepository(db, testutils.TestLogger(t))
	ctx := context.Background()

	seedUser(t, repo, "u1", "maria@example.com", "senha-forte")

	t.Run("credenciais corretas", func(t *testing.T) {
		user, err := repo.Authenticate(ctx, "maria@example.com", "senha-forte")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("senha errada", func(t *testing.T) {
		_, err := repo.Authenticate(ctx, "maria@example.com", "errada")
		require.ErrorIs(t, err, repository.ErrInvalidCredentials)
	})

	t.Run("email desconhecido", func(t *testing.T) {
		_, err := repo.Authenticate(ctx, "ninguem@example.com", "senha-forte")
		require.ErrorIs(t, err, repository.ErrInvalidCredentials)
	})
}

func TestUserRepository_MutateWorkspaces(t *testing.T) {
	db := newTestDB(t)
	repo := database.NewUserRepository(db, testutils.TestLogger(t))
	ctx := context.Background()

	seedUser(t, repo, "u1", "maria@example.com", "senha-forte")

	t.Run("mutação persiste a lista e o ponteiro ativo", func(t *testing.T) {
		mutated, err := repo.MutateWorkspaces(ctx, "u1", func(u *model.User) error {
			u.Workspaces = append(u.Workspaces, model.Workspace{
				Name: "Estudos", Description: "Cursos", Icon: "book",
			})
			u.ActiveWorkspace = "Estudos"
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, mutated.Workspaces, 4)

		// Releitura independente confirma o round-trip pelo JSON da linha
		reloaded, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, reloaded.Workspaces, 4)
		assert.Equal(t, "Estudos", reloaded.Workspaces[3].Name)
		assert.Equal(t, "book", reloaded.Workspaces[3].Icon)
		assert.Equal(t, "Estudos", reloaded.ActiveWorkspace)
	})

	t.Run("usuário desconhecido", func(t *testing.T) {
		_, err := repo.MutateWorkspaces(ctx, "fantasma", func(u *model.User) error { return nil })
		require.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestUserRepository_SetActiveWorkspace(t *testing.T) {
	db := newTestDB(t)
	repo := database.NewUserRepository(db, testutils.TestLogger(t))
	ctx := context.Background()

	seedUser(t, repo, "u1", "maria@example.com", "senha-forte")

	require.NoError(t, repo.SetActiveWorkspace(ctx, "u1", "Trabalho"))

	user, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Trabalho", user.ActiveWorkspace)

	require.ErrorIs(t, repo.SetActiveWorkspace(ctx, "fantasma", "Trabalho"), repository.ErrUserNotFound)
}
