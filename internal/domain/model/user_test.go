package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meukanban/kanban-api/internal/domain/model"
)

func TestResolveActiveWorkspace(t *testing.T) {
	t.Run("stored pointer wins", func(t *testing.T) {
		user := &model.User{
			Workspaces:      []model.Workspace{{Name: "Trabalho"}, {Name: "Pessoal"}},
			ActiveWorkspace: "Pessoal",
		}
		assert.Equal(t, "Pessoal", user.ResolveActiveWorkspace())
	})

	t.Run("empty pointer falls back to first workspace", func(t *testing.T) {
		user := &model.User{
			Workspaces: []model.Workspace{{Name: "Trabalho"}, {Name: "Pessoal"}},
		}
		assert.Equal(t, "Trabalho", user.ResolveActiveWorkspace())
	})

	t.Run("empty list falls back to the default name", func(t *testing.T) {
		user := &model.User{}
		assert.Equal(t, model.DefaultWorkspaceName, user.ResolveActiveWorkspace())
	})

	t.Run("dangling pointer is returned as stored", func(t *testing.T) {
		user := &model.User{
			Workspaces:      []model.Workspace{{Name: "Trabalho"}},
			ActiveWorkspace: "Excluido",
		}
		assert.Equal(t, "Excluido", user.ResolveActiveWorkspace())
	})
}

func TestHasWorkspace(t *testing.T) {
	user := &model.User{
		Workspaces: []model.Workspace{{Name: "Trabalho"}},
	}

	assert.True(t, user.HasWorkspace("Trabalho"))
	assert.False(t, user.HasWorkspace("trabalho"), "comparison must be case sensitive")
	assert.False(t, user.HasWorkspace("Pessoal"))
}

func TestDefaultWorkspaces(t *testing.T) {
	workspaces := model.DefaultWorkspaces()

	require.Len(t, workspaces, 3)
	assert.Equal(t, model.DefaultWorkspaceName, workspaces[0].Name)
	assert.Equal(t, "Trabalho", workspaces[1].Name)
	assert.Equal(t, "Pessoal", workspaces[2].Name)

	for _, w := range workspaces {
		assert.NotEmpty(t, w.Icon)
		assert.NotEmpty(t, w.Description)
	}
}
